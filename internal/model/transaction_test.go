package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionIsCategorized(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{"Rent", true},
		{Uncategorized, false},
		{"", false},
	}
	for _, tt := range tests {
		txn := Transaction{Category: tt.category}
		assert.Equal(t, tt.want, txn.IsCategorized(), "IsCategorized(%q)", tt.category)
	}
}

func TestMappingChangeIsNew(t *testing.T) {
	assert.True(t, MappingChange{Name: "JohnDoe", Category: "Rent"}.IsNew())
	assert.False(t, MappingChange{Name: "JohnDoe", Previous: "Food", Category: "Rent"}.IsNew())
}

package categorize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendmap/spendmap/internal/mapping"
	"github.com/spendmap/spendmap/internal/model"
)

func TestSession_OverrideAndSave(t *testing.T) {
	ctx := context.Background()
	store := mapping.NewMemoryStore([]model.Mapping{{Name: "JohnDoe", Category: "Rent"}})

	sess, err := Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rent"}, sess.Categories())

	rows := sess.Categorize([]model.Transaction{{Name: "JohnDoe"}, {Name: "FreshMart"}})
	rows = sess.Override(rows, map[string]string{"FreshMart": "Groceries"})

	assert.Equal(t, "Groceries", rows[1].Category)
	assert.Equal(t, []string{"Rent", "Groceries"}, sess.Categories())
	assert.Equal(t, []model.Mapping{{Name: "FreshMart", Category: "Groceries"}}, sess.Pending())

	// Nothing persisted before Save.
	stored, _ := store.Load(ctx)
	assert.Len(t, stored, 1)

	changes, err := sess.Save(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []model.MappingChange{{Name: "FreshMart", Category: "Groceries"}}, changes)
	assert.Empty(t, sess.Pending())

	stored, _ = store.Load(ctx)
	assert.Equal(t, []model.Mapping{
		{Name: "JohnDoe", Category: "Rent"},
		{Name: "FreshMart", Category: "Groceries"},
	}, stored)
}

func TestSession_CategorizeIncludesPending(t *testing.T) {
	sess := NewSession(mapping.NewTable(nil))
	require.NoError(t, sess.Assign("Cafe", "Dining"))

	rows := sess.Categorize([]model.Transaction{{Name: "Cafe"}, {Name: "Other"}})
	assert.Equal(t, "Dining", rows[0].Category)
	assert.Equal(t, model.Uncategorized, rows[1].Category)
}

func TestSession_AssignReplacesExisting(t *testing.T) {
	ctx := context.Background()
	store := mapping.NewMemoryStore([]model.Mapping{
		{Name: "JohnDoe", Category: "Rent"},
		{Name: "Cafe", Category: "Dining"},
	})
	sess, err := Load(ctx, store)
	require.NoError(t, err)

	require.NoError(t, sess.Assign("JohnDoe", "Family"))
	changes, err := sess.Save(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []model.MappingChange{{Name: "JohnDoe", Previous: "Rent", Category: "Family"}}, changes)

	stored, _ := store.Load(ctx)
	var count int
	for _, m := range stored {
		if m.Name == "JohnDoe" {
			count++
			assert.Equal(t, "Family", m.Category)
		}
	}
	assert.Equal(t, 1, count)
}

func TestSession_AssignValidates(t *testing.T) {
	sess := NewSession(mapping.NewTable(nil))
	assert.Error(t, sess.Assign("", "Food"))
	assert.Error(t, sess.Assign("Cafe", "  "))
	assert.Empty(t, sess.Pending())
}

func TestSession_SaveTwiceIsByteIdentical(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "known_recipients.csv")
	store := mapping.NewFileStore(path)

	sess, err := Load(ctx, store)
	require.NoError(t, err)
	require.NoError(t, sess.Assign("A", "Food"))
	require.NoError(t, sess.Assign("B", "Rent"))
	require.NoError(t, sess.Assign("A", "Groceries"))
	_, err = sess.Save(ctx, store)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	// A fresh session saving with no new entries.
	sess, err = Load(ctx, store)
	require.NoError(t, err)
	changes, err := sess.Save(ctx, store)
	require.NoError(t, err)
	assert.Empty(t, changes)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, "Name,Category\nB,Rent\nA,Groceries\n", string(second))
}

type failingStore struct{ mapping.MemoryStore }

func (f *failingStore) Save(context.Context, []model.Mapping) error {
	return errors.New("disk full")
}

func TestSession_SaveErrorKeepsPending(t *testing.T) {
	ctx := context.Background()
	sess := NewSession(mapping.NewTable(nil))
	require.NoError(t, sess.Assign("A", "Food"))

	_, err := sess.Save(ctx, &failingStore{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, sess.Pending(), 1)
}

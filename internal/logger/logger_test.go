package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.Debug().Msg("hidden")
	l.Info().Str("file", "stmt.csv").Msg("parsed statement")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "parsed statement")
	assert.Contains(t, out, "file=stmt.csv")
}

func TestNew_DefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "loud")

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug")
	ctx := WithContext(context.Background(), l)

	FromContext(ctx).Debug().Msg("from context")
	assert.Contains(t, buf.String(), "from context")
}

func TestFromContext_Missing(t *testing.T) {
	// A context without a logger yields a usable, disabled logger.
	FromContext(context.Background()).Info().Msg("dropped")
}

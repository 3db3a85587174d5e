package tagstore

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func TestTag(t *testing.T) {
	t.Run("zero_value_is_untagged", func(t *testing.T) {
		assert.True(t, Tag{}.IsUntagged())
		assert.True(t, Untagged.IsUntagged())
		assert.Equal(t, "untagged", Untagged.String())
	})

	t.Run("tagged_string", func(t *testing.T) {
		assert.Equal(t, "ccsid=819 (text)", Tag{CCSID: 819, Text: true}.String())
		assert.Equal(t, "ccsid=1047 (binary)", Tag{CCSID: 1047}.String())
	})
}

func TestMemory(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("unknown_path_is_untagged", func(t *testing.T) {
		store := NewMemory()
		tag, err := store.QueryTag(ctx, "/no/such/file")
		require.NoError(t, err, "querying unknown path")
		assert.True(t, tag.IsUntagged())
	})

	t.Run("set_then_query", func(t *testing.T) {
		store := NewMemory()
		want := Tag{CCSID: 1047, Text: true}
		require.NoError(t, store.SetTag(ctx, "/tmp/file", want), "setting tag")

		got, err := store.QueryTag(ctx, "/tmp/file")
		require.NoError(t, err, "querying tag")
		assert.Equal(t, want, got)
	})

	t.Run("overwrite", func(t *testing.T) {
		store := NewMemory()
		require.NoError(t, store.SetTag(ctx, "/tmp/file", Tag{CCSID: 819, Text: true}))
		require.NoError(t, store.SetTag(ctx, "/tmp/file", Tag{CCSID: 1047, Text: true}))

		got, err := store.QueryTag(ctx, "/tmp/file")
		require.NoError(t, err)
		assert.Equal(t, 1047, got.CCSID)
	})

	t.Run("name", func(t *testing.T) {
		assert.Equal(t, "memory", NewMemory().Name())
	})
}

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shivam041/riseapp/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.json")
	s, err := NewFileStore(path, internal.NewNopLogger())
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "rise_user", `{"id":"u1"}`))
	v, ok, err := s.Get(ctx, "rise_user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"u1"}`, v)

	require.NoError(t, s.Remove(ctx, "rise_user"))
	_, ok, err = s.Get(ctx, "rise_user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.json")

	s, err := NewFileStore(path, internal.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "a", "1"))
	require.NoError(t, s.Set(ctx, "b", "2"))
	require.NoError(t, s.Close())

	reopened, err := NewFileStore(path, internal.NewNopLogger())
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	v, ok, err = reopened.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestFileStore_RemoveMany(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.json")
	s, err := NewFileStore(path, internal.NewNopLogger())
	require.NoError(t, err)
	defer s.Close()

	for _, k := range PerUserKeys("a@b.com") {
		require.NoError(t, s.Set(ctx, k, "x"))
	}
	require.NoError(t, s.Set(ctx, "goals_other@b.com", "keep"))

	require.NoError(t, s.RemoveMany(ctx, PerUserKeys("a@b.com")))

	for _, k := range PerUserKeys("a@b.com") {
		_, ok, err := s.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok, k)
	}
	_, ok, err := s.Get(ctx, "goals_other@b.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

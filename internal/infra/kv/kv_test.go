package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Load(ctx, "gh_products")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, map[string][]byte{
		"gh_products": []byte(`[{"id":"a"}]`),
		"gh_teams":    []byte(`[]`),
	}))
	v, ok, err := s.Load(ctx, "gh_products")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"a"}]`, string(v))

	require.NoError(t, s.Save(ctx, map[string][]byte{"gh_products": []byte(`[]`)}))
	v, _, err = s.Load(ctx, "gh_products")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(v))

	require.NoError(t, s.Clear(ctx))
	_, ok, err = s.Load(ctx, "gh_teams")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	exercise(t, m)
	assert.Equal(t, DriverMemory, m.Driver())

	require.NoError(t, m.Save(context.Background(), map[string][]byte{"b": nil, "a": nil}))
	assert.Equal(t, []string{"a", "b"}, m.Keys())

	require.NoError(t, m.Close())
	assert.ErrorIs(t, m.Save(context.Background(), map[string][]byte{"a": nil}), ErrClosed)
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hornet.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	exercise(t, s)
	assert.Equal(t, DriverSQLite, s.Driver())
	assert.Equal(t, path, s.Path())
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hornet.db")
	ctx := context.Background()

	s1, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, map[string][]byte{"gh_categories": []byte(`["ALLGEMEIN"]`)}))
	require.NoError(t, s1.Close())

	s2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()
	v, ok, err := s2.Load(ctx, "gh_categories")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["ALLGEMEIN"]`, string(v))
}

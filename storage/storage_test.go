package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Storage {
	t.Helper()

	file, err := NewFile(t.TempDir())
	require.NoError(t, err)

	sqlite, err := NewSQLite(":memory:")
	require.NoError(t, err)

	all := map[string]Storage{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": sqlite,
	}
	t.Cleanup(func() {
		for _, s := range all {
			s.Close()
		}
	})
	return all
}

func TestStorageContract(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, "cart-storage", []byte(`{"items":[]}`)))
			got, err := s.Get(ctx, "cart-storage")
			require.NoError(t, err)
			assert.Equal(t, `{"items":[]}`, string(got))

			require.NoError(t, s.Put(ctx, "cart-storage", []byte(`{"items":[1]}`)))
			got, err = s.Get(ctx, "cart-storage")
			require.NoError(t, err)
			assert.Equal(t, `{"items":[1]}`, string(got), "put replaces prior content")

			require.NoError(t, s.Delete(ctx, "cart-storage"))
			_, err = s.Get(ctx, "cart-storage")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, s.Delete(ctx, "cart-storage"), "deleting a missing key is not an error")
		})
	}
}

func TestTakeConsumesRecord(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.Put(ctx, "last-order", []byte("order")))

	got, err := Take(ctx, s, "last-order")
	require.NoError(t, err)
	assert.Equal(t, "order", string(got))

	_, err = Take(ctx, s, "last-order")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNamespaceIsolatesKeys(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	a := Namespace(base, "session/a")
	b := Namespace(base, "session/b")

	require.NoError(t, a.Put(ctx, "cart-storage", []byte("a")))
	_, err := b.Get(ctx, "cart-storage")
	assert.ErrorIs(t, err, ErrNotFound)

	raw, err := base.Get(ctx, "session/a/cart-storage")
	require.NoError(t, err)
	assert.Equal(t, "a", string(raw))

	require.NoError(t, a.Close())
	_, err = base.Get(ctx, "session/a/cart-storage")
	assert.NoError(t, err, "closing a namespace leaves the backend open")
}

func TestFileKeysStayInsideDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "../escape/cart", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape"))
	assert.True(t, os.IsNotExist(err))
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "wishlist-storage", []byte("saved")))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "wishlist-storage")
	require.NoError(t, err)
	assert.Equal(t, "saved", string(got))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(ctx, Options{Driver: "sqlite", Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	s.Close()

	_, err = Open(ctx, Options{Driver: "redis"})
	assert.Error(t, err)
}

func TestMongo(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()

	s, err := Open(ctx, Options{Driver: "mongo", MongoURI: uri, DatabaseName: "shoplungu_test"})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put(ctx, "t/cart-storage", []byte("x")))
	got, err := s.Get(ctx, "t/cart-storage")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
	require.NoError(t, s.Delete(ctx, "t/cart-storage"))
	_, err = s.Get(ctx, "t/cart-storage")
	assert.ErrorIs(t, err, ErrNotFound)
}

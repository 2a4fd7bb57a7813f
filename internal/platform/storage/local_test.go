package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/primex-app/primex_backend/internal/platform/storage"
	"github.com/stretchr/testify/require"
)

func TestStoreAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	ref, err := store.Store(context.Background(), "avatar.png", []byte("data"))
	require.NoError(t, err)
	require.Equal(t, "/uploads/avatar.png", ref)

	data, err := os.ReadFile(filepath.Join(dir, "avatar.png"))
	require.NoError(t, err)
	require.Equal(t, "data", string(data))

	require.NoError(t, store.Delete(context.Background(), ref))
	_, err = os.Stat(filepath.Join(dir, "avatar.png"))
	require.True(t, os.IsNotExist(err))
}

func TestStoreStripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	ref, err := store.Store(context.Background(), "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, "/uploads/passwd", ref)

	_, err = os.Stat(filepath.Join(dir, "passwd"))
	require.NoError(t, err)
}

func TestDeleteRefusesExternalReference(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	require.Error(t, store.Delete(context.Background(), "https://example.com/pic.jpg"))
}

func TestIsLocal(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	require.True(t, store.IsLocal("/uploads/a.png"))
	require.False(t, store.IsLocal("https://example.com/a.png"))
	require.False(t, store.IsLocal("/other/a.png"))
}

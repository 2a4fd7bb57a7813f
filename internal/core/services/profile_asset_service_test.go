package services_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
	"github.com/primex-app/primex_backend/internal/core/services"
	"github.com/primex-app/primex_backend/internal/platform/storage"
	"github.com/stretchr/testify/require"
)

func newTestAssetService(t *testing.T) (*storage.LocalStore, portssvc.ProfileAssetSvc) {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return store, services.NewProfileAssetService(store, logger)
}

func TestIngestFromURL_StoresRemoteImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	store, svc := newTestAssetService(t)

	ref := svc.IngestFromURL(context.Background(), server.URL+"/avatar.png")

	require.True(t, strings.HasPrefix(ref, "/uploads/"))
	require.True(t, strings.HasSuffix(ref, ".png"))

	stored, err := os.ReadFile(filepath.Join(store.Dir(), filepath.Base(ref)))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(stored))
}

func TestIngestFromURL_FallsBackToRemoteOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, svc := newTestAssetService(t)

	url := server.URL + "/missing.png"
	ref := svc.IngestFromURL(context.Background(), url)

	require.Equal(t, url, ref)
}

func TestReplace_DeletesOldLocalAsset(t *testing.T) {
	store, svc := newTestAssetService(t)
	ctx := context.Background()

	oldRef, err := store.Store(ctx, "old.jpg", []byte("old"))
	require.NoError(t, err)

	newRef, err := svc.Replace(ctx, &oldRef, []byte("new"), "image/jpeg")
	require.NoError(t, err)
	require.NotEqual(t, oldRef, newRef)
	require.True(t, strings.HasSuffix(newRef, ".jpeg"))

	_, err = os.Stat(filepath.Join(store.Dir(), "old.jpg"))
	require.True(t, os.IsNotExist(err))

	stored, err := os.ReadFile(filepath.Join(store.Dir(), filepath.Base(newRef)))
	require.NoError(t, err)
	require.Equal(t, "new", string(stored))
}

func TestReplace_LeavesExternalURLAlone(t *testing.T) {
	_, svc := newTestAssetService(t)
	ctx := context.Background()

	external := "https://lh3.example.com/pic.jpg"
	newRef, err := svc.Replace(ctx, &external, []byte("new"), "image/jpeg")

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(newRef, "/uploads/"))
}

func TestDeleteIfLocal_IgnoresExternalURL(t *testing.T) {
	store, svc := newTestAssetService(t)
	ctx := context.Background()

	ref, err := store.Store(ctx, "keep.jpg", []byte("keep"))
	require.NoError(t, err)

	svc.DeleteIfLocal(ctx, "https://lh3.example.com/pic.jpg")
	svc.DeleteIfLocal(ctx, "")

	_, err = os.Stat(filepath.Join(store.Dir(), "keep.jpg"))
	require.NoError(t, err)

	svc.DeleteIfLocal(ctx, ref)
	_, err = os.Stat(filepath.Join(store.Dir(), "keep.jpg"))
	require.True(t, os.IsNotExist(err))
}

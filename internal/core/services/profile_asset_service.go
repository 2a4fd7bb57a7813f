package services

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
)

// maxAssetBytes caps how much of a remote avatar response gets read.
const maxAssetBytes = 10 << 20

type profileAssetService struct {
	store  portssvc.BlobStore
	client *http.Client
	logger *slog.Logger
}

// NewProfileAssetService creates the profile asset manager backed by the
// given blob store.
func NewProfileAssetService(store portssvc.BlobStore, logger *slog.Logger) portssvc.ProfileAssetSvc {
	return &profileAssetService{
		store:  store,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

var _ portssvc.ProfileAssetSvc = (*profileAssetService)(nil)

// IngestFromURL downloads the remote image and stores it locally. Any failure
// falls back to the remote URL unchanged: the user record then keeps pointing
// at the external asset and the next login retries the ingestion.
func (s *profileAssetService) IngestFromURL(ctx context.Context, remoteURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		s.logger.Warn("Failed to build avatar fetch request", slog.String("url", remoteURL), slog.String("error", err.Error()))
		return remoteURL
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("Failed to fetch remote avatar", slog.String("url", remoteURL), slog.String("error", err.Error()))
		return remoteURL
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("Remote avatar fetch returned non-200", slog.String("url", remoteURL), slog.Int("status", resp.StatusCode))
		return remoteURL
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		s.logger.Warn("Failed to read remote avatar body", slog.String("url", remoteURL), slog.String("error", err.Error()))
		return remoteURL
	}

	filename := uuid.NewString() + "." + extensionFromContentType(resp.Header.Get("Content-Type"))
	localRef, err := s.store.Store(ctx, filename, data)
	if err != nil {
		s.logger.Warn("Failed to store ingested avatar", slog.String("url", remoteURL), slog.String("error", err.Error()))
		return remoteURL
	}
	return localRef
}

// Replace stores the new asset, then best-effort deletes the old one when it
// was locally managed.
func (s *profileAssetService) Replace(ctx context.Context, oldRef *string, data []byte, contentType string) (string, error) {
	filename := uuid.NewString() + "." + extensionFromContentType(contentType)
	newRef, err := s.store.Store(ctx, filename, data)
	if err != nil {
		return "", err
	}

	if oldRef != nil {
		s.DeleteIfLocal(ctx, *oldRef)
	}
	return newRef, nil
}

// DeleteIfLocal removes a locally managed asset. External URLs are never
// touched, and failures are logged rather than surfaced.
func (s *profileAssetService) DeleteIfLocal(ctx context.Context, ref string) {
	if ref == "" || !s.store.IsLocal(ref) {
		return
	}
	if err := s.store.Delete(ctx, ref); err != nil {
		s.logger.Warn("Failed to delete stale profile asset", slog.String("ref", ref), slog.String("error", err.Error()))
	}
}

// extensionFromContentType maps a MIME type like "image/png" to a file
// extension, defaulting to jpg.
func extensionFromContentType(contentType string) string {
	_, subtype, found := strings.Cut(contentType, "/")
	if !found || subtype == "" {
		return "jpg"
	}
	if idx := strings.IndexAny(subtype, ";+"); idx >= 0 {
		subtype = subtype[:idx]
	}
	subtype = strings.TrimSpace(subtype)
	if subtype == "" {
		return "jpg"
	}
	return subtype
}

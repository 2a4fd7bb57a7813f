package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
)

// LocalStore keeps profile assets on the local filesystem and serves them
// under a URL path prefix (e.g. "/uploads"). References it hands out look
// like "/uploads/<filename>"; anything else is treated as external.
type LocalStore struct {
	dir      string
	basePath string
}

func NewLocalStore(dir string, basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, basePath: strings.TrimSuffix(basePath, "/")}, nil
}

var _ portssvc.BlobStore = (*LocalStore)(nil)

func (s *LocalStore) Store(ctx context.Context, filename string, data []byte) (string, error) {
	// path.Base strips any directory components a caller might sneak in.
	filename = path.Base(filename)
	target := filepath.Join(s.dir, filename)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write asset %s: %w", filename, err)
	}
	return s.basePath + "/" + filename, nil
}

func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	if !s.IsLocal(ref) {
		return fmt.Errorf("refusing to delete non-local reference %q", ref)
	}
	filename := path.Base(ref)
	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", filename, err)
	}
	return nil
}

func (s *LocalStore) IsLocal(ref string) bool {
	return strings.HasPrefix(ref, s.basePath+"/")
}

// Dir returns the directory assets are stored in, for static file serving.
func (s *LocalStore) Dir() string {
	return s.dir
}

package services

import "context"

// ProfileAssetSvc coordinates profile image storage and replacement for both
// self-serve uploads and OAuth-sourced avatar caching.
type ProfileAssetSvc interface {
	// IngestFromURL downloads a remote image and stores it locally,
	// returning the local reference. On fetch failure it returns the
	// remote URL unchanged, leaving the record pointing at the external
	// asset until a later login retries the ingestion.
	IngestFromURL(ctx context.Context, remoteURL string) string

	// Replace stores the new asset bytes, then best-effort deletes oldRef
	// when it is a locally managed reference. Returns the new reference.
	Replace(ctx context.Context, oldRef *string, data []byte, contentType string) (string, error)

	// DeleteIfLocal best-effort deletes a locally managed asset. External
	// URLs are never touched. Failures are logged, not returned.
	DeleteIfLocal(ctx context.Context, ref string)
}

package adapter

import (
	"context"
	"time"
)

// SignedUpload is a time-limited permission to upload one object.
type SignedUpload struct {
	UploadURL string
	PublicURL string
	Path      string
	Token     string
	ExpiresAt time.Time
}

// BlobStore is the hex port for the image object store. The backend only
// ever issues upload permissions; bytes never flow through this service.
type BlobStore interface {
	CreateSignedUploadURL(ctx context.Context, path string) (*SignedUpload, error)
}

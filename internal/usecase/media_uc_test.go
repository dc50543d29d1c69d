package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"seller-marketplace/internal/domain"
	"seller-marketplace/internal/domain/ports/adapter"
)

// stubBlobStore records the requested object path.
type stubBlobStore struct {
	lastPath string
	err      error
}

var _ adapter.BlobStore = (*stubBlobStore)(nil)

func (s *stubBlobStore) CreateSignedUploadURL(ctx context.Context, objectPath string) (*adapter.SignedUpload, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastPath = objectPath
	return &adapter.SignedUpload{
		UploadURL: "https://upload.test/" + objectPath + "?token=t",
		PublicURL: "https://cdn.test/" + objectPath,
		Path:      objectPath,
		Token:     "t",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}, nil
}

func TestMediaUC_SignedUpload(t *testing.T) {
	listings := newMemListingRepo()
	blobs := &stubBlobStore{}
	uc := NewMediaUseCase(listings, blobs, newTestLogger())
	ctx := context.Background()
	seedListing(t, listings, "listing-1", "seller-1")

	up, err := uc.SignedUpload(ctx, "seller-1", "listing-1", "photo.png")
	if err != nil {
		t.Fatalf("signed upload: %v", err)
	}
	if !strings.HasPrefix(up.Path, "seller-1/listing-1/") {
		t.Fatalf("object path not namespaced by owner and listing: %q", up.Path)
	}
	if !strings.HasSuffix(up.Path, ".png") {
		t.Fatalf("extension not preserved: %q", up.Path)
	}
	if up.UploadURL == "" || up.PublicURL == "" {
		t.Fatal("upload and public URLs must be set")
	}
}

func TestMediaUC_SignedUploadDefaultExtension(t *testing.T) {
	listings := newMemListingRepo()
	blobs := &stubBlobStore{}
	uc := NewMediaUseCase(listings, blobs, newTestLogger())
	seedListing(t, listings, "listing-1", "seller-1")

	up, err := uc.SignedUpload(context.Background(), "seller-1", "listing-1", "photo")
	if err != nil {
		t.Fatalf("signed upload: %v", err)
	}
	if !strings.HasSuffix(up.Path, ".jpg") {
		t.Fatalf("expected .jpg default, got %q", up.Path)
	}
}

func TestMediaUC_SignedUploadRejections(t *testing.T) {
	listings := newMemListingRepo()
	blobs := &stubBlobStore{}
	uc := NewMediaUseCase(listings, blobs, newTestLogger())
	ctx := context.Background()
	seedListing(t, listings, "listing-1", "seller-1")

	if _, err := uc.SignedUpload(ctx, "seller-2", "listing-1", "photo.jpg"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner: expected ErrForbidden, got %v", err)
	}
	if _, err := uc.SignedUpload(ctx, "seller-1", "no-such-listing", "photo.jpg"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown listing: expected ErrNotFound, got %v", err)
	}
	if _, err := uc.SignedUpload(ctx, "", "listing-1", "photo.jpg"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("empty profile: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := uc.SignedUpload(ctx, "seller-1", "listing-1", ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("empty filename: expected ErrInvalidArgument, got %v", err)
	}
	if blobs.lastPath != "" {
		t.Fatal("rejected requests must not reach the blob store")
	}
}

package usecase

import (
	"context"
	"fmt"
	"path"
	"time"

	"seller-marketplace/internal/domain"
	"seller-marketplace/internal/domain/ports/adapter"
	"seller-marketplace/internal/domain/ports/repository"
	"seller-marketplace/internal/infra/logging"
	"seller-marketplace/internal/infra/metrics"

	"github.com/rs/zerolog"
)

var _ MediaUseCase = (*mediaUC)(nil)

// MediaUseCase issues time-limited upload URLs for listing images after
// verifying the caller owns the listing.
type MediaUseCase interface {
	SignedUpload(ctx context.Context, profileID, listingID, filename string) (*adapter.SignedUpload, error)
}

type mediaUC struct {
	listings repository.ListingRepository
	blobs    adapter.BlobStore
	log      *zerolog.Logger
}

func NewMediaUseCase(listings repository.ListingRepository, blobs adapter.BlobStore, logger *zerolog.Logger) *mediaUC {
	return &mediaUC{listings: listings, blobs: blobs, log: logger}
}

func (u *mediaUC) SignedUpload(ctx context.Context, profileID, listingID, filename string) (*adapter.SignedUpload, error) {
	defer logging.TraceDuration(u.log, "MediaUC.SignedUpload")()

	if profileID == "" || listingID == "" || filename == "" {
		return nil, domain.ErrInvalidArgument
	}

	listing, err := u.listings.FindByID(ctx, repository.NoTX, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != profileID {
		return nil, domain.ErrForbidden
	}

	ext := path.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	// Timestamped path keeps uploads unique per listing.
	objectPath := fmt.Sprintf("%s/%s/%d%s", profileID, listingID, time.Now().UnixMilli(), ext)

	upload, err := u.blobs.CreateSignedUploadURL(ctx, objectPath)
	if err != nil {
		return nil, err
	}
	metrics.IncUploadSigned()
	return upload, nil
}

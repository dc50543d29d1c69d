package usecase

import (
	"context"

	"seller-marketplace/internal/domain/model"
	"seller-marketplace/internal/domain/ports/repository"
	"seller-marketplace/internal/infra/logging"

	"github.com/rs/zerolog"
)

var _ ListingUseCase = (*listingUC)(nil)

// ListingUseCase exposes the read surface the frontend browses. Writes
// come from seller tooling and stay minimal here.
type ListingUseCase interface {
	Browse(ctx context.Context, offset, limit int) ([]*model.Listing, error)
	Get(ctx context.Context, id string) (*model.Listing, error)
	BySeller(ctx context.Context, sellerID string) ([]*model.Listing, error)
}

type listingUC struct {
	listings repository.ListingRepository
	log      *zerolog.Logger
}

func NewListingUseCase(listings repository.ListingRepository, logger *zerolog.Logger) *listingUC {
	return &listingUC{listings: listings, log: logger}
}

func (u *listingUC) Browse(ctx context.Context, offset, limit int) ([]*model.Listing, error) {
	defer logging.TraceDuration(u.log, "ListingUC.Browse")()
	return u.listings.ListActive(ctx, repository.NoTX, offset, limit)
}

func (u *listingUC) Get(ctx context.Context, id string) (*model.Listing, error) {
	defer logging.TraceDuration(u.log, "ListingUC.Get")()
	return u.listings.FindByID(ctx, repository.NoTX, id)
}

func (u *listingUC) BySeller(ctx context.Context, sellerID string) ([]*model.Listing, error) {
	defer logging.TraceDuration(u.log, "ListingUC.BySeller")()
	return u.listings.FindBySeller(ctx, repository.NoTX, sellerID)
}

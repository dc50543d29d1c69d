package repository

import (
	"context"

	"seller-marketplace/internal/domain/model"
)

type ListingRepository interface {
	Save(ctx context.Context, tx Tx, l *model.Listing) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Listing, error)
	FindBySeller(ctx context.Context, tx Tx, sellerID string) ([]*model.Listing, error)
	ListActive(ctx context.Context, tx Tx, offset, limit int) ([]*model.Listing, error)
}

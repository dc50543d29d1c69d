package repository

import (
	"context"

	"seller-marketplace/internal/domain/model"
)

// SellerCodeRepository is the port for the code registry. The registry is
// append-plus-transition only: codes are never deleted, revocation is a
// terminal status.
type SellerCodeRepository interface {
	// Save inserts a new code record. The code_hash column carries a
	// UNIQUE constraint; a collision surfaces as domain.ErrAlreadyExists.
	Save(ctx context.Context, tx Tx, code *model.SellerCode) error
	// FindByHash performs an exact-match lookup on the code hash. When
	// called inside a transaction the row is locked for update so that
	// competing claims serialize on it.
	FindByHash(ctx context.Context, tx Tx, codeHash string) (*model.SellerCode, error)
	// FindByID looks a code up by its identifier.
	FindByID(ctx context.Context, tx Tx, id string) (*model.SellerCode, error)
	// UpdateStatus persists a lifecycle transition together with the
	// claimer reference and transition timestamps.
	UpdateStatus(ctx context.Context, tx Tx, code *model.SellerCode) error
	// List returns codes ordered by creation time, newest first.
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.SellerCode, error)
	// Count returns the total number of issued codes ever.
	Count(ctx context.Context, tx Tx) (int, error)
}

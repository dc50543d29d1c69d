package usecase

import (
	"context"

	"seller-marketplace/internal/domain/model"
	"seller-marketplace/internal/domain/ports/repository"
)

// IdentityBinder turns a successful first claim into a durable profile.
// At-most-one profile per seller code is guaranteed by the registry's
// claim transaction, not re-derived here.
type IdentityBinder struct {
	profiles repository.ProfileRepository
}

func NewIdentityBinder(profiles repository.ProfileRepository) *IdentityBinder {
	return &IdentityBinder{profiles: profiles}
}

// CreateIdentity creates a new profile with the given role and optional
// out-of-band contact handle. Must be called with the claim transaction's
// tx so the profile and the code transition commit together.
func (b *IdentityBinder) CreateIdentity(ctx context.Context, tx repository.Tx, role model.Role, whatsapp string) (*model.Profile, error) {
	p, err := model.NewProfile(role, whatsapp)
	if err != nil {
		return nil, err
	}
	if err := b.profiles.Save(ctx, tx, p); err != nil {
		return nil, err
	}
	return p, nil
}

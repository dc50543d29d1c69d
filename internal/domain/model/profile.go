package model

import (
	"time"

	"seller-marketplace/internal/domain"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSeller     Role = "seller"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Profile is the durable identity a seller code resolves to. Sellers get
// exactly one profile per code, created on first claim.
type Profile struct {
	ID          string
	Role        Role
	DisplayName string
	WhatsApp    *string // Pointer to allow for NULL
	CreatedAt   time.Time
}

func NewProfile(role Role, whatsapp string) (*Profile, error) {
	switch role {
	case RoleSeller, RoleAdmin, RoleSuperAdmin:
	default:
		return nil, domain.ErrInvalidArgument
	}
	p := &Profile{
		ID:        uuid.NewString(),
		Role:      role,
		CreatedAt: time.Now(),
	}
	if whatsapp != "" {
		p.WhatsApp = &whatsapp
	}
	return p, nil
}

// IsOperator reports whether the profile may issue and revoke seller codes.
func (p *Profile) IsOperator() bool {
	return p.Role == RoleAdmin || p.Role == RoleSuperAdmin
}

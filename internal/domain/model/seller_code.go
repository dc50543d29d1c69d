package model

import (
	"time"
)

// SellerCodeStatus is the lifecycle state of a seller code.
// Transitions: issued -> claimed, issued -> revoked, claimed -> revoked.
// claimed and revoked are terminal with respect to claiming.
type SellerCodeStatus string

const (
	SellerCodeIssued  SellerCodeStatus = "issued"
	SellerCodeClaimed SellerCodeStatus = "claimed"
	SellerCodeRevoked SellerCodeStatus = "revoked"
)

// SellerCode is the persistent record of an issued code. Only the SHA-256
// hash of the plaintext is ever stored; the plaintext is shown once at
// issuance and never again.
type SellerCode struct {
	ID                 string
	CodeHash           string
	Status             SellerCodeStatus
	IssuedToProfileID  *string    // admin operator the code was generated by
	ClaimedByProfileID *string    // set exactly once, on issued -> claimed
	ClaimedAt          *time.Time // Pointer to allow for NULL
	RevokedAt          *time.Time // Pointer to allow for NULL
	CreatedAt          time.Time
}

package session

import (
	"context"
	"errors"
	"time"

	"seller-marketplace/internal/domain/model"
	"seller-marketplace/internal/domain/ports/adapter"

	"github.com/golang-jwt/jwt/v5"
)

// Synthetic account domain for seller principals. The handle is derived
// from the code hash, never the plaintext, so the same code always maps
// to the same principal.
const principalDomain = "seller.local"

var _ adapter.SessionIssuer = (*Issuer)(nil)

// Claims carried by every session token.
type Claims struct {
	ProfileID string `json:"profile_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer mints and parses HS256 session tokens. It serves both seller
// logins (magic-link style URL after a code claim) and admin sessions.
type Issuer struct {
	secret  []byte
	ttl     time.Duration
	baseURL string
}

func NewIssuer(secret string, ttl time.Duration, baseURL string) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, baseURL: baseURL}
}

// Principal derives the stable synthetic account handle for a code hash.
func Principal(codeHash string) string {
	return codeHash + "@" + principalDomain
}

func (i *Issuer) IssueSellerSession(ctx context.Context, codeHash, profileID string) (*adapter.Session, error) {
	handle := Principal(codeHash)
	token, err := i.mint(handle, profileID, string(model.RoleSeller))
	if err != nil {
		return nil, err
	}
	return &adapter.Session{
		Handle: handle,
		Token:  token,
		URL:    i.baseURL + "?token=" + token,
	}, nil
}

// MintAdmin produces a token for an admin operator after the API-key
// exchange.
func (i *Issuer) MintAdmin(profileID string) (string, error) {
	return i.mint("admin:"+profileID, profileID, string(model.RoleAdmin))
}

func (i *Issuer) mint(subject, profileID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		ProfileID: profileID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Parse validates a token and returns its claims.
func (i *Issuer) Parse(tok string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

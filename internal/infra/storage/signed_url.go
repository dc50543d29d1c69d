package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"seller-marketplace/internal/config"
	"seller-marketplace/internal/domain/ports/adapter"
)

var _ adapter.BlobStore = (*SignedURLStore)(nil)

// SignedURLStore hands out HMAC-signed, time-limited upload URLs for the
// image bucket. The upload gateway that receives the bytes verifies the
// same signature; this service never touches image data.
type SignedURLStore struct {
	bucket     string
	uploadBase string
	publicBase string
	secret     []byte
	ttl        time.Duration
}

func NewSignedURLStore(cfg config.StorageConfig) *SignedURLStore {
	return &SignedURLStore{
		bucket:     cfg.Bucket,
		uploadBase: cfg.UploadBaseURL,
		publicBase: cfg.PublicBaseURL,
		secret:     []byte(cfg.SigningSecret),
		ttl:        cfg.UploadTTL,
	}
}

func (s *SignedURLStore) CreateSignedUploadURL(ctx context.Context, path string) (*adapter.SignedUpload, error) {
	expiresAt := time.Now().Add(s.ttl)
	token := s.sign(path, expiresAt.Unix())

	return &adapter.SignedUpload{
		UploadURL: fmt.Sprintf("%s/%s/%s?token=%s&expires=%d",
			s.uploadBase, s.bucket, path, token, expiresAt.Unix()),
		PublicURL: fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, path),
		Path:      path,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyUploadToken checks a token produced by CreateSignedUploadURL.
func (s *SignedURLStore) VerifyUploadToken(path, token string, expiresUnix int64) bool {
	if time.Now().Unix() > expiresUnix {
		return false
	}
	expected := s.sign(path, expiresUnix)
	return hmac.Equal([]byte(expected), []byte(token))
}

func (s *SignedURLStore) sign(path string, expiresUnix int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s/%s:%d", s.bucket, path, expiresUnix)
	return hex.EncodeToString(mac.Sum(nil))
}

package usecase

import (
	"context"
	"errors"
	"time"

	"seller-marketplace/internal/domain"
	"seller-marketplace/internal/domain/model"
	"seller-marketplace/internal/domain/ports/adapter"
	"seller-marketplace/internal/domain/ports/repository"
	"seller-marketplace/internal/infra/logging"
	"seller-marketplace/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ SellerCodeUseCase = (*sellerCodeUC)(nil)

// ClaimResult is everything the login endpoint needs after a successful
// claim or resume.
type ClaimResult struct {
	Code         *model.SellerCode
	Profile      *model.Profile
	Session      *adapter.Session
	IsFirstClaim bool
}

// SellerCodeUseCase is the code registry: it owns issuance, the
// issued -> claimed -> revoked lifecycle, and the binding of a code to
// exactly one seller profile.
type SellerCodeUseCase interface {
	// Issue generates a fresh code for an admin operator. The plaintext is
	// returned exactly once and is never retrievable again.
	Issue(ctx context.Context, issuerProfileID string) (string, *model.SellerCode, error)
	// ClaimOrResume validates and redeems a plaintext code. The first
	// successful claim creates the seller profile; every later call
	// resolves to that same profile.
	ClaimOrResume(ctx context.Context, plaintext, whatsapp string) (*ClaimResult, error)
	// Revoke terminates a code. Revoking an already-revoked code is a
	// no-op success.
	Revoke(ctx context.Context, codeID, operatorID string) (*model.SellerCode, error)
	// List returns issued codes for the admin directory, plus the total.
	List(ctx context.Context, offset, limit int) ([]*model.SellerCode, int, error)
}

type sellerCodeUC struct {
	codes    repository.SellerCodeRepository
	binder   *IdentityBinder
	sessions adapter.SessionIssuer
	tm       repository.TransactionManager
	log      *zerolog.Logger
}

func NewSellerCodeUseCase(
	codes repository.SellerCodeRepository,
	binder *IdentityBinder,
	sessions adapter.SessionIssuer,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *sellerCodeUC {
	return &sellerCodeUC{
		codes:    codes,
		binder:   binder,
		sessions: sessions,
		tm:       tm,
		log:      logger,
	}
}

func (u *sellerCodeUC) Issue(ctx context.Context, issuerProfileID string) (string, *model.SellerCode, error) {
	defer logging.TraceDuration(u.log, "SellerCodeUC.Issue")()

	// A hash collision means we generated an already-issued code; with a
	// 100-bit space that is practically unreachable, but retry anyway
	// rather than surfacing a constraint violation to the caller.
	for attempt := 0; attempt < 3; attempt++ {
		plain, err := generateSellerCode()
		if err != nil {
			return "", nil, err
		}

		code := &model.SellerCode{
			ID:        uuid.NewString(),
			CodeHash:  hashSellerCode(plain),
			Status:    model.SellerCodeIssued,
			CreatedAt: time.Now(),
		}
		if issuerProfileID != "" {
			code.IssuedToProfileID = &issuerProfileID
		}

		if err := u.codes.Save(ctx, repository.NoTX, code); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				continue
			}
			return "", nil, err
		}

		metrics.IncCodeIssued()
		u.log.Info().Str("code_id", code.ID).Str("issuer", issuerProfileID).Msg("seller code issued")
		return plain, code, nil
	}
	return "", nil, domain.ErrAlreadyExists
}

func (u *sellerCodeUC) ClaimOrResume(ctx context.Context, plaintext, whatsapp string) (*ClaimResult, error) {
	defer logging.TraceDuration(u.log, "SellerCodeUC.ClaimOrResume")()

	if !validSellerCode(plaintext) {
		metrics.IncClaim("invalid_format")
		return nil, domain.ErrInvalidCodeFormat
	}
	codeHash := hashSellerCode(plaintext)

	result := &ClaimResult{}
	// The claim must be atomic against concurrent claims of the same
	// code: FindByHash takes a row lock inside the transaction, so
	// exactly one caller wins the issued -> claimed transition and the
	// rest observe the claimed row.
	txOpts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	err := u.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		code, err := u.codes.FindByHash(ctx, tx, codeHash)
		if err != nil {
			return err
		}

		switch code.Status {
		case model.SellerCodeRevoked:
			return domain.ErrCodeRevoked

		case model.SellerCodeClaimed:
			if code.ClaimedByProfileID == nil {
				// claimed without a claimer should be impossible
				return domain.ErrReadDatabaseRow
			}
			profile, err := u.binder.profiles.FindByID(ctx, tx, *code.ClaimedByProfileID)
			if err != nil {
				return err
			}
			result.Code = code
			result.Profile = profile
			result.IsFirstClaim = false
			return nil

		case model.SellerCodeIssued:
			profile, err := u.binder.CreateIdentity(ctx, tx, model.RoleSeller, whatsapp)
			if err != nil {
				return err
			}
			now := time.Now()
			code.Status = model.SellerCodeClaimed
			code.ClaimedByProfileID = &profile.ID
			code.ClaimedAt = &now
			if err := u.codes.UpdateStatus(ctx, tx, code); err != nil {
				return err
			}
			result.Code = code
			result.Profile = profile
			result.IsFirstClaim = true
			return nil

		default:
			return domain.ErrInvalidArgument
		}
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			metrics.IncClaim("not_found")
		case errors.Is(err, domain.ErrCodeRevoked):
			metrics.IncClaim("revoked")
		default:
			metrics.IncClaim("error")
		}
		return nil, err
	}

	session, err := u.sessions.IssueSellerSession(ctx, codeHash, result.Profile.ID)
	if err != nil {
		metrics.IncClaim("error")
		return nil, err
	}
	result.Session = session

	if result.IsFirstClaim {
		metrics.IncClaim("first_claim")
		u.log.Info().Str("code_id", result.Code.ID).Str("profile_id", result.Profile.ID).Msg("seller code claimed")
	} else {
		metrics.IncClaim("resume")
	}
	return result, nil
}

func (u *sellerCodeUC) Revoke(ctx context.Context, codeID, operatorID string) (*model.SellerCode, error) {
	defer logging.TraceDuration(u.log, "SellerCodeUC.Revoke")()

	var revoked *model.SellerCode
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		code, err := u.codes.FindByID(ctx, tx, codeID)
		if err != nil {
			return err
		}
		if code.Status == model.SellerCodeRevoked {
			// idempotent: revoking twice is success, not an error
			revoked = code
			return nil
		}
		now := time.Now()
		code.Status = model.SellerCodeRevoked
		code.RevokedAt = &now
		if err := u.codes.UpdateStatus(ctx, tx, code); err != nil {
			return err
		}
		revoked = code
		metrics.IncCodeRevoked()
		u.log.Info().Str("code_id", code.ID).Str("operator", operatorID).Msg("seller code revoked")
		return nil
	})
	return revoked, err
}

func (u *sellerCodeUC) List(ctx context.Context, offset, limit int) ([]*model.SellerCode, int, error) {
	defer logging.TraceDuration(u.log, "SellerCodeUC.List")()

	codes, err := u.codes.List(ctx, repository.NoTX, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.codes.Count(ctx, repository.NoTX)
	if err != nil {
		return nil, 0, err
	}
	return codes, total, nil
}

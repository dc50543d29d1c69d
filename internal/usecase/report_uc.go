package usecase

import (
	"context"
	"time"

	"seller-marketplace/internal/domain"
	"seller-marketplace/internal/domain/model"
	"seller-marketplace/internal/domain/ports/adapter"
	"seller-marketplace/internal/domain/ports/repository"
	"seller-marketplace/internal/infra/logging"
	"seller-marketplace/internal/infra/metrics"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

var _ ReportUseCase = (*reportUC)(nil)

// ReportUseCase handles anonymous abuse reports against admins and
// listings.
type ReportUseCase interface {
	Submit(ctx context.Context, typ model.ReportType, targetID, message, fromIP string) (*model.Report, error)
	ListRecent(ctx context.Context, offset, limit int) ([]*model.Report, error)
}

type reportUC struct {
	reports  repository.ReportRepository
	profiles repository.ProfileRepository
	listings repository.ListingRepository
	limiter  adapter.RateLimiter
	limit    int
	window   time.Duration
	log      *zerolog.Logger
}

func NewReportUseCase(
	reports repository.ReportRepository,
	profiles repository.ProfileRepository,
	listings repository.ListingRepository,
	limiter adapter.RateLimiter,
	limit int,
	window time.Duration,
	logger *zerolog.Logger,
) *reportUC {
	return &reportUC{
		reports:  reports,
		profiles: profiles,
		listings: listings,
		limiter:  limiter,
		limit:    limit,
		window:   window,
		log:      logger,
	}
}

func (u *reportUC) Submit(ctx context.Context, typ model.ReportType, targetID, message, fromIP string) (*model.Report, error) {
	defer logging.TraceDuration(u.log, "ReportUC.Submit")()

	if targetID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if typ != model.ReportAdmin && typ != model.ReportListing {
		return nil, domain.ErrInvalidArgument
	}

	// Rate limit before anything else; a limited request must never
	// reach the store.
	allowed, err := u.limiter.Allow(ctx, ReportRateKey(fromIP), u.limit, u.window)
	if err != nil {
		return nil, err
	}
	if !allowed {
		metrics.IncRateLimitBlock("report")
		return nil, domain.ErrRateLimited
	}

	// The target must exist.
	switch typ {
	case model.ReportAdmin:
		p, err := u.profiles.FindByID(ctx, repository.NoTX, targetID)
		if err != nil {
			return nil, err
		}
		if !p.IsOperator() {
			return nil, domain.ErrNotFound
		}
	case model.ReportListing:
		if _, err := u.listings.FindByID(ctx, repository.NoTX, targetID); err != nil {
			return nil, err
		}
	}

	report := &model.Report{
		ID:        ulid.Make().String(),
		Type:      typ,
		TargetID:  targetID,
		FromIP:    fromIP,
		CreatedAt: time.Now(),
	}
	if message != "" {
		report.Message = &message
	}
	if err := u.reports.Save(ctx, repository.NoTX, report); err != nil {
		return nil, err
	}

	metrics.IncReport(string(typ))
	u.log.Info().Str("report_id", report.ID).Str("type", string(typ)).Str("target_id", targetID).Msg("report submitted")
	return report, nil
}

func (u *reportUC) ListRecent(ctx context.Context, offset, limit int) ([]*model.Report, error) {
	defer logging.TraceDuration(u.log, "ReportUC.ListRecent")()
	return u.reports.ListRecent(ctx, repository.NoTX, offset, limit)
}

// ReportRateKey is the shared-counter key for report submissions from one
// client address.
func ReportRateKey(ip string) string {
	return "rate_limit:report:" + ip
}

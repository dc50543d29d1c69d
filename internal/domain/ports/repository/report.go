package repository

import (
	"context"

	"seller-marketplace/internal/domain/model"
)

type ReportRepository interface {
	Save(ctx context.Context, tx Tx, r *model.Report) error
	// ListRecent returns the newest reports for moderation, newest first.
	ListRecent(ctx context.Context, tx Tx, offset, limit int) ([]*model.Report, error)
}

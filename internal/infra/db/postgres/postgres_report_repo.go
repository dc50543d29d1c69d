package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"seller-marketplace/internal/domain"
	"seller-marketplace/internal/domain/model"
	"seller-marketplace/internal/domain/ports/repository"
)

var _ repository.ReportRepository = (*reportRepo)(nil)

type reportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) repository.ReportRepository {
	return &reportRepo{pool: pool}
}

func (r *reportRepo) Save(ctx context.Context, tx repository.Tx, rep *model.Report) error {
	const q = `
INSERT INTO reports (id, type, target_id, message, from_ip, created_at)
VALUES ($1, $2, $3, $4, $5, $6);
`
	_, err := execSQL(ctx, r.pool, tx, q, rep.ID, rep.Type, rep.TargetID, rep.Message, rep.FromIP, rep.CreatedAt)
	return err
}

func (r *reportRepo) ListRecent(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Report, error) {
	const q = `
SELECT id, type, target_id, message, from_ip, created_at
  FROM reports
 ORDER BY created_at DESC
 LIMIT $1 OFFSET $2;
`
	rows, err := queryRows(ctx, r.pool, tx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Report
	for rows.Next() {
		var rep model.Report
		if err := rows.Scan(&rep.ID, &rep.Type, &rep.TargetID, &rep.Message, &rep.FromIP, &rep.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &rep)
	}
	return out, rows.Err()
}

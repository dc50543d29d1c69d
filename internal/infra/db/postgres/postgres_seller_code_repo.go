package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"seller-marketplace/internal/domain"
	"seller-marketplace/internal/domain/model"
	"seller-marketplace/internal/domain/ports/repository"
)

// Ensure implementation satisfies the interface.
var _ repository.SellerCodeRepository = (*sellerCodeRepo)(nil)

const uniqueViolation = "23505"

type sellerCodeRepo struct {
	pool *pgxpool.Pool
}

func NewSellerCodeRepo(pool *pgxpool.Pool) repository.SellerCodeRepository {
	return &sellerCodeRepo{pool: pool}
}

// Save inserts a new code record. Codes are insert-only; lifecycle
// changes go through UpdateStatus. The UNIQUE constraint on code_hash is
// what makes issuance collision-safe.
func (r *sellerCodeRepo) Save(ctx context.Context, tx repository.Tx, code *model.SellerCode) error {
	const q = `
INSERT INTO seller_codes (id, code_hash, status, issued_to_profile_id, claimed_by_profile_id, claimed_at, revoked_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := execSQL(ctx, r.pool, tx, q,
		code.ID, code.CodeHash, code.Status, code.IssuedToProfileID, code.ClaimedByProfileID, code.ClaimedAt, code.RevokedAt, code.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrAlreadyExists
	}
	return err
}

// FindByHash is the lookup used during claims. Inside a transaction the
// row is locked so competing claims of the same code serialize here.
func (r *sellerCodeRepo) FindByHash(ctx context.Context, tx repository.Tx, codeHash string) (*model.SellerCode, error) {
	q := `
SELECT id, code_hash, status, issued_to_profile_id, claimed_by_profile_id, claimed_at, revoked_at, created_at
  FROM seller_codes
 WHERE code_hash = $1`
	if inTx(tx) {
		q += " FOR UPDATE"
	}
	q += ";"

	row, err := pickRow(ctx, r.pool, tx, q, codeHash)
	if err != nil {
		return nil, err
	}
	return scanSellerCode(row)
}

func (r *sellerCodeRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.SellerCode, error) {
	q := `
SELECT id, code_hash, status, issued_to_profile_id, claimed_by_profile_id, claimed_at, revoked_at, created_at
  FROM seller_codes
 WHERE id = $1`
	if inTx(tx) {
		q += " FOR UPDATE"
	}
	q += ";"

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanSellerCode(row)
}

func (r *sellerCodeRepo) UpdateStatus(ctx context.Context, tx repository.Tx, code *model.SellerCode) error {
	const q = `
UPDATE seller_codes
   SET status = $2,
       claimed_by_profile_id = $3,
       claimed_at = $4,
       revoked_at = $5
 WHERE id = $1;
`
	tag, err := execSQL(ctx, r.pool, tx, q,
		code.ID, code.Status, code.ClaimedByProfileID, code.ClaimedAt, code.RevokedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sellerCodeRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.SellerCode, error) {
	const q = `
SELECT id, code_hash, status, issued_to_profile_id, claimed_by_profile_id, claimed_at, revoked_at, created_at
  FROM seller_codes
 ORDER BY created_at DESC
 LIMIT $1 OFFSET $2;
`
	rows, err := queryRows(ctx, r.pool, tx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.SellerCode
	for rows.Next() {
		var c model.SellerCode
		if err := rows.Scan(&c.ID, &c.CodeHash, &c.Status, &c.IssuedToProfileID, &c.ClaimedByProfileID, &c.ClaimedAt, &c.RevokedAt, &c.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *sellerCodeRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM seller_codes;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanSellerCode(row pgx.Row) (*model.SellerCode, error) {
	var c model.SellerCode
	err := row.Scan(&c.ID, &c.CodeHash, &c.Status, &c.IssuedToProfileID, &c.ClaimedByProfileID, &c.ClaimedAt, &c.RevokedAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &c, nil
}

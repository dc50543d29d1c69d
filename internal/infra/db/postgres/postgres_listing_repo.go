package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"seller-marketplace/internal/domain"
	"seller-marketplace/internal/domain/model"
	"seller-marketplace/internal/domain/ports/repository"
)

var _ repository.ListingRepository = (*listingRepo)(nil)

type listingRepo struct {
	pool *pgxpool.Pool
}

func NewListingRepo(pool *pgxpool.Pool) repository.ListingRepository {
	return &listingRepo{pool: pool}
}

func (r *listingRepo) Save(ctx context.Context, tx repository.Tx, l *model.Listing) error {
	const q = `
INSERT INTO listings (id, seller_id, title, description, price_cents, currency, image_urls, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  description = EXCLUDED.description,
  price_cents = EXCLUDED.price_cents,
  currency = EXCLUDED.currency,
  image_urls = EXCLUDED.image_urls,
  active = EXCLUDED.active,
  updated_at = EXCLUDED.updated_at;
`
	_, err := execSQL(ctx, r.pool, tx, q,
		l.ID, l.SellerID, l.Title, l.Description, l.PriceCents, l.Currency, l.ImageURLs, l.Active, l.CreatedAt, l.UpdatedAt,
	)
	return err
}

func (r *listingRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Listing, error) {
	const q = `
SELECT id, seller_id, title, description, price_cents, currency, image_urls, active, created_at, updated_at
  FROM listings
 WHERE id = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanListing(row)
}

func (r *listingRepo) FindBySeller(ctx context.Context, tx repository.Tx, sellerID string) ([]*model.Listing, error) {
	const q = `
SELECT id, seller_id, title, description, price_cents, currency, image_urls, active, created_at, updated_at
  FROM listings
 WHERE seller_id = $1
 ORDER BY created_at DESC;
`
	rows, err := queryRows(ctx, r.pool, tx, q, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

func (r *listingRepo) ListActive(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Listing, error) {
	const q = `
SELECT id, seller_id, title, description, price_cents, currency, image_urls, active, created_at, updated_at
  FROM listings
 WHERE active = TRUE
 ORDER BY created_at DESC
 LIMIT $1 OFFSET $2;
`
	rows, err := queryRows(ctx, r.pool, tx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

func scanListing(row pgx.Row) (*model.Listing, error) {
	var l model.Listing
	err := row.Scan(&l.ID, &l.SellerID, &l.Title, &l.Description, &l.PriceCents, &l.Currency, &l.ImageURLs, &l.Active, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &l, nil
}

func collectListings(rows pgx.Rows) ([]*model.Listing, error) {
	var out []*model.Listing
	for rows.Next() {
		var l model.Listing
		if err := rows.Scan(&l.ID, &l.SellerID, &l.Title, &l.Description, &l.PriceCents, &l.Currency, &l.ImageURLs, &l.Active, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

package model

import "time"

// Listing is a marketplace item owned by a seller profile. The backend
// only needs enough of it for browsing, ownership checks and reports;
// rendering is a frontend concern.
type Listing struct {
	ID          string
	SellerID    string
	Title       string
	Description string
	PriceCents  int64
	Currency    string
	ImageURLs   []string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

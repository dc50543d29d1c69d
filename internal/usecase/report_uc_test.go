package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"seller-marketplace/internal/domain"
	"seller-marketplace/internal/domain/model"
	"seller-marketplace/internal/domain/ports/repository"
)

func newReportUCFixture() (*reportUC, *memReportRepo, *memProfileRepo, *memListingRepo, *memLimiter) {
	reports := newMemReportRepo()
	profiles := newMemProfileRepo()
	listings := newMemListingRepo()
	limiter := newMemLimiter()
	uc := NewReportUseCase(reports, profiles, listings, limiter, 5, time.Minute, newTestLogger())
	return uc, reports, profiles, listings, limiter
}

func seedListing(t *testing.T, listings *memListingRepo, id, sellerID string) {
	t.Helper()
	err := listings.Save(context.Background(), repository.NoTX, &model.Listing{
		ID:        id,
		SellerID:  sellerID,
		Title:     "vintage lamp",
		Active:    true,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}
}

func TestReportUC_Submit(t *testing.T) {
	uc, reports, _, listings, _ := newReportUCFixture()
	ctx := context.Background()
	seedListing(t, listings, "listing-1", "seller-1")

	r, err := uc.Submit(ctx, model.ReportListing, "listing-1", "counterfeit goods", "203.0.113.9")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if r.ID == "" {
		t.Fatal("report id not assigned")
	}
	if r.FromIP != "203.0.113.9" {
		t.Fatalf("from ip not recorded: %q", r.FromIP)
	}
	if r.Message == nil || *r.Message != "counterfeit goods" {
		t.Fatal("message not recorded")
	}
	if reports.count() != 1 {
		t.Fatalf("expected 1 stored report, got %d", reports.count())
	}
}

func TestReportUC_Validation(t *testing.T) {
	uc, reports, profiles, _, _ := newReportUCFixture()
	ctx := context.Background()

	if _, err := uc.Submit(ctx, model.ReportListing, "", "", "ip"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("empty target: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := uc.Submit(ctx, model.ReportType("bogus"), "x", "", "ip"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("bad type: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := uc.Submit(ctx, model.ReportListing, "no-such-listing", "", "ip"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown listing: expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Submit(ctx, model.ReportAdmin, "no-such-admin", "", "ip"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown admin: expected ErrNotFound, got %v", err)
	}

	// A seller profile is not a valid admin target.
	seller, err := model.NewProfile(model.RoleSeller, "")
	if err != nil {
		t.Fatalf("new profile: %v", err)
	}
	if err := profiles.Save(ctx, repository.NoTX, seller); err != nil {
		t.Fatalf("seed seller: %v", err)
	}
	if _, err := uc.Submit(ctx, model.ReportAdmin, seller.ID, "", "ip"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("seller target: expected ErrNotFound, got %v", err)
	}

	if reports.count() != 0 {
		t.Fatalf("rejected submissions must not be stored, got %d", reports.count())
	}
}

func TestReportUC_SubmitAgainstAdmin(t *testing.T) {
	uc, reports, profiles, _, _ := newReportUCFixture()
	ctx := context.Background()

	admin, err := model.NewProfile(model.RoleAdmin, "")
	if err != nil {
		t.Fatalf("new profile: %v", err)
	}
	if err := profiles.Save(ctx, repository.NoTX, admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	if _, err := uc.Submit(ctx, model.ReportAdmin, admin.ID, "", "ip"); err != nil {
		t.Fatalf("submit against admin: %v", err)
	}
	if reports.count() != 1 {
		t.Fatalf("expected 1 stored report, got %d", reports.count())
	}
}

func TestReportUC_RateLimit(t *testing.T) {
	uc, reports, _, listings, limiter := newReportUCFixture()
	ctx := context.Background()
	seedListing(t, listings, "listing-1", "seller-1")

	const ip = "198.51.100.7"
	for i := 0; i < 5; i++ {
		if _, err := uc.Submit(ctx, model.ReportListing, "listing-1", "", ip); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	// Sixth within the window is blocked before touching the store.
	if _, err := uc.Submit(ctx, model.ReportListing, "listing-1", "", ip); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if reports.count() != 5 {
		t.Fatalf("blocked submission reached the store: %d reports", reports.count())
	}

	// Another client address has its own counter.
	if _, err := uc.Submit(ctx, model.ReportListing, "listing-1", "", "192.0.2.44"); err != nil {
		t.Fatalf("other ip: %v", err)
	}

	// Once the window rolls over the original address may submit again.
	limiter.resetWindow(ReportRateKey(ip))
	if _, err := uc.Submit(ctx, model.ReportListing, "listing-1", "", ip); err != nil {
		t.Fatalf("after window reset: %v", err)
	}
}

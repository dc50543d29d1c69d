package model

import "time"

// ReportType identifies what kind of entity a report is about.
type ReportType string

const (
	ReportAdmin   ReportType = "admin"
	ReportListing ReportType = "listing"
)

// Report is an abuse report submitted anonymously against an admin
// profile or a listing. The originating IP is kept for moderation.
type Report struct {
	ID        string
	Type      ReportType
	TargetID  string
	Message   *string // Pointer to allow for NULL
	FromIP    string
	CreatedAt time.Time
}

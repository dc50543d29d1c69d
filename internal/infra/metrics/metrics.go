package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	codesIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "seller_codes_issued_total",
			Help: "Count of seller codes issued by admins.",
		},
	)

	codeClaims = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seller_code_claims_total",
			Help: "Claim attempts by result (first_claim/resume/invalid_format/not_found/revoked/error).",
		},
		[]string{"result"},
	)

	codesRevoked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "seller_codes_revoked_total",
			Help: "Count of seller codes revoked.",
		},
	)

	reportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_total",
			Help: "Abuse reports by target type.",
		},
		[]string{"type"},
	)

	rateLimitBlocks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_blocks_total",
			Help: "Requests rejected by the fixed-window rate limiter, per action.",
		},
		[]string{"action"},
	)

	uploadsSigned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "image_uploads_signed_total",
			Help: "Count of signed image-upload URLs handed out.",
		},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			codesIssued, codeClaims, codesRevoked,
			reportsTotal, rateLimitBlocks, uploadsSigned,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncCodeIssued()  { codesIssued.Inc() }
func IncCodeRevoked() { codesRevoked.Inc() }

func IncClaim(result string) {
	codeClaims.WithLabelValues(norm(result)).Inc()
}

func IncReport(targetType string) {
	reportsTotal.WithLabelValues(norm(targetType)).Inc()
}

func IncRateLimitBlock(action string) {
	rateLimitBlocks.WithLabelValues(norm(action)).Inc()
}

func IncUploadSigned() { uploadsSigned.Inc() }

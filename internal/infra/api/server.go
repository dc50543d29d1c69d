package api

import (
	"encoding/json"
	"net/http"
	"time"

	"seller-marketplace/internal/domain/ports/adapter"
	"seller-marketplace/internal/infra/session"
	"seller-marketplace/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RateLimits carries the fixed-window settings for the anonymous
// endpoints.
type RateLimits struct {
	ReportLimit  int
	ReportWindow time.Duration
	ClaimLimit   int
	ClaimWindow  time.Duration
}

// Server wires the HTTP surface to the use cases.
type Server struct {
	codes       usecase.SellerCodeUseCase
	reports     usecase.ReportUseCase
	listings    usecase.ListingUseCase
	media       usecase.MediaUseCase
	sessions    *session.Issuer
	limiter     adapter.RateLimiter
	limits      RateLimits
	adminAPIKey string
	log         *zerolog.Logger
}

func NewServer(
	codes usecase.SellerCodeUseCase,
	reports usecase.ReportUseCase,
	listings usecase.ListingUseCase,
	media usecase.MediaUseCase,
	sessions *session.Issuer,
	limiter adapter.RateLimiter,
	limits RateLimits,
	adminAPIKey string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		codes:       codes,
		reports:     reports,
		listings:    listings,
		media:       media,
		sessions:    sessions,
		limiter:     limiter,
		limits:      limits,
		adminAPIKey: adminAPIKey,
		log:         logger,
	}
}

// Router assembles the chi router with the shared middleware chain.
func (s *Server) Router(requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log), Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login-with-code", s.handleLoginWithCode)
		r.Post("/reports", s.handleSubmitReport)
		r.Get("/helpers/whatsapp-link", s.handleWhatsAppLink)
		r.Get("/listings", s.handleBrowseListings)
		r.Get("/listings/{id}", s.handleGetListing)
		r.Get("/sellers/{sellerID}/listings", s.handleSellerListings)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSeller)
			r.Post("/images/signed-url", s.handleSignedUploadURL)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", s.handleAdminLogin)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Post("/seller-codes", s.handleIssueCode)
				r.Get("/seller-codes", s.handleListCodes)
				r.Post("/seller-codes/{id}/revoke", s.handleRevokeCode)
				r.Get("/reports", s.handleListReports)
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

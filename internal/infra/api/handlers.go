package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"seller-marketplace/internal/domain"
	"seller-marketplace/internal/domain/model"
	"seller-marketplace/internal/infra/logging"
	"seller-marketplace/internal/infra/metrics"
	"seller-marketplace/internal/usecase"

	"github.com/go-chi/chi/v5"
)

// ---- DTOs ----

type profileJSON struct {
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name,omitempty"`
	WhatsApp    *string   `json:"whatsapp,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProfileJSON(p *model.Profile) profileJSON {
	return profileJSON{
		ID:          p.ID,
		Role:        string(p.Role),
		DisplayName: p.DisplayName,
		WhatsApp:    p.WhatsApp,
		CreatedAt:   p.CreatedAt,
	}
}

type sellerCodeJSON struct {
	ID                 string     `json:"id"`
	Status             string     `json:"status"`
	IssuedToProfileID  *string    `json:"issued_to_profile_id,omitempty"`
	ClaimedByProfileID *string    `json:"claimed_by_profile_id,omitempty"`
	ClaimedAt          *time.Time `json:"claimed_at,omitempty"`
	RevokedAt          *time.Time `json:"revoked_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// toSellerCodeJSON deliberately omits the code hash: nothing outside the
// registry ever needs it.
func toSellerCodeJSON(c *model.SellerCode) sellerCodeJSON {
	return sellerCodeJSON{
		ID:                 c.ID,
		Status:             string(c.Status),
		IssuedToProfileID:  c.IssuedToProfileID,
		ClaimedByProfileID: c.ClaimedByProfileID,
		ClaimedAt:          c.ClaimedAt,
		RevokedAt:          c.RevokedAt,
		CreatedAt:          c.CreatedAt,
	}
}

type listingJSON struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	ImageURLs   []string  `json:"image_urls,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toListingJSON(l *model.Listing) listingJSON {
	return listingJSON{
		ID:          l.ID,
		SellerID:    l.SellerID,
		Title:       l.Title,
		Description: l.Description,
		PriceCents:  l.PriceCents,
		Currency:    l.Currency,
		ImageURLs:   l.ImageURLs,
		CreatedAt:   l.CreatedAt,
	}
}

func pageParams(r *http.Request) (offset, limit int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 50 // Default page size
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// ---- Admin: sessions ----

type adminLoginRequest struct {
	APIKey    string `json:"api_key"`
	ProfileID string `json:"profile_id"`
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if s.adminAPIKey == "" || req.APIKey != s.adminAPIKey {
		writeError(w, http.StatusForbidden, "Admin access required")
		return
	}
	token, err := s.sessions.MintAdmin(req.ProfileID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ---- Admin: seller codes ----

func (s *Server) handleIssueCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	plain, code, err := s.codes.Issue(ctx, CallerProfileID(ctx))
	if err != nil {
		logging.With(ctx, s.log).Error().Err(err).Msg("issue seller code")
		writeError(w, http.StatusInternalServerError, "Failed to create seller code")
		return
	}

	// The plaintext appears in this response and nowhere else, ever.
	writeJSON(w, http.StatusOK, struct {
		CodePlain string `json:"codePlain"`
		ID        string `json:"id"`
		Status    string `json:"status"`
	}{
		CodePlain: plain,
		ID:        code.ID,
		Status:    string(code.Status),
	})
}

func (s *Server) handleListCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	offset, limit := pageParams(r)

	codes, total, err := s.codes.List(ctx, offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list seller codes")
		return
	}

	data := make([]sellerCodeJSON, 0, len(codes))
	for _, c := range codes {
		data = append(data, toSellerCodeJSON(c))
	}
	writeJSON(w, http.StatusOK, struct {
		Data   []sellerCodeJSON `json:"data"`
		Total  int              `json:"total"`
		Limit  int              `json:"limit"`
		Offset int              `json:"offset"`
	}{Data: data, Total: total, Limit: limit, Offset: offset})
}

func (s *Server) handleRevokeCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Code ID is required")
		return
	}

	code, err := s.codes.Revoke(ctx, id, CallerProfileID(ctx))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Seller code not found")
			return
		}
		logging.With(ctx, s.log).Error().Err(err).Str("code_id", id).Msg("revoke seller code")
		writeError(w, http.StatusInternalServerError, "Failed to revoke seller code")
		return
	}
	writeJSON(w, http.StatusOK, toSellerCodeJSON(code))
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	offset, limit := pageParams(r)

	reports, err := s.reports.ListRecent(ctx, offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Report `json:"data"`
	}{Data: reports})
}

// ---- Auth: claim / login ----

type loginRequest struct {
	Code     string `json:"code"`
	WhatsApp string `json:"whatsapp"`
}

func (s *Server) handleLoginWithCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logging.With(ctx, s.log)

	ip := clientIP(r)
	allowed, err := s.limiter.Allow(ctx, "rate_limit:claim:"+ip, s.limits.ClaimLimit, s.limits.ClaimWindow)
	if err != nil {
		l.Error().Err(err).Msg("claim rate limiter")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !allowed {
		metrics.IncRateLimitBlock("claim")
		writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.codes.ClaimOrResume(ctx, req.Code, req.WhatsApp)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCodeFormat):
			writeError(w, http.StatusBadRequest, "Invalid seller code format")
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrCodeRevoked):
			// One client-facing message for both, to resist enumeration.
			// The distinction is preserved server-side for moderation.
			l.Warn().Bool("revoked", errors.Is(err, domain.ErrCodeRevoked)).Str("client_ip", ip).Msg("seller code rejected")
			writeError(w, http.StatusForbidden, "Invalid seller code")
		default:
			l.Error().Err(err).Msg("claim seller code")
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		Profile    profileJSON `json:"profile"`
		SessionURL string      `json:"session_url"`
		IsNewUser  bool        `json:"is_new_user"`
	}{
		User: struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		}{
			ID:    result.Profile.ID,
			Email: result.Session.Handle,
			Role:  string(result.Profile.Role),
		},
		Profile:    toProfileJSON(result.Profile),
		SessionURL: result.Session.URL,
		IsNewUser:  result.IsFirstClaim,
	})
}

// ---- Reports ----

type reportRequest struct {
	Type     string `json:"type"`
	TargetID string `json:"targetId"`
	Message  string `json:"message"`
}

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := s.reports.Submit(ctx, model.ReportType(req.Type), req.TargetID, req.Message, clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "Valid type and targetId are required")
		case errors.Is(err, domain.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Report target not found")
		default:
			logging.With(ctx, s.log).Error().Err(err).Msg("submit report")
			writeError(w, http.StatusInternalServerError, "Failed to submit report")
		}
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success  bool   `json:"success"`
		ReportID string `json:"reportId"`
		Message  string `json:"message"`
	}{Success: true, ReportID: report.ID, Message: "Report submitted successfully"})
}

// ---- Helpers ----

func (s *Server) handleWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	text := r.URL.Query().Get("text")

	if phone == "" {
		writeError(w, http.StatusBadRequest, "Phone number is required")
		return
	}
	link, normalized, err := usecase.BuildWhatsAppLink(phone, text)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		URL   string `json:"url"`
		Phone string `json:"phone"`
		Text  string `json:"text"`
	}{URL: link, Phone: normalized, Text: text})
}

// ---- Listings ----

func (s *Server) handleBrowseListings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	offset, limit := pageParams(r)

	listings, err := s.listings.Browse(ctx, offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list listings")
		return
	}
	data := make([]listingJSON, 0, len(listings))
	for _, l := range listings {
		data = append(data, toListingJSON(l))
	}
	writeJSON(w, http.StatusOK, struct {
		Data   []listingJSON `json:"data"`
		Limit  int           `json:"limit"`
		Offset int           `json:"offset"`
	}{Data: data, Limit: limit, Offset: offset})
}

func (s *Server) handleSellerListings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sellerID := chi.URLParam(r, "sellerID")

	listings, err := s.listings.BySeller(ctx, sellerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list listings")
		return
	}
	data := make([]listingJSON, 0, len(listings))
	for _, l := range listings {
		data = append(data, toListingJSON(l))
	}
	writeJSON(w, http.StatusOK, struct {
		Data []listingJSON `json:"data"`
	}{Data: data})
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	listing, err := s.listings.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Listing not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get listing")
		return
	}
	writeJSON(w, http.StatusOK, toListingJSON(listing))
}

// ---- Images ----

type signedURLRequest struct {
	ListingID string `json:"listingId"`
	Filename  string `json:"filename"`
}

func (s *Server) handleSignedUploadURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req signedURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ListingID == "" || req.Filename == "" {
		writeError(w, http.StatusBadRequest, "listingId and filename are required")
		return
	}

	upload, err := s.media.SignedUpload(ctx, CallerProfileID(ctx), req.ListingID, req.Filename)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "Listing not found or access denied")
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "listingId and filename are required")
		default:
			logging.With(ctx, s.log).Error().Err(err).Msg("create signed upload url")
			writeError(w, http.StatusInternalServerError, "Failed to create upload URL")
		}
		return
	}

	writeJSON(w, http.StatusOK, struct {
		UploadURL string `json:"uploadUrl"`
		PublicURL string `json:"publicUrl"`
		FilePath  string `json:"filePath"`
		Token     string `json:"token"`
	}{UploadURL: upload.UploadURL, PublicURL: upload.PublicURL, FilePath: upload.Path, Token: upload.Token})
}

package api

import (
	"context"
	"net"
	"net/http"
	"strings"

	"seller-marketplace/internal/domain/model"
	"seller-marketplace/internal/infra/logging"
)

type ctxKey string

const (
	ctxProfileID ctxKey = "profile_id"
	ctxRole      ctxKey = "role"
)

// CallerProfileID returns the authenticated profile ID, if any.
func CallerProfileID(ctx context.Context) string {
	if v := ctx.Value(ctxProfileID); v != nil {
		return v.(string)
	}
	return ""
}

func bearerToken(r *http.Request) string {
	hdr := r.Header.Get("Authorization")
	if hdr == "" {
		return ""
	}
	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAdmin guards the operator API. It accepts either the static
// admin API key or a session token carrying an admin role.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerToken(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		if s.adminAPIKey != "" && tok == s.adminAPIKey {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := s.sessions.Parse(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		role := model.Role(claims.Role)
		if role != model.RoleAdmin && role != model.RoleSuperAdmin {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}

		ctx := context.WithValue(r.Context(), ctxProfileID, claims.ProfileID)
		ctx = context.WithValue(ctx, ctxRole, claims.Role)
		ctx = logging.WithProfileID(ctx, claims.ProfileID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSeller guards endpoints that act on behalf of a seller profile.
func (s *Server) requireSeller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerToken(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}
		claims, err := s.sessions.Parse(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if model.Role(claims.Role) != model.RoleSeller {
			writeError(w, http.StatusForbidden, "Seller access required")
			return
		}

		ctx := context.WithValue(r.Context(), ctxProfileID, claims.ProfileID)
		ctx = context.WithValue(ctx, ctxRole, claims.Role)
		ctx = logging.WithProfileID(ctx, claims.ProfileID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP resolves the originating address for rate limiting and report
// attribution, trusting proxy headers first.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

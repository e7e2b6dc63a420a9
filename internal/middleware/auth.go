package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/session"
)

const (
	// SessionCookieName is the cookie carrying the opaque session token.
	SessionCookieName = "carsi_session"

	// UserContextKey is the context key for the authenticated user
	UserContextKey contextKey = "user"

	// SessionTokenContextKey is the context key for the session token
	SessionTokenContextKey contextKey = "session_token"
)

// WithSession ensures every request carries a session token, issuing a new
// cookie for first-time visitors, and resolves the authenticated user when
// the session has one. It never rejects a request; authentication is
// enforced by RequireAuth.
func WithSession(sessions session.Store, users domain.UserStore, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				token = cookie.Value
			} else {
				token = session.NewToken()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(session.DefaultTTL),
				})
			}

			ctx := context.WithValue(r.Context(), SessionTokenContextKey, token)

			sess, err := sessions.Get(ctx, token)
			if err == nil && sess.UserID != 0 {
				user, err := users.GetUser(ctx, sess.UserID)
				if err == nil && user.IsActive {
					ctx = context.WithValue(ctx, UserContextKey, user)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionToken retrieves the session token from the context.
func GetSessionToken(ctx context.Context) string {
	if token, ok := ctx.Value(SessionTokenContextKey).(string); ok {
		return token
	}
	return ""
}

// GetUser retrieves the authenticated user from the context, or nil.
func GetUser(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(UserContextKey).(*domain.User); ok {
		return user
	}
	return nil
}

// RequireAuth rejects unauthenticated requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r.Context()) == nil {
			respondError(w, domain.Unauthorized("middleware.require_auth", "Authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects non-admin requests: 401 when anonymous, 403 otherwise.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		if user == nil {
			respondError(w, domain.Unauthorized("middleware.require_admin", "Authentication required"))
			return
		}
		if !user.IsAdmin {
			respondError(w, domain.Forbidden("middleware.require_admin", "Admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// respondError writes a JSON error envelope. It mirrors the handler package's
// response shape without importing it (handler imports middleware).
func respondError(w http.ResponseWriter, err error) {
	code := domain.ErrorCode(err)
	status := http.StatusInternalServerError
	switch code {
	case domain.EUNAUTHORIZED:
		status = http.StatusUnauthorized
	case domain.EFORBIDDEN:
		status = http.StatusForbidden
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error": map[string]string{
			"code":    code,
			"message": domain.ErrorMessage(err),
		},
	})
}

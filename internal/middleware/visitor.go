package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ketenci/carsi/internal/domain"
)

// TrackVisitors records one row per request for the admin traffic dashboard.
// Recording happens off the request path so a slow insert never delays the
// response.
func TrackVisitors(visitors domain.VisitorStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			if r.Method != http.MethodGet || strings.HasPrefix(r.URL.Path, "/metrics") {
				return
			}

			visit := domain.Visitor{
				IP:        ClientIP(r),
				UserAgent: r.UserAgent(),
			}
			if user := GetUser(r.Context()); user != nil {
				visit.IsAuthenticated = true
				visit.IsAdmin = user.IsAdmin
				visit.UserID = user.ID
			}

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := visitors.RecordVisit(ctx, visit); err != nil {
					logger.Error("failed to record visit", slog.Any("error", err))
				}
			}()
		})
	}
}

// ClientIP extracts the real client IP, preferring proxy headers over
// RemoteAddr. Header values are only trustworthy behind a proxy that sets
// them.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i != -1 {
			return strings.TrimSpace(fwd[:i])
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

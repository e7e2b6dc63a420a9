// Package routes assembles the HTTP router from handlers and middleware.
package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/middleware"
	"github.com/ketenci/carsi/internal/service"
	"github.com/ketenci/carsi/internal/session"
)

// Deps carries everything the routers need.
type Deps struct {
	Logger *slog.Logger

	Sessions      session.Store
	Users         domain.UserStore
	Products      domain.ProductStore
	Orders        domain.OrderStore
	Notifications domain.NotificationStore
	Visitors      domain.VisitorStore
	News          domain.NewsStore

	Cart     domain.CartService
	Checkout domain.CheckoutService
	Order    domain.OrderService
	Reviews  domain.ReviewService
	Accounts *service.AccountService
	Notifier domain.Notifier

	Metrics       *middleware.Metrics
	SecureCookies bool
}

// NewRouter builds the full application router.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(middleware.WithSession(deps.Sessions, deps.Users, deps.SecureCookies))
	r.Use(middleware.WithRequestLogger(deps.Logger))
	r.Use(middleware.TrackVisitors(deps.Visitors, deps.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	RegisterStorefrontRoutes(r, deps)
	RegisterAdminRoutes(r, deps)

	return r
}

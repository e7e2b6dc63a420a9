package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/ketenci/carsi/internal/handler/admin"
	"github.com/ketenci/carsi/internal/middleware"
)

// RegisterAdminRoutes mounts the back-office API under /admin.
func RegisterAdminRoutes(r chi.Router, deps Deps) {
	dashboard := admin.NewDashboardHandler(deps.Orders, deps.Notifications, deps.Visitors)
	products := admin.NewProductHandler(deps.Products, deps.Notifier)
	orders := admin.NewOrderHandler(deps.Orders, deps.Order)
	users := admin.NewUserHandler(deps.Accounts)
	news := admin.NewNewsHandler(deps.News, deps.Notifier)
	notifications := admin.NewNotificationHandler(deps.Notifications)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Get("/dashboard", dashboard.Overview)
		r.Get("/visitors", dashboard.Visits)

		r.Post("/products", products.Create)
		r.Put("/products/{productID}", products.Update)
		r.Delete("/products/{productID}", products.Delete)

		r.Post("/categories", products.CreateCategory)
		r.Put("/categories/{categoryID}", products.UpdateCategory)
		r.Delete("/categories/{categoryID}", products.DeleteCategory)

		r.Get("/orders", orders.List)
		r.Get("/orders/{orderID}", orders.Get)
		r.Put("/orders/{orderID}/status", orders.UpdateStatus)

		r.Get("/users", users.List)
		r.Get("/users/{userID}", users.Get)
		r.Put("/users/{userID}", users.Update)
		r.Delete("/users/{userID}", users.Delete)

		r.Get("/news", news.List)
		r.Post("/news", news.Create)
		r.Put("/news/{newsID}", news.Update)
		r.Delete("/news/{newsID}", news.Delete)

		r.Get("/notifications", notifications.List)
		r.Put("/notifications/read", notifications.MarkAllRead)
		r.Put("/notifications/{notificationID}/read", notifications.MarkRead)
		r.Delete("/notifications", notifications.Clear)
	})
}

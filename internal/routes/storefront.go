package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/ketenci/carsi/internal/handler/storefront"
	"github.com/ketenci/carsi/internal/middleware"
)

// RegisterStorefrontRoutes mounts the buyer-facing API.
func RegisterStorefrontRoutes(r chi.Router, deps Deps) {
	products := storefront.NewProductHandler(deps.Products, deps.Reviews)
	reviews := storefront.NewReviewHandler(deps.Reviews)
	cart := storefront.NewCartHandler(deps.Cart)
	checkout := storefront.NewCheckoutHandler(deps.Checkout, deps.Order)
	orders := storefront.NewOrderHandler(deps.Order)
	auth := storefront.NewAuthHandler(deps.Accounts, deps.Sessions)
	account := storefront.NewAccountHandler(deps.Accounts)
	news := storefront.NewNewsHandler(deps.News)

	// Public catalog and content
	r.Get("/products", products.List)
	r.Get("/products/{productID}", products.Get)
	r.Get("/products/{productID}/reviews", reviews.List)
	r.Get("/categories", products.ListCategories)
	r.Get("/news", news.List)
	r.Get("/news/{newsID}", news.Get)

	// Session cart: anonymous visitors shop too
	r.Get("/cart", cart.View)
	r.Post("/cart/items", cart.AddItem)
	r.Put("/cart/items/{productID}", cart.UpdateItem)
	r.Delete("/cart/items/{productID}", cart.RemoveItem)
	r.Delete("/cart", cart.Clear)

	// Auth
	r.Post("/signup", auth.Signup)
	r.Post("/login", auth.Login)
	r.Post("/logout", auth.Logout)

	// Authenticated storefront
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/me", auth.Me)

		r.Post("/checkout", checkout.PlaceOrder)
		r.Get("/orders", orders.List)
		r.Get("/orders/{orderID}", orders.Get)
		r.Get("/orders/{orderID}/confirmation", checkout.Confirmation)

		r.Post("/products/{productID}/reviews", reviews.Submit)

		r.Route("/account", func(r chi.Router) {
			r.Get("/addresses", account.ListAddresses)
			r.Post("/addresses", account.AddAddress)
			r.Delete("/addresses/{addressID}", account.DeleteAddress)
			r.Put("/addresses/{addressID}/default", account.SetDefaultAddress)

			r.Get("/cards", account.ListCards)
			r.Post("/cards", account.AddCard)
			r.Delete("/cards/{cardID}", account.DeleteCard)
			r.Put("/cards/{cardID}/default", account.SetDefaultCard)
		})
	})
}

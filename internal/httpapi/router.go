package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Mahmoud-ctrl/GymMang/internal/auth"
	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Cart        *CartHandler
	SessionCart *SessionCartHandler
	Catalog     *CatalogHandler
	Sessions    *SessionsHandler
	Auth        *AuthHandler
	Checkout    *CheckoutHandler
}

// NewRouter builds the full route tree. Shop and availability listings are
// public; everything cart- or account-shaped sits behind the auth middleware.
func NewRouter(h Handlers, tokens *auth.TokenIssuer, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Auth.Signup)
			r.Post("/login", h.Auth.Login)
		})

		r.Route("/shop", func(r chi.Router) {
			r.Get("/products", h.Catalog.ListProducts)
			r.Get("/products/{product_id}", h.Catalog.GetProduct)
			r.Get("/categories", h.Catalog.ListProductCategories)
			r.Get("/equipments", h.Catalog.ListEquipments)
			r.Get("/equipments/{equipment_id}", h.Catalog.GetEquipment)
			r.Get("/equipment-categories", h.Catalog.ListEquipmentCategories)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/class-types", h.Sessions.ListClassTypes)
			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(tokens))
				r.Use(RequireRole(domain.RoleTrainer))
				r.Post("/", h.Sessions.CreateSession)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokens))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.GetCart)
				r.Post("/items", h.Cart.AddItem)
				r.Put("/items/{item_id}", h.Cart.UpdateQuantity)
				r.Delete("/items/{item_id}", h.Cart.RemoveItem)
			})

			r.Route("/session-cart", func(r chi.Router) {
				r.Get("/", h.SessionCart.GetCart)
				r.Post("/items", h.SessionCart.AddSession)
				r.Get("/available", h.SessionCart.Available)
				r.Delete("/items/{item_id}", h.SessionCart.RemoveItem)
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", h.Sessions.ListBookings)
				r.Delete("/{booking_id}", h.Sessions.CancelBooking)
			})

			r.Post("/checkout", h.Checkout.InitiateCheckout)
		})
	})

	return otelhttp.NewHandler(r, "gym-api")
}

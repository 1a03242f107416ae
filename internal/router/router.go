package router

import (
	"net/http"

	"rentlify/internal/handler"
	"rentlify/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Session  *handler.SessionHandler
	Checkout *handler.CheckoutHandler
}

// Options configures cross-cutting router concerns.
type Options struct {
	AllowedOrigins []string
	Registry       *prometheus.Registry
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	metrics := middleware.NewMetrics(opts.Registry)

	r := chi.NewRouter()

	// Recovery -> RequestID -> RealIP -> Logging -> Metrics -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(metrics.Handler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.SessionHeader},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", h.Session.Create)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(logger))

			r.Get("/products", h.Product.GetAll)
			r.Get("/products/{id}", h.Product.GetByID)

			r.Post("/sessions/login", h.Session.Login)
			r.Delete("/sessions", h.Session.Logout)
			r.Get("/sessions/contact", h.Session.Contact)

			r.Get("/cart", h.Cart.Get)
			r.Delete("/cart", h.Cart.Clear)
			r.Post("/cart/items", h.Cart.AddItem)
			r.Patch("/cart/items/{id}", h.Cart.UpdateItem)
			r.Delete("/cart/items/{id}", h.Cart.RemoveItem)

			r.Get("/checkout/summary", h.Cart.CheckoutSummary)
			r.Post("/checkout", h.Checkout.Submit)
			r.Get("/orders/{id}/confirmation", h.Checkout.Confirmation)
		})
	})

	return r
}

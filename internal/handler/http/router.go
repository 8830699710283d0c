package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tindahan/storefront/internal/cart"
	"github.com/tindahan/storefront/internal/catalog"
	"github.com/tindahan/storefront/internal/checkout"
	"github.com/tindahan/storefront/pkg/health"
	"github.com/tindahan/storefront/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	engine *cart.Engine,
	cat *catalog.Catalog,
	checkoutService *checkout.Service,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS)
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(cat, logger)
	cartHandler := NewCartHandler(engine, cat, logger)
	checkoutHandler := NewCheckoutHandler(checkoutService, logger)

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", catalogHandler.ListProducts)
		r.Get("/{id}", catalogHandler.GetProduct)
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)
		r.Post("/select-all", cartHandler.SelectAll)
		r.Post("/deselect-all", cartHandler.DeselectAll)

		r.Route("/items", func(r chi.Router) {
			r.Post("/", cartHandler.AddItem)
			r.Put("/{productId}", cartHandler.SetQuantity)
			r.Delete("/{productId}", cartHandler.RemoveItem)
			r.Post("/{productId}/increment", cartHandler.Increment)
			r.Post("/{productId}/decrement", cartHandler.Decrement)
			r.Post("/{productId}/toggle-select", cartHandler.ToggleSelect)
		})
	})

	r.With(ContentTypeJSON).Post("/api/v1/checkout", checkoutHandler.PlaceOrder)
	r.Get("/api/v1/orders", checkoutHandler.ListOrders)
	r.Get("/api/v1/orders/{id}", checkoutHandler.GetOrder)

	return r
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tindahan/storefront/internal/catalog"
	"github.com/tindahan/storefront/internal/domain"
	"github.com/tindahan/storefront/pkg/money"
)

// CatalogHandler handles HTTP requests for the product endpoints.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(cat *catalog.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: cat,
		logger:  logger,
	}
}

// ProductView is a product in API responses with the display price attached.
type ProductView struct {
	domain.Product
	PriceFormatted string `json:"price_formatted"`
}

func productViews(products []domain.Product) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, ProductView{Product: p, PriceFormatted: money.Format(p.Price)})
	}
	return out
}

// ListProducts handles GET /api/v1/products. A q query parameter filters by
// product name.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var products []domain.Product
	if q := r.URL.Query().Get("q"); q != "" {
		products = h.catalog.Search(q)
	} else {
		products = h.catalog.List()
	}

	writeJSON(w, http.StatusOK, response{Data: productViews(products)})
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: ProductView{
		Product:        product,
		PriceFormatted: money.Format(product.Price),
	}})
}

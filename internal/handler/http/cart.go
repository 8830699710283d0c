package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tindahan/storefront/internal/cart"
	"github.com/tindahan/storefront/internal/catalog"
	"github.com/tindahan/storefront/internal/domain"
	"github.com/tindahan/storefront/pkg/money"
	"github.com/tindahan/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for the cart endpoints.
type CartHandler struct {
	engine  *cart.Engine
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(engine *cart.Engine, cat *catalog.Catalog, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		engine:  engine,
		catalog: cat,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product to the cart.
// Quantity defaults to 1 when omitted.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=999"`
}

// SetQuantityRequest is the JSON request body for setting a line quantity.
// Zero and negative values remove the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"lte=999"`
}

// --- View DTOs ---

// CartItemView is a single cart line in API responses.
type CartItemView struct {
	Product            domain.Product `json:"product"`
	Quantity           int            `json:"quantity"`
	AddedAt            time.Time      `json:"added_at"`
	IsSelected         bool           `json:"is_selected"`
	LineTotal          int64          `json:"line_total"`
	LineTotalFormatted string         `json:"line_total_formatted"`
}

// CartView is the full cart in API responses, including the derived totals
// the storefront UI renders.
type CartView struct {
	CartID                 string         `json:"cart_id"`
	Hydrated               bool           `json:"hydrated"`
	Items                  []CartItemView `json:"items"`
	TotalItems             int            `json:"total_items"`
	TotalPrice             int64          `json:"total_price"`
	TotalPriceFormatted    string         `json:"total_price_formatted"`
	SelectedCount          int            `json:"selected_count"`
	SelectedTotal          int64          `json:"selected_total"`
	SelectedTotalFormatted string         `json:"selected_total_formatted"`
}

func (h *CartHandler) cartView() CartView {
	lines := h.engine.Items()
	items := make([]CartItemView, 0, len(lines))
	for _, line := range lines {
		total := line.LineTotal()
		items = append(items, CartItemView{
			Product:            line.Product,
			Quantity:           line.Quantity,
			AddedAt:            line.AddedAt,
			IsSelected:         line.IsSelected,
			LineTotal:          total,
			LineTotalFormatted: money.Format(total),
		})
	}

	totalPrice := h.engine.TotalPrice()
	selectedTotal := h.engine.SelectedTotalPrice()

	return CartView{
		CartID:                 h.engine.ID(),
		Hydrated:               h.engine.Hydrated(),
		Items:                  items,
		TotalItems:             h.engine.TotalItems(),
		TotalPrice:             totalPrice,
		TotalPriceFormatted:    money.Format(totalPrice),
		SelectedCount:          h.engine.SelectedCount(),
		SelectedTotal:          selectedTotal,
		SelectedTotalFormatted: money.Format(selectedTotal),
	}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: h.cartView()})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearCart()
	writeJSON(w, http.StatusOK, response{Data: h.cartView()})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	product, err := h.catalog.GetByID(req.ProductID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	h.engine.AddToCart(product, qty)

	writeJSON(w, http.StatusOK, response{Data: h.cartView()})
}

// SetQuantity handles PUT /api/v1/cart/items/{productId}
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	productID := chi.URLParam(r, "productId")

	var req SetQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	h.engine.SetQuantity(productID, req.Quantity)
	writeJSON(w, http.StatusOK, response{Data: h.cartView()})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.engine.RemoveFromCart(chi.URLParam(r, "productId"))
	writeJSON(w, http.StatusOK, response{Data: h.cartView()})
}

// Increment handles POST /api/v1/cart/items/{productId}/increment
func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.engine.Increment(chi.URLParam(r, "productId"))
	writeJSON(w, http.StatusOK, response{Data: h.cartView()})
}

// Decrement handles POST /api/v1/cart/items/{productId}/decrement
func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.engine.Decrement(chi.URLParam(r, "productId"))
	writeJSON(w, http.StatusOK, response{Data: h.cartView()})
}

// ToggleSelect handles POST /api/v1/cart/items/{productId}/toggle-select
func (h *CartHandler) ToggleSelect(w http.ResponseWriter, r *http.Request) {
	h.engine.ToggleSelectItem(chi.URLParam(r, "productId"))
	writeJSON(w, http.StatusOK, response{Data: h.cartView()})
}

// SelectAll handles POST /api/v1/cart/select-all
func (h *CartHandler) SelectAll(w http.ResponseWriter, r *http.Request) {
	h.engine.SelectAllItems()
	writeJSON(w, http.StatusOK, response{Data: h.cartView()})
}

// DeselectAll handles POST /api/v1/cart/deselect-all
func (h *CartHandler) DeselectAll(w http.ResponseWriter, r *http.Request) {
	h.engine.DeselectAllItems()
	writeJSON(w, http.StatusOK, response{Data: h.cartView()})
}

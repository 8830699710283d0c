package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tindahan/storefront/internal/checkout"
	"github.com/tindahan/storefront/internal/domain"
	"github.com/tindahan/storefront/pkg/money"
)

// CheckoutHandler handles HTTP requests for checkout and order endpoints.
type CheckoutHandler struct {
	service *checkout.Service
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *checkout.Service, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// OrderView is an order in API responses with display totals attached.
type OrderView struct {
	domain.Order
	SubtotalFormatted string `json:"subtotal_formatted"`
	TotalFormatted    string `json:"total_formatted"`
}

func orderView(order domain.Order) OrderView {
	return OrderView{
		Order:             order,
		SubtotalFormatted: money.Format(order.Subtotal),
		TotalFormatted:    money.Format(order.Total),
	}
}

// PlaceOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.PlaceOrder(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: orderView(*order)})
}

// ListOrders handles GET /api/v1/orders
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, orderView(order))
	}
	writeJSON(w, http.StatusOK, response{Data: views})
}

// GetOrder handles GET /api/v1/orders/{id}
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: orderView(*order)})
}

// Package checkout turns the selected cart lines into orders.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tindahan/storefront/internal/cart"
	"github.com/tindahan/storefront/internal/domain"
	"github.com/tindahan/storefront/internal/event"
	"github.com/tindahan/storefront/internal/repository"
	apperrors "github.com/tindahan/storefront/pkg/errors"
)

// Currency is the only currency the storefront trades in.
const Currency = "PHP"

// Service places orders from the cart's current selection.
type Service struct {
	engine *cart.Engine
	orders repository.OrderRepository
	events *event.Producer
	logger *slog.Logger
}

// NewService creates a checkout service.
func NewService(engine *cart.Engine, orders repository.OrderRepository, events *event.Producer, logger *slog.Logger) *Service {
	return &Service{
		engine: engine,
		orders: orders,
		events: events,
		logger: logger,
	}
}

// PlaceOrder creates an order from the selected cart lines, then clears the
// cart. Fails when nothing is selected.
func (s *Service) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	selected := s.engine.SelectedItems()
	if len(selected) == 0 {
		return nil, apperrors.InvalidInput("no items selected for checkout")
	}

	items := make([]domain.OrderItem, 0, len(selected))
	for _, line := range selected {
		items = append(items, domain.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
		})
	}

	order := &domain.Order{
		ID:        uuid.New().String(),
		Items:     items,
		Currency:  Currency,
		CreatedAt: time.Now().UTC(),
	}
	order.Subtotal = order.CalculateSubtotal()
	order.Total = order.Subtotal

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.engine.ClearCart()

	if s.events != nil {
		if err := s.events.PublishOrderPlaced(ctx, order); err != nil {
			s.logger.WarnContext(ctx, "failed to publish order.placed event",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.Int("item_count", order.ItemCount()),
		slog.Int64("total", order.Total),
	)

	return order, nil
}

// GetOrder retrieves a single order by id.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListOrders returns all orders, most recent first.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

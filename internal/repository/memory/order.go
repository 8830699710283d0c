// Package memory provides in-memory repository implementations. Orders are
// process-local, matching the single-shopper scope of the storefront.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tindahan/storefront/internal/domain"
	apperrors "github.com/tindahan/storefront/pkg/errors"
)

// OrderRepository is a mutex-guarded in-memory order store.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

// NewOrderRepository creates an empty order store.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]domain.Order)}
}

// Create inserts a new order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = *order
	return nil
}

// GetByID retrieves an order by id.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NotFound("order", id)
	}
	return &order, nil
}

// List returns all orders, most recent first.
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, order)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

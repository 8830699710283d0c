package repository

import (
	"context"

	"github.com/tindahan/storefront/internal/domain"
)

// CartSnapshotStore persists the cart snapshot under a single well-known key.
type CartSnapshotStore interface {
	// Load retrieves the last persisted snapshot. Returns an error wrapping
	// pkg/errors.ErrNotFound when no snapshot has been written yet.
	Load(ctx context.Context) (*domain.CartSnapshot, error)

	// Save overwrites the persisted snapshot.
	Save(ctx context.Context, snap *domain.CartSnapshot) error
}

// OrderRepository stores orders placed through checkout.
type OrderRepository interface {
	// Create inserts a new order into the store.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// List returns all orders, most recent first.
	List(ctx context.Context) ([]domain.Order, error)
}

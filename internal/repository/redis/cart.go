// Package redis implements the cart snapshot store on Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tindahan/storefront/internal/domain"
	apperrors "github.com/tindahan/storefront/pkg/errors"
)

// DefaultKey is the storage key the cart snapshot lives under.
const DefaultKey = "cart-items"

// CartSnapshotStore persists the cart snapshot as a single JSON blob.
type CartSnapshotStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// Option configures the store.
type Option func(*CartSnapshotStore)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *CartSnapshotStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithTTL sets an expiry on the snapshot. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *CartSnapshotStore) {
		s.ttl = ttl
	}
}

// NewCartSnapshotStore creates a snapshot store on the given client.
func NewCartSnapshotStore(client *redis.Client, opts ...Option) *CartSnapshotStore {
	s := &CartSnapshotStore{client: client, key: DefaultKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load retrieves the persisted snapshot.
func (s *CartSnapshotStore) Load(ctx context.Context) (*domain.CartSnapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("cart snapshot", s.key)
		}
		return nil, fmt.Errorf("redis get cart snapshot: %w", err)
	}

	var snap domain.CartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal cart snapshot: %w", err)
	}
	return &snap, nil
}

// Save overwrites the persisted snapshot.
func (s *CartSnapshotStore) Save(ctx context.Context, snap *domain.CartSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart snapshot: %w", err)
	}
	return nil
}

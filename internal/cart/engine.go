package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tindahan/storefront/internal/domain"
	"github.com/tindahan/storefront/internal/event"
	"github.com/tindahan/storefront/internal/repository"
	apperrors "github.com/tindahan/storefront/pkg/errors"
)

// flushTimeout bounds the background snapshot write and event publish.
const flushTimeout = 5 * time.Second

// Engine owns the cart aggregate. All mutations run synchronously through a
// single transition function while holding the state lock, so no operation
// can observe another mid-transition. Mutations never return errors: absent
// ids are no-ops, and the persistence write is a best-effort side effect
// that runs in the background after every post-hydration change.
type Engine struct {
	mu       sync.RWMutex
	state    domain.CartState
	hydrated bool
	seq      uint64

	// flushMu serializes background writes; lastFlushed stops a slow write
	// of an older snapshot from overwriting a newer one.
	flushMu     sync.Mutex
	lastFlushed uint64

	id     string
	store  repository.CartSnapshotStore
	events *event.Producer
	logger *slog.Logger
}

// New creates an engine with empty, un-hydrated state.
func New(store repository.CartSnapshotStore, events *event.Producer, logger *slog.Logger) *Engine {
	return &Engine{
		state:  domain.NewCartState(),
		id:     uuid.New().String(),
		store:  store,
		events: events,
		logger: logger,
	}
}

// ID returns the identifier assigned to this cart instance at startup.
func (e *Engine) ID() string {
	return e.id
}

// Hydrate loads the last persisted snapshot and replaces in-memory state
// with it. Intended to run in a goroutine at startup; it runs at most once.
// A missing or malformed snapshot leaves the empty state in place. Mutations
// dispatched before Hydrate resolves are overwritten by the loaded snapshot,
// matching the storage-restore ordering the UI relied on.
func (e *Engine) Hydrate(ctx context.Context) {
	e.mu.Lock()
	if e.hydrated {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	snap, err := e.store.Load(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	// The write side effect is gated on this flag so the empty initial state
	// can never clobber a legitimate prior snapshot before load completes.
	e.hydrated = true

	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			e.logger.Debug("no persisted cart snapshot, starting empty")
		} else {
			e.logger.Warn("failed to load cart snapshot, starting empty",
				slog.String("error", err.Error()),
			)
		}
		return
	}

	apply(&e.state, hydrateCommand{state: snap.State()}, time.Now().UTC())
	e.logger.Info("cart hydrated from snapshot",
		slog.Int("lines", len(e.state.Items)),
		slog.Int("selected", len(e.state.Selected)),
	)
}

// Hydrated reports whether the startup load has been attempted.
func (e *Engine) Hydrated() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hydrated
}

// --- Mutations ---

// AddToCart upserts a line for the product. An existing line absorbs the
// quantity (merge-on-add); the line is re-marked selected and its AddedAt
// bumped either way.
func (e *Engine) AddToCart(product domain.Product, quantity int) {
	e.transition(func(*domain.CartState) (command, bool) {
		return addCommand{product: product, quantity: quantity}, true
	})
}

// RemoveFromCart deletes the line and its selection entry. No-op if absent.
func (e *Engine) RemoveFromCart(productID string) {
	e.transition(func(*domain.CartState) (command, bool) {
		return removeCommand{productID: productID}, true
	})
}

// SetQuantity replaces the line's quantity. A quantity of zero or less
// removes the line; an absent id is a no-op.
func (e *Engine) SetQuantity(productID string, quantity int) {
	e.transition(func(*domain.CartState) (command, bool) {
		return setQuantityCommand{productID: productID, quantity: quantity}, true
	})
}

// Increment adds one unit to an existing line via the merge-on-add path,
// which also re-selects the line and bumps AddedAt. No-op if absent.
func (e *Engine) Increment(productID string) {
	e.transition(func(s *domain.CartState) (command, bool) {
		line, ok := s.Items[productID]
		if !ok {
			return nil, false
		}
		return addCommand{product: line.Product, quantity: 1}, true
	})
}

// Decrement removes one unit from an existing line, deleting the line when
// the quantity would drop below one. No-op if absent.
func (e *Engine) Decrement(productID string) {
	e.transition(func(s *domain.CartState) (command, bool) {
		line, ok := s.Items[productID]
		if !ok {
			return nil, false
		}
		return setQuantityCommand{productID: productID, quantity: line.Quantity - 1}, true
	})
}

// ClearCart resets the cart to empty. Used after a successful checkout.
func (e *Engine) ClearCart() {
	e.transition(func(*domain.CartState) (command, bool) {
		return clearCommand{}, true
	})
}

// ToggleSelectItem flips the line's membership in the checkout selection.
func (e *Engine) ToggleSelectItem(productID string) {
	e.transition(func(*domain.CartState) (command, bool) {
		return toggleSelectCommand{productID: productID}, true
	})
}

// SelectAllItems marks every current line as selected.
func (e *Engine) SelectAllItems() {
	e.transition(func(*domain.CartState) (command, bool) {
		return selectAllCommand{}, true
	})
}

// DeselectAllItems empties the checkout selection.
func (e *Engine) DeselectAllItems() {
	e.transition(func(*domain.CartState) (command, bool) {
		return deselectAllCommand{}, true
	})
}

// --- Derived reads ---

// Items returns all cart lines, most recently touched first.
func (e *Engine) Items() []domain.CartLine {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Lines()
}

// SelectedItems returns the lines currently marked for checkout.
func (e *Engine) SelectedItems() []domain.CartLine {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.SelectedLines()
}

// TotalItems returns the sum of quantities across all lines.
func (e *Engine) TotalItems() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.TotalItems()
}

// TotalPrice returns the cart total in centavos.
func (e *Engine) TotalPrice() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.TotalPrice()
}

// SelectedCount returns the sum of quantities across selected lines.
func (e *Engine) SelectedCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.SelectedCount()
}

// SelectedTotalPrice returns the selection total in centavos.
func (e *Engine) SelectedTotalPrice() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.SelectedTotalPrice()
}

// IsItemSelected reports whether the line is in the checkout selection.
func (e *Engine) IsItemSelected(productID string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.IsSelected(productID)
}

// GetItemQuantity returns the line's quantity, or 0 when absent.
func (e *Engine) GetItemQuantity(productID string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Quantity(productID)
}

// IsInCart reports whether a line exists for the product.
func (e *Engine) IsInCart(productID string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Contains(productID)
}

// --- Internals ---

// transition runs one command through the state machine. The build callback
// inspects current state under the lock and may abort (no-op). After a
// post-hydration change the snapshot is flushed in the background.
func (e *Engine) transition(build func(s *domain.CartState) (command, bool)) {
	e.mu.Lock()
	cmd, ok := build(&e.state)
	if !ok {
		e.mu.Unlock()
		return
	}
	apply(&e.state, cmd, time.Now().UTC())
	e.seq++
	seq := e.seq
	snap := domain.SnapshotCart(e.state)
	hydrated := e.hydrated
	e.mu.Unlock()

	if !hydrated {
		return
	}

	_, cleared := cmd.(clearCommand)
	go e.flush(snap, cleared, seq)
}

// flush persists the snapshot and publishes the matching domain event.
// Failures are logged and swallowed: the in-memory state stays
// authoritative for the session and a crash loses at most the most
// recent mutation.
func (e *Engine) flush(snap domain.CartSnapshot, cleared bool, seq uint64) {
	e.flushMu.Lock()
	defer e.flushMu.Unlock()

	if seq < e.lastFlushed {
		return
	}
	e.lastFlushed = seq

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := e.store.Save(ctx, &snap); err != nil {
		e.logger.Warn("failed to persist cart snapshot",
			slog.String("cart_id", e.id),
			slog.String("error", err.Error()),
		)
	}

	if e.events == nil {
		return
	}

	var err error
	if cleared {
		err = e.events.PublishCartCleared(ctx, e.id)
	} else {
		err = e.events.PublishCartUpdated(ctx, e.id, snap)
	}
	if err != nil {
		e.logger.Warn("failed to publish cart event",
			slog.String("cart_id", e.id),
			slog.String("error", err.Error()),
		)
	}
}

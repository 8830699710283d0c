package cart

import (
	"fmt"
	"time"

	"github.com/tindahan/storefront/internal/domain"
)

// command is the closed set of cart state transitions. Every variant must be
// handled by apply; an unhandled variant panics there, so adding a command
// without updating the transition function fails loudly in tests.
type command interface {
	isCommand()
}

type addCommand struct {
	product  domain.Product
	quantity int
}

type removeCommand struct {
	productID string
}

type setQuantityCommand struct {
	productID string
	quantity  int
}

type clearCommand struct{}

type hydrateCommand struct {
	state domain.CartState
}

type toggleSelectCommand struct {
	productID string
}

type selectAllCommand struct{}

type deselectAllCommand struct{}

func (addCommand) isCommand()          {}
func (removeCommand) isCommand()       {}
func (setQuantityCommand) isCommand()  {}
func (clearCommand) isCommand()        {}
func (hydrateCommand) isCommand()      {}
func (toggleSelectCommand) isCommand() {}
func (selectAllCommand) isCommand()    {}
func (deselectAllCommand) isCommand()  {}

// apply executes a single command against the state. All invariants live
// here: quantities never drop to zero or below (the line is removed
// instead), lines are unique per product, and removing a line always
// removes it from the selection set in the same transition.
func apply(state *domain.CartState, cmd command, now time.Time) {
	switch c := cmd.(type) {
	case addCommand:
		// Merge-on-add: an existing line absorbs the quantity; the floor of 1
		// guards against non-positive add quantities.
		qty := c.quantity
		if existing, ok := state.Items[c.product.ID]; ok {
			qty += existing.Quantity
		}
		if qty < 1 {
			qty = 1
		}
		state.Items[c.product.ID] = domain.CartLine{
			Product:    c.product,
			Quantity:   qty,
			AddedAt:    now,
			IsSelected: true,
		}
		state.Selected[c.product.ID] = struct{}{}

	case removeCommand:
		delete(state.Items, c.productID)
		delete(state.Selected, c.productID)

	case setQuantityCommand:
		if c.quantity <= 0 {
			delete(state.Items, c.productID)
			delete(state.Selected, c.productID)
			return
		}
		existing, ok := state.Items[c.productID]
		if !ok {
			return
		}
		existing.Quantity = c.quantity
		state.Items[c.productID] = existing

	case clearCommand:
		*state = domain.NewCartState()

	case hydrateCommand:
		*state = c.state

	case toggleSelectCommand:
		// Toggling an id with no line is a no-op; it must not introduce a
		// selection entry outside the Items key space.
		line, ok := state.Items[c.productID]
		if !ok {
			return
		}
		if _, selected := state.Selected[c.productID]; selected {
			delete(state.Selected, c.productID)
			line.IsSelected = false
		} else {
			state.Selected[c.productID] = struct{}{}
			line.IsSelected = true
		}
		state.Items[c.productID] = line

	case selectAllCommand:
		for id, line := range state.Items {
			state.Selected[id] = struct{}{}
			line.IsSelected = true
			state.Items[id] = line
		}

	case deselectAllCommand:
		state.Selected = make(map[string]struct{})
		for id, line := range state.Items {
			line.IsSelected = false
			state.Items[id] = line
		}

	default:
		panic(fmt.Sprintf("cart: unhandled command %T", cmd))
	}
}

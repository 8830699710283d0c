package domain

import (
	"sort"
	"time"
)

// CartLine is one cart entry, uniquely keyed by product ID.
//
// Product is the snapshot taken at the time of the last add or merge and is
// never refreshed from the catalog afterwards, so a later catalog price
// change does not affect lines already in the cart.
type CartLine struct {
	Product    Product   `json:"product"`
	Quantity   int       `json:"quantity"`
	AddedAt    time.Time `json:"added_at"`
	IsSelected bool      `json:"is_selected"`
}

// LineTotal returns price times quantity for this line, in centavos.
func (l CartLine) LineTotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// CartState is the cart aggregate: one line per product plus the set of
// product IDs currently marked for checkout. Selected is authoritative for
// selection queries and is always a subset of the Items key space.
type CartState struct {
	Items    map[string]CartLine
	Selected map[string]struct{}
}

// NewCartState returns an empty cart state.
func NewCartState() CartState {
	return CartState{
		Items:    make(map[string]CartLine),
		Selected: make(map[string]struct{}),
	}
}

// Lines returns all cart lines ordered by AddedAt descending (most recently
// touched first). Ties are broken by product ID so the order is stable.
func (s CartState) Lines() []CartLine {
	lines := make([]CartLine, 0, len(s.Items))
	for _, line := range s.Items {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].AddedAt.Equal(lines[j].AddedAt) {
			return lines[i].AddedAt.After(lines[j].AddedAt)
		}
		return lines[i].Product.ID < lines[j].Product.ID
	})
	return lines
}

// SelectedLines returns the lines whose product ID is in the selection set,
// in the same order as Lines.
func (s CartState) SelectedLines() []CartLine {
	lines := make([]CartLine, 0, len(s.Selected))
	for _, line := range s.Lines() {
		if _, ok := s.Selected[line.Product.ID]; ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// TotalItems returns the sum of quantities across all lines.
func (s CartState) TotalItems() int {
	var count int
	for _, line := range s.Items {
		count += line.Quantity
	}
	return count
}

// TotalPrice returns the sum of line totals across all lines, in centavos.
func (s CartState) TotalPrice() int64 {
	var total int64
	for _, line := range s.Items {
		total += line.LineTotal()
	}
	return total
}

// SelectedCount returns the sum of quantities across selected lines.
func (s CartState) SelectedCount() int {
	var count int
	for id := range s.Selected {
		if line, ok := s.Items[id]; ok {
			count += line.Quantity
		}
	}
	return count
}

// SelectedTotalPrice returns the sum of line totals across selected lines.
func (s CartState) SelectedTotalPrice() int64 {
	var total int64
	for id := range s.Selected {
		if line, ok := s.Items[id]; ok {
			total += line.LineTotal()
		}
	}
	return total
}

// Contains reports whether a line exists for the given product ID.
func (s CartState) Contains(productID string) bool {
	_, ok := s.Items[productID]
	return ok
}

// Quantity returns the quantity of the line for the given product ID, or 0.
func (s CartState) Quantity(productID string) int {
	return s.Items[productID].Quantity
}

// IsSelected reports whether the given product ID is in the selection set.
func (s CartState) IsSelected(productID string) bool {
	_, ok := s.Selected[productID]
	return ok
}

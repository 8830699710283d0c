package domain

import "sort"

// CartSnapshot is the persisted form of CartState. It is a distinct schema
// from the in-memory state: the selection set has no native wire
// representation, so it is serialized as an ordered sequence of product IDs
// and reconstructed as a set on load.
type CartSnapshot struct {
	Items         map[string]CartLine `json:"items"`
	SelectedItems []string            `json:"selectedItems"`
}

// SnapshotCart converts the in-memory state to its persisted form. The
// selection sequence is sorted so serialization is deterministic.
func SnapshotCart(s CartState) CartSnapshot {
	items := make(map[string]CartLine, len(s.Items))
	for id, line := range s.Items {
		items[id] = line
	}

	selected := make([]string, 0, len(s.Selected))
	for id := range s.Selected {
		selected = append(selected, id)
	}
	sort.Strings(selected)

	return CartSnapshot{Items: items, SelectedItems: selected}
}

// State converts the persisted form back to in-memory state. Selection
// entries that do not reference a present line are dropped so the
// subset invariant holds after hydration.
func (sn CartSnapshot) State() CartState {
	state := NewCartState()
	for id, line := range sn.Items {
		state.Items[id] = line
	}
	for _, id := range sn.SelectedItems {
		if _, ok := state.Items[id]; ok {
			state.Selected[id] = struct{}{}
		}
	}
	return state
}

// ItemCount returns the sum of quantities across all snapshot lines.
func (sn CartSnapshot) ItemCount() int {
	var count int
	for _, line := range sn.Items {
		count += line.Quantity
	}
	return count
}

// TotalAmount returns the sum of line totals across all snapshot lines.
func (sn CartSnapshot) TotalAmount() int64 {
	var total int64
	for _, line := range sn.Items {
		total += line.LineTotal()
	}
	return total
}

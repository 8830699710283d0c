package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineAt(id string, price int64, qty int, addedAt time.Time, selected bool) CartLine {
	return CartLine{
		Product:  Product{ID: id, Name: "Product " + id, Price: price},
		Quantity: qty,
		AddedAt:  addedAt, IsSelected: selected,
	}
}

func TestCartState_Lines_OrderedByRecency(t *testing.T) {
	now := time.Now().UTC()
	s := NewCartState()
	s.Items["p1"] = lineAt("p1", 1000, 1, now.Add(-2*time.Minute), false)
	s.Items["p2"] = lineAt("p2", 2000, 1, now, false)
	s.Items["p3"] = lineAt("p3", 3000, 1, now.Add(-time.Minute), false)

	lines := s.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "p2", lines[0].Product.ID)
	assert.Equal(t, "p3", lines[1].Product.ID)
	assert.Equal(t, "p1", lines[2].Product.ID)
}

func TestCartState_Lines_StableTieBreak(t *testing.T) {
	now := time.Now().UTC()
	s := NewCartState()
	s.Items["p2"] = lineAt("p2", 2000, 1, now, false)
	s.Items["p1"] = lineAt("p1", 1000, 1, now, false)

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].Product.ID)
	assert.Equal(t, "p2", lines[1].Product.ID)
}

func TestCartState_Totals(t *testing.T) {
	now := time.Now().UTC()
	s := NewCartState()
	s.Items["p1"] = lineAt("p1", 1000, 2, now, true)
	s.Items["p2"] = lineAt("p2", 500, 3, now, false)
	s.Selected["p1"] = struct{}{}

	assert.Equal(t, 5, s.TotalItems())
	assert.Equal(t, int64(3500), s.TotalPrice())
	assert.Equal(t, 2, s.SelectedCount())
	assert.Equal(t, int64(2000), s.SelectedTotalPrice())
}

func TestCartState_Totals_Empty(t *testing.T) {
	s := NewCartState()

	assert.Zero(t, s.TotalItems())
	assert.Zero(t, s.TotalPrice())
	assert.Zero(t, s.SelectedCount())
	assert.Zero(t, s.SelectedTotalPrice())
}

func TestCartState_PointLookups(t *testing.T) {
	now := time.Now().UTC()
	s := NewCartState()
	s.Items["p1"] = lineAt("p1", 1000, 2, now, true)
	s.Selected["p1"] = struct{}{}

	assert.True(t, s.Contains("p1"))
	assert.Equal(t, 2, s.Quantity("p1"))
	assert.True(t, s.IsSelected("p1"))

	assert.False(t, s.Contains("missing"))
	assert.Zero(t, s.Quantity("missing"))
	assert.False(t, s.IsSelected("missing"))
}

func TestCartState_SelectedLines_SubsetInLineOrder(t *testing.T) {
	now := time.Now().UTC()
	s := NewCartState()
	s.Items["p1"] = lineAt("p1", 1000, 1, now.Add(-time.Minute), true)
	s.Items["p2"] = lineAt("p2", 2000, 1, now, true)
	s.Items["p3"] = lineAt("p3", 3000, 1, now.Add(-2*time.Minute), false)
	s.Selected["p1"] = struct{}{}
	s.Selected["p2"] = struct{}{}

	selected := s.SelectedLines()
	require.Len(t, selected, 2)
	assert.Equal(t, "p2", selected[0].Product.ID)
	assert.Equal(t, "p1", selected[1].Product.ID)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	s := NewCartState()
	s.Items["p1"] = lineAt("p1", 1000, 2, now, true)
	s.Items["p2"] = lineAt("p2", 2000, 1, now.Add(-time.Minute), false)
	s.Selected["p1"] = struct{}{}

	snap := SnapshotCart(s)
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded CartSnapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	restored := decoded.State()
	assert.Equal(t, s.Items, restored.Items)
	assert.Equal(t, s.Selected, restored.Selected)
}

func TestSnapshot_SelectionSerializedAsOrderedSequence(t *testing.T) {
	now := time.Now().UTC()
	s := NewCartState()
	s.Items["pb"] = lineAt("pb", 1000, 1, now, true)
	s.Items["pa"] = lineAt("pa", 1000, 1, now, true)
	s.Selected["pb"] = struct{}{}
	s.Selected["pa"] = struct{}{}

	snap := SnapshotCart(s)
	assert.Equal(t, []string{"pa", "pb"}, snap.SelectedItems)
}

func TestSnapshot_State_DropsUnknownSelectionIDs(t *testing.T) {
	now := time.Now().UTC()
	snap := CartSnapshot{
		Items: map[string]CartLine{
			"p1": lineAt("p1", 1000, 1, now, true),
		},
		SelectedItems: []string{"p1", "ghost"},
	}

	state := snap.State()
	assert.True(t, state.IsSelected("p1"))
	assert.False(t, state.IsSelected("ghost"))
	assert.Len(t, state.Selected, 1)
}

func TestSnapshot_Aggregates(t *testing.T) {
	now := time.Now().UTC()
	snap := CartSnapshot{
		Items: map[string]CartLine{
			"p1": lineAt("p1", 1000, 2, now, false),
			"p2": lineAt("p2", 500, 3, now, false),
		},
	}

	assert.Equal(t, 5, snap.ItemCount())
	assert.Equal(t, int64(3500), snap.TotalAmount())
}

func TestOrder_CalculateSubtotal(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{ProductID: "p1", Price: 1000, Quantity: 2},
			{ProductID: "p2", Price: 250, Quantity: 4},
		},
	}

	assert.Equal(t, int64(3000), order.CalculateSubtotal())
	assert.Equal(t, 6, order.ItemCount())
}

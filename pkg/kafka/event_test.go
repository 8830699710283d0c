package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartClearedPayload struct {
	CartID string `json:"cart_id"`
}

func TestNewEvent(t *testing.T) {
	ev, err := NewEvent("storefront.cart.cleared", "cart-1", "cart", "storefront", cartClearedPayload{CartID: "cart-1"})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "storefront.cart.cleared", ev.EventType)
	assert.Equal(t, "cart-1", ev.AggregateID)
	assert.Equal(t, "cart", ev.AggregateType)
	assert.Equal(t, 1, ev.Version)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestEvent_DataRoundTrip(t *testing.T) {
	ev, err := NewEvent("storefront.cart.cleared", "cart-1", "cart", "storefront", cartClearedPayload{CartID: "cart-1"})
	require.NoError(t, err)

	var got cartClearedPayload
	require.NoError(t, ev.UnmarshalData(&got))
	assert.Equal(t, "cart-1", got.CartID)
}

func TestEvent_WithCorrelationID(t *testing.T) {
	ev, err := NewEvent("storefront.cart.updated", "cart-1", "cart", "storefront", nil)
	require.NoError(t, err)

	ev.WithCorrelationID("corr-9")
	assert.Equal(t, "corr-9", ev.CorrelationID)
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("storefront.cart.updated", "cart-1", "cart", "storefront", make(chan int))
	assert.Error(t, err)
}

package domain

import "time"

// Order is a placed order built from the cart's checkout selection.
type Order struct {
	ID        string      `json:"id"`
	Items     []OrderItem `json:"items"`
	Subtotal  int64       `json:"subtotal"`
	Total     int64       `json:"total"`
	Currency  string      `json:"currency"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderItem is a single line of a placed order.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// CalculateSubtotal computes the subtotal from the items (price times
// quantity for each), in centavos.
func (o *Order) CalculateSubtotal() int64 {
	var subtotal int64
	for _, item := range o.Items {
		subtotal += item.Price * int64(item.Quantity)
	}
	return subtotal
}

// ItemCount returns the total number of units in the order.
func (o *Order) ItemCount() int {
	var count int
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

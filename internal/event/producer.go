package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tindahan/storefront/internal/domain"
	pkgkafka "github.com/tindahan/storefront/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicCartUpdated = "storefront.cart.updated"
	TopicCartCleared = "storefront.cart.cleared"
	TopicOrderPlaced = "storefront.order.placed"
)

// Aggregate type constants.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// Source identifier for events originating from this service.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	CartID      string         `json:"cart_id"`
	Items       []CartItemData `json:"items"`
	ItemCount   int            `json:"item_count"`
	TotalAmount int64          `json:"total_amount"`
}

// CartItemData is the item payload within cart events.
type CartItemData struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Selected  bool   `json:"selected"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	CartID string `json:"cart_id"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID     string             `json:"order_id"`
	Items       []domain.OrderItem `json:"items"`
	TotalAmount int64              `json:"total_amount"`
	Currency    string             `json:"currency"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event from the given snapshot.
func (p *Producer) PublishCartUpdated(ctx context.Context, cartID string, snap domain.CartSnapshot) error {
	items := make([]CartItemData, 0, len(snap.Items))
	for _, line := range snap.Items {
		items = append(items, CartItemData{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Selected:  line.IsSelected,
		})
	}

	data := CartUpdatedData{
		CartID:      cartID,
		Items:       items,
		ItemCount:   snap.ItemCount(),
		TotalAmount: snap.TotalAmount(),
	}

	ev, err := pkgkafka.NewEvent(TopicCartUpdated, cartID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, ev); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("cart_id", cartID),
		slog.Int("item_count", data.ItemCount),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, cartID string) error {
	ev, err := pkgkafka.NewEvent(TopicCartCleared, cartID, AggregateTypeCart, SourceStorefront, CartClearedData{CartID: cartID})
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, ev); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("cart_id", cartID),
	)

	return nil
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	data := OrderPlacedData{
		OrderID:     order.ID,
		Items:       order.Items,
		TotalAmount: order.Total,
		Currency:    order.Currency,
	}

	ev, err := pkgkafka.NewEvent(TopicOrderPlaced, order.ID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, ev); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("order_id", order.ID),
	)

	return nil
}

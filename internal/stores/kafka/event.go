package kafka

import (
	"time"

	"github.com/almondkiruthu/flashtans-app/pkg/money"
)

const TopicOrderCreated = `order-service.order-created`

// OrderCreatedEvent is published after an order has been committed.
type OrderCreatedEvent struct {
	OrderID    string           `json:"order_id"`
	CustomerID string           `json:"customer_id"`
	Total      money.Money      `json:"total"`
	Items      []OrderEventItem `json:"items"`
	CreatedAt  time.Time        `json:"created_at"`
}

type OrderEventItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

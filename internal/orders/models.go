package orders

import (
	"time"

	"github.com/almondkiruthu/flashtans-app/internal/customers"
	"github.com/almondkiruthu/flashtans-app/pkg/money"
)

// StatusPending is the only status this version ever writes; transitions to
// paid/shipped states are out of scope.
const StatusPending = "pending"

// Order represents an order row. The customer fields are joined in on reads;
// Items is populated only when a single order is hydrated.
type Order struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customer_id"`
	Total           money.Money `json:"total"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	CustomerName    string      `json:"customer_name,omitempty"`
	CustomerEmail   string      `json:"customer_email,omitempty"`
	CustomerAddress string      `json:"customer_address,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
}

// OrderItem captures the product name and price at the time of sale, so
// later catalog edits do not change historical orders.
type OrderItem struct {
	ID          string      `json:"id"`
	OrderID     string      `json:"order_id"`
	ProductID   string      `json:"product_id"`
	ProductName string      `json:"product_name"`
	Price       money.Money `json:"price"`
	Quantity    int         `json:"quantity"`
	Subtotal    money.Money `json:"subtotal"`
}

// NewOrderItem is one requested product+quantity pair.
type NewOrderItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// NewOrderRequest is the order submission payload.
type NewOrderRequest struct {
	Items        []NewOrderItem        `json:"items" validate:"required,min=1,dive"`
	CustomerInfo customers.NewCustomer `json:"customerInfo" validate:"required"`
}

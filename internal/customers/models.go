package customers

import "time"

// Customer represents a customer row. A new one is inserted for every order
// submission; there is no deduplication by email.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCustomer is the customer info submitted with an order.
type NewCustomer struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
}

package products

import (
	"time"

	"github.com/almondkiruthu/flashtans-app/pkg/money"
)

// Product represents a catalog entry in the database.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Price       money.Money `json:"price" validate:"required,gt=0"`
	Description string      `json:"description" validate:"required"`
	Image       string      `json:"image"`
	Stock       int         `json:"stock" validate:"min=0"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewProduct is the payload for creating a product. Stock is a pointer so a
// missing field can be told apart from an explicit zero.
type NewProduct struct {
	Name        string      `json:"name" validate:"required"`
	Price       money.Money `json:"price" validate:"required,gt=0"`
	Description string      `json:"description" validate:"required"`
	Stock       *int        `json:"stock" validate:"required,min=0"`
}

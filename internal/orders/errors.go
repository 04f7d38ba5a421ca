package orders

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no order exists for the given id.
var ErrNotFound = errors.New("order not found")

// ProductNotFoundError rejects a whole order request because one of the
// referenced products does not exist.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product %s not found", e.ProductID)
}

// InsufficientStockError rejects an order because the available stock does
// not cover the requested quantity.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s", e.ProductName)
}

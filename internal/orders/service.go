package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/almondkiruthu/flashtans-app/internal/customers"
	"github.com/almondkiruthu/flashtans-app/internal/products"
	"github.com/almondkiruthu/flashtans-app/pkg/money"

	"github.com/google/uuid"
)

// ProductGetter is the slice of the product store the workflow needs.
type ProductGetter interface {
	GetProductByID(ctx context.Context, id string) (products.Product, error)
}

// CustomerCreator inserts the customer record submitted with an order.
type CustomerCreator interface {
	InsertCustomer(ctx context.Context, nc customers.NewCustomer) (customers.Customer, error)
}

// Service runs the order placement workflow over injected stores.
type Service struct {
	products  ProductGetter
	customers CustomerCreator
	orders    Store
}

func NewService(p ProductGetter, c CustomerCreator, o Store) *Service {
	return &Service{products: p, customers: c, orders: o}
}

// PlaceOrder validates the requested items against live stock, captures each
// product's name and price, computes the total, creates the customer, and
// persists order + items + stock decrements in a single transaction.
//
// Validation failures happen before any write, so a rejected request leaves
// the database untouched. A persistence failure rolls back the order, its
// items and the stock changes; the customer row inserted beforehand remains,
// so retrying a failed order duplicates the customer.
func (s *Service) PlaceOrder(ctx context.Context, req NewOrderRequest) (Order, error) {
	var total money.Money
	items := make([]OrderItem, 0, len(req.Items))

	for _, requested := range req.Items {
		product, err := s.products.GetProductByID(ctx, requested.ProductID)
		if err != nil {
			if errors.Is(err, products.ErrNotFound) {
				return Order{}, &ProductNotFoundError{ProductID: requested.ProductID}
			}
			return Order{}, fmt.Errorf("failed to fetch product %s: %w", requested.ProductID, err)
		}

		if product.Stock < requested.Quantity {
			return Order{}, &InsufficientStockError{ProductName: product.Name}
		}

		subtotal := product.Price.Mul(requested.Quantity)
		total += subtotal

		items = append(items, OrderItem{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    requested.Quantity,
			Subtotal:    subtotal,
		})
	}

	customer, err := s.customers.InsertCustomer(ctx, req.CustomerInfo)
	if err != nil {
		return Order{}, fmt.Errorf("failed to create customer: %w", err)
	}

	order := Order{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Total:      total,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	for i := range items {
		items[i].OrderID = order.ID
	}

	if err := s.orders.CreateOrder(ctx, order, items); err != nil {
		return Order{}, err
	}

	return s.orders.GetOrderByID(ctx, order.ID)
}

package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// StockDecrementer applies a guarded stock decrement inside the caller's
// transaction. A false return means stock no longer covers the quantity.
type StockDecrementer interface {
	DecrementStock(ctx context.Context, tx *sql.Tx, id string, quantity int) (bool, error)
}

// Store is the persistence surface for orders.
type Store interface {
	CreateOrder(ctx context.Context, order Order, items []OrderItem) error
	GetOrderByID(ctx context.Context, id string) (Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
}

// Conf wraps the Store interface so handlers depend on behavior, not on the
// concrete database-backed type.
type Conf struct {
	Store
}

func NewConf(db *sql.DB, stock StockDecrementer) (Conf, error) {
	if db == nil {
		return Conf{}, fmt.Errorf("db is nil")
	}
	if stock == nil {
		return Conf{}, fmt.Errorf("stock decrementer is nil")
	}
	return Conf{Store: &store{db: db, stock: stock}}, nil
}

type store struct {
	db    *sql.DB
	stock StockDecrementer
}

// CreateOrder persists the order, its items and the stock decrements in one
// transaction. Either everything commits or nothing does.
func (s *store) CreateOrder(ctx context.Context, order Order, items []OrderItem) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		queryOrder := `
			INSERT INTO orders (id, customer_id, total, status, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err := tx.ExecContext(ctx, queryOrder, order.ID, order.CustomerID,
			order.Total, order.Status, order.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		queryItem := `
			INSERT INTO order_items (id, order_id, product_id, product_name, price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		for _, item := range items {
			_, err := tx.ExecContext(ctx, queryItem, item.ID, item.OrderID,
				item.ProductID, item.ProductName, item.Price, item.Quantity, item.Subtotal)
			if err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}

			ok, err := s.stock.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// A concurrent order consumed the stock between the
				// pre-check and this decrement.
				return &InsufficientStockError{ProductName: item.ProductName}
			}
		}

		return nil
	})
}

func (s *store) GetOrderByID(ctx context.Context, id string) (Order, error) {
	query := `
		SELECT o.id, o.customer_id, o.total, o.status, o.created_at,
		       c.name, c.email, c.address
		FROM orders o
		LEFT JOIN customers c ON o.customer_id = c.id
		WHERE o.id = $1
	`
	var o Order
	var name, email, address sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.CustomerID,
		&o.Total, &o.Status, &o.CreatedAt, &name, &email, &address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("failed to query order %s: %w", id, err)
	}
	o.CustomerName = name.String
	o.CustomerEmail = email.String
	o.CustomerAddress = address.String

	queryItems := `
		SELECT id, order_id, product_id, product_name, price, quantity, subtotal
		FROM order_items
		WHERE order_id = $1
	`
	rows, err := s.db.QueryContext(ctx, queryItems, id)
	if err != nil {
		return Order{}, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.Price, &item.Quantity, &item.Subtotal); err != nil {
			return Order{}, fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return Order{}, fmt.Errorf("error iterating order items: %w", err)
	}

	return o, nil
}

func (s *store) ListOrders(ctx context.Context) ([]Order, error) {
	query := `
		SELECT o.id, o.customer_id, o.total, o.status, o.created_at,
		       c.name, c.email
		FROM orders o
		LEFT JOIN customers c ON o.customer_id = c.id
		ORDER BY o.created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var list []Order
	for rows.Next() {
		var o Order
		var name, email sql.NullString
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Total, &o.Status,
			&o.CreatedAt, &name, &email); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.CustomerName = name.String
		o.CustomerEmail = email.String
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return list, nil
}

func (s *store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if er := tx.Rollback(); er != nil && !errors.Is(er, sql.ErrTxDone) {
			return fmt.Errorf("failed to rollback tx: %w", err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}
	return nil
}

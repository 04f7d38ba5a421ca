package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound reports that no product exists for the given id.
var ErrNotFound = errors.New("product not found")

// Store is the set of database operations the rest of the service uses to
// work with products.
type Store interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, id string) (Product, error)
	InsertProduct(ctx context.Context, np NewProduct) (Product, error)
	UpdateProduct(ctx context.Context, id string, p Product) (Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, id string, quantity int) (bool, error)
}

// Conf wraps the Store interface so handlers depend on behavior, not on the
// concrete database-backed type.
type Conf struct {
	Store
}

func NewConf(db *sql.DB) (Conf, error) {
	if db == nil {
		return Conf{}, fmt.Errorf("db is nil")
	}
	return Conf{Store: &store{db: db}}, nil
}

type store struct {
	db *sql.DB
}

const productColumns = `id, name, price, COALESCE(description, ''), COALESCE(image, ''), stock, created_at, updated_at`

func (s *store) ListProducts(ctx context.Context) ([]Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var list []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image,
			&p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return list, nil
}

func (s *store) GetProductByID(ctx context.Context, id string) (Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	var p Product
	err := s.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price,
		&p.Description, &p.Image, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("failed to query product %s: %w", id, err)
	}

	return p, nil
}

func (s *store) InsertProduct(ctx context.Context, np NewProduct) (Product, error) {
	id := uuid.NewString()

	query := `
		INSERT INTO products (id, name, price, description, stock)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, id, np.Name, np.Price, np.Description, *np.Stock)
	if err != nil {
		return Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return s.GetProductByID(ctx, id)
}

func (s *store) UpdateProduct(ctx context.Context, id string, p Product) (Product, error) {
	query := `
		UPDATE products
		SET name = $1, price = $2, description = $3, image = $4, stock = $5, updated_at = NOW()
		WHERE id = $6
	`
	res, err := s.db.ExecContext(ctx, query, p.Name, p.Price, p.Description, p.Image, p.Stock, id)
	if err != nil {
		return Product{}, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Product{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return Product{}, ErrNotFound
	}

	return s.GetProductByID(ctx, id)
}

func (s *store) DeleteProduct(ctx context.Context, id string) (bool, error) {
	query := `
		DELETE FROM products
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return n > 0, nil
}

// DecrementStock runs inside the caller's transaction. The guard clause keeps
// stock from going negative when two orders race for the same product; a
// false return means the remaining stock no longer covers the quantity.
func (s *store) DecrementStock(ctx context.Context, tx *sql.Tx, id string, quantity int) (bool, error) {
	query := `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`
	res, err := tx.ExecContext(ctx, query, quantity, id)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock for product %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return n > 0, nil
}

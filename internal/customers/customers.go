package customers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("customer not found")

type Store interface {
	InsertCustomer(ctx context.Context, nc NewCustomer) (Customer, error)
	GetCustomerByID(ctx context.Context, id string) (Customer, error)
}

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

func (s *store) InsertCustomer(ctx context.Context, nc NewCustomer) (Customer, error) {
	id := uuid.NewString()

	query := `
		INSERT INTO customers (id, name, email, address)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, id, nc.Name, nc.Email, nc.Address)
	if err != nil {
		return Customer{}, fmt.Errorf("failed to insert customer: %w", err)
	}

	return s.GetCustomerByID(ctx, id)
}

func (s *store) GetCustomerByID(ctx context.Context, id string) (Customer, error) {
	query := `
		SELECT id, name, email, COALESCE(address, ''), created_at
		FROM customers
		WHERE id = $1
	`
	var c Customer
	err := s.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, ErrNotFound
		}
		return Customer{}, fmt.Errorf("failed to query customer %s: %w", id, err)
	}

	return c, nil
}

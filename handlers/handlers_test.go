package handlers_test

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/almondkiruthu/flashtans-app/handlers"
	"github.com/almondkiruthu/flashtans-app/internal/customers"
	"github.com/almondkiruthu/flashtans-app/internal/orders"
	"github.com/almondkiruthu/flashtans-app/internal/products"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// newTestAPI builds the full gin engine over in-memory fakes.
func newTestAPI(p *fakeProductStore, o *fakeOrderStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	pConf := products.Conf{Store: p}
	oConf := orders.Conf{Store: o}
	svc := orders.NewService(pConf, &fakeCustomerStore{}, oConf)
	return handlers.API(pConf, oConf, svc, nil)
}

type fakeProductStore struct {
	store    map[string]products.Product
	inserted []products.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{store: map[string]products.Product{}}
}

func (f *fakeProductStore) ListProducts(_ context.Context) ([]products.Product, error) {
	var list []products.Product
	for _, p := range f.store {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f *fakeProductStore) GetProductByID(_ context.Context, id string) (products.Product, error) {
	p, ok := f.store[id]
	if !ok {
		return products.Product{}, products.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductStore) InsertProduct(_ context.Context, np products.NewProduct) (products.Product, error) {
	p := products.Product{
		ID:          uuid.NewString(),
		Name:        np.Name,
		Price:       np.Price,
		Description: np.Description,
		Image:       "/images/placeholder.jpg",
		Stock:       *np.Stock,
	}
	f.store[p.ID] = p
	f.inserted = append(f.inserted, p)
	return p, nil
}

func (f *fakeProductStore) UpdateProduct(_ context.Context, id string, p products.Product) (products.Product, error) {
	if _, ok := f.store[id]; !ok {
		return products.Product{}, products.ErrNotFound
	}
	p.ID = id
	f.store[id] = p
	return p, nil
}

func (f *fakeProductStore) DeleteProduct(_ context.Context, id string) (bool, error) {
	if _, ok := f.store[id]; !ok {
		return false, nil
	}
	delete(f.store, id)
	return true, nil
}

func (f *fakeProductStore) DecrementStock(_ context.Context, _ *sql.Tx, id string, quantity int) (bool, error) {
	p, ok := f.store[id]
	if !ok || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	f.store[id] = p
	return true, nil
}

type fakeCustomerStore struct {
	created int
}

func (f *fakeCustomerStore) InsertCustomer(_ context.Context, nc customers.NewCustomer) (customers.Customer, error) {
	f.created++
	return customers.Customer{
		ID:      fmt.Sprintf("customer-%d", f.created),
		Name:    nc.Name,
		Email:   nc.Email,
		Address: nc.Address,
	}, nil
}

type fakeOrderStore struct {
	products *fakeProductStore
	orders   map[string]orders.Order
	items    map[string][]orders.OrderItem
}

func newFakeOrderStore(p *fakeProductStore) *fakeOrderStore {
	return &fakeOrderStore{products: p, orders: map[string]orders.Order{}, items: map[string][]orders.OrderItem{}}
}

func (f *fakeOrderStore) CreateOrder(ctx context.Context, order orders.Order, items []orders.OrderItem) error {
	for _, item := range items {
		ok, err := f.products.DecrementStock(ctx, nil, item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return &orders.InsufficientStockError{ProductName: item.ProductName}
		}
	}
	f.orders[order.ID] = order
	f.items[order.ID] = items
	return nil
}

func (f *fakeOrderStore) GetOrderByID(_ context.Context, id string) (orders.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return orders.Order{}, orders.ErrNotFound
	}
	order.Items = f.items[id]
	order.CustomerName = "A"
	order.CustomerEmail = "a@x.com"
	return order, nil
}

func (f *fakeOrderStore) ListOrders(_ context.Context) ([]orders.Order, error) {
	var list []orders.Order
	for _, o := range f.orders {
		o.CustomerName = "A"
		o.CustomerEmail = "a@x.com"
		list = append(list, o)
	}
	return list, nil
}

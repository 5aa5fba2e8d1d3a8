package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/rogerio-castellano/kirana-pos/internal/pkg/clock"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrDuplicateProduct   = errors.New("product id already exists")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidStockChange = errors.New("stock cannot become negative")
)

// Storage keeps products, orders and customers as whole collections in a Store.
// Every write reads the collection, changes it in memory and writes it back;
// the mutex serialises those cycles within one process.
type Storage struct {
	mu    sync.Mutex
	store Store
	clock clock.Clock
	newID func() string
}

type Option func(*Storage)

func WithClock(c clock.Clock) Option {
	return func(s *Storage) { s.clock = c }
}

func WithIDGenerator(f func() string) Option {
	return func(s *Storage) { s.newID = f }
}

func NewStorage(store Store, opts ...Option) *Storage {
	s := &Storage{
		store: store,
		clock: clock.NewRealClock(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func load[T any](ctx context.Context, store Store, key string) ([]T, bool, error) {
	data, err := store.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return []T{}, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, true, nil
}

func encode[T any](key string, items []T) (Write, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return Write{}, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return Write{Key: key, Value: data}, nil
}

func save[T any](ctx context.Context, store Store, key string, items []T) error {
	w, err := encode(key, items)
	if err != nil {
		return err
	}
	return store.Put(ctx, w.Key, w.Value)
}

// loadProducts seeds the sample catalogue the first time it finds no catalogue.
// Callers hold s.mu.
func (s *Storage) loadProducts(ctx context.Context) ([]models.Product, error) {
	products, found, err := load[models.Product](ctx, s.store, ProductsKey)
	if err != nil {
		return nil, err
	}
	if found {
		return products, nil
	}

	products = sampleProducts(s.clock.Now())
	if err := save(ctx, s.store, ProductsKey, products); err != nil {
		return nil, fmt.Errorf("failed to seed products: %w", err)
	}
	return products, nil
}

func (s *Storage) Products(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadProducts(ctx)
}

func (s *Storage) SetProducts(ctx context.Context, products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save(ctx, s.store, ProductsKey, products)
}

func (s *Storage) Product(ctx context.Context, id string) (models.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (s *Storage) ProductByBarcode(ctx context.Context, barcode string) (models.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.Barcode != "" && p.Barcode == barcode {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// AddProduct appends p to the catalogue, assigning an id and timestamps when missing.
func (s *Storage) AddProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return models.Product{}, err
	}

	if p.ID == "" {
		p.ID = s.newID()
	}
	for _, existing := range products {
		if existing.ID == p.ID {
			return models.Product{}, ErrDuplicateProduct
		}
	}

	now := s.clock.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	products = append(products, p)
	if err := save(ctx, s.store, ProductsKey, products); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// UpdateProduct merges patch onto the stored product and refreshes UpdatedAt.
// Nothing is written when the id is unknown or the result is invalid.
func (s *Storage) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return models.Product{}, err
	}

	for i, p := range products {
		if p.ID != id {
			continue
		}
		updated := patch.apply(p)
		if err := ValidateProduct(updated); err != nil {
			return models.Product{}, err
		}
		updated.UpdatedAt = s.clock.Now()
		products[i] = updated

		if err := save(ctx, s.store, ProductsKey, products); err != nil {
			return models.Product{}, err
		}
		return updated, nil
	}
	return models.Product{}, ErrProductNotFound
}

func (s *Storage) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return err
	}
	for i, p := range products {
		if p.ID == id {
			products = append(products[:i], products[i+1:]...)
			return save(ctx, s.store, ProductsKey, products)
		}
	}
	return ErrProductNotFound
}

// AdjustStock is the restock / write-off path; sales go through CommitSale.
func (s *Storage) AdjustStock(ctx context.Context, id string, delta int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for i, p := range products {
		if p.ID != id {
			continue
		}
		if p.Stock+delta < 0 {
			return models.Product{}, ErrInvalidStockChange
		}
		products[i].Stock += delta
		products[i].UpdatedAt = s.clock.Now()
		if err := save(ctx, s.store, ProductsKey, products); err != nil {
			return models.Product{}, err
		}
		return products[i], nil
	}
	return models.Product{}, ErrProductNotFound
}

// Orders returns the order log, newest first.
func (s *Storage) Orders(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, _, err := load[models.Order](ctx, s.store, OrdersKey)
	return orders, err
}

func (s *Storage) SetOrders(ctx context.Context, orders []models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save(ctx, s.store, OrdersKey, orders)
}

// AddOrder puts o at the head of the order log.
func (s *Storage) AddOrder(ctx context.Context, o models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, _, err := load[models.Order](ctx, s.store, OrdersKey)
	if err != nil {
		return models.Order{}, err
	}
	o = s.stampOrder(o)
	orders = append([]models.Order{o}, orders...)
	if err := save(ctx, s.store, OrdersKey, orders); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (s *Storage) stampOrder(o models.Order) models.Order {
	if o.ID == "" {
		o.ID = s.newID()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.clock.Now()
	}
	return o
}

// CommitSale checks every order line against current stock, then writes the
// order log and the decremented catalogue in a single batch. When any line
// fails the check nothing is written.
func (s *Storage) CommitSale(ctx context.Context, o models.Order) (models.Order, []models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return models.Order{}, nil, err
	}
	orders, _, err := load[models.Order](ctx, s.store, OrdersKey)
	if err != nil {
		return models.Order{}, nil, err
	}

	index := make(map[string]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}

	now := s.clock.Now()
	touched := make([]int, 0, len(o.Items))
	for _, item := range o.Items {
		i, ok := index[item.ProductID]
		if !ok {
			return models.Order{}, nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		if products[i].Stock < item.Quantity {
			return models.Order{}, nil, fmt.Errorf("%w: %s has %d, need %d",
				ErrInsufficientStock, products[i].Name, products[i].Stock, item.Quantity)
		}
		products[i].Stock -= item.Quantity
		products[i].UpdatedAt = now
		touched = append(touched, i)
	}

	o = s.stampOrder(o)
	orders = append([]models.Order{o}, orders...)

	orderWrite, err := encode(OrdersKey, orders)
	if err != nil {
		return models.Order{}, nil, err
	}
	productWrite, err := encode(ProductsKey, products)
	if err != nil {
		return models.Order{}, nil, err
	}
	if err := s.store.Batch(ctx, orderWrite, productWrite); err != nil {
		return models.Order{}, nil, fmt.Errorf("failed to commit sale: %w", err)
	}

	updated := make([]models.Product, 0, len(touched))
	for _, i := range touched {
		updated = append(updated, products[i])
	}
	return o, updated, nil
}

func (s *Storage) Customers(ctx context.Context) ([]models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, _, err := load[models.Customer](ctx, s.store, CustomersKey)
	return customers, err
}

func (s *Storage) SetCustomers(ctx context.Context, customers []models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save(ctx, s.store, CustomersKey, customers)
}

func (s *Storage) AddCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	if err := validateCustomer(c); err != nil {
		return models.Customer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customers, _, err := load[models.Customer](ctx, s.store, CustomersKey)
	if err != nil {
		return models.Customer{}, err
	}
	if c.ID == "" {
		c.ID = s.newID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.clock.Now()
	}
	customers = append(customers, c)
	if err := save(ctx, s.store, CustomersKey, customers); err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

func (s *Storage) UpdateCustomer(ctx context.Context, id string, patch CustomerPatch) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, _, err := load[models.Customer](ctx, s.store, CustomersKey)
	if err != nil {
		return models.Customer{}, err
	}
	for i, c := range customers {
		if c.ID != id {
			continue
		}
		updated := patch.apply(c)
		if err := validateCustomer(updated); err != nil {
			return models.Customer{}, err
		}
		customers[i] = updated
		if err := save(ctx, s.store, CustomersKey, customers); err != nil {
			return models.Customer{}, err
		}
		return updated, nil
	}
	return models.Customer{}, ErrCustomerNotFound
}

// Alerts derives inventory alerts from the current catalogue on every call.
func (s *Storage) Alerts(ctx context.Context) ([]models.InventoryAlert, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	alerts := []models.InventoryAlert{}
	for _, p := range products {
		sev, ok := models.ClassifyStock(p.Stock, p.MinStock)
		if !ok {
			continue
		}
		alerts = append(alerts, models.InventoryAlert{
			ID:           "alert-" + p.ID,
			ProductID:    p.ID,
			ProductName:  p.Name,
			CurrentStock: p.Stock,
			MinStock:     p.MinStock,
			Severity:     sev,
			CreatedAt:    now,
		})
	}
	return alerts, nil
}

// ClearAll removes every collection; the next product read seeds the catalogue again.
func (s *Storage) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Delete(ctx, AllKeys...)
}

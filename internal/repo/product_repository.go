package repo

import (
	"context"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
)

// ProductRepository defines the catalogue operations.
type ProductRepository interface {
	Products(ctx context.Context) ([]models.Product, error)
	SetProducts(ctx context.Context, products []models.Product) error
	Product(ctx context.Context, id string) (models.Product, error)
	ProductByBarcode(ctx context.Context, barcode string) (models.Product, error)
	AddProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	// AdjustStock adds delta (negative to remove) to a product's stock.
	AdjustStock(ctx context.Context, id string, delta int) (models.Product, error)
}

// OrderRepository defines the append-only order log.
type OrderRepository interface {
	Orders(ctx context.Context) ([]models.Order, error)
	SetOrders(ctx context.Context, orders []models.Order) error
	AddOrder(ctx context.Context, o models.Order) (models.Order, error)
	// CommitSale stores the order and decrements stock for each line in one batch.
	CommitSale(ctx context.Context, o models.Order) (models.Order, []models.Product, error)
}

type CustomerRepository interface {
	Customers(ctx context.Context) ([]models.Customer, error)
	SetCustomers(ctx context.Context, customers []models.Customer) error
	AddCustomer(ctx context.Context, c models.Customer) (models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, patch CustomerPatch) (models.Customer, error)
}

type AlertRepository interface {
	Alerts(ctx context.Context) ([]models.InventoryAlert, error)
}

type DataRepository interface {
	ClearAll(ctx context.Context) error
}

package repo

import (
	"context"
	"errors"
)

// Keys under which each collection is stored as one serialised value.
const (
	ProductsKey  = "kirana_products"
	OrdersKey    = "kirana_orders"
	CustomersKey = "kirana_customers"
	AlertsKey    = "kirana_alerts"
)

// AllKeys lists every key owned by the storage layer.
var AllKeys = []string{ProductsKey, OrdersKey, CustomersKey, AlertsKey}

// ErrKeyNotFound is returned by Store.Get when the key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// Write is one entry of a Batch. A nil Value deletes the key.
type Write struct {
	Key   string
	Value []byte
}

// Store is the key-value backend behind Storage.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	// Batch applies all writes or none of them.
	Batch(ctx context.Context, writes ...Write) error
}

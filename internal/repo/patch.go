package repo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
)

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidCustomer = errors.New("invalid customer")
)

// ProductPatch lists the product fields that may be edited after creation.
// Nil fields are left untouched.
type ProductPatch struct {
	Name       *string  `json:"name,omitempty"`
	NameNepali *string  `json:"name_nepali,omitempty"`
	Category   *string  `json:"category,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Stock      *int     `json:"stock,omitempty"`
	Unit       *string  `json:"unit,omitempty"`
	Barcode    *string  `json:"barcode,omitempty"`
	MinStock   *int     `json:"min_stock,omitempty"`
	MaxStock   *int     `json:"max_stock,omitempty"`
	Supplier   *string  `json:"supplier,omitempty"`
}

func (p ProductPatch) apply(prod models.Product) models.Product {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.NameNepali != nil {
		prod.NameNepali = *p.NameNepali
	}
	if p.Category != nil {
		prod.Category = *p.Category
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.Stock != nil {
		prod.Stock = *p.Stock
	}
	if p.Unit != nil {
		prod.Unit = *p.Unit
	}
	if p.Barcode != nil {
		prod.Barcode = *p.Barcode
	}
	if p.MinStock != nil {
		prod.MinStock = *p.MinStock
	}
	if p.MaxStock != nil {
		prod.MaxStock = *p.MaxStock
	}
	if p.Supplier != nil {
		prod.Supplier = *p.Supplier
	}
	return prod
}

// ValidateProduct checks the invariants every stored product must hold.
func ValidateProduct(p models.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case p.Price < 0:
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	case p.MinStock < 0:
		return fmt.Errorf("%w: min stock cannot be negative", ErrInvalidProduct)
	case p.MinStock > p.MaxStock:
		return fmt.Errorf("%w: min stock %d exceeds max stock %d", ErrInvalidProduct, p.MinStock, p.MaxStock)
	case p.Barcode != "" && !models.IsValidBarcode(p.Barcode):
		return fmt.Errorf("%w: barcode %q is not 13 digits", ErrInvalidProduct, p.Barcode)
	}
	return nil
}

// CustomerPatch lists the customer fields that may be edited.
type CustomerPatch struct {
	Name           *string    `json:"name,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	Credit         *float64   `json:"credit,omitempty"`
	TotalPurchases *float64   `json:"total_purchases,omitempty"`
	LastPurchase   *time.Time `json:"last_purchase,omitempty"`
}

func (p CustomerPatch) apply(c models.Customer) models.Customer {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Credit != nil {
		c.Credit = *p.Credit
	}
	if p.TotalPurchases != nil {
		c.TotalPurchases = *p.TotalPurchases
	}
	if p.LastPurchase != nil {
		t := *p.LastPurchase
		c.LastPurchase = &t
	}
	return c
}

func validateCustomer(c models.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCustomer)
	}
	if strings.TrimSpace(c.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidCustomer)
	}
	return nil
}

package models

import (
	"regexp"
	"time"
)

var ean13 = regexp.MustCompile(`^\d{13}$`)

// IsValidBarcode checks the EAN-13 shape only; the check digit is not verified.
func IsValidBarcode(code string) bool {
	return ean13.MatchString(code)
}

// Product represents a catalogue item sold at the counter.
type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	NameNepali string    `json:"name_nepali"`
	Category   string    `json:"category"`
	Price      float64   `json:"price"`
	Stock      int       `json:"stock"`
	Unit       string    `json:"unit"`
	Barcode    string    `json:"barcode,omitempty"`
	MinStock   int       `json:"min_stock"`
	MaxStock   int       `json:"max_stock"`
	Supplier   string    `json:"supplier,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Severity classifies how far a product's stock has fallen below its minimum.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityCritical Severity = "critical"
	SeverityOut      Severity = "out"
)

// ClassifyStock returns the alert severity for the given stock level, and false
// when the stock is above the minimum and no alert applies.
func ClassifyStock(stock, minStock int) (Severity, bool) {
	switch {
	case stock == 0:
		return SeverityOut, true
	case float64(stock) <= float64(minStock)*0.5:
		return SeverityCritical, true
	case stock <= minStock:
		return SeverityLow, true
	}
	return "", false
}

// InventoryAlert is derived from a product on read and never stored.
type InventoryAlert struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	CurrentStock int       `json:"current_stock"`
	MinStock     int       `json:"min_stock"`
	Severity     Severity  `json:"severity"`
	CreatedAt    time.Time `json:"created_at"`
}

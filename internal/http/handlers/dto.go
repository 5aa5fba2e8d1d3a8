package handlers

import (
	"time"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/rogerio-castellano/kirana-pos/internal/pos"
)

type ProductRequest struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name"`
	NameNepali string  `json:"name_nepali"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
	Unit       string  `json:"unit"`
	Barcode    string  `json:"barcode,omitempty"`
	MinStock   int     `json:"min_stock"`
	MaxStock   int     `json:"max_stock"`
	Supplier   string  `json:"supplier,omitempty"`
}

type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	NameNepali string          `json:"name_nepali"`
	Category   string          `json:"category"`
	Price      float64         `json:"price"`
	Stock      int             `json:"stock"`
	Unit       string          `json:"unit"`
	Barcode    string          `json:"barcode,omitempty"`
	MinStock   int             `json:"min_stock"`
	MaxStock   int             `json:"max_stock"`
	Supplier   string          `json:"supplier,omitempty"`
	LowStock   bool            `json:"low_stock,omitempty"`
	Severity   models.Severity `json:"severity,omitempty"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}

func toProductResponse(p models.Product) ProductResponse {
	resp := ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		NameNepali: p.NameNepali,
		Category:   p.Category,
		Price:      p.Price,
		Stock:      p.Stock,
		Unit:       p.Unit,
		Barcode:    p.Barcode,
		MinStock:   p.MinStock,
		MaxStock:   p.MaxStock,
		Supplier:   p.Supplier,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
	if sev, ok := models.ClassifyStock(p.Stock, p.MinStock); ok {
		resp.LowStock = true
		resp.Severity = sev
	}
	return resp
}

func toProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type StockAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type OrdersSearchResult struct {
	Data []models.Order `json:"data"`
	Meta Meta           `json:"meta,omitempty"`
}

type CustomerRequest struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Credit float64 `json:"credit"`
}

type ImportProductsResult struct {
	ImportedProductsCount int               `json:"imported"`
	Errors                []ValidationError `json:"errors"`
}

type CheckoutRequest struct {
	Items         []pos.CartLine `json:"items"`
	PaymentMethod string         `json:"payment_method"`
	CustomerName  string         `json:"customer_name,omitempty"`
	CustomerPhone string         `json:"customer_phone,omitempty"`
	Bank          string         `json:"bank,omitempty"`
}

type InitiatePaymentRequest struct {
	Gateway string  `json:"gateway"`
	Amount  float64 `json:"amount"`
	OrderID string  `json:"order_id"`
}

type ProcessPaymentRequest struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

type VerifyPaymentRequest struct {
	TransactionID string `json:"transaction_id"`
	Gateway       string `json:"gateway"`
}

type InstructionsResponse struct {
	Method       string `json:"method"`
	Instructions string `json:"instructions"`
}

type ScanResult struct {
	Barcode string           `json:"barcode"`
	Valid   bool             `json:"valid"`
	Product *ProductResponse `json:"product,omitempty"`
}

type ProductInsights struct {
	Product            ProductResponse        `json:"product"`
	Prediction         models.SalesPrediction `json:"prediction"`
	PricingInsights    []string               `json:"pricing_insights"`
	OptimalReorderDate string                 `json:"optimal_reorder_date"`
}

type RefundRequest struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
}

type RefundResponse struct {
	TransactionID string `json:"transaction_id"`
	Refunded      bool   `json:"refunded"`
}

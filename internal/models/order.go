package models

import (
	"fmt"
	"strings"
	"time"
)

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentEsewa      PaymentMethod = "esewa"
	PaymentKhalti     PaymentMethod = "khalti"
	PaymentFonepay    PaymentMethod = "fonepay"
	PaymentConnectIPS PaymentMethod = "connectips"
	PaymentCredit     PaymentMethod = "credit"
)

// ParsePaymentMethod accepts the method names used at the counter; "bank" is
// settled through Fonepay.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case PaymentCash, PaymentEsewa, PaymentKhalti, PaymentFonepay, PaymentConnectIPS, PaymentCredit:
		return m, nil
	case "bank":
		return PaymentFonepay, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// Digital reports whether the method is settled through a payment gateway.
func (m PaymentMethod) Digital() bool {
	switch m {
	case PaymentEsewa, PaymentKhalti, PaymentFonepay, PaymentConnectIPS:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// OrderItem is a cart line frozen at the moment of sale.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type Order struct {
	ID            string        `json:"id"`
	Items         []OrderItem   `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	TransactionID string        `json:"transaction_id,omitempty"`
	CustomerName  string        `json:"customer_name,omitempty"`
	CustomerPhone string        `json:"customer_phone,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

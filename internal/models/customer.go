package models

import "time"

// Customer tracks the उधारो (store credit) balance of a regular customer.
type Customer struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Credit         float64    `json:"credit"`
	TotalPurchases float64    `json:"total_purchases"`
	LastPurchase   *time.Time `json:"last_purchase,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

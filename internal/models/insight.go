package models

import "time"

type SalesPrediction struct {
	ProductID        string   `json:"product_id"`
	ProductName      string   `json:"product_name"`
	PredictedDemand  int      `json:"predicted_demand"`
	CurrentStock     int      `json:"current_stock"`
	RecommendedOrder int      `json:"recommended_order"`
	Confidence       int      `json:"confidence"`
	Reasoning        []string `json:"reasoning"`
}

type BestSeller struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

type DailySales struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type SalesAnalytics struct {
	TotalRevenue           float64                   `json:"total_revenue"`
	TotalOrders            int                       `json:"total_orders"`
	AverageOrderValue      float64                   `json:"average_order_value"`
	TopProducts            []BestSeller              `json:"top_products"`
	RevenueByPaymentMethod map[PaymentMethod]float64 `json:"revenue_by_payment_method"`
	DailySales             []DailySales              `json:"daily_sales"`
}

type MessageType string

const (
	MessageOrderConfirmation MessageType = "order_confirmation"
	MessagePaymentReceipt    MessageType = "payment_receipt"
	MessagePaymentReminder   MessageType = "payment_reminder"
	MessageStockAlert        MessageType = "stock_alert"
	MessageReorderSuggestion MessageType = "reorder_suggestion"
)

type MessageStatus string

const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
	MessageFailed    MessageStatus = "failed"
)

// Message is a simulated WhatsApp message.
type Message struct {
	ID     string        `json:"id"`
	To     string        `json:"to"`
	Body   string        `json:"body"`
	Type   MessageType   `json:"type"`
	SentAt time.Time     `json:"sent_at"`
	Status MessageStatus `json:"status"`
}

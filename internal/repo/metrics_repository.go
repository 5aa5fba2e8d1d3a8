package repo

import (
	"context"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
)

type Metrics struct {
	TotalProducts  int     `json:"total_products"`
	TotalOrders    int     `json:"total_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	LowStockCount  int     `json:"low_stock_count"`
	CriticalAlerts int     `json:"critical_alerts"`
}

type MetricsRepository interface {
	DashboardMetrics(ctx context.Context) (Metrics, error)
}

// DashboardMetrics summarises the admin dashboard counters.
func (s *Storage) DashboardMetrics(ctx context.Context) (Metrics, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return Metrics{}, err
	}
	orders, err := s.Orders(ctx)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{TotalProducts: len(products), TotalOrders: len(orders)}
	for _, o := range orders {
		m.TotalRevenue += o.Total
	}
	for _, p := range products {
		if p.Stock <= p.MinStock {
			m.LowStockCount++
		}
		if sev, ok := models.ClassifyStock(p.Stock, p.MinStock); ok && sev != models.SeverityLow {
			m.CriticalAlerts++
		}
	}
	return m, nil
}

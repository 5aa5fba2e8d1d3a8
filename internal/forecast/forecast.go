// Package forecast computes advisory demand predictions and sales summaries
// from the product catalogue and the order log. The numbers are heuristics,
// not statistical estimates.
package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/rogerio-castellano/kirana-pos/internal/pkg/clock"
)

// Policy holds the tunable constants of the heuristic.
type Policy struct {
	// WindowDays is the minimum divisor for the daily sales rate and the
	// horizon of the demand prediction.
	WindowDays int
	// SafetyBuffer multiplies the predicted demand.
	SafetyBuffer float64
	// HighDemandRate is the daily rate above which an item is flagged.
	HighDemandRate float64
	// StockoutDays is the horizon of the "will run out" warning.
	StockoutDays float64
	// Confidence = clamp(ConfidenceBase + ConfidenceStep*orders, Floor, Ceil).
	ConfidenceBase  int
	ConfidenceStep  int
	ConfidenceFloor int
	ConfidenceCeil  int
}

func DefaultPolicy() Policy {
	return Policy{
		WindowDays:      7,
		SafetyBuffer:    1.2,
		HighDemandRate:  3,
		StockoutDays:    3,
		ConfidenceBase:  75,
		ConfidenceStep:  2,
		ConfidenceFloor: 60,
		ConfidenceCeil:  95,
	}
}

type Forecaster struct {
	policy Policy
	clock  clock.Clock
}

func New(policy Policy, c clock.Clock) *Forecaster {
	if c == nil {
		c = clock.NewRealClock()
	}
	return &Forecaster{policy: policy, clock: c}
}

// dailyRate divides everything sold of productID by max(len(orders), WindowDays, 1).
func (f *Forecaster) dailyRate(productID string, orders []models.Order) float64 {
	sold := 0
	for _, o := range orders {
		for _, item := range o.Items {
			if item.ProductID == productID {
				sold += item.Quantity
			}
		}
	}
	return float64(sold) / float64(max(len(orders), f.policy.WindowDays, 1))
}

func (f *Forecaster) confidence(orderCount int) int {
	c := f.policy.ConfidenceBase + f.policy.ConfidenceStep*orderCount
	return min(f.policy.ConfidenceCeil, max(f.policy.ConfidenceFloor, c))
}

// PredictDemand returns one prediction per product, most urgent first
// (smallest stock / predicted demand ratio).
func (f *Forecaster) PredictDemand(products []models.Product, orders []models.Order) []models.SalesPrediction {
	predictions := make([]models.SalesPrediction, 0, len(products))
	weekend := isWeekend(f.clock.Now())
	conf := f.confidence(len(orders))

	for _, p := range products {
		rate := f.dailyRate(p.ID, orders)
		predicted := int(math.Ceil(rate * float64(f.policy.WindowDays) * f.policy.SafetyBuffer))

		divisor := rate
		if divisor == 0 {
			divisor = 1
		}
		daysUntilStockout := float64(p.Stock) / divisor

		reasoning := []string{}
		if p.Stock <= p.MinStock {
			reasoning = append(reasoning, fmt.Sprintf("स्टक न्यून छ (Stock critically low: %d %s)", p.Stock, p.Unit))
		}
		if rate > 0 && daysUntilStockout < f.policy.StockoutDays {
			days := int(math.Ceil(daysUntilStockout))
			reasoning = append(reasoning, fmt.Sprintf("%d दिनमा स्टक सकिनेछ (Will run out in %d days)", days, days))
		}
		if rate > 0 {
			reasoning = append(reasoning, fmt.Sprintf("दैनिक औसत बिक्री: %.1f %s (Daily avg: %.1f)", rate, p.Unit, rate))
		} else {
			reasoning = append(reasoning, "कुनै बिक्री इतिहास छैन (No sales history)")
		}
		if rate > f.policy.HighDemandRate {
			reasoning = append(reasoning, "उच्च माग भएको वस्तु (High demand item)")
		}
		if weekend {
			reasoning = append(reasoning, "सप्ताहन्तमा बढी बिक्री (Higher weekend sales expected)")
		}

		predictions = append(predictions, models.SalesPrediction{
			ProductID:        p.ID,
			ProductName:      p.Name,
			PredictedDemand:  predicted,
			CurrentStock:     p.Stock,
			RecommendedOrder: max(0, p.MaxStock-p.Stock),
			Confidence:       conf,
			Reasoning:        reasoning,
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return urgency(predictions[i]) < urgency(predictions[j])
	})
	return predictions
}

func urgency(p models.SalesPrediction) float64 {
	return float64(p.CurrentStock) / float64(max(p.PredictedDemand, 1))
}

func isWeekend(t time.Time) bool {
	d := t.Weekday()
	return d == time.Saturday || d == time.Sunday
}

// ReorderSuggestions keeps the predictions whose product is at or below its
// minimum stock, or holds less than the predicted demand.
func (f *Forecaster) ReorderSuggestions(products []models.Product, orders []models.Order) []models.SalesPrediction {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := []models.SalesPrediction{}
	for _, pred := range f.PredictDemand(products, orders) {
		p, ok := byID[pred.ProductID]
		if !ok {
			continue
		}
		if p.Stock <= p.MinStock || pred.CurrentStock < pred.PredictedDemand {
			out = append(out, pred)
		}
	}
	return out
}

// BestSellers aggregates quantity and revenue per product and returns the top
// limit entries by revenue.
func BestSellers(orders []models.Order, limit int) []models.BestSeller {
	totals := map[string]*models.BestSeller{}
	var order []string

	for _, o := range orders {
		for _, item := range o.Items {
			bs, ok := totals[item.ProductID]
			if !ok {
				bs = &models.BestSeller{ProductID: item.ProductID, ProductName: item.ProductName}
				totals[item.ProductID] = bs
				order = append(order, item.ProductID)
			}
			bs.Quantity += item.Quantity
			bs.Revenue += item.Total
		}
	}

	out := make([]models.BestSeller, 0, len(order))
	for _, id := range order {
		out = append(out, *totals[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PricingInsights suggests price moves from the units sold of one product.
func PricingInsights(p models.Product, orders []models.Order) []string {
	sold := 0
	for _, o := range orders {
		for _, item := range o.Items {
			if item.ProductID == p.ID {
				sold += item.Quantity
			}
		}
	}

	suggestions := []string{}
	if sold > 100 {
		suggestions = append(suggestions, "High demand - consider 5-10% price increase")
	} else if sold < 10 && len(orders) > 20 {
		suggestions = append(suggestions, "Low demand - consider promotional discount")
	}
	if float64(p.Stock) > float64(p.MaxStock)*0.8 {
		suggestions = append(suggestions, "Overstocked - clear with discount offer")
	}
	return suggestions
}

// OptimalReorderDate is three days before the expected stockout, never earlier than today.
func (f *Forecaster) OptimalReorderDate(p models.Product, orders []models.Order) time.Time {
	rate := f.dailyRate(p.ID, orders)
	if rate == 0 {
		rate = 1
	}
	days := max(0, float64(p.Stock)/rate-f.policy.StockoutDays)
	return f.clock.Now().Add(time.Duration(days * float64(24*time.Hour)))
}

// Analytics summarises revenue over the whole order log.
func Analytics(orders []models.Order, topN int) models.SalesAnalytics {
	a := models.SalesAnalytics{
		TotalOrders:            len(orders),
		TopProducts:            BestSellers(orders, topN),
		RevenueByPaymentMethod: map[models.PaymentMethod]float64{},
		DailySales:             []models.DailySales{},
	}

	days := map[string]*models.DailySales{}
	for _, o := range orders {
		a.TotalRevenue += o.Total
		a.RevenueByPaymentMethod[o.PaymentMethod] += o.Total

		date := o.CreatedAt.Format(time.DateOnly)
		d, ok := days[date]
		if !ok {
			d = &models.DailySales{Date: date}
			days[date] = d
		}
		d.Revenue += o.Total
		d.Orders++
	}
	if len(orders) > 0 {
		a.AverageOrderValue = a.TotalRevenue / float64(len(orders))
	}

	for _, d := range days {
		a.DailySales = append(a.DailySales, *d)
	}
	sort.Slice(a.DailySales, func(i, j int) bool { return a.DailySales[i].Date < a.DailySales[j].Date })
	return a
}

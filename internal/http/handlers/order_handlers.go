package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
)

// parseTimeParam reads an RFC3339 query parameter.
func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	// Query parsing turns the '+' of a zone offset into a space.
	// Example: 2025-07-03T17:44:03+02:00 arrives as 2025-07-03T17:44:03 02:00
	if len(s) == len(time.RFC3339) && s[len(s)-6] == ' ' {
		s = s[:len(s)-6] + "+" + s[len(s)-5:]
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date format", name)
	}
	return &ts, nil
}

type orderFilter struct {
	Since  *time.Time
	Until  *time.Time
	Method models.PaymentMethod
}

func parseOrderFilter(r *http.Request) (orderFilter, error) {
	var f orderFilter
	var err error
	if f.Since, err = parseTimeParam(r, "since"); err != nil {
		return f, err
	}
	if f.Until, err = parseTimeParam(r, "until"); err != nil {
		return f, err
	}
	if m := r.URL.Query().Get("method"); m != "" {
		if f.Method, err = models.ParsePaymentMethod(m); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (f orderFilter) apply(orders []models.Order) []models.Order {
	out := []models.Order{}
	for _, o := range orders {
		if f.Since != nil && o.CreatedAt.Before(*f.Since) {
			continue
		}
		if f.Until != nil && o.CreatedAt.After(*f.Until) {
			continue
		}
		if f.Method != "" && o.PaymentMethod != f.Method {
			continue
		}
		out = append(out, o)
	}
	return out
}

// GetOrdersHandler godoc
// @Summary List orders, newest first
// @Tags orders
// @Produce json
// @Param since query string false "Orders created from this timestamp (RFC3339)"
// @Param until query string false "Orders created until this timestamp (RFC3339)"
// @Param method query string false "Payment method"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} OrdersSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /orders [get]
func GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseOrderFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	limit, offset := parseIntPtr(q.Get("limit")), parseIntPtr(q.Get("offset"))
	if limit != nil && *limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}
	if offset != nil && *offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	orders, err := orderRepo.Orders(r.Context())
	if err != nil {
		httpError(w, err, "could not retrieve orders")
		return
	}

	matched := filter.apply(orders)
	total := len(matched)
	start, end := 0, total
	if offset != nil {
		start = min(*offset, total)
	}
	if limit != nil {
		end = start + min(*limit, total-start)
	}

	respond(w, http.StatusOK, OrdersSearchResult{
		Data: matched[start:end],
		Meta: Meta{TotalCount: total},
	})
}

// ExportOrdersHandler godoc
// @Summary Export the order log
// @Description The CSV export has one row per order line
// @Tags orders
// @Produce text/csv, application/json
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Param method query string false "Payment method"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /orders/export [get]
func ExportOrdersHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	filter, err := parseOrderFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	orders, err := orderRepo.Orders(r.Context())
	if err != nil {
		httpError(w, err, "could not retrieve orders")
		return
	}
	orders = filter.apply(orders)

	switch format {
	case "json":
		w.Header().Set("Content-Disposition", `attachment; filename="orders.json"`)
		respond(w, http.StatusOK, orders)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{
			"order_id", "created_at", "payment_method", "payment_status", "transaction_id",
			"customer_name", "product_id", "product_name", "quantity", "price", "line_total", "order_total",
		})
		for _, o := range orders {
			for _, item := range o.Items {
				_ = csvWriter.Write([]string{
					o.ID,
					o.CreatedAt.Format(time.RFC3339),
					string(o.PaymentMethod),
					string(o.PaymentStatus),
					o.TransactionID,
					o.CustomerName,
					item.ProductID,
					item.ProductName,
					strconv.Itoa(item.Quantity),
					strconv.FormatFloat(item.Price, 'f', 2, 64),
					strconv.FormatFloat(item.Total, 'f', 2, 64),
					strconv.FormatFloat(o.Total, 'f', 2, 64),
				})
			}
		}
		csvWriter.Flush()
	}
}

// GetAlertsHandler godoc
// @Summary Current low-stock alerts
// @Tags inventory
// @Produce json
// @Success 200 {array} models.InventoryAlert
// @Failure 500 {string} string "Internal error"
// @Router /alerts [get]
func GetAlertsHandler(w http.ResponseWriter, r *http.Request) {
	alerts, err := alertRepo.Alerts(r.Context())
	if err != nil {
		httpError(w, err, "could not fetch alerts")
		return
	}
	respond(w, http.StatusOK, alerts)
}

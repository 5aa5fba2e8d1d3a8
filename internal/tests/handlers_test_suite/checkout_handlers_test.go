package handlers_test_suite

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/kirana-pos/internal/http"
	handler "github.com/rogerio-castellano/kirana-pos/internal/http/handlers"
	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/rogerio-castellano/kirana-pos/internal/pos"
)

func riceLine(qty int) []pos.CartLine {
	return []pos.CartLine{{ProductID: "1", Quantity: qty}}
}

func TestCheckoutHandler_Cash(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := checkout(r, handler.CheckoutRequest{
		Items:         riceLine(2),
		PaymentMethod: "cash",
		CustomerName:  "Ram",
		CustomerPhone: "9841000000",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	receipt := decode[pos.Receipt](t, w)
	if receipt.Order.Subtotal != 300 || receipt.Order.Tax != 39 || receipt.Order.Total != 339 {
		t.Errorf("expected 300 + 39 = 339, got %v + %v = %v",
			receipt.Order.Subtotal, receipt.Order.Tax, receipt.Order.Total)
	}
	if receipt.Order.PaymentStatus != models.PaymentCompleted {
		t.Errorf("expected completed payment, got %s", receipt.Order.PaymentStatus)
	}
	if len(receipt.Messages) != 1 || receipt.Messages[0].Type != models.MessageOrderConfirmation {
		t.Errorf("expected one order confirmation, got %+v", receipt.Messages)
	}

	rice := decode[handler.ProductResponse](t, doJSON(r, http.MethodGet, "/products/1", nil))
	if rice.Stock != 48 {
		t.Errorf("expected rice stock 48, got %d", rice.Stock)
	}
}

func TestCheckoutHandler_Digital(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := checkout(r, handler.CheckoutRequest{
		Items:         []pos.CartLine{{ProductID: "3", Quantity: 1}},
		PaymentMethod: "esewa",
		CustomerPhone: "9841000000",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	receipt := decode[pos.Receipt](t, w)
	if !strings.HasPrefix(receipt.Order.TransactionID, "ESW") {
		t.Errorf("expected an eSewa transaction id, got %q", receipt.Order.TransactionID)
	}
	if len(receipt.Messages) != 2 || receipt.Messages[1].Type != models.MessagePaymentReceipt {
		t.Errorf("expected confirmation and receipt, got %+v", receipt.Messages)
	}
}

func TestCheckoutHandler_ConnectIPS(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := checkout(r, handler.CheckoutRequest{Items: riceLine(1), PaymentMethod: "connectips"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a bank, got %d", w.Code)
	}

	w = checkout(r, handler.CheckoutRequest{Items: riceLine(1), PaymentMethod: "connectips", Bank: "XYZ"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown bank, got %d", w.Code)
	}

	w = checkout(r, handler.CheckoutRequest{Items: riceLine(1), PaymentMethod: "connectips", Bank: "nabil"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	receipt := decode[pos.Receipt](t, w)
	if !strings.HasPrefix(receipt.Order.TransactionID, "CIPS") {
		t.Errorf("expected a ConnectIPS transaction id, got %q", receipt.Order.TransactionID)
	}
}

func TestCheckoutHandler_PaymentFailed(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	paymentsFail = true

	w := checkout(r, handler.CheckoutRequest{Items: riceLine(2), PaymentMethod: "khalti"})
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", w.Code)
	}

	rice := decode[handler.ProductResponse](t, doJSON(r, http.MethodGet, "/products/1", nil))
	if rice.Stock != 50 {
		t.Errorf("expected stock untouched at 50, got %d", rice.Stock)
	}
	orders := decode[handler.OrdersSearchResult](t, doJSON(r, http.MethodGet, "/orders", nil))
	if orders.Meta.TotalCount != 0 {
		t.Errorf("expected no stored orders, got %d", orders.Meta.TotalCount)
	}
}

func TestCheckoutHandler_Rejections(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	tests := []struct {
		name string
		req  handler.CheckoutRequest
		code int
	}{
		{"empty cart", handler.CheckoutRequest{PaymentMethod: "cash"}, http.StatusBadRequest},
		{"unknown method", handler.CheckoutRequest{Items: riceLine(1), PaymentMethod: "bitcoin"}, http.StatusBadRequest},
		{"zero quantity", handler.CheckoutRequest{Items: riceLine(0)}, http.StatusBadRequest},
		{"unknown product", handler.CheckoutRequest{Items: []pos.CartLine{{ProductID: "999", Quantity: 1}}}, http.StatusNotFound},
		{"not enough stock", handler.CheckoutRequest{Items: []pos.CartLine{{ProductID: "5", Quantity: 9}}}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := checkout(r, tt.req); w.Code != tt.code {
				t.Errorf("expected %d, got %d: %s", tt.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestOrdersHandler_ListAndExport(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	if w := checkout(r, handler.CheckoutRequest{Items: riceLine(2), PaymentMethod: "cash", CustomerName: "Ram"}); w.Code != http.StatusCreated {
		t.Fatalf("cash checkout failed: %d", w.Code)
	}
	if w := checkout(r, handler.CheckoutRequest{
		Items:         []pos.CartLine{{ProductID: "3", Quantity: 1}, {ProductID: "4", Quantity: 2}},
		PaymentMethod: "fonepay",
	}); w.Code != http.StatusCreated {
		t.Fatalf("fonepay checkout failed: %d", w.Code)
	}

	list := decode[handler.OrdersSearchResult](t, doJSON(r, http.MethodGet, "/orders", nil))
	if list.Meta.TotalCount != 2 {
		t.Fatalf("expected 2 orders, got %d", list.Meta.TotalCount)
	}

	cashOnly := decode[handler.OrdersSearchResult](t, doJSON(r, http.MethodGet, "/orders?method=cash", nil))
	if cashOnly.Meta.TotalCount != 1 || cashOnly.Data[0].CustomerName != "Ram" {
		t.Errorf("expected Ram's cash order only, got %+v", cashOnly)
	}

	paged := decode[handler.OrdersSearchResult](t, doJSON(r, http.MethodGet, "/orders?limit=1", nil))
	if len(paged.Data) != 1 || paged.Meta.TotalCount != 2 {
		t.Errorf("expected one order of two, got %d of %d", len(paged.Data), paged.Meta.TotalCount)
	}

	huge := doJSON(r, http.MethodGet, "/orders?offset=1&limit=9223372036854775807", nil)
	if huge.Code != http.StatusOK {
		t.Fatalf("expected 200 OK for a huge limit, got %d", huge.Code)
	}
	if tail := decode[handler.OrdersSearchResult](t, huge); len(tail.Data) != 1 || tail.Meta.TotalCount != 2 {
		t.Errorf("expected the last of two orders, got %d of %d", len(tail.Data), tail.Meta.TotalCount)
	}

	if w := doJSON(r, http.MethodGet, "/orders?since=yesterday", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad since date, got %d", w.Code)
	}

	w := doJSON(r, http.MethodGet, "/orders/export?format=csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}
	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("error reading csv: %v", err)
	}
	// header plus one row per order line
	if len(rows) != 4 {
		t.Errorf("expected 4 csv rows, got %d", len(rows))
	}

	w = doJSON(r, http.MethodGet, "/orders/export?format=json", nil)
	exported := decode[[]models.Order](t, w)
	if len(exported) != 2 {
		t.Errorf("expected 2 exported orders, got %d", len(exported))
	}

	if w := doJSON(r, http.MethodGet, "/orders/export?format=xml", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an unknown format, got %d", w.Code)
	}
}

func TestAlertsHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	alerts := decode[[]models.InventoryAlert](t, doJSON(r, http.MethodGet, "/alerts", nil))
	if len(alerts) != 2 {
		t.Fatalf("expected alerts for lentils and tea, got %+v", alerts)
	}

	// Selling four tea leaves leaves 4 of a minimum of 10.
	if w := checkout(r, handler.CheckoutRequest{Items: []pos.CartLine{{ProductID: "5", Quantity: 4}}}); w.Code != http.StatusCreated {
		t.Fatalf("checkout failed: %d", w.Code)
	}
	alerts = decode[[]models.InventoryAlert](t, doJSON(r, http.MethodGet, "/alerts", nil))
	for _, a := range alerts {
		if a.ProductID == "5" && a.Severity != models.SeverityCritical {
			t.Errorf("expected tea to be critical, got %s", a.Severity)
		}
	}
}

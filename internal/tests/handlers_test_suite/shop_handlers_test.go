package handlers_test_suite

import (
	"net/http"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/kirana-pos/internal/http"
	handler "github.com/rogerio-castellano/kirana-pos/internal/http/handlers"
	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/rogerio-castellano/kirana-pos/internal/payment"
	"github.com/rogerio-castellano/kirana-pos/internal/pos"
	"github.com/rogerio-castellano/kirana-pos/internal/repo"
)

func TestCustomerHandlers(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	empty := decode[[]models.Customer](t, doJSON(r, http.MethodGet, "/customers", nil))
	if len(empty) != 0 {
		t.Fatalf("expected no customers, got %d", len(empty))
	}

	w := doJSON(r, http.MethodPost, "/customers", handler.CustomerRequest{Name: "Sita", Phone: "9851000000", Credit: 1200})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	sita := decode[models.Customer](t, w)

	w = doJSON(r, http.MethodPost, "/customers", handler.CustomerRequest{Name: "Hari"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a phone, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPatch, "/customers/"+sita.ID, map[string]any{"credit": 500})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if updated := decode[models.Customer](t, w); updated.Credit != 500 || updated.Phone != "9851000000" {
		t.Errorf("expected credit 500 with phone kept, got %+v", updated)
	}

	w = doJSON(r, http.MethodPost, "/customers/"+sita.ID+"/remind", nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 Accepted, got %d", w.Code)
	}
	msg := decode[models.Message](t, w)
	if msg.To != "9851000000" || msg.Type != models.MessagePaymentReminder {
		t.Errorf("unexpected reminder %+v", msg)
	}
	if !strings.Contains(msg.Body, "Rs 500") {
		t.Errorf("expected reminder to mention Rs 500, got %q", msg.Body)
	}

	list := decode[[]models.Customer](t, doJSON(r, http.MethodGet, "/customers", nil))
	if len(list) != 1 {
		t.Errorf("expected 1 customer, got %d", len(list))
	}

	if w := doJSON(r, http.MethodPost, "/customers/nobody/remind", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown customer, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPatch, "/customers/nobody", map[string]any{"credit": 1}); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown customer, got %d", w.Code)
	}
}

func TestInsightHandlers(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	preds := decode[[]models.SalesPrediction](t, doJSON(r, http.MethodGet, "/insights/predictions", nil))
	if len(preds) != 8 {
		t.Fatalf("expected a prediction per product, got %d", len(preds))
	}

	reorder := decode[[]models.SalesPrediction](t, doJSON(r, http.MethodGet, "/insights/reorder", nil))
	ids := map[string]bool{}
	for _, p := range reorder {
		ids[p.ProductID] = true
	}
	if !ids["2"] || !ids["5"] {
		t.Errorf("expected lentils and tea in reorder suggestions, got %v", ids)
	}

	w := doJSON(r, http.MethodPost, "/insights/reorder/5/notify", nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 Accepted, got %d", w.Code)
	}
	msg := decode[models.Message](t, w)
	if msg.To != "Tea Estate" || msg.Type != models.MessageReorderSuggestion {
		t.Errorf("unexpected reorder message %+v", msg)
	}
	if w := doJSON(r, http.MethodPost, "/insights/reorder/999/notify", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	if w := checkout(r, handler.CheckoutRequest{Items: []pos.CartLine{{ProductID: "1", Quantity: 2}}}); w.Code != http.StatusCreated {
		t.Fatalf("checkout failed: %d", w.Code)
	}
	if w := checkout(r, handler.CheckoutRequest{Items: []pos.CartLine{{ProductID: "3", Quantity: 2}}, PaymentMethod: "khalti"}); w.Code != http.StatusCreated {
		t.Fatalf("checkout failed: %d", w.Code)
	}

	best := decode[[]models.BestSeller](t, doJSON(r, http.MethodGet, "/insights/best-sellers?limit=1", nil))
	if len(best) != 1 || best[0].ProductID != "3" || best[0].Revenue != 500 {
		t.Errorf("expected cooking oil with Rs 500 on top, got %+v", best)
	}
	if w := doJSON(r, http.MethodGet, "/insights/best-sellers?limit=0", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for limit 0, got %d", w.Code)
	}

	analytics := decode[models.SalesAnalytics](t, doJSON(r, http.MethodGet, "/insights/analytics", nil))
	if analytics.TotalOrders != 2 {
		t.Errorf("expected 2 orders, got %d", analytics.TotalOrders)
	}
	if analytics.RevenueByPaymentMethod[models.PaymentKhalti] != 565 {
		t.Errorf("expected Rs 565 via Khalti, got %v", analytics.RevenueByPaymentMethod[models.PaymentKhalti])
	}
	if len(analytics.DailySales) != 1 || analytics.DailySales[0].Date != "2025-03-10" {
		t.Errorf("expected one day of sales, got %+v", analytics.DailySales)
	}
}

func TestPaymentHandlers(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/payments/initiate", handler.InitiatePaymentRequest{Gateway: "esewa", Amount: 339, OrderID: "ORD-1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	esewa := decode[payment.Initiation](t, w)
	if esewa.MerchantID != "KIRANA123" || !strings.HasPrefix(esewa.QRData, "esewa://pay?") {
		t.Errorf("unexpected eSewa initiation %+v", esewa)
	}

	w = doJSON(r, http.MethodPost, "/payments/initiate", handler.InitiatePaymentRequest{Gateway: "connectips", Amount: 339, OrderID: "ORD-1"})
	cips := decode[payment.Initiation](t, w)
	if len(cips.Banks) != len(payment.ConnectIPSBanks) || cips.QRData != "" {
		t.Errorf("expected bank list without QR, got %+v", cips)
	}

	for name, req := range map[string]handler.InitiatePaymentRequest{
		"cash is not a gateway": {Gateway: "cash", Amount: 10, OrderID: "ORD-1"},
		"zero amount":           {Gateway: "khalti", Amount: 0, OrderID: "ORD-1"},
		"missing order":         {Gateway: "khalti", Amount: 10},
	} {
		if w := doJSON(r, http.MethodPost, "/payments/initiate", req); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, w.Code)
		}
	}

	w = doJSON(r, http.MethodPost, "/payments/verify", handler.VerifyPaymentRequest{TransactionID: esewa.TransactionID, Gateway: "esewa"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	res := decode[payment.Result](t, w)
	if !res.Success || res.Message != "Payment verified via eSewa" {
		t.Errorf("unexpected verification %+v", res)
	}

	paymentsFail = true
	res = decode[payment.Result](t, doJSON(r, http.MethodPost, "/payments/verify", handler.VerifyPaymentRequest{TransactionID: esewa.TransactionID, Gateway: "esewa"}))
	if res.Success {
		t.Error("expected verification to fail")
	}

	paymentsFail = false
	w = doJSON(r, http.MethodPost, "/payments/process", handler.ProcessPaymentRequest{Method: "khalti", Amount: 250})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	processed := decode[payment.Result](t, w)
	if !processed.Success || !strings.HasPrefix(processed.TransactionID, "TXN") ||
		processed.Message != "Payment of Rs 250.00 successful via KHALTI" {
		t.Errorf("unexpected processed payment %+v", processed)
	}

	paymentsFail = true
	processed = decode[payment.Result](t, doJSON(r, http.MethodPost, "/payments/process", handler.ProcessPaymentRequest{Method: "khalti", Amount: 250}))
	if processed.Success || processed.TransactionID != "" {
		t.Errorf("expected a declined payment, got %+v", processed)
	}

	for name, req := range map[string]handler.ProcessPaymentRequest{
		"cash is not a gateway": {Method: "cash", Amount: 10},
		"zero amount":           {Method: "esewa", Amount: 0},
	} {
		if w := doJSON(r, http.MethodPost, "/payments/process", req); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, w.Code)
		}
	}

	w = doJSON(r, http.MethodPost, "/payments/refund", handler.RefundRequest{TransactionID: esewa.TransactionID, Amount: 339})
	if refund := decode[handler.RefundResponse](t, w); !refund.Refunded {
		t.Errorf("expected refund, got %+v", refund)
	}

	w = doJSON(r, http.MethodGet, "/payments/instructions?method=bank&amount=100", nil)
	instr := decode[handler.InstructionsResponse](t, w)
	if !strings.Contains(instr.Instructions, "0123456789") || !strings.Contains(instr.Instructions, "Rs 100.00") {
		t.Errorf("unexpected bank instructions %q", instr.Instructions)
	}
	if w := doJSON(r, http.MethodGet, "/payments/instructions?method=esewa&amount=abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad amount, got %d", w.Code)
	}
}

func TestBarcodeHandlers(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/barcode/scan", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	scan := decode[handler.ScanResult](t, w)
	if !scan.Valid || scan.Product == nil || scan.Product.ID != "1" {
		t.Errorf("expected the rice barcode, got %+v", scan)
	}

	w = doJSON(r, http.MethodGet, "/barcode/8901234567891", nil)
	if p := decode[handler.ProductResponse](t, w); p.Name != "Cooking Oil" {
		t.Errorf("expected Cooking Oil, got %s", p.Name)
	}
	if w := doJSON(r, http.MethodGet, "/barcode/123", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a short code, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/barcode/1234567890123", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown code, got %d", w.Code)
	}
}

func TestScanBarcodeHandler_UnknownCodes(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	for _, code := range []string{"12345", "1234567890123"} {
		svc := newTestService(code)
		handler.SetPOSService(svc)

		scan := decode[handler.ScanResult](t, doJSON(r, http.MethodPost, "/barcode/scan", nil))
		if scan.Barcode != code || scan.Product != nil {
			t.Errorf("%s: unexpected scan %+v", code, scan)
		}
		if scan.Valid != (len(code) == 13) {
			t.Errorf("%s: expected valid=%v", code, len(code) == 13)
		}
		svc.Close()
	}
	handler.SetPOSService(posService)
}

func TestMetricsAndClearData(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	if w := checkout(r, handler.CheckoutRequest{Items: []pos.CartLine{{ProductID: "1", Quantity: 2}}}); w.Code != http.StatusCreated {
		t.Fatalf("checkout failed: %d", w.Code)
	}

	w := doJSON(r, http.MethodGet, "/metrics/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	m := decode[repo.Metrics](t, w)
	if m.TotalProducts != 8 || m.TotalOrders != 1 || m.TotalRevenue != 339 {
		t.Errorf("unexpected metrics %+v", m)
	}
	if m.LowStockCount != 2 {
		t.Errorf("expected 2 low stock products, got %d", m.LowStockCount)
	}

	if w := doJSON(r, http.MethodDelete, "/data", nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	m = decode[repo.Metrics](t, doJSON(r, http.MethodGet, "/metrics/dashboard", nil))
	if m.TotalOrders != 0 || m.TotalProducts != 8 {
		t.Errorf("expected no orders and a re-seeded catalogue, got %+v", m)
	}
	rice := decode[handler.ProductResponse](t, doJSON(r, http.MethodGet, "/products/1", nil))
	if rice.Stock != 50 {
		t.Errorf("expected rice stock back at 50, got %d", rice.Stock)
	}
}

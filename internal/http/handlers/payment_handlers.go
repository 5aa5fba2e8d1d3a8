package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/rogerio-castellano/kirana-pos/internal/payment"
)

func parseGateway(s string) (models.PaymentMethod, bool) {
	m, err := models.ParsePaymentMethod(s)
	if err != nil || !m.Digital() {
		return "", false
	}
	return m, true
}

// InitiatePaymentHandler godoc
// @Summary Start a gateway payment
// @Description Returns the merchant payload and, except for ConnectIPS, the QR string to show the customer
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body InitiatePaymentRequest true "Gateway and amount"
// @Success 201 {object} payment.Initiation
// @Failure 400 {string} string "Invalid input"
// @Router /payments/initiate [post]
func InitiatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req InitiatePaymentRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	gateway, ok := parseGateway(req.Gateway)
	if !ok {
		http.Error(w, "gateway must be one of esewa, khalti, fonepay, connectips", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "amount must be greater than zero", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.OrderID) == "" {
		http.Error(w, "order_id is required", http.StatusBadRequest)
		return
	}

	initiation, err := posService.Payments().Initiate(gateway, req.Amount, req.OrderID)
	if err != nil {
		httpError(w, err, "could not initiate payment")
		return
	}
	respond(w, http.StatusCreated, initiation)
}

// VerifyPaymentHandler godoc
// @Summary Verify a gateway transaction
// @Description A failed verification is reported in the body, not as an error status
// @Tags payments
// @Accept json
// @Produce json
// @Param verification body VerifyPaymentRequest true "Transaction to verify"
// @Success 200 {object} payment.Result
// @Failure 400 {string} string "Invalid input"
// @Router /payments/verify [post]
func VerifyPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req VerifyPaymentRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	gateway, ok := parseGateway(req.Gateway)
	if !ok {
		http.Error(w, "gateway must be one of esewa, khalti, fonepay, connectips", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.TransactionID) == "" {
		http.Error(w, "transaction_id is required", http.StatusBadRequest)
		return
	}

	res, err := posService.Payments().VerifyPayment(r.Context(), req.TransactionID, gateway)
	if err != nil {
		httpError(w, err, "could not verify payment")
		return
	}
	respond(w, http.StatusOK, res)
}

// ProcessPaymentHandler godoc
// @Summary Charge a gateway in one step
// @Description Skips the initiation payload. A declined payment is reported in the body
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body ProcessPaymentRequest true "Gateway and amount"
// @Success 200 {object} payment.Result
// @Failure 400 {string} string "Invalid input"
// @Router /payments/process [post]
func ProcessPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req ProcessPaymentRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	method, ok := parseGateway(req.Method)
	if !ok {
		http.Error(w, "method must be one of esewa, khalti, fonepay, connectips", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "amount must be greater than zero", http.StatusBadRequest)
		return
	}

	res, err := posService.Payments().ProcessPayment(r.Context(), req.Amount, method)
	if err != nil {
		httpError(w, err, "could not process payment")
		return
	}
	respond(w, http.StatusOK, res)
}

// RefundPaymentHandler godoc
// @Summary Refund a gateway transaction
// @Tags payments
// @Accept json
// @Produce json
// @Param refund body RefundRequest true "Transaction and amount"
// @Success 200 {object} RefundResponse
// @Failure 400 {string} string "Invalid input"
// @Router /payments/refund [post]
func RefundPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req RefundRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.TransactionID) == "" || req.Amount <= 0 {
		http.Error(w, "transaction_id and a positive amount are required", http.StatusBadRequest)
		return
	}

	ok, err := posService.Payments().Refund(r.Context(), req.TransactionID, req.Amount)
	if err != nil {
		httpError(w, err, "could not refund payment")
		return
	}
	respond(w, http.StatusOK, RefundResponse{TransactionID: req.TransactionID, Refunded: ok})
}

// PaymentInstructionsHandler godoc
// @Summary Customer-facing payment steps
// @Tags payments
// @Produce json
// @Param method query string true "esewa, khalti, fonepay, bank or connectips"
// @Param amount query number true "Amount in rupees"
// @Success 200 {object} InstructionsResponse
// @Failure 400 {string} string "Invalid amount"
// @Router /payments/instructions [get]
func PaymentInstructionsHandler(w http.ResponseWriter, r *http.Request) {
	method := strings.ToLower(r.URL.Query().Get("method"))
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || amount < 0 {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}
	respond(w, http.StatusOK, InstructionsResponse{
		Method:       method,
		Instructions: payment.Instructions(method, amount),
	})
}

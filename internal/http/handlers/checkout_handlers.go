package handlers

import (
	"net/http"
	"strings"

	"github.com/rogerio-castellano/kirana-pos/internal/payment"
	"github.com/rogerio-castellano/kirana-pos/internal/pos"
)

// CheckoutHandler godoc
// @Summary Sell a cart
// @Description Gateway payments are verified before the order is stored. Stock is decremented together with the order.
// @Tags checkout
// @Accept json
// @Produce json
// @Param checkout body CheckoutRequest true "Cart lines and payment"
// @Success 201 {object} pos.Receipt
// @Failure 400 {array} ValidationError
// @Failure 402 {string} string "Payment failed"
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Not enough stock"
// @Failure 500 {string} string "Internal error"
// @Router /checkout [post]
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	method, validationErrors := validateCheckout(req)
	if len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	cart, err := posService.CartFromLines(r.Context(), req.Items)
	if err != nil {
		httpError(w, err, "could not build cart")
		return
	}

	receipt, err := posService.Checkout(r.Context(), cart, pos.CheckoutRequest{
		PaymentMethod: method,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Bank:          strings.ToUpper(strings.TrimSpace(req.Bank)),
	})
	if err != nil {
		httpError(w, err, "checkout failed")
		return
	}
	respond(w, http.StatusCreated, receipt)
}

// GetBanksHandler godoc
// @Summary Banks available through ConnectIPS
// @Tags payments
// @Produce json
// @Success 200 {array} payment.Bank
// @Router /payments/banks [get]
func GetBanksHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, payment.ConnectIPSBanks)
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/rogerio-castellano/kirana-pos/internal/payment"
	"github.com/rogerio-castellano/kirana-pos/internal/pos"
	repo "github.com/rogerio-castellano/kirana-pos/internal/repo"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, repo.ErrProductNotFound),
		errors.Is(err, repo.ErrCustomerNotFound):
		return http.StatusNotFound

	case errors.Is(err, repo.ErrInvalidProduct),
		errors.Is(err, repo.ErrInvalidCustomer),
		errors.Is(err, pos.ErrEmptyCart),
		errors.Is(err, pos.ErrInvalidQuantity),
		errors.Is(err, pos.ErrInvalidBarcode),
		errors.Is(err, pos.ErrNoSupplier),
		errors.Is(err, pos.ErrNoPhone),
		errors.Is(err, payment.ErrUnknownGateway),
		errors.Is(err, payment.ErrBankRequired),
		errors.Is(err, payment.ErrUnknownBank):
		return http.StatusBadRequest

	case errors.Is(err, pos.ErrOutOfStock),
		errors.Is(err, pos.ErrNotEnoughStock),
		errors.Is(err, repo.ErrInsufficientStock),
		errors.Is(err, repo.ErrInvalidStockChange),
		errors.Is(err, repo.ErrDuplicateProduct):
		return http.StatusConflict

	case errors.Is(err, pos.ErrPaymentFailed):
		return http.StatusPaymentRequired
	}
	return http.StatusInternalServerError
}

// httpError writes err for client errors and fallback, after logging err, for
// everything else.
func httpError(w http.ResponseWriter, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ %s: %v", fallback, err)
		http.Error(w, fallback, status)
		return
	}
	http.Error(w, err.Error(), status)
}

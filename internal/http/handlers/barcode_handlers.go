package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/kirana-pos/internal/notify"
	"github.com/rogerio-castellano/kirana-pos/internal/pos"
	repo "github.com/rogerio-castellano/kirana-pos/internal/repo"
)

// ScanBarcodeHandler godoc
// @Summary Trigger the counter scanner
// @Description Returns the scanned code and, when it matches the catalogue, its product
// @Tags barcode
// @Produce json
// @Success 200 {object} ScanResult
// @Failure 500 {string} string "Internal error"
// @Router /barcode/scan [post]
func ScanBarcodeHandler(w http.ResponseWriter, r *http.Request) {
	code, product, err := posService.Scan(r.Context())
	switch {
	case err == nil:
		resp := toProductResponse(product)
		respond(w, http.StatusOK, ScanResult{Barcode: code, Valid: true, Product: &resp})
	case errors.Is(err, pos.ErrInvalidBarcode):
		respond(w, http.StatusOK, ScanResult{Barcode: code})
	case errors.Is(err, repo.ErrProductNotFound):
		respond(w, http.StatusOK, ScanResult{Barcode: code, Valid: true})
	default:
		httpError(w, err, "scan failed")
	}
}

// LookupBarcodeHandler godoc
// @Summary Find a product by its barcode
// @Tags barcode
// @Produce json
// @Param code path string true "EAN-13 barcode"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid barcode"
// @Failure 404 {string} string "Not found"
// @Router /barcode/{code} [get]
func LookupBarcodeHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !notify.IsValidBarcode(code) {
		http.Error(w, "barcode must be 13 digits", http.StatusBadRequest)
		return
	}
	product, err := productRepo.ProductByBarcode(r.Context(), code)
	if err != nil {
		httpError(w, err, "could not look up barcode")
		return
	}
	respond(w, http.StatusOK, toProductResponse(product))
}

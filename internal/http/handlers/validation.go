package handlers

import (
	"strings"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/rogerio-castellano/kirana-pos/internal/notify"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	if p.Price < 0 {
		errs = append(errs, ValidationError{Field: "Price", Description: "Price cannot be negative"})
	}
	if p.Stock < 0 {
		errs = append(errs, ValidationError{Field: "Stock", Description: "Stock cannot be negative"})
	}
	if p.MinStock < 0 {
		errs = append(errs, ValidationError{Field: "MinStock", Description: "Minimum stock cannot be negative"})
	}
	if p.MaxStock < p.MinStock {
		errs = append(errs, ValidationError{Field: "MaxStock", Description: "Maximum stock cannot be below minimum stock"})
	}
	if p.Barcode != "" && !notify.IsValidBarcode(p.Barcode) {
		errs = append(errs, ValidationError{Field: "Barcode", Description: "Barcode must be 13 digits"})
	}
	return errs
}

func validateCustomer(c CustomerRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	if strings.TrimSpace(c.Phone) == "" {
		errs = append(errs, ValidationError{Field: "Phone", Description: "Phone is required"})
	}
	return errs
}

func validateCheckout(req CheckoutRequest) (models.PaymentMethod, []ValidationError) {
	errs := []ValidationError{}
	if len(req.Items) == 0 {
		errs = append(errs, ValidationError{Field: "Items", Description: "Cart is empty"})
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ValidationError{Field: "Items", Description: "Quantity must be positive for product " + item.ProductID})
		}
	}

	method := models.PaymentCash
	if req.PaymentMethod != "" {
		m, err := models.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			errs = append(errs, ValidationError{Field: "PaymentMethod", Description: err.Error()})
		}
		method = m
	}
	if method == models.PaymentConnectIPS && req.Bank == "" {
		errs = append(errs, ValidationError{Field: "Bank", Description: "Bank is required for ConnectIPS"})
	}
	return method, errs
}

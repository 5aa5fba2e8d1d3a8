package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/kirana-pos/internal/models"
	repo "github.com/rogerio-castellano/kirana-pos/internal/repo"
)

// GetCustomersHandler godoc
// @Summary List credit customers
// @Tags customers
// @Produce json
// @Success 200 {array} models.Customer
// @Failure 500 {string} string "Internal error"
// @Router /customers [get]
func GetCustomersHandler(w http.ResponseWriter, r *http.Request) {
	customers, err := customerRepo.Customers(r.Context())
	if err != nil {
		httpError(w, err, "could not fetch customers")
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	respond(w, http.StatusOK, customers)
}

// CreateCustomerHandler godoc
// @Summary Register a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body CustomerRequest true "Customer to add"
// @Success 201 {object} models.Customer
// @Failure 400 {array} ValidationError
// @Failure 500 {string} string "Internal error"
// @Router /customers [post]
func CreateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := validateCustomer(req); len(errs) > 0 {
		respond(w, http.StatusBadRequest, errs)
		return
	}

	created, err := customerRepo.AddCustomer(r.Context(), models.Customer{
		Name:   strings.TrimSpace(req.Name),
		Phone:  strings.TrimSpace(req.Phone),
		Credit: req.Credit,
	})
	if err != nil {
		httpError(w, err, "could not create customer")
		return
	}
	respond(w, http.StatusCreated, created)
}

// UpdateCustomerHandler godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body repo.CustomerPatch true "Fields to change"
// @Success 200 {object} models.Customer
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Router /customers/{id} [patch]
func UpdateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var patch repo.CustomerPatch
	if err := readJSON(w, r, &patch); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	updated, err := customerRepo.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		httpError(w, err, "could not update customer")
		return
	}
	respond(w, http.StatusOK, updated)
}

// RemindCustomerHandler godoc
// @Summary Send a credit payment reminder
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 202 {object} models.Message
// @Failure 400 {string} string "Customer has no phone"
// @Failure 404 {string} string "Not found"
// @Router /customers/{id}/remind [post]
func RemindCustomerHandler(w http.ResponseWriter, r *http.Request) {
	msg, err := posService.SendPaymentReminder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err, "could not send reminder")
		return
	}
	respond(w, http.StatusAccepted, msg)
}

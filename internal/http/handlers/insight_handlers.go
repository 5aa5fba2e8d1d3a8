package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/kirana-pos/internal/forecast"
	"github.com/rogerio-castellano/kirana-pos/internal/models"
)

const defaultBestSellers = 5

func catalogueAndOrders(ctx context.Context) ([]models.Product, []models.Order, error) {
	products, err := productRepo.Products(ctx)
	if err != nil {
		return nil, nil, err
	}
	orders, err := orderRepo.Orders(ctx)
	if err != nil {
		return nil, nil, err
	}
	return products, orders, nil
}

// GetPredictionsHandler godoc
// @Summary Demand prediction for every product, most urgent first
// @Tags insights
// @Produce json
// @Success 200 {array} models.SalesPrediction
// @Failure 500 {string} string "Internal error"
// @Router /insights/predictions [get]
func GetPredictionsHandler(w http.ResponseWriter, r *http.Request) {
	products, orders, err := catalogueAndOrders(r.Context())
	if err != nil {
		httpError(w, err, "could not compute predictions")
		return
	}
	respond(w, http.StatusOK, posService.Forecaster().PredictDemand(products, orders))
}

// GetReorderSuggestionsHandler godoc
// @Summary Products that should be reordered
// @Tags insights
// @Produce json
// @Success 200 {array} models.SalesPrediction
// @Failure 500 {string} string "Internal error"
// @Router /insights/reorder [get]
func GetReorderSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	products, orders, err := catalogueAndOrders(r.Context())
	if err != nil {
		httpError(w, err, "could not compute reorder suggestions")
		return
	}
	respond(w, http.StatusOK, posService.Forecaster().ReorderSuggestions(products, orders))
}

// NotifySupplierHandler godoc
// @Summary Message the supplier with a reorder suggestion
// @Tags insights
// @Produce json
// @Param id path string true "Product ID"
// @Success 202 {object} models.Message
// @Failure 400 {string} string "Product has no supplier"
// @Failure 404 {string} string "Not found"
// @Router /insights/reorder/{id}/notify [post]
func NotifySupplierHandler(w http.ResponseWriter, r *http.Request) {
	msg, err := posService.SendReorderAlert(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err, "could not send reorder alert")
		return
	}
	respond(w, http.StatusAccepted, msg)
}

// GetBestSellersHandler godoc
// @Summary Top products by revenue
// @Tags insights
// @Produce json
// @Param limit query int false "Number of products (default 5)"
// @Success 200 {array} models.BestSeller
// @Failure 400 {string} string "Invalid limit"
// @Failure 500 {string} string "Internal error"
// @Router /insights/best-sellers [get]
func GetBestSellersHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultBestSellers
	if l := parseIntPtr(r.URL.Query().Get("limit")); l != nil {
		if *l <= 0 {
			http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
			return
		}
		limit = *l
	}

	orders, err := orderRepo.Orders(r.Context())
	if err != nil {
		httpError(w, err, "could not fetch orders")
		return
	}
	respond(w, http.StatusOK, forecast.BestSellers(orders, limit))
}

// GetAnalyticsHandler godoc
// @Summary Revenue summary over the order log
// @Tags insights
// @Produce json
// @Success 200 {object} models.SalesAnalytics
// @Failure 500 {string} string "Internal error"
// @Router /insights/analytics [get]
func GetAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := orderRepo.Orders(r.Context())
	if err != nil {
		httpError(w, err, "could not fetch orders")
		return
	}
	respond(w, http.StatusOK, forecast.Analytics(orders, defaultBestSellers))
}

package handlers

import (
	"log"
	"net/http"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics for the shop owner
// @Tags metrics
// @Produce json
// @Success 200 {object} repo.Metrics
// @Failure 500 {string} string "Internal error"
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := metricsRepo.DashboardMetrics(r.Context())
	if err != nil {
		http.Error(w, "failed to fetch metrics", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, m); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// ClearDataHandler godoc
// @Summary Remove every product, order and customer
// @Description The catalogue is re-seeded with the sample products on the next read
// @Tags admin
// @Success 204 "Cleared"
// @Failure 500 {string} string "Internal error"
// @Router /data [delete]
func ClearDataHandler(w http.ResponseWriter, r *http.Request) {
	if err := dataRepo.ClearAll(r.Context()); err != nil {
		httpError(w, err, "could not clear data")
		return
	}
	log.Println("🧹 All shop data cleared")
	w.WriteHeader(http.StatusNoContent)
}

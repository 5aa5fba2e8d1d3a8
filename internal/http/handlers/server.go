package handlers

import (
	"github.com/rogerio-castellano/kirana-pos/internal/pos"
	repo "github.com/rogerio-castellano/kirana-pos/internal/repo"
)

var (
	productRepo  repo.ProductRepository
	orderRepo    repo.OrderRepository
	customerRepo repo.CustomerRepository
	alertRepo    repo.AlertRepository
	metricsRepo  repo.MetricsRepository
	dataRepo     repo.DataRepository

	posService *pos.Service
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetOrderRepo(r repo.OrderRepository) {
	orderRepo = r
}

func SetCustomerRepo(r repo.CustomerRepository) {
	customerRepo = r
}

func SetAlertRepo(r repo.AlertRepository) {
	alertRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetDataRepo(r repo.DataRepository) {
	dataRepo = r
}

// SetStorage wires every repository to one Storage.
func SetStorage(s *repo.Storage) {
	SetProductRepo(s)
	SetOrderRepo(s)
	SetCustomerRepo(s)
	SetAlertRepo(s)
	SetMetricsRepo(s)
	SetDataRepo(s)
}

func SetPOSService(s *pos.Service) {
	posService = s
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/kirana-pos/internal/http/handlers"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RateLimitMiddleware)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/products", func(r chi.Router) {
		r.Get("/", handlers.GetProductsHandler)
		r.Post("/", handlers.CreateProductHandler)
		r.Post("/import", handlers.ImportProductsHandler)
		r.Get("/{id}", handlers.GetProductByIDHandler)
		r.Patch("/{id}", handlers.UpdateProductHandler)
		r.Delete("/{id}", handlers.DeleteProductHandler)
		r.Post("/{id}/adjust", handlers.AdjustStockHandler)
		r.Get("/{id}/insights", handlers.ProductInsightsHandler)
	})

	r.Get("/orders", handlers.GetOrdersHandler)
	r.Get("/orders/export", handlers.ExportOrdersHandler)
	r.Get("/alerts", handlers.GetAlertsHandler)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", handlers.GetCustomersHandler)
		r.Post("/", handlers.CreateCustomerHandler)
		r.Patch("/{id}", handlers.UpdateCustomerHandler)
		r.Post("/{id}/remind", handlers.RemindCustomerHandler)
	})

	r.Route("/insights", func(r chi.Router) {
		r.Get("/predictions", handlers.GetPredictionsHandler)
		r.Get("/reorder", handlers.GetReorderSuggestionsHandler)
		r.Post("/reorder/{id}/notify", handlers.NotifySupplierHandler)
		r.Get("/best-sellers", handlers.GetBestSellersHandler)
		r.Get("/analytics", handlers.GetAnalyticsHandler)
	})

	r.Post("/checkout", handlers.CheckoutHandler)

	r.Route("/payments", func(r chi.Router) {
		r.Post("/initiate", handlers.InitiatePaymentHandler)
		r.Post("/verify", handlers.VerifyPaymentHandler)
		r.Post("/process", handlers.ProcessPaymentHandler)
		r.Post("/refund", handlers.RefundPaymentHandler)
		r.Get("/instructions", handlers.PaymentInstructionsHandler)
		r.Get("/banks", handlers.GetBanksHandler)
	})

	r.Post("/barcode/scan", handlers.ScanBarcodeHandler)
	r.Get("/barcode/{code}", handlers.LookupBarcodeHandler)

	r.Get("/messages/stream", handlers.MessageStreamHandler)
	r.Get("/messages/{id}", handlers.GetMessageHandler)

	r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
	r.Delete("/data", handlers.ClearDataHandler)

	return r
}

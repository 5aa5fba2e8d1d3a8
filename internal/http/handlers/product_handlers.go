package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/kirana-pos/internal/forecast"
	"github.com/rogerio-castellano/kirana-pos/internal/models"
	repo "github.com/rogerio-castellano/kirana-pos/internal/repo"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the catalogue
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ValidationError
// @Failure 409 {string} string "Duplicated id"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := productRepo.AddProduct(r.Context(), models.Product{
		ID:         req.ID,
		Name:       strings.TrimSpace(req.Name),
		NameNepali: req.NameNepali,
		Category:   req.Category,
		Price:      req.Price,
		Stock:      req.Stock,
		Unit:       req.Unit,
		Barcode:    req.Barcode,
		MinStock:   req.MinStock,
		MaxStock:   req.MaxStock,
		Supplier:   req.Supplier,
	})
	if err != nil {
		httpError(w, err, "could not create product")
		return
	}

	respond(w, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List and filter products
// @Tags products
// @Produce json
// @Param name query string false "Match on English or Nepali name"
// @Param category query string false "Filter by category"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minStock query int false "Minimum stock"
// @Param maxStock query int false "Maximum stock"
// @Param lowStock query bool false "Only products at or below their minimum"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := productFilter{
		Name:     strings.ToLower(strings.TrimSpace(q.Get("name"))),
		Category: strings.TrimSpace(q.Get("category")),
		MinPrice: parseFloatPtr(q.Get("minPrice")),
		MaxPrice: parseFloatPtr(q.Get("maxPrice")),
		MinStock: parseIntPtr(q.Get("minStock")),
		MaxStock: parseIntPtr(q.Get("maxStock")),
		LowStock: q.Get("lowStock") == "true",
		Offset:   parseIntPtr(q.Get("offset")),
		Limit:    parseIntPtr(q.Get("limit")),
	}

	if filter.Limit != nil && *filter.Limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}
	if filter.Offset != nil && *filter.Offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	products, err := productRepo.Products(r.Context())
	if err != nil {
		httpError(w, err, "could not fetch products")
		return
	}

	page, total := filter.apply(products)
	respond(w, http.StatusOK, ProductsSearchResult{
		Data: toProductResponses(page),
		Meta: Meta{TotalCount: total},
	})
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := productRepo.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err, "could not fetch product")
		return
	}
	respond(w, http.StatusOK, toProductResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Only the fields present in the body are changed
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body repo.ProductPatch true "Fields to change"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [patch]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var patch repo.ProductPatch
	if err := readJSON(w, r, &patch); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	updated, err := productRepo.UpdateProduct(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		httpError(w, err, "could not update product")
		return
	}
	respond(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := productRepo.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err, "could not delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdjustStockHandler godoc
// @Summary Restock or write off a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param adjustment body StockAdjustmentRequest true "Stock change"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid adjustment"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Stock cannot become negative"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/adjust [post]
func AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	var req StockAdjustmentRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.Delta == 0 {
		http.Error(w, "delta must not be zero", http.StatusBadRequest)
		return
	}

	product, err := productRepo.AdjustStock(r.Context(), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		httpError(w, err, "could not update stock")
		return
	}

	if sev, ok := models.ClassifyStock(product.Stock, product.MinStock); ok {
		log.Printf("⚠️ ALERT: Product %s (%s) stock is %s! Stock=%d, Min=%d",
			product.ID, product.Name, sev, product.Stock, product.MinStock)
	}

	respond(w, http.StatusOK, toProductResponse(product))
}

// ProductInsightsHandler godoc
// @Summary Demand forecast and pricing hints for one product
// @Tags insights
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductInsights
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/insights [get]
func ProductInsightsHandler(w http.ResponseWriter, r *http.Request) {
	product, err := productRepo.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err, "could not fetch product")
		return
	}
	orders, err := orderRepo.Orders(r.Context())
	if err != nil {
		httpError(w, err, "could not fetch orders")
		return
	}

	f := posService.Forecaster()
	respond(w, http.StatusOK, ProductInsights{
		Product:            toProductResponse(product),
		Prediction:         f.PredictDemand([]models.Product{product}, orders)[0],
		PricingInsights:    forecast.PricingInsights(product, orders),
		OptimalReorderDate: f.OptimalReorderDate(product, orders).Format(time.RFC3339),
	})
}

type productFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
	MinStock *int
	MaxStock *int
	LowStock bool
	Offset   *int
	Limit    *int
}

func (f productFilter) match(p models.Product) bool {
	if f.Name != "" &&
		!strings.Contains(strings.ToLower(p.Name), f.Name) &&
		!strings.Contains(p.NameNepali, f.Name) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinStock != nil && p.Stock < *f.MinStock {
		return false
	}
	if f.MaxStock != nil && p.Stock > *f.MaxStock {
		return false
	}
	if f.LowStock && p.Stock > p.MinStock {
		return false
	}
	return true
}

// apply returns the requested page of matching products and the total match count.
func (f productFilter) apply(products []models.Product) ([]models.Product, int) {
	matched := []models.Product{}
	for _, p := range products {
		if f.match(p) {
			matched = append(matched, p)
		}
	}
	total := len(matched)

	start := 0
	if f.Offset != nil {
		start = min(*f.Offset, total)
	}
	end := total
	if f.Limit != nil {
		end = start + min(*f.Limit, total-start)
	}
	return matched[start:end], total
}

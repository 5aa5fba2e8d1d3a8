package handlers_test_suite

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/kirana-pos/internal/http"
	handler "github.com/rogerio-castellano/kirana-pos/internal/http/handlers"
)

func importCSV(r http.Handler, csvData, mode string) *httptest.ResponseRecorder {
	buf, contentType := multipartCSV(csvData, "products.csv")

	path := "/products/import"
	if mode != "" {
		path += "?mode=" + mode
	}
	req := httptest.NewRequest(http.MethodPost, path, buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportProductsHandler(t *testing.T) {
	r := api.NewRouter()

	t.Run("File with unique valid products", func(t *testing.T) {
		t.Cleanup(clearAll)
		csvData := `name,name_nepali,category,price,stock,unit,min_stock,max_stock,supplier
Instant Noodles,चाउचाउ,Snacks,25,40,packet,10,100,Wai Wai Traders
Biscuits,बिस्कुट,Snacks,20,30,packet,10,80,`

		w := importCSV(r, csvData, "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		resp := decode[handler.ImportProductsResult](t, w)
		if resp.ImportedProductsCount != 2 {
			t.Errorf("expected 2 imported products, got %d", resp.ImportedProductsCount)
		}
		if len(resp.Errors) != 0 {
			t.Errorf("expected no errors, got %v", resp.Errors)
		}

		list := decode[handler.ProductsSearchResult](t, doJSON(r, http.MethodGet, "/products?category=snacks", nil))
		if list.Meta.TotalCount != 2 {
			t.Errorf("expected 2 snacks in the catalogue, got %d", list.Meta.TotalCount)
		}
	})

	t.Run("File with one invalid product", func(t *testing.T) {
		t.Cleanup(clearAll)
		csvData := `name,category,price,stock,unit,min_stock,max_stock
Instant Noodles,Snacks,25,40,packet,10,100
Ghee,Dairy,-5,10,kg,1,5
Biscuits,Snacks,20,30,packet,10,80`

		w := importCSV(r, csvData, "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		resp := decode[handler.ImportProductsResult](t, w)
		if resp.ImportedProductsCount != 2 {
			t.Errorf("expected 2 imported products, got %d", resp.ImportedProductsCount)
		}
		if len(resp.Errors) != 1 {
			t.Fatalf("expected 1 error, got %v", resp.Errors)
		}
		if resp.Errors[0].Field != "row 3" || !strings.Contains(resp.Errors[0].Description, "price") {
			t.Errorf("unexpected error %+v", resp.Errors[0])
		}
	})

	t.Run("Existing product is skipped by default", func(t *testing.T) {
		t.Cleanup(clearAll)
		csvData := `name,category,price,stock,unit,min_stock,max_stock
sugar,Groceries,85,45,kg,25,100`

		resp := decode[handler.ImportProductsResult](t, importCSV(r, csvData, ""))
		if resp.ImportedProductsCount != 0 || len(resp.Errors) != 1 {
			t.Fatalf("expected the row to be skipped, got %+v", resp)
		}

		sugar := decode[handler.ProductResponse](t, doJSON(r, http.MethodGet, "/products/4", nil))
		if sugar.Price != 80 {
			t.Errorf("expected price to stay 80, got %v", sugar.Price)
		}
	})

	t.Run("Existing product is updated in update mode", func(t *testing.T) {
		t.Cleanup(clearAll)
		csvData := `name,category,price,stock,unit,min_stock,max_stock
Sugar,Groceries,85,60,kg,25,100`

		resp := decode[handler.ImportProductsResult](t, importCSV(r, csvData, "update"))
		if resp.ImportedProductsCount != 1 || len(resp.Errors) != 0 {
			t.Fatalf("expected the row to update Sugar, got %+v", resp)
		}

		sugar := decode[handler.ProductResponse](t, doJSON(r, http.MethodGet, "/products/4", nil))
		if sugar.Price != 85 || sugar.Stock != 60 {
			t.Errorf("expected price 85 and stock 60, got %v and %d", sugar.Price, sugar.Stock)
		}
	})

	t.Run("Header without name column", func(t *testing.T) {
		w := importCSV(r, "price,stock\n10,1", "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/products/import", strings.NewReader(""))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

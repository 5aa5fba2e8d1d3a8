package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/rogerio-castellano/kirana-pos/internal/notify"
	repo "github.com/rogerio-castellano/kirana-pos/internal/repo"
)

type csvRow struct {
	Name       string
	NameNepali string
	Category   string
	Price      float64
	Stock      int
	Unit       string
	Barcode    string
	MinStock   int
	MaxStock   int
	Supplier   string
}

func parseCSV(file io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, errors.New("CSV header must contain a name column")
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, csvRow{
			Name:       field(record, "name"),
			NameNepali: field(record, "name_nepali"),
			Category:   field(record, "category"),
			Price:      parseFloat(field(record, "price")),
			Stock:      parseInt(field(record, "stock")),
			Unit:       field(record, "unit"),
			Barcode:    field(record, "barcode"),
			MinStock:   parseInt(field(record, "min_stock")),
			MaxStock:   parseInt(field(record, "max_stock")),
			Supplier:   field(record, "supplier"),
		})
	}
	return rows, nil
}

func validateRow(r csvRow) error {
	if r.Name == "" {
		return errors.New("missing name")
	}
	if r.Price < 0 {
		return errors.New("invalid price")
	}
	if r.Stock < 0 {
		return errors.New("invalid stock")
	}
	if r.MinStock < 0 || r.MaxStock < r.MinStock {
		return errors.New("invalid stock limits")
	}
	if r.Barcode != "" && !notify.IsValidBarcode(r.Barcode) {
		return errors.New("invalid barcode")
	}
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func (r csvRow) patch() repo.ProductPatch {
	return repo.ProductPatch{
		NameNepali: &r.NameNepali,
		Category:   &r.Category,
		Price:      &r.Price,
		Stock:      &r.Stock,
		Unit:       &r.Unit,
		Barcode:    &r.Barcode,
		MinStock:   &r.MinStock,
		MaxStock:   &r.MaxStock,
		Supplier:   &r.Supplier,
	}
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: name, name_nepali, category, price, stock, unit, barcode, min_stock, max_stock, supplier. Rows are matched to existing products by name.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	products, err := productRepo.Products(r.Context())
	if err != nil {
		httpError(w, err, "could not fetch products")
		return
	}
	byName := make(map[string]string, len(products))
	for _, p := range products {
		byName[strings.ToLower(p.Name)] = p.ID
	}

	imported := 0
	errorsList := []ValidationError{}
	rowError := func(row int, format string, args ...any) {
		errorsList = append(errorsList, ValidationError{
			Field:       fmt.Sprintf("row %d", row),
			Description: fmt.Sprintf(format, args...),
		})
	}

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if err := validateRow(rec); err != nil {
			rowError(rowNum, "%v", err)
			continue
		}

		if id, ok := byName[strings.ToLower(rec.Name)]; ok {
			if mode == "skip" {
				rowError(rowNum, "product '%s' already exists", rec.Name)
				continue
			}
			if _, err := productRepo.UpdateProduct(r.Context(), id, rec.patch()); err != nil {
				rowError(rowNum, "failed to update '%s': %v", rec.Name, err)
				continue
			}
			imported++
			continue
		}

		created, err := productRepo.AddProduct(r.Context(), models.Product{
			Name:       rec.Name,
			NameNepali: rec.NameNepali,
			Category:   rec.Category,
			Price:      rec.Price,
			Stock:      rec.Stock,
			Unit:       rec.Unit,
			Barcode:    rec.Barcode,
			MinStock:   rec.MinStock,
			MaxStock:   rec.MaxStock,
			Supplier:   rec.Supplier,
		})
		if err != nil {
			rowError(rowNum, "%v", err)
			continue
		}
		byName[strings.ToLower(created.Name)] = created.ID
		imported++
	}

	respond(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
}

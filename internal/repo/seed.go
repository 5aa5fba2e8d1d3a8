package repo

import (
	"time"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
)

// sampleProducts is the catalogue written on the first read of an empty store.
func sampleProducts(now time.Time) []models.Product {
	products := []models.Product{
		{ID: "1", Name: "Rice (Basmati)", NameNepali: "चामल (बासमती)", Category: "Grains", Price: 150, Stock: 50, Unit: "kg", Barcode: "8901234567890", MinStock: 20, MaxStock: 100, Supplier: "ABC Suppliers"},
		{ID: "2", Name: "Lentils (Dal)", NameNepali: "दाल", Category: "Grains", Price: 120, Stock: 15, Unit: "kg", MinStock: 20, MaxStock: 80, Supplier: "XYZ Trading"},
		{ID: "3", Name: "Cooking Oil", NameNepali: "खाना पकाउने तेल", Category: "Oils", Price: 250, Stock: 30, Unit: "liter", Barcode: "8901234567891", MinStock: 15, MaxStock: 60, Supplier: "ABC Suppliers"},
		{ID: "4", Name: "Sugar", NameNepali: "चिनी", Category: "Groceries", Price: 80, Stock: 45, Unit: "kg", MinStock: 25, MaxStock: 100, Supplier: "Sugar Mills Ltd"},
		{ID: "5", Name: "Tea Leaves", NameNepali: "चिया पत्ती", Category: "Beverages", Price: 200, Stock: 8, Unit: "kg", MinStock: 10, MaxStock: 40, Supplier: "Tea Estate"},
		{ID: "6", Name: "Salt", NameNepali: "नुन", Category: "Groceries", Price: 30, Stock: 60, Unit: "kg", MinStock: 20, MaxStock: 100, Supplier: "ABC Suppliers"},
		{ID: "7", Name: "Wheat Flour", NameNepali: "गहुँको पिठो", Category: "Grains", Price: 60, Stock: 35, Unit: "kg", MinStock: 30, MaxStock: 120, Supplier: "Flour Mills"},
		{ID: "8", Name: "Milk (Packet)", NameNepali: "दूध (प्याकेट)", Category: "Dairy", Price: 70, Stock: 20, Unit: "liter", MinStock: 15, MaxStock: 50, Supplier: "Dairy Co-op"},
	}
	for i := range products {
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
	}
	return products
}

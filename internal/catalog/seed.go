package catalog

import (
	"github.com/shopspring/decimal"

	"go-pos-inventory/internal/models"
)

// SeedProducts is the starter catalog used when no saved state can be read.
func SeedProducts() []models.Product {
	return []models.Product{
		seed("6221234567011", "Pasta", "15.50", 180, models.CategoryGroceries),
		seed("6221234567028", "Egyptian Rice", "25.00", 250, models.CategoryGroceries),
		seed("6221234567035", "Canned Tomatoes", "8.75", 120, models.CategoryGroceries),
		seed("6221234567042", "Yellow Lentils", "30.25", 90, models.CategoryGroceries),
		seed("6221234567059", "White Beans", "35.00", 110, models.CategoryGroceries),
		seed("6221234567066", "Olive Oil", "120.00", 75, models.CategoryGroceries),
		seed("6221234567073", "Sugar", "18.50", 300, models.CategoryGroceries),
		seed("6221234567080", "Salt", "5.00", 220, models.CategoryGroceries),

		seed("6291003810015", "Full Cream Milk", "22.00", 150, models.CategoryDairy),
		seed("6291003810022", "Yogurt", "5.50", 200, models.CategoryDairy),
		seed("6291003810039", "White Cheese", "45.00", 80, models.CategoryDairy),

		seed("5449000000996", "Cola", "7.50", 350, models.CategoryBeverages),
		seed("5449000001009", "Orange Juice", "12.00", 140, models.CategoryBeverages),
		seed("5449000001016", "Apple Juice", "12.00", 130, models.CategoryBeverages),

		seed("8901030650918", "Arabic Bread", "2.00", 95, models.CategoryBakery),
		seed("8901030650925", "White Toast", "15.00", 70, models.CategoryBakery),

		seed("8901030650932", "Tea Biscuits", "10.00", 280, models.CategoryOther),
		seed("8901030650949", "Milk Chocolate", "18.00", 400, models.CategoryOther),
	}
}

func seed(barcode, name, price string, stock int, category models.Category) models.Product {
	return models.Product{
		Barcode:  barcode,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Units:    1,
		Stock:    stock,
		Category: category,
	}
}

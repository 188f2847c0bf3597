package service

import (
	"github.com/shopspring/decimal"

	"go-pos-inventory/internal/models"
)

// ValuationItem is one product row of the valuation report.
type ValuationItem struct {
	Barcode string          `json:"barcode"`
	Name    string          `json:"name"`
	Stock   int             `json:"stock"`
	Price   decimal.Decimal `json:"price"`
	Value   decimal.Decimal `json:"value"`
}

// CategoryValue is the stock value held in one category.
type CategoryValue struct {
	Category models.Category `json:"category"`
	Items    []ValuationItem `json:"items"`
	Stock    int             `json:"stock"`
	Value    decimal.Decimal `json:"value"`
}

// Valuation is the stock-on-hand report, stock * price per product.
type Valuation struct {
	Categories []CategoryValue `json:"categories"`
	TotalStock int             `json:"total_stock"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// Valuation groups the catalog by category in the fixed category order.
// Categories without products are left out.
func (s *Shop) Valuation() Valuation {
	byCategory := make(map[models.Category]*CategoryValue)
	report := Valuation{Categories: []CategoryValue{}, TotalValue: decimal.Zero}

	for _, p := range s.catalog.List() {
		entry, ok := byCategory[p.Category]
		if !ok {
			entry = &CategoryValue{Category: p.Category, Value: decimal.Zero}
			byCategory[p.Category] = entry
		}
		value := p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
		entry.Items = append(entry.Items, ValuationItem{
			Barcode: p.Barcode,
			Name:    p.Name,
			Stock:   p.Stock,
			Price:   p.Price,
			Value:   value,
		})
		entry.Stock += p.Stock
		entry.Value = entry.Value.Add(value)

		report.TotalStock += p.Stock
		report.TotalValue = report.TotalValue.Add(value)
	}

	for _, c := range models.Categories {
		if entry, ok := byCategory[c]; ok {
			report.Categories = append(report.Categories, *entry)
		}
	}
	return report
}

package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category groups products on shelves and in the valuation report
type Category string

const (
	CategoryDairy     Category = "DAIRY"
	CategoryGroceries Category = "GROCERIES"
	CategoryBeverages Category = "BEVERAGES"
	CategoryFresh     Category = "FRESH"
	CategoryBakery    Category = "BAKERY"
	CategoryOther     Category = "OTHER"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryDairy,
	CategoryGroceries,
	CategoryBeverages,
	CategoryFresh,
	CategoryBakery,
	CategoryOther,
}

// Older exports wrote the Arabic shelf labels instead of the enum names.
var categoryLabels = map[string]Category{
	"الألبان ومنتجاتها":      CategoryDairy,
	"المواد الغذائية الجافة": CategoryGroceries,
	"المشروبات":              CategoryBeverages,
	"الخضروات والفواكه":      CategoryFresh,
	"المخبوزات":              CategoryBakery,
	"أصناف أخرى":             CategoryOther,
}

// ParseCategory never fails: anything it does not recognise is OTHER.
func ParseCategory(raw string) Category {
	value := strings.TrimSpace(raw)
	if c, ok := categoryLabels[value]; ok {
		return c
	}
	upper := Category(strings.ToUpper(value))
	for _, c := range Categories {
		if c == upper {
			return c
		}
	}
	return CategoryOther
}

// UnmarshalText lets decoded documents normalise unknown categories to OTHER.
func (c *Category) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}

// Role - what a signed-in user may do
type Role string

const (
	RoleAdmin Role = "admin"
	RoleSales Role = "sales"
)

// User - a configured account. Only the bcrypt hash is kept.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// Principal is the identity handed back after a successful login
type Principal struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Product - the Inventory. Barcode is the identity key.
type Product struct {
	Barcode  string          `json:"barcode" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Units    int             `json:"units" validate:"gte=1"`
	Stock    int             `json:"stock" validate:"gte=0"`
	Category Category        `json:"category"`
}

// InvoiceItem - a line on an invoice. Name and price are copied, not referenced,
// so old invoices keep their values when the catalog changes.
type InvoiceItem struct {
	ID          string          `json:"id"`
	ProductName string          `json:"productName" validate:"required"`
	Quantity    int             `json:"quantity" validate:"gte=1"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Notes       string          `json:"notes"`
}

// LineTotal is quantity * price.
func (i InvoiceItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Invoice - a finalized sale document
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerName  string          `json:"customerName" validate:"required"`
	Date          string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Items         []InvoiceItem   `json:"items" validate:"dive"`
	Total         decimal.Decimal `json:"total"`
}

// Snapshot is everything that survives a restart.
type Snapshot struct {
	Products []Product `json:"products" validate:"dive"`
	Invoices []Invoice `json:"invoices" validate:"dive"`
}

// SaleLine - one barcode/quantity pair of a cart
type SaleLine struct {
	Barcode  string `json:"barcode" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

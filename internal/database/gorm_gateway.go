package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-pos-inventory/internal/models"
)

const (
	settingSavedAt    = "snapshot_saved_at"
	settingRemembered = "remembered_user"
)

type productRecord struct {
	RowID    uint            `gorm:"primaryKey;column:row_id"`
	Position int             `gorm:"not null"`
	Barcode  string          `gorm:"size:64;not null"`
	Name     string          `gorm:"size:255;not null"`
	Price    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Units    int             `gorm:"not null"`
	Stock    int             `gorm:"not null"`
	Category string          `gorm:"size:16;not null"`
}

func (productRecord) TableName() string { return "products" }

type invoiceRecord struct {
	RowID         uint                `gorm:"primaryKey;column:row_id"`
	Position      int                 `gorm:"not null"`
	InvoiceID     string              `gorm:"column:invoice_id;size:64"`
	InvoiceNumber string              `gorm:"size:32"`
	CustomerName  string              `gorm:"size:255"`
	Date          string              `gorm:"size:10"`
	Total         decimal.Decimal     `gorm:"type:decimal(18,4)"`
	Items         []invoiceItemRecord `gorm:"foreignKey:InvoiceRowID;references:RowID"`
}

func (invoiceRecord) TableName() string { return "invoices" }

type invoiceItemRecord struct {
	RowID        uint            `gorm:"primaryKey;column:row_id"`
	InvoiceRowID uint            `gorm:"index;not null"`
	Position     int             `gorm:"not null"`
	ItemID       string          `gorm:"column:item_id;size:64"`
	ProductName  string          `gorm:"size:255"`
	Quantity     int             `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4)"`
	Notes        string          `gorm:"size:1024"`
}

func (invoiceItemRecord) TableName() string { return "invoice_items" }

type settingRecord struct {
	Key   string `gorm:"column:setting_key;primaryKey;size:64"`
	Value string `gorm:"size:255"`
}

func (settingRecord) TableName() string { return "app_settings" }

// GormGateway stores the snapshot in relational tables. Every Save replaces
// the tables inside one transaction.
type GormGateway struct {
	db *gorm.DB
}

// NewGormGateway syncs the schema and returns a gateway over db.
func NewGormGateway(db *gorm.DB) (*GormGateway, error) {
	err := db.AutoMigrate(
		&productRecord{},
		&invoiceRecord{},
		&invoiceItemRecord{},
		&settingRecord{},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: migrate schema: %v", models.ErrStorage, err)
	}
	return &GormGateway{db: db}, nil
}

func (g *GormGateway) Load(ctx context.Context) (*models.Snapshot, error) {
	db := g.db.WithContext(ctx)

	if _, found, err := g.setting(db, settingSavedAt); err != nil {
		return nil, err
	} else if !found {
		return nil, nil
	}

	var products []productRecord
	if err := db.Order("position").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("%w: load products: %v", models.ErrStorage, err)
	}

	var invoices []invoiceRecord
	err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).Order("position").Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("%w: load invoices: %v", models.ErrStorage, err)
	}

	snap := models.Snapshot{
		Products: make([]models.Product, 0, len(products)),
		Invoices: make([]models.Invoice, 0, len(invoices)),
	}
	for _, r := range products {
		snap.Products = append(snap.Products, models.Product{
			Barcode:  r.Barcode,
			Name:     r.Name,
			Price:    r.Price,
			Units:    r.Units,
			Stock:    r.Stock,
			Category: models.ParseCategory(r.Category),
		})
	}
	for _, r := range invoices {
		inv := models.Invoice{
			ID:            r.InvoiceID,
			InvoiceNumber: r.InvoiceNumber,
			CustomerName:  r.CustomerName,
			Date:          r.Date,
			Total:         r.Total,
			Items:         make([]models.InvoiceItem, 0, len(r.Items)),
		}
		for _, item := range r.Items {
			inv.Items = append(inv.Items, models.InvoiceItem{
				ID:          item.ItemID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Notes:       item.Notes,
			})
		}
		snap.Invoices = append(snap.Invoices, inv)
	}

	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("%w: stored state: %v", models.ErrParse, err)
	}
	return &snap, nil
}

func (g *GormGateway) Save(ctx context.Context, snap models.Snapshot) error {
	products := make([]productRecord, 0, len(snap.Products))
	for i, p := range snap.Products {
		products = append(products, productRecord{
			Position: i,
			Barcode:  p.Barcode,
			Name:     p.Name,
			Price:    p.Price,
			Units:    p.Units,
			Stock:    p.Stock,
			Category: string(p.Category),
		})
	}

	invoices := make([]invoiceRecord, 0, len(snap.Invoices))
	for i, inv := range snap.Invoices {
		r := invoiceRecord{
			Position:      i,
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			CustomerName:  inv.CustomerName,
			Date:          inv.Date,
			Total:         inv.Total,
		}
		for j, item := range inv.Items {
			r.Items = append(r.Items, invoiceItemRecord{
				Position:    j,
				ItemID:      item.ID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Notes:       item.Notes,
			})
		}
		invoices = append(invoices, r)
	}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&invoiceItemRecord{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&invoiceRecord{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&productRecord{}).Error; err != nil {
			return err
		}
		if len(products) > 0 {
			if err := tx.Create(&products).Error; err != nil {
				return err
			}
		}
		if len(invoices) > 0 {
			if err := tx.Create(&invoices).Error; err != nil {
				return err
			}
		}
		return putSetting(tx, settingSavedAt, time.Now().UTC().Format(time.RFC3339))
	})
	if err != nil {
		return fmt.Errorf("%w: save state: %v", models.ErrStorage, err)
	}
	return nil
}

func (g *GormGateway) RememberUser(ctx context.Context, username string) error {
	if err := putSetting(g.db.WithContext(ctx), settingRemembered, username); err != nil {
		return fmt.Errorf("%w: remember user: %v", models.ErrStorage, err)
	}
	return nil
}

func (g *GormGateway) ForgetUser(ctx context.Context) error {
	err := g.db.WithContext(ctx).Delete(&settingRecord{Key: settingRemembered}).Error
	if err != nil {
		return fmt.Errorf("%w: forget user: %v", models.ErrStorage, err)
	}
	return nil
}

func (g *GormGateway) RememberedUser(ctx context.Context) (string, error) {
	value, _, err := g.setting(g.db.WithContext(ctx), settingRemembered)
	return value, err
}

func (g *GormGateway) setting(db *gorm.DB, key string) (string, bool, error) {
	var rec settingRecord
	err := db.Where("setting_key = ?", key).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: read setting %s: %v", models.ErrStorage, key, err)
	}
	return rec.Value, true, nil
}

func putSetting(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&settingRecord{Key: key, Value: value}).Error
}

package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"go-pos-inventory/internal/files"
	"go-pos-inventory/internal/models"
)

// Import and export formats.
const (
	FormatCSV  = "csv"
	FormatTXT  = "txt"
	FormatXLSX = "xlsx"
)

// ImportResult reports what a bulk import did.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

func (s *Shop) Products() []models.Product {
	return s.catalog.List()
}

func (s *Shop) FindProduct(barcode string) (models.Product, error) {
	p, ok := s.catalog.Find(strings.TrimSpace(barcode))
	if !ok {
		return models.Product{}, notFound(barcode)
	}
	return p, nil
}

// AddProduct inserts a product or tops up an existing one: details are
// overwritten and the stock is added to what is on the shelf.
func (s *Shop) AddProduct(ctx context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.catalog.Upsert(p)
	if err != nil {
		return models.Product{}, err
	}
	s.persist(ctx, "AddProduct")
	return saved, nil
}

// UpdatePrice changes a known product's price without touching its stock.
func (s *Shop) UpdatePrice(ctx context.Context, barcode string, price decimal.Decimal) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Find(strings.TrimSpace(barcode))
	if !ok {
		return models.Product{}, notFound(barcode)
	}
	p.Price = price
	p.Stock = 0

	saved, err := s.catalog.Upsert(p)
	if err != nil {
		return models.Product{}, err
	}
	s.persist(ctx, "UpdatePrice")
	return saved, nil
}

func (s *Shop) DeleteProduct(ctx context.Context, barcode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog.Remove(strings.TrimSpace(barcode))
	s.persist(ctx, "DeleteProduct")
}

// ImportProducts parses a product file and merges it into the catalog,
// last writer wins. CSV and XLSX reject the whole file on the first bad
// row; TXT skips bad lines.
func (s *Shop) ImportProducts(ctx context.Context, format string, r io.Reader) (ImportResult, error) {
	var (
		products []models.Product
		result   ImportResult
		err      error
	)

	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatCSV:
		products, err = files.ParseCSV(r)
	case FormatXLSX:
		products, err = files.ParseXLSX(r)
	case FormatTXT:
		var parsed files.TXTResult
		parsed, err = files.ParseTXT(r, s.log)
		products, result.Skipped = parsed.Products, parsed.Skipped
	default:
		return ImportResult{}, fmt.Errorf("%w: unsupported import format %q", models.ErrValidation, format)
	}
	if err != nil {
		return ImportResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.catalog.ImportMany(products); err != nil {
		return ImportResult{}, err
	}
	s.persist(ctx, "ImportProducts")

	result.Imported = len(products)
	ProductsImported.WithLabelValues(format).Add(float64(result.Imported))
	s.log.WithField("format", format).Infof("imported %d products, skipped %d", result.Imported, result.Skipped)
	return result, nil
}

// ExportProducts writes the catalog in the requested format.
func (s *Shop) ExportProducts(format string, w io.Writer) error {
	products := s.catalog.List()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatCSV:
		return files.WriteCSV(w, products)
	case FormatTXT:
		return files.WriteTXT(w, products)
	case FormatXLSX:
		return files.WritePrintDocument(w, products)
	default:
		return fmt.Errorf("%w: unsupported export format %q", models.ErrValidation, format)
	}
}

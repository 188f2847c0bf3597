package files

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"go-pos-inventory/internal/models"
)

// ParseCSV reads a header-led CSV product list. Any malformed row or a
// missing column rejects the whole file.
func ParseCSV(r io.Reader) ([]models.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv: %v", models.ErrParse, err)
	}
	return rowsToProducts(rows)
}

// WriteCSV writes the catalog with the same header ParseCSV expects.
func WriteCSV(w io.Writer, products []models.Product) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return err
	}
	for _, p := range products {
		record := []string{
			p.Barcode,
			p.Name,
			p.Price.StringFixed(2),
			strconv.Itoa(p.Units),
			strconv.Itoa(p.Stock),
			string(p.Category),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

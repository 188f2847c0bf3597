package files

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"go-pos-inventory/internal/models"
)

// Columns is the header contract shared by every product file format.
var Columns = []string{"barcode", "name", "price", "units", "stock", "category"}

// UTF8BOM is prepended to text downloads so spreadsheet apps pick UTF-8.
const UTF8BOM = "\uFEFF"

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		name := normalizeHeader(col)
		for _, known := range Columns {
			if name == known {
				if _, exists := mapped[known]; !exists {
					mapped[known] = idx
				}
			}
		}
	}
	return mapped
}

func requireColumns(colMap map[string]int) error {
	var missing []string
	for _, col := range Columns {
		if _, ok := colMap[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required columns: %s", models.ErrParse, strings.Join(missing, ", "))
	}
	return nil
}

func normalizeHeader(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, UTF8BOM)
	value = strings.Trim(value, `"`)
	return strings.ToLower(strings.TrimSpace(value))
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(row[idx]), `"`))
}

// productFromFields converts one record's raw values. Unknown categories map
// to OTHER rather than failing the record.
func productFromFields(barcode, name, price, units, stock, category string) (models.Product, error) {
	if barcode == "" {
		return models.Product{}, fmt.Errorf("barcode is empty")
	}
	if name == "" {
		return models.Product{}, fmt.Errorf("name is empty")
	}
	parsedPrice, err := decimal.NewFromString(price)
	if err != nil {
		return models.Product{}, fmt.Errorf("price %q is not a number", price)
	}
	parsedUnits, err := parseInt(units)
	if err != nil {
		return models.Product{}, fmt.Errorf("units: %w", err)
	}
	parsedStock, err := parseInt(stock)
	if err != nil {
		return models.Product{}, fmt.Errorf("stock: %w", err)
	}
	p := models.Product{
		Barcode:  barcode,
		Name:     name,
		Price:    parsedPrice,
		Units:    parsedUnits,
		Stock:    parsedStock,
		Category: models.ParseCategory(category),
	}
	if err := p.Validate(); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// parseInt accepts any number and drops the fractional part, so "2.5" reads
// as 2. Text that is not a number is rejected.
func parseInt(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("value is empty")
	}
	asFloat, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", value)
	}
	if math.IsNaN(asFloat) || math.IsInf(asFloat, 0) {
		return 0, fmt.Errorf("%q is not a number", value)
	}
	return int(math.Trunc(asFloat)), nil
}

// rowsToProducts applies the structured-format policy: the first bad row
// aborts the whole batch.
func rowsToProducts(rows [][]string) ([]models.Product, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file is empty", models.ErrParse)
	}
	colMap := mapColumns(rows[0])
	if err := requireColumns(colMap); err != nil {
		return nil, err
	}

	result := make([]models.Product, 0, len(rows)-1)
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		if isBlank(cells) {
			continue
		}
		p, err := productFromFields(
			readCell(cells, colMap["barcode"]),
			readCell(cells, colMap["name"]),
			readCell(cells, colMap["price"]),
			readCell(cells, colMap["units"]),
			readCell(cells, colMap["stock"]),
			readCell(cells, colMap["category"]),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", models.ErrParse, index+1, err)
		}
		result = append(result, p)
	}
	return result, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

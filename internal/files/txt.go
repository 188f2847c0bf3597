package files

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"go-pos-inventory/internal/models"
)

// TXTResult is what survived a lenient text import.
type TXTResult struct {
	Products []models.Product
	Skipped  int
}

// ParseTXT reads one "barcode,name,price,units,stock,category" record per
// line with no header. Bad lines are logged and skipped, the rest imported.
func ParseTXT(r io.Reader, logger logrus.FieldLogger) (TXTResult, error) {
	var result TXTResult
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), UTF8BOM))
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		for len(fields) < len(Columns) {
			fields = append(fields, "")
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		p, err := productFromFields(fields[0], fields[1], fields[2], fields[3], fields[4], fields[5])
		if err != nil {
			logger.WithFields(logrus.Fields{"line": lineNo, "content": line}).Warnf("skipping invalid line in txt file: %v", err)
			result.Skipped++
			continue
		}
		result.Products = append(result.Products, p)
	}
	if err := scanner.Err(); err != nil {
		return TXTResult{}, fmt.Errorf("%w: read txt: %v", models.ErrParse, err)
	}
	return result, nil
}

// WriteTXT writes one human readable line per product.
func WriteTXT(w io.Writer, products []models.Product) error {
	bw := bufio.NewWriter(w)
	for i, p := range products {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(bw, "Barcode: %s, Name: %s, Price: %s, Units: %d, Stock: %d, Category: %s",
			p.Barcode, p.Name, p.Price.StringFixed(2), p.Units, p.Stock, p.Category); err != nil {
			return err
		}
	}
	return bw.Flush()
}

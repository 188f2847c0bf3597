package files

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"go-pos-inventory/internal/models"
)

const printSheet = "Inventory"

var printHeaders = []string{"Barcode", "Name", "Price", "Units", "Stock", "Category"}

// ParseXLSX reads the first sheet of a workbook using the same header
// contract and all-or-nothing policy as ParseCSV.
func ParseXLSX(r io.Reader) ([]models.Product, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open excel file: %v", models.ErrParse, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: excel file has no sheets", models.ErrParse)
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet rows: %v", models.ErrParse, err)
	}
	return rowsToProducts(rows)
}

// WritePrintDocument renders the catalog as a print-ready sheet. The header
// row is readable by ParseXLSX so the document can be imported back.
func WritePrintDocument(w io.Writer, products []models.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", printSheet); err != nil {
		return err
	}

	border := []excelize.Border{
		{Type: "left", Color: "D1D5DB", Style: 1},
		{Type: "right", Color: "D1D5DB", Style: 1},
		{Type: "top", Color: "D1D5DB", Style: 1},
		{Type: "bottom", Color: "D1D5DB", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"22C55E"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return err
	}

	for i, h := range printHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(printSheet, cell, h); err != nil {
			return err
		}
	}

	for i, p := range products {
		row := i + 2
		values := []any{p.Barcode, p.Name, p.Price.InexactFloat64(), p.Units, p.Stock, string(p.Category)}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(printSheet, cell, value); err != nil {
				return err
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(printHeaders))
	lastCell, _ := excelize.CoordinatesToCellName(len(printHeaders), len(products)+1)
	if err := f.SetCellStyle(printSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if len(products) > 0 {
		if err := f.SetCellStyle(printSheet, "A2", lastCell, bodyStyle); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(printSheet, "A", "A", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(printSheet, "B", "B", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(printSheet, "C", lastCol, 12); err != nil {
		return err
	}

	fitToPage := true
	if err := f.SetSheetProps(printSheet, &excelize.SheetPropsOptions{FitToPage: &fitToPage}); err != nil {
		return err
	}
	orientation := "landscape"
	oneWide, anyTall := 1, 0
	if err := f.SetPageLayout(printSheet, &excelize.PageLayoutOptions{
		Orientation: &orientation,
		FitToWidth:  &oneWide,
		FitToHeight: &anyTall,
	}); err != nil {
		return err
	}

	return f.Write(w)
}

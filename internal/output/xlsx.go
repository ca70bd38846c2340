package output

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"invoiceparser/internal/invoice"
)

const xlsxFileName = "invoice_data.xlsx"

// WriteXLSX writes the invoice as a two-sheet workbook: scalar fields on
// "Invoice", one row per line item on "Line Items".
func (w *Writer) WriteXLSX(rec invoice.InvoiceRecord) (string, error) {
	f := excelize.NewFile()

	const invoiceSheet = "Invoice"
	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return "", err
	}

	write := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(invoiceSheet, 1, 1, "Field")
	write(invoiceSheet, 2, 1, "Value")
	for i, fr := range fieldRows(rec) {
		write(invoiceSheet, 1, i+2, fr.Label)
		write(invoiceSheet, 2, i+2, fr.Value)
	}
	_ = f.SetColWidth(invoiceSheet, "A", "A", 20)
	_ = f.SetColWidth(invoiceSheet, "B", "B", 48)

	const itemsSheet = "Line Items"
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return "", err
	}
	headers := []string{"Description", "Quantity", "Unit Price", "Total"}
	for i, h := range headers {
		write(itemsSheet, i+1, 1, h)
	}
	for i, it := range rec.LineItems {
		row := i + 2
		write(itemsSheet, 1, row, it.Description)
		write(itemsSheet, 2, row, it.Quantity)
		write(itemsSheet, 3, row, it.UnitPrice)
		write(itemsSheet, 4, row, it.Total)
	}
	_ = f.SetColWidth(itemsSheet, "A", "A", 40)
	_ = f.SetColWidth(itemsSheet, "B", "D", 14)

	path := filepath.Join(w.Dir, xlsxFileName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("xlsx write: %w", err)
	}
	return xlsxFileName, nil
}

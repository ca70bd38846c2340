package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"invoiceparser/internal/invoice"
)

const (
	csvFileName       = "invoice_data.csv"
	lineItemsFileName = "line_items.csv"
)

// WriteCSV writes the invoice as a Field/Value CSV, plus a separate
// line_items.csv when the invoice has any items. Returns the file names
// created, relative to the output directory.
func (w *Writer) WriteCSV(rec invoice.InvoiceRecord) ([]string, error) {
	path := filepath.Join(w.Dir, csvFileName)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", csvFileName, err)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"Field", "Value"}); err != nil {
		return nil, err
	}
	for _, row := range fieldRows(rec) {
		if err := cw.Write([]string{row.Label, row.Value}); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("write %s: %w", csvFileName, err)
	}

	files := []string{csvFileName}
	if len(rec.LineItems) > 0 {
		if err := w.writeLineItemsCSV(rec.LineItems); err != nil {
			return files, err
		}
		files = append(files, lineItemsFileName)
	}
	return files, nil
}

func (w *Writer) writeLineItemsCSV(items []invoice.LineItem) error {
	path := filepath.Join(w.Dir, lineItemsFileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", lineItemsFileName, err)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"description", "quantity", "unit_price", "total"}); err != nil {
		return err
	}
	for _, it := range items {
		row := []string{
			it.Description,
			formatNumber(it.Quantity),
			formatNumber(it.UnitPrice),
			formatNumber(it.Total),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write %s: %w", lineItemsFileName, err)
	}
	return nil
}

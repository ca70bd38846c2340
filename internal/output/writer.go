// Package output serializes a validated InvoiceRecord to the run's
// output directory: CSV, JSON, XLSX, a human-readable summary, and an
// error log on failure. It consumes the record; it never mutates it.
package output

import (
	"log/slog"
	"os"
	"strconv"

	"invoiceparser/internal/invoice"
)

// Writer writes all output artifacts under Dir.
type Writer struct {
	Dir string
	Log *slog.Logger
}

func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{Dir: dir, Log: logger}
}

// EnsureDir creates the output directory if needed.
func (w *Writer) EnsureDir() error {
	return os.MkdirAll(w.Dir, 0o755)
}

// fieldRow is one label/value pair in the CSV, XLSX, and summary views.
type fieldRow struct {
	Label string
	Value string
}

// fieldRows renders the scalar fields in schema order.
func fieldRows(rec invoice.InvoiceRecord) []fieldRow {
	return []fieldRow{
		{"Vendor Name", rec.VendorName},
		{"Vendor Address", rec.VendorAddress},
		{"Vendor Email", rec.VendorEmail},
		{"Vendor Phone", rec.VendorPhone},
		{"Invoice Number", rec.InvoiceNumber},
		{"Invoice Date", rec.InvoiceDate},
		{"Due Date", rec.DueDate},
		{"Customer Name", rec.CustomerName},
		{"Customer Address", rec.CustomerAddress},
		{"Subtotal", formatNumber(rec.Subtotal)},
		{"Tax Amount", formatNumber(rec.TaxAmount)},
		{"Tax Rate", formatNumber(rec.TaxRate)},
		{"Total Amount", formatNumber(rec.TotalAmount)},
		{"Currency", rec.Currency},
		{"Payment Terms", rec.PaymentTerms},
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

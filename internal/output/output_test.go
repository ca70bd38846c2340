package output_test

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"invoiceparser/internal/invoice"
	"invoiceparser/internal/output"
)

func sampleRecord() invoice.InvoiceRecord {
	return invoice.InvoiceRecord{
		VendorName:    "ACME Corp",
		VendorEmail:   "billing@acme.example",
		InvoiceNumber: "INV-42",
		InvoiceDate:   "2025-03-04",
		DueDate:       "2025-04-03",
		CustomerName:  "Globex LLC",
		Subtotal:      100,
		TaxAmount:     8.5,
		TaxRate:       8.5,
		TotalAmount:   108.5,
		Currency:      "USD",
		PaymentTerms:  "Net 30",
		LineItems: []invoice.LineItem{
			{Description: "Widgets", Quantity: 2, UnitPrice: 50, Total: 100},
		},
	}
}

func newWriter(t *testing.T) *output.Writer {
	t.Helper()
	w := output.NewWriter(t.TempDir(), nil)
	require.NoError(t, w.EnsureDir())
	return w
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSV(t *testing.T) {
	w := newWriter(t)

	files, err := w.WriteCSV(sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, []string{"invoice_data.csv", "line_items.csv"}, files)

	rows := readCSV(t, filepath.Join(w.Dir, "invoice_data.csv"))
	require.Len(t, rows, 16) // header plus 15 scalar fields
	assert.Equal(t, []string{"Field", "Value"}, rows[0])
	assert.Equal(t, []string{"Vendor Name", "ACME Corp"}, rows[1])
	assert.Equal(t, []string{"Total Amount", "108.5"}, rows[13])

	items := readCSV(t, filepath.Join(w.Dir, "line_items.csv"))
	require.Len(t, items, 2)
	assert.Equal(t, []string{"description", "quantity", "unit_price", "total"}, items[0])
	assert.Equal(t, []string{"Widgets", "2", "50", "100"}, items[1])
}

func TestWriteCSV_NoLineItemsFile(t *testing.T) {
	w := newWriter(t)
	rec := sampleRecord()
	rec.LineItems = nil

	files, err := w.WriteCSV(rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"invoice_data.csv"}, files)
	_, err = os.Stat(filepath.Join(w.Dir, "line_items.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteJSON_RoundTrips(t *testing.T) {
	w := newWriter(t)
	rec := sampleRecord()

	name, err := w.WriteJSON(rec)
	require.NoError(t, err)
	assert.Equal(t, "invoice_data.json", name)

	b, err := os.ReadFile(filepath.Join(w.Dir, name))
	require.NoError(t, err)
	var got invoice.InvoiceRecord
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, rec, got)
}

func TestWriteXLSX(t *testing.T) {
	w := newWriter(t)

	name, err := w.WriteXLSX(sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, "invoice_data.xlsx", name)

	f, err := excelize.OpenFile(filepath.Join(w.Dir, name))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Field", cell("Invoice", "A1"))
	assert.Equal(t, "Vendor Name", cell("Invoice", "A2"))
	assert.Equal(t, "ACME Corp", cell("Invoice", "B2"))
	assert.Equal(t, "Widgets", cell("Line Items", "A2"))
	assert.Equal(t, "100", cell("Line Items", "D2"))
}

func TestSummary(t *testing.T) {
	text := output.Summary(sampleRecord())
	assert.Contains(t, text, "INVOICE PROCESSING COMPLETE")
	assert.Contains(t, text, "Name: ACME Corp")
	assert.Contains(t, text, "Invoice Number: INV-42")
	assert.Contains(t, text, "Total: USD 108.50")
	assert.Contains(t, text, "1. Widgets - Qty: 2, Price: 50.00, Total: 100.00")
}

func TestSummary_EmptyFieldsShowNA(t *testing.T) {
	text := output.Summary(invoice.InvoiceRecord{Currency: "USD"})
	assert.Contains(t, text, "Name: N/A")
	assert.Contains(t, text, "No line items found")
}

func TestWriteSummary_ListsOutputFiles(t *testing.T) {
	w := newWriter(t)

	name, err := w.WriteSummary(sampleRecord(), []string{"invoice_data.csv", "line_items.csv"})
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(w.Dir, name))
	require.NoError(t, err)
	assert.Contains(t, string(b), "OUTPUT FILES:")
	assert.Contains(t, string(b), "- invoice_data.csv")
	assert.Contains(t, string(b), "- line_items.csv")
}

func TestWriteErrorLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not-yet-created")
	w := output.NewWriter(dir, nil)

	require.NoError(t, w.WriteErrorLog(errors.New("no readable text found in pdf")))

	b, err := os.ReadFile(filepath.Join(dir, "error_log.txt"))
	require.NoError(t, err)
	text := string(b)
	assert.Contains(t, text, "ERROR PROCESSING INVOICE")
	assert.Contains(t, text, "no readable text found in pdf")
	assert.Contains(t, text, "OPENAI_API_KEY")
	assert.Contains(t, text, "use_ocr=true")
}

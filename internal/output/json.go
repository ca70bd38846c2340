package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"invoiceparser/internal/invoice"
)

const jsonFileName = "invoice_data.json"

// WriteJSON writes the invoice as formatted JSON.
func (w *Writer) WriteJSON(rec invoice.InvoiceRecord) (string, error) {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal invoice: %w", err)
	}
	path := filepath.Join(w.Dir, jsonFileName)
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", jsonFileName, err)
	}
	return jsonFileName, nil
}

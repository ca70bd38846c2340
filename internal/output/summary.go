package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"invoiceparser/internal/invoice"
)

const summaryFileName = "summary.txt"

// Summary renders a human-readable digest of the parsed invoice.
func Summary(rec invoice.InvoiceRecord) string {
	divider := strings.Repeat("=", 50)
	lines := []string{
		divider,
		"INVOICE PROCESSING COMPLETE",
		divider,
		"",
		"VENDOR INFORMATION:",
		"  Name: " + orNA(rec.VendorName),
		"  Address: " + orNA(rec.VendorAddress),
		"  Email: " + orNA(rec.VendorEmail),
		"  Phone: " + orNA(rec.VendorPhone),
		"",
		"INVOICE DETAILS:",
		"  Invoice Number: " + orNA(rec.InvoiceNumber),
		"  Invoice Date: " + orNA(rec.InvoiceDate),
		"  Due Date: " + orNA(rec.DueDate),
		"",
		"CUSTOMER INFORMATION:",
		"  Name: " + orNA(rec.CustomerName),
		"  Address: " + orNA(rec.CustomerAddress),
		"",
		"FINANCIAL SUMMARY:",
		fmt.Sprintf("  Subtotal: %s %s", rec.Currency, invoice.FormatAmount(rec.Subtotal)),
		fmt.Sprintf("  Tax (%s%%): %s %s", formatNumber(rec.TaxRate), rec.Currency, invoice.FormatAmount(rec.TaxAmount)),
		fmt.Sprintf("  Total: %s %s", rec.Currency, invoice.FormatAmount(rec.TotalAmount)),
		"",
		"LINE ITEMS:",
	}

	if len(rec.LineItems) > 0 {
		lines = append(lines, fmt.Sprintf("  Total Items: %d", len(rec.LineItems)))
		for i, it := range rec.LineItems {
			lines = append(lines, fmt.Sprintf("  %d. %s - Qty: %s, Price: %s, Total: %s",
				i+1, orNA(it.Description),
				formatNumber(it.Quantity),
				invoice.FormatAmount(it.UnitPrice),
				invoice.FormatAmount(it.Total)))
		}
	} else {
		lines = append(lines, "  No line items found")
	}

	lines = append(lines,
		"",
		"PAYMENT TERMS:",
		"  "+orNA(rec.PaymentTerms),
		"",
		divider,
	)
	return strings.Join(lines, "\n")
}

// WriteSummary writes the digest plus the list of files this run created.
func (w *Writer) WriteSummary(rec invoice.InvoiceRecord, outputFiles []string) (string, error) {
	text := Summary(rec)
	text += "\n\nOUTPUT FILES:\n"
	for _, name := range outputFiles {
		text += "  - " + name + "\n"
	}
	path := filepath.Join(w.Dir, summaryFileName)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", summaryFileName, err)
	}
	return summaryFileName, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

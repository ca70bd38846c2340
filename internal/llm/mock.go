package llm

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Field patterns for the mock's regex extraction. Deliberately crude:
// the mock exists so the rest of the pipeline can run without a provider,
// not to compete with one.
var (
	mockInvoiceNumRe = regexp.MustCompile(`(?i)(?:invoice|inv)[#\s:]*([A-Z0-9-]+)`)
	mockTotalRe      = regexp.MustCompile(`(?i)(?:total|amount due)[:\s]*\$?\s*([\d,]+\.?\d*)`)
	mockEmailRe      = regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
)

// Mock is the deterministic test-mode Extractor. It always succeeds and
// always returns a mapping the normalizer accepts without repair: a
// non-empty vendor name, a well-formed line item list with at least one
// entry, and non-negative numerics.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (*Mock) ExtractInvoice(_ context.Context, req ExtractionRequest) (map[string]any, error) {
	vendor := firstLine(req.Text)
	if vendor == "" {
		vendor = "Unknown Vendor"
	}

	invoiceNum := "TEST-0001"
	if m := mockInvoiceNumRe.FindStringSubmatch(req.Text); m != nil {
		invoiceNum = m[1]
	}

	total := 100.0
	if m := mockTotalRe.FindStringSubmatch(req.Text); m != nil {
		if d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "")); err == nil {
			if f, _ := d.Float64(); f > 0 {
				total = f
			}
		}
	}

	email := ""
	if m := mockEmailRe.FindStringSubmatch(req.Text); m != nil {
		email = m[1]
	}

	return map[string]any{
		"vendor_name":      vendor,
		"vendor_address":   "",
		"vendor_email":     email,
		"vendor_phone":     "",
		"invoice_number":   invoiceNum,
		"invoice_date":     "",
		"due_date":         "",
		"customer_name":    "",
		"customer_address": "",
		"subtotal":         total,
		"tax_amount":       0.0,
		"tax_rate":         0.0,
		"total_amount":     total,
		"currency":         "USD",
		"payment_terms":    "",
		"line_items": []any{
			map[string]any{
				"description": "Invoice total (extracted without a model)",
				"quantity":    1.0,
				"unit_price":  total,
				"total":       total,
			},
		},
	}, nil
}

// firstLine returns the first non-empty line, which on most invoices is
// the vendor letterhead. Capped so a wall of text cannot become a name.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > 80 {
			line = line[:80]
		}
		return line
	}
	return ""
}

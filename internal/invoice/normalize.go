package invoice

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrSchema indicates the raw extraction output is not usable at all
// (not a JSON object). Field-level problems never produce it.
var ErrSchema = errors.New("extraction output is not a JSON object")

// lineItemEpsilon is the tolerance for a model-provided line total before
// the computed quantity*unit_price overrides it.
const lineItemEpsilon = 0.01

// stripped from money-ish strings before numeric parsing
var moneyCleaner = strings.NewReplacer(",", "", "$", "", "€", "", "£", "", "₹", "", "%", "", " ", "")

var currencyRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

// dateLayouts are the formats normalized to YYYY-MM-DD. Numeric
// slash/dash forms like 03/04/2025 are intentionally absent: day and
// month cannot be distinguished without a locale, so they pass through.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"January 2 2006",
}

// Normalize coerces an untrusted field mapping (typically a decoded model
// reply) into a complete InvoiceRecord. It is a pure function: missing or
// uncoercible fields are substituted with their documented defaults rather
// than failing the run, and line items that carry no usable data are
// dropped. The only failure mode is a nil top-level mapping.
func Normalize(raw map[string]any) (InvoiceRecord, error) {
	if raw == nil {
		return InvoiceRecord{}, ErrSchema
	}

	rec := InvoiceRecord{
		VendorName:      stringField(raw, "vendor_name"),
		VendorAddress:   stringField(raw, "vendor_address"),
		VendorEmail:     stringField(raw, "vendor_email"),
		VendorPhone:     stringField(raw, "vendor_phone"),
		InvoiceNumber:   stringField(raw, "invoice_number"),
		InvoiceDate:     normalizeDate(stringField(raw, "invoice_date")),
		DueDate:         normalizeDate(stringField(raw, "due_date")),
		CustomerName:    stringField(raw, "customer_name"),
		CustomerAddress: stringField(raw, "customer_address"),
		Subtotal:        numberField(raw, "subtotal"),
		TaxAmount:       numberField(raw, "tax_amount"),
		TaxRate:         numberField(raw, "tax_rate"),
		TotalAmount:     numberField(raw, "total_amount"),
		Currency:        normalizeCurrency(stringField(raw, "currency")),
		PaymentTerms:    stringField(raw, "payment_terms"),
		LineItems:       normalizeLineItems(raw["line_items"]),
	}
	return rec, nil
}

func normalizeLineItems(v any) []LineItem {
	items := make([]LineItem, 0)
	list, ok := v.([]any)
	if !ok {
		return items
	}
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		desc := stringField(m, "description")
		qty, qtyOK := coerceNumber(m["quantity"])
		price, priceOK := coerceNumber(m["unit_price"])
		total, totalOK := coerceNumber(m["total"])

		// An entry with no description and nothing parseable as an amount
		// is a placeholder, not a line item.
		if desc == "" && !qtyOK && !priceOK && !totalOK {
			continue
		}

		qty = clampNonNegative(qty)
		price = clampNonNegative(price)
		total = clampNonNegative(total)

		// Model arithmetic is untrusted: when both factors parsed, the
		// product wins over a missing or inconsistent total.
		if qtyOK && priceOK {
			product := qty * price
			if !totalOK || math.Abs(total-product) > lineItemEpsilon {
				total = product
			}
		}

		items = append(items, LineItem{
			Description: desc,
			Quantity:    qty,
			UnitPrice:   price,
			Total:       total,
		})
	}
	return items
}

// stringField returns the trimmed string form of a field, or "" when the
// field is absent, null, or not representable as text.
func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func numberField(m map[string]any, key string) float64 {
	f, ok := coerceNumber(m[key])
	if !ok {
		return 0.0
	}
	return clampNonNegative(f)
}

// coerceNumber accepts native JSON numbers plus money-ish strings such as
// "1,234.50" or "$99.00". Garbled values report !ok rather than erroring.
func coerceNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		s := moneyCleaner.Replace(strings.TrimSpace(t))
		if s == "" {
			return 0, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return 0, false
		}
		f, _ := d.Float64()
		return f, true
	default:
		return 0, false
	}
}

func clampNonNegative(f float64) float64 {
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0.0
	}
	return f
}

// normalizeCurrency uppercases recognizable 3-letter codes and passes
// everything else through verbatim. Empty defaults to USD.
func normalizeCurrency(s string) string {
	if s == "" {
		return "USD"
	}
	if currencyRe.MatchString(s) {
		return strings.ToUpper(s)
	}
	return s
}

// normalizeDate reformats unambiguous dates to YYYY-MM-DD and leaves
// everything else untouched; guessing a locale would silently corrupt data.
func normalizeDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// FormatAmount renders a numeric field the way the serializers print money.
func FormatAmount(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

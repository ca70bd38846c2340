package invoice_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceparser/internal/invoice"
)

func TestNormalize_NilMapping(t *testing.T) {
	_, err := invoice.Normalize(nil)
	require.ErrorIs(t, err, invoice.ErrSchema)
}

func TestNormalize_EmptyMappingGetsDefaults(t *testing.T) {
	rec, err := invoice.Normalize(map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, "", rec.VendorName)
	assert.Equal(t, "", rec.InvoiceDate)
	assert.Equal(t, 0.0, rec.Subtotal)
	assert.Equal(t, 0.0, rec.TotalAmount)
	assert.Equal(t, "USD", rec.Currency)
	require.NotNil(t, rec.LineItems)
	assert.Empty(t, rec.LineItems)
}

func TestNormalize_NumericCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"native float", 1234.5, 1234.5},
		{"thousands separator", "1,234.50", 1234.5},
		{"currency symbol", "$99.00", 99.0},
		{"euro symbol", "€42.10", 42.1},
		{"garbled", "N/A", 0.0},
		{"empty string", "", 0.0},
		{"null", nil, 0.0},
		{"negative clamped", -12.5, 0.0},
		{"bool is not a number", true, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := invoice.Normalize(map[string]any{"subtotal": tt.in})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Subtotal)
		})
	}
}

func TestNormalize_StringCoercion(t *testing.T) {
	rec, err := invoice.Normalize(map[string]any{
		"vendor_name":    "  ACME Corp  ",
		"invoice_number": 10425.0, // model sometimes emits numbers for reference fields
		"customer_name":  nil,
	})
	require.NoError(t, err)
	assert.Equal(t, "ACME Corp", rec.VendorName)
	assert.Equal(t, "10425", rec.InvoiceNumber)
	assert.Equal(t, "", rec.CustomerName)
}

func TestNormalize_CurrencyHandling(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"usd", "USD"},
		{"Eur", "EUR"},
		{"GBP", "GBP"},
		{"", "USD"},
		{"US Dollars", "US Dollars"}, // unrecognizable, passed through verbatim
	}
	for _, tt := range tests {
		rec, err := invoice.Normalize(map[string]any{"currency": tt.in})
		require.NoError(t, err)
		assert.Equal(t, tt.want, rec.Currency, "input %q", tt.in)
	}
}

func TestNormalize_DateHandling(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already normalized", "2025-03-04", "2025-03-04"},
		{"slash iso", "2025/03/04", "2025-03-04"},
		{"long form", "January 5, 2025", "2025-01-05"},
		{"short month", "Jan 5, 2025", "2025-01-05"},
		{"day first", "5 January 2025", "2025-01-05"},
		{"ambiguous passes through", "03/04/2025", "03/04/2025"},
		{"nonsense passes through", "sometime in spring", "sometime in spring"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := invoice.Normalize(map[string]any{"invoice_date": tt.in})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.InvoiceDate)
		})
	}
}

func TestNormalize_LineItemTotalTieBreak(t *testing.T) {
	rec, err := invoice.Normalize(map[string]any{
		"line_items": []any{
			map[string]any{"description": "Widgets", "quantity": 2.0, "unit_price": 10.0, "total": 999.0},
		},
	})
	require.NoError(t, err)
	require.Len(t, rec.LineItems, 1)
	assert.Equal(t, 20.0, rec.LineItems[0].Total, "computed product overrides inconsistent model total")
}

func TestNormalize_LineItemTotalWithinEpsilonKept(t *testing.T) {
	rec, err := invoice.Normalize(map[string]any{
		"line_items": []any{
			map[string]any{"description": "Widgets", "quantity": 3.0, "unit_price": 3.33, "total": 9.99},
		},
	})
	require.NoError(t, err)
	require.Len(t, rec.LineItems, 1)
	assert.Equal(t, 9.99, rec.LineItems[0].Total)
}

func TestNormalize_LineItemMissingTotalComputed(t *testing.T) {
	rec, err := invoice.Normalize(map[string]any{
		"line_items": []any{
			map[string]any{"description": "Consulting", "quantity": 4.0, "unit_price": 150.0},
		},
	})
	require.NoError(t, err)
	require.Len(t, rec.LineItems, 1)
	assert.Equal(t, 600.0, rec.LineItems[0].Total)
}

func TestNormalize_LineItemDropRules(t *testing.T) {
	rec, err := invoice.Normalize(map[string]any{
		"line_items": []any{
			map[string]any{},                            // empty placeholder
			map[string]any{"description": "", "quantity": "abc"}, // nothing usable
			"not an object",
			map[string]any{"description": "Kept", "total": "12.00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, rec.LineItems, 1)
	assert.Equal(t, "Kept", rec.LineItems[0].Description)
	assert.Equal(t, 12.0, rec.LineItems[0].Total)
}

func TestNormalize_LineItemsWrongTypeBecomesEmpty(t *testing.T) {
	rec, err := invoice.Normalize(map[string]any{"line_items": "none"})
	require.NoError(t, err)
	require.NotNil(t, rec.LineItems)
	assert.Empty(t, rec.LineItems)
}

// Normalizing an already-valid record mapping must not change any field.
func TestNormalize_Idempotent(t *testing.T) {
	first, err := invoice.Normalize(map[string]any{
		"vendor_name":    "ACME Corp",
		"invoice_number": "INV-42",
		"invoice_date":   "2025-03-04",
		"subtotal":       100.0,
		"tax_amount":     8.5,
		"tax_rate":       8.5,
		"total_amount":   108.5,
		"currency":       "USD",
		"line_items": []any{
			map[string]any{"description": "Widgets", "quantity": 2.0, "unit_price": 50.0, "total": 100.0},
		},
	})
	require.NoError(t, err)

	b, err := json.Marshal(first)
	require.NoError(t, err)
	var roundTrip map[string]any
	require.NoError(t, json.Unmarshal(b, &roundTrip))

	second, err := invoice.Normalize(roundTrip)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

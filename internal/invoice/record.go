package invoice

// InvoiceRecord is the canonical structured output of a parse run.
// After Normalize every field is present and typed: strings may be empty,
// numeric fields are never negative, and LineItems is never nil.
type InvoiceRecord struct {
	VendorName      string     `json:"vendor_name"`
	VendorAddress   string     `json:"vendor_address"`
	VendorEmail     string     `json:"vendor_email"`
	VendorPhone     string     `json:"vendor_phone"`
	InvoiceNumber   string     `json:"invoice_number"`
	InvoiceDate     string     `json:"invoice_date"` // YYYY-MM-DD, or verbatim when the source format is ambiguous
	DueDate         string     `json:"due_date"`
	CustomerName    string     `json:"customer_name"`
	CustomerAddress string     `json:"customer_address"`
	Subtotal        float64    `json:"subtotal"`
	TaxAmount       float64    `json:"tax_amount"`
	TaxRate         float64    `json:"tax_rate"`
	TotalAmount     float64    `json:"total_amount"`
	Currency        string     `json:"currency"` // ISO 4217, defaults to USD
	PaymentTerms    string     `json:"payment_terms"`
	LineItems       []LineItem `json:"line_items"`
}

// LineItem is one purchased item/service row within an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

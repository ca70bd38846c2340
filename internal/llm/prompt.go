package llm

// BuildExtractionPrompt composes the extraction prompt. The field names
// and types mirror invoice.InvoiceRecord exactly so the reply can be
// normalized without a mapping table.
func BuildExtractionPrompt(invoiceText string) string {
	return `You are an expert invoice data extraction system. Extract the following information from this invoice:

REQUIRED FIELDS:
- vendor_name: Company name of the seller
- vendor_address: Full address of vendor
- vendor_email: Vendor contact email
- vendor_phone: Vendor contact phone
- invoice_number: Invoice/reference number
- invoice_date: Date of invoice (YYYY-MM-DD format)
- due_date: Payment due date (YYYY-MM-DD format)
- customer_name: Buyer/customer name
- customer_address: Customer full address
- subtotal: Subtotal before tax (numeric value only)
- tax_amount: Tax amount (numeric value only)
- tax_rate: Tax percentage (numeric value only)
- total_amount: Final total (numeric value only)
- currency: Currency code (USD, EUR, GBP, etc.)
- payment_terms: Payment terms/conditions
- line_items: Array of items, each with:
  - description: Item/service description
  - quantity: Quantity (numeric)
  - unit_price: Price per unit (numeric)
  - total: Line item total (numeric)

IMPORTANT RULES:
1. Return ONLY a single valid JSON object - no markdown, no code fences, no explanations
2. If a field is not found in the invoice, use an empty string for text and 0 for numbers
3. For numeric fields, extract only the number (no currency symbols)
4. Dates must be in YYYY-MM-DD format
5. line_items must always be present as an array; use an empty array [] when there are no line items, never omit the key
6. Double-check your JSON is valid before responding

INVOICE TEXT:
` + invoiceText + `

JSON OUTPUT:`
}

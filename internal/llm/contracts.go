// Package llm defines the invoice field extraction capability and the
// pieces shared by its provider implementations: the prompt, response
// cleaning, and the shape gate applied to untrusted model output.
package llm

import (
	"context"
	"time"
)

// ExtractionRequest combines the raw document text with the provider
// selection for one extraction call. Model is optional; each provider
// falls back to its default when empty.
type ExtractionRequest struct {
	Text     string
	Provider string
	Model    string
}

// Extractor is the interface the pipeline depends on. Provider clients
// and the test-mode mock are two variants of the same capability.
type Extractor interface {
	ExtractInvoice(ctx context.Context, req ExtractionRequest) (map[string]any, error)
}

// Config is shared by the provider clients.
type Config struct {
	APIKey      string
	BaseURL     string        // provider default when empty; tests point it at httptest servers
	Model       string        // provider default when empty
	Temperature float32       // kept at 0 for deterministic-leaning extraction
	Timeout     time.Duration // http client timeout, default 45s
}

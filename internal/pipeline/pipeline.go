// Package pipeline runs the extraction sequence for one invoice:
// locate -> extract text -> extract fields -> normalize. Steps execute
// strictly in order; any failure aborts the run with no partial record.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"invoiceparser/internal/invoice"
	"invoiceparser/internal/llm"
	"invoiceparser/internal/locate"
	"invoiceparser/internal/pdftext"
)

// TextExtractor is the text stage contract, satisfied by
// *pdftext.Extractor and by fakes in tests.
type TextExtractor interface {
	Extract(ctx context.Context, path string, useOCR bool) (pdftext.Result, error)
}

type Config struct {
	Provider string // passed through to the field extractor
	Model    string // optional override
	UseOCR   bool
}

type Pipeline struct {
	Cfg    Config
	Text   TextExtractor
	Fields llm.Extractor
	Log    *slog.Logger
}

func New(cfg Config, text TextExtractor, fields llm.Extractor, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{Cfg: cfg, Text: text, Fields: fields, Log: log}
}

// Run processes one invoice reference end to end and returns the
// validated record. Failures propagate untouched so the caller can map
// them to operator-facing messages; no retries happen here.
func (p *Pipeline) Run(ctx context.Context, reference string) (invoice.InvoiceRecord, error) {
	rid := uuid.New().String()
	start := time.Now()
	p.Log.Info("pipeline.run.start", "run_id", rid, "reference", reference, "use_ocr", p.Cfg.UseOCR)

	path, err := locate.Resolve(reference)
	if err != nil {
		return invoice.InvoiceRecord{}, err
	}
	p.Log.Info("pipeline.located", "run_id", rid, "path", path)

	text, err := p.Text.Extract(ctx, path, p.Cfg.UseOCR)
	if err != nil {
		return invoice.InvoiceRecord{}, err
	}
	p.Log.Info("pipeline.text_extracted",
		"run_id", rid, "chars", len(text.Text), "pages", text.Pages, "method", text.Method)

	raw, err := p.Fields.ExtractInvoice(ctx, llm.ExtractionRequest{
		Text:     text.Text,
		Provider: p.Cfg.Provider,
		Model:    p.Cfg.Model,
	})
	if err != nil {
		return invoice.InvoiceRecord{}, fmt.Errorf("extract invoice fields: %w", err)
	}

	rec, err := invoice.Normalize(raw)
	if err != nil {
		return invoice.InvoiceRecord{}, err
	}

	p.Log.Info("pipeline.run.ok",
		"run_id", rid,
		"vendor", rec.VendorName,
		"invoice_number", rec.InvoiceNumber,
		"total", rec.TotalAmount,
		"line_items", len(rec.LineItems),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}

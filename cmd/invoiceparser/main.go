package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"invoiceparser/internal/config"
	"invoiceparser/internal/invoice"
	"invoiceparser/internal/llm"
	"invoiceparser/internal/output"
	"invoiceparser/internal/pdftext"
	"invoiceparser/internal/pipeline"

	// provider registration
	_ "invoiceparser/internal/llm/anthropic"
	_ "invoiceparser/internal/llm/openai"
)

const runTimeout = 2 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	logger.Info("invoiceparser.start")

	logger.Info("step", "n", 1, "of", 4, "msg", "reading configuration")
	cfg := config.Load()
	writer := output.NewWriter(cfg.OutputDir, logger)

	if err := cfg.Validate(); err != nil {
		return fail(logger, writer, err)
	}
	if err := writer.EnsureDir(); err != nil {
		logger.Error("create output dir", "dir", cfg.OutputDir, "error", err)
		return 1
	}

	logger.Info("config.loaded",
		"invoice_file", cfg.InvoiceFile,
		"output_format", cfg.OutputFormat,
		"provider", cfg.Provider,
		"use_ocr", cfg.UseOCR,
		"test_mode", cfg.TestMode,
	)

	fields, err := buildExtractor(cfg, logger)
	if err != nil {
		return fail(logger, writer, err)
	}

	textExtractor := pdftext.NewExtractor(pdftext.Config{
		MaxFileBytes: cfg.MaxFileSizeMB << 20,
	}, logger)

	pl := pipeline.New(pipeline.Config{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		UseOCR:   cfg.UseOCR,
	}, textExtractor, fields, logger)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	logger.Info("step", "n", 2, "of", 4, "msg", "extracting text from pdf")
	logger.Info("step", "n", 3, "of", 4, "msg", "parsing invoice", "provider", cfg.Provider)
	rec, err := pl.Run(ctx, cfg.InvoiceFile)
	if err != nil {
		return fail(logger, writer, err)
	}

	logger.Info("step", "n", 4, "of", 4, "msg", "saving outputs", "dir", cfg.OutputDir)
	if err := saveOutputs(writer, rec, cfg.OutputFormat); err != nil {
		return fail(logger, writer, err)
	}

	logger.Info("invoiceparser.ok", "line_items", len(rec.LineItems))
	return 0
}

// buildExtractor picks between the provider registry and the test-mode
// mock. Test mode needs no credential.
func buildExtractor(cfg *config.Config, logger *slog.Logger) (llm.Extractor, error) {
	if cfg.TestMode {
		logger.Info("test mode enabled - using mock extractor")
		return llm.NewMock(), nil
	}
	return llm.New(cfg.Provider, llm.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.ExtractTimeout,
	}, logger)
}

func saveOutputs(w *output.Writer, rec invoice.InvoiceRecord, format string) error {
	var files []string

	if format == "csv" || format == "both" {
		names, err := w.WriteCSV(rec)
		if err != nil {
			return err
		}
		files = append(files, names...)
	}
	if format == "json" || format == "both" {
		name, err := w.WriteJSON(rec)
		if err != nil {
			return err
		}
		files = append(files, name)
	}
	if format == "xlsx" {
		name, err := w.WriteXLSX(rec)
		if err != nil {
			return err
		}
		files = append(files, name)
	}

	name, err := w.WriteSummary(rec, files)
	if err != nil {
		return err
	}
	w.Log.Info("outputs.written", "files", append(files, name))
	return nil
}

func fail(logger *slog.Logger, w *output.Writer, err error) int {
	logger.Error("invoiceparser.failed", "error", err)
	if logErr := w.WriteErrorLog(err); logErr != nil {
		logger.Error("write error log", "error", logErr)
	}
	return 1
}

// Package pdftext turns an invoice PDF into plain text. The embedded
// text layer is read first; image-only documents fall back to rendering
// pages and running OCR when the caller enables it.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrFileTooLarge is raised before the document is even opened.
	ErrFileTooLarge = errors.New("pdf exceeds the size limit")
	// ErrPasswordProtected is raised for encrypted documents.
	ErrPasswordProtected = errors.New("pdf is password-protected")
	// ErrNoTextFound means neither the text layer nor OCR (when enabled)
	// produced any text. With OCR disabled the caller should suggest
	// enabling it.
	ErrNoTextFound = errors.New("no readable text found in pdf")
)

const defaultMaxFileBytes = 5 << 20 // 5 MB

type Config struct {
	MaxFileBytes int64 // size ceiling checked before opening; default 5 MB

	Pdftoppm      string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit
}

type Result struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "pdf-ocr"
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger

	// textLayer is swapped out in tests; reading a real PDF otherwise.
	textLayer func(path string) (string, int, []string, error)
	statSize  func(path string) (int64, error)
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = defaultMaxFileBytes
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	e := &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
	e.textLayer = readTextLayer
	e.statSize = fileSize
	return e
}

// Extract reads the document at path and returns its text. The size
// ceiling and encryption check happen before any page is touched. When
// the text layer is empty, useOCR decides between failing with
// ErrNoTextFound and rasterizing pages for OCR.
func (e *Extractor) Extract(ctx context.Context, path string, useOCR bool) (Result, error) {
	start := time.Now()

	size, err := e.statSize(path)
	if err != nil {
		return Result{}, fmt.Errorf("stat pdf: %w", err)
	}
	if size > e.cfg.MaxFileBytes {
		return Result{}, fmt.Errorf("%w: %.2f MB (max %d MB)",
			ErrFileTooLarge, float64(size)/(1<<20), e.cfg.MaxFileBytes>>20)
	}

	text, pages, warns, err := e.textLayer(path)
	if err != nil {
		return Result{Warnings: warns}, err
	}

	if strings.TrimSpace(text) != "" {
		e.logger.Debug("pdftext.text_layer_ok", "path", path, "pages", pages, "chars", len(text))
		return Result{
			Text:     strings.TrimSpace(text),
			Pages:    pages,
			Method:   "pdf-text",
			Duration: time.Since(start),
			Warnings: warns,
		}, nil
	}

	if !useOCR {
		return Result{Warnings: warns}, fmt.Errorf(
			"%w: the document may be image-based, try enabling OCR", ErrNoTextFound)
	}

	e.logger.Info("pdftext.ocr_fallback", "path", path, "dpi", e.cfg.DPI)
	ocrText, ocrPages, ocrWarns, err := e.ocrPages(ctx, path)
	warns = append(warns, ocrWarns...)
	if err != nil {
		return Result{Warnings: warns}, err
	}
	if strings.TrimSpace(ocrText) == "" {
		return Result{Warnings: warns}, fmt.Errorf("%w: OCR produced no text", ErrNoTextFound)
	}

	return Result{
		Text:     strings.TrimSpace(ocrText),
		Pages:    ocrPages,
		Method:   "pdf-ocr",
		Duration: time.Since(start),
		Warnings: warns,
	}, nil
}

// readTextLayer extracts the embedded text layer page by page, joined
// with newlines. Pages that fail to decode become warnings, not errors.
func readTextLayer(path string) (string, int, []string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return "", 0, nil, fmt.Errorf("%w: provide an unencrypted version", ErrPasswordProtected)
		}
		return "", 0, nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	var warns []string
	var b strings.Builder

	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				ft := p.Font(name)
				fonts[name] = &ft
			}
		}
		text, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			warns = append(warns, fmt.Sprintf("page %d: %v", i, pageErr))
			continue
		}
		if strings.TrimSpace(text) != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}
	return b.String(), numPages, warns, nil
}

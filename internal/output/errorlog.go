package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const errorLogFileName = "error_log.txt"

// WriteErrorLog records a failed run with troubleshooting guidance so an
// operator can act without reading program logs. The error text is
// whatever the pipeline reported; secrets never appear in those messages.
func (w *Writer) WriteErrorLog(runErr error) error {
	if err := w.EnsureDir(); err != nil {
		return err
	}

	divider := strings.Repeat("=", 50)
	msg := []string{
		divider,
		"ERROR PROCESSING INVOICE",
		divider,
		"",
		fmt.Sprintf("Error: %v", runErr),
		"",
		"TROUBLESHOOTING:",
		"",
		"Common Issues:",
		"  1. PDF file not found or invalid path",
		"  2. PDF is password-protected or corrupted",
		"  3. PDF contains no readable text (try enabling OCR)",
		"  4. API key not set or invalid",
		"  5. Network issues connecting to the AI service",
		"",
		"Solutions:",
		"  - Ensure the PDF file exists and is not password-protected",
		"  - Set the correct environment variable for your AI provider:",
		"    * OPENAI_API_KEY for OpenAI",
		"    * ANTHROPIC_API_KEY for Anthropic Claude",
		"  - Enable OCR for image-based PDFs (set use_ocr=true)",
		"  - Check your internet connection",
		"",
		divider,
	}

	path := filepath.Join(w.Dir, errorLogFileName)
	return os.WriteFile(path, []byte(strings.Join(msg, "\n")), 0o644)
}

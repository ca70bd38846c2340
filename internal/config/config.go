// Package config loads the flat key-value environment the program is
// driven by. Keys are read once at startup; nothing re-reads the
// environment after Load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults and supported values.
const (
	DefaultProvider     = "openai"
	DefaultOutputFormat = "csv"
	DefaultInvoiceFile  = "invoice.pdf"
	DefaultOutputDir    = "output"
	DefaultMaxFileMB    = 5
)

var (
	SupportedProviders     = []string{"openai", "anthropic"}
	SupportedOutputFormats = []string{"csv", "json", "both", "xlsx"}
)

// credentialEnvKeys maps a provider to the environment variable holding
// its API key.
var credentialEnvKeys = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

// modelEnvKeys maps a provider to the optional model override variable.
var modelEnvKeys = map[string]string{
	"openai":    "OPENAI_MODEL",
	"anthropic": "ANTHROPIC_MODEL",
}

// Config holds everything a single run needs.
type Config struct {
	InvoiceFile  string
	OutputFormat string
	Provider     string
	UseOCR       bool
	TestMode     bool

	APIKey         string
	Model          string
	ExtractTimeout time.Duration

	MaxFileSizeMB int64
	OutputDir     string
}

// Load reads configuration from environment variables, applying the
// documented defaults. It never fails; Validate reports bad values.
func Load() *Config {
	provider := strings.ToLower(getEnv("ai_provider", DefaultProvider))
	return &Config{
		InvoiceFile:    getEnv("invoice_file", DefaultInvoiceFile),
		OutputFormat:   strings.ToLower(getEnv("output_format", DefaultOutputFormat)),
		Provider:       provider,
		UseOCR:         getEnvAsBool("use_ocr", false),
		TestMode:       getEnvAsBool("test_mode", false),
		APIKey:         os.Getenv(CredentialEnvKey(provider)),
		Model:          os.Getenv(modelEnvKeys[provider]),
		ExtractTimeout: getEnvAsDuration("EXTRACT_TIMEOUT", 45*time.Second),
		MaxFileSizeMB:  getEnvAsInt64("MAX_FILE_SIZE_MB", DefaultMaxFileMB),
		OutputDir:      getEnv("OUTPUT_DIR", DefaultOutputDir),
	}
}

// CredentialEnvKey names the environment variable expected to carry the
// provider's API key. Empty for unknown providers.
func CredentialEnvKey(provider string) string {
	return credentialEnvKeys[strings.ToLower(provider)]
}

// Validate checks the loaded configuration against the supported value
// sets.
func (c *Config) Validate() error {
	if !contains(SupportedProviders, c.Provider) {
		return fmt.Errorf("unsupported AI provider: %q (supported: %s)",
			c.Provider, strings.Join(SupportedProviders, ", "))
	}
	if !contains(SupportedOutputFormats, c.OutputFormat) {
		return fmt.Errorf("unsupported output format: %q (supported: %s)",
			c.OutputFormat, strings.Join(SupportedOutputFormats, ", "))
	}
	if c.MaxFileSizeMB <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE_MB must be positive, got %d", c.MaxFileSizeMB)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Helper functions for environment variable parsing.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.EqualFold(value, "true")
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

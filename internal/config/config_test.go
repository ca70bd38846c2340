package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceparser/internal/config"
)

// clearEnv blanks every variable Load reads so a developer's shell
// cannot leak into the assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"invoice_file", "output_format", "ai_provider", "use_ocr", "test_mode",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_MODEL", "ANTHROPIC_MODEL",
		"EXTRACT_TIMEOUT", "MAX_FILE_SIZE_MB", "OUTPUT_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := config.Load()
	assert.Equal(t, "invoice.pdf", cfg.InvoiceFile)
	assert.Equal(t, "csv", cfg.OutputFormat)
	assert.Equal(t, "openai", cfg.Provider)
	assert.False(t, cfg.UseOCR)
	assert.False(t, cfg.TestMode)
	assert.Empty(t, cfg.APIKey)
	assert.Empty(t, cfg.Model)
	assert.Equal(t, 45*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, int64(5), cfg.MaxFileSizeMB)
	assert.Equal(t, "output", cfg.OutputDir)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("invoice_file", "uploads/march.pdf")
	t.Setenv("output_format", "JSON")
	t.Setenv("ai_provider", "Anthropic")
	t.Setenv("use_ocr", "TRUE")
	t.Setenv("test_mode", "true")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("ANTHROPIC_MODEL", "claude-3-haiku-20240307")
	t.Setenv("EXTRACT_TIMEOUT", "90s")
	t.Setenv("MAX_FILE_SIZE_MB", "20")
	t.Setenv("OUTPUT_DIR", "results")

	cfg := config.Load()
	assert.Equal(t, "uploads/march.pdf", cfg.InvoiceFile)
	assert.Equal(t, "json", cfg.OutputFormat, "format is case-insensitive")
	assert.Equal(t, "anthropic", cfg.Provider, "provider is case-insensitive")
	assert.True(t, cfg.UseOCR)
	assert.True(t, cfg.TestMode)
	assert.Equal(t, "sk-ant-test", cfg.APIKey)
	assert.Equal(t, "claude-3-haiku-20240307", cfg.Model)
	assert.Equal(t, 90*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, int64(20), cfg.MaxFileSizeMB)
	assert.Equal(t, "results", cfg.OutputDir)
	require.NoError(t, cfg.Validate())
}

func TestLoad_CredentialFollowsProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("ai_provider", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-anthropic")

	assert.Equal(t, "sk-openai", config.Load().APIKey)

	t.Setenv("ai_provider", "anthropic")
	assert.Equal(t, "sk-anthropic", config.Load().APIKey)
}

func TestLoad_BadNumericFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_FILE_SIZE_MB", "lots")
	t.Setenv("EXTRACT_TIMEOUT", "soon")

	cfg := config.Load()
	assert.Equal(t, int64(5), cfg.MaxFileSizeMB)
	assert.Equal(t, 45*time.Second, cfg.ExtractTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"unknown provider", func(c *config.Config) { c.Provider = "gemini" }, "unsupported AI provider"},
		{"unknown format", func(c *config.Config) { c.OutputFormat = "pdf" }, "unsupported output format"},
		{"zero size limit", func(c *config.Config) { c.MaxFileSizeMB = 0 }, "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg := config.Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCredentialEnvKey(t *testing.T) {
	assert.Equal(t, "OPENAI_API_KEY", config.CredentialEnvKey("openai"))
	assert.Equal(t, "ANTHROPIC_API_KEY", config.CredentialEnvKey("Anthropic"))
	assert.Empty(t, config.CredentialEnvKey("gemini"))
}

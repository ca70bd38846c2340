// Package anthropic implements llm.Extractor over the Anthropic
// Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"invoiceparser/internal/llm"
)

const (
	defaultBaseURL = "https://api.anthropic.com/v1"
	defaultModel   = "claude-3-5-sonnet-20241022"
	apiVersion     = "2023-06-01"
	maxTokens      = 2000
	envKey         = "ANTHROPIC_API_KEY"
)

func init() {
	llm.Register("anthropic", func(cfg llm.Config, logger *slog.Logger) (llm.Extractor, error) {
		if cfg.APIKey == "" {
			return nil, &llm.MissingCredentialError{Provider: "anthropic", EnvKey: envKey}
		}
		return NewClient(cfg, logger), nil
	})
}

type Client struct {
	cfg        llm.Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg llm.Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

func (c *Client) ExtractInvoice(ctx context.Context, req llm.ExtractionRequest) (map[string]any, error) {
	rid := uuid.New().String()
	start := time.Now()

	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"provider", "anthropic",
		"model", model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.Text),
	)

	body := map[string]any{
		"model":       model,
		"max_tokens":  maxTokens,
		"temperature": c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "user", "content": llm.BuildExtractionPrompt(req.Text)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/messages"
	raw, status, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, &llm.ProviderError{Provider: "anthropic", Status: status, Err: err}
	}

	var msg struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, &llm.MalformedResponseError{Snippet: llm.Truncate(string(raw), 200), Err: err}
	}
	if len(msg.Content) == 0 {
		return nil, &llm.MalformedResponseError{
			Snippet: llm.Truncate(string(raw), 200),
			Err:     fmt.Errorf("empty content in response"),
		}
	}

	fields, err := llm.DecodeResponse(msg.Content[0].Text)
	if err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"provider", "anthropic",
		"fields", len(fields),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return fields, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("anthropic http error: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn("anthropic response body close error", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, fmt.Errorf("anthropic status %d: %s", resp.StatusCode, llm.Truncate(string(raw), 500))
	}
	return raw, resp.StatusCode, nil
}

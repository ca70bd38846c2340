package llm

import "fmt"

// MissingCredentialError indicates no API key was supplied for the
// selected provider. EnvKey names the environment variable the operator
// needs to set.
type MissingCredentialError struct {
	Provider string
	EnvKey   string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing API credential for %s: set the %s environment variable", e.Provider, e.EnvKey)
}

// ProviderError wraps transport and HTTP failures from a provider
// (timeouts, rate limits, 5xx). Status is 0 when the request never got a
// response. Retries are the caller's decision, never ours.
type ProviderError struct {
	Provider string
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s provider error (status %d): %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedResponseError indicates the model reply could not be parsed
// as a JSON object even after cleaning. Snippet is truncated and never
// contains credentials or the source document.
type MalformedResponseError struct {
	Snippet string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("could not parse model response as JSON: %v (raw: %s)", e.Err, e.Snippet)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

const snippetLen = 200

// Truncate caps diagnostic snippets carried inside errors.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

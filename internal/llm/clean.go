package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// jsonObjectRe grabs the outermost brace-delimited block so prose around
// the object ("Here is the extracted data: {...}") does not break parsing.
var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// CleanResponse strips markdown code fences and surrounding prose that
// models tend to wrap around a JSON reply. It is a best-effort pre-parse
// step, not a parser: DecodeResponse still reports MalformedResponseError
// when the cleaned text does not decode.
func CleanResponse(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	s = strings.TrimSpace(s)

	if match := jsonObjectRe.FindString(s); match != "" {
		s = match
	}
	return s
}

// DecodeResponse cleans a model reply and decodes it into a field
// mapping. The JSON-schema gate only asserts the top-level shape; field
// repair is the normalizer's job.
func DecodeResponse(content string) (map[string]any, error) {
	cleaned := CleanResponse(content)

	if err := ValidateObjectShape([]byte(cleaned)); err != nil {
		return nil, &MalformedResponseError{
			Snippet: Truncate(cleaned, snippetLen),
			Err:     err,
		}
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(cleaned), &m); err != nil {
		return nil, &MalformedResponseError{
			Snippet: Truncate(cleaned, snippetLen),
			Err:     err,
		}
	}
	return m, nil
}

package services

import (
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"deepread-backend/internal/llm"
)

// NormalizeCompletion extracts the usable text payload from a completion.
// A completion with no content fails with ErrEmptyCompletion — the provider
// was reachable but unhelpful, which callers surface differently from a
// transport failure.
func NormalizeCompletion(c *llm.Completion) (string, error) {
	if c == nil {
		return "", llm.ErrEmptyCompletion
	}
	text := strings.TrimSpace(c.Content)
	if text == "" {
		return "", llm.ErrEmptyCompletion
	}
	return text, nil
}

// NormalizeMindmap post-processes mind-map output for the given format.
//
// Mermaid output tolerantly loses a surrounding code-fence pair; the model
// is told not to fence its output but does not always comply. JSON output
// is probed for well-formedness only: an invalid payload is logged and
// passed through unchanged. Repairing or rejecting it here is a deliberate
// non-goal — the contract is "pass through with a diagnostic".
func NormalizeMindmap(c *llm.Completion, format OutputFormat) (string, error) {
	text, err := NormalizeCompletion(c)
	if err != nil {
		return "", err
	}

	switch format {
	case OutputFormatMermaid:
		text = stripCodeFences(text)
	case OutputFormatJSON:
		if !json.Valid([]byte(text)) {
			logrus.WithField("format", format).Warn("model did not return valid JSON for mindmap")
		}
	}
	return text, nil
}

// stripCodeFences removes a leading ``` (or ```mermaid) line and a trailing
// ``` marker if present. Absence of fencing is not an error.
func stripCodeFences(s string) string {
	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = ""
		}
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"adcraft/internal/common/errors"
)

// jsonObjectPattern greedily matches the outermost brace pair, dot
// matching newlines, so a JSON object survives surrounding prose.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSON recovers a JSON object from a model reply that may be
// wrapped in markdown fences or prose. The returned bytes are valid JSON.
func ExtractJSON(raw string) ([]byte, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if json.Valid([]byte(cleaned)) {
		return []byte(cleaned), nil
	}

	if match := jsonObjectPattern.FindString(cleaned); match != "" {
		if json.Valid([]byte(match)) {
			return []byte(match), nil
		}
	}

	return nil, errors.NewJSONExtractionFailedError(truncate(raw, 200))
}

// truncate cuts by runes so a multibyte reply is never split
// mid-sequence.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

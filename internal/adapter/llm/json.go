package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON strips reasoning blocks and markdown fences from a model answer
// and returns the outermost JSON object or array it contains.
func ExtractJSON(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd > thinkStart {
			cleaned = strings.TrimSpace(cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):])
		}
	}

	start := strings.IndexAny(cleaned, "{[")
	if start == -1 {
		return "", fmt.Errorf("no JSON found in LLM response")
	}
	closer := "}"
	if cleaned[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(cleaned, closer)
	if end < start {
		return "", fmt.Errorf("unterminated JSON in LLM response")
	}
	return cleaned[start : end+1], nil
}

// DecodeJSON extracts the JSON payload of raw and unmarshals it into v.
func DecodeJSON(raw string, v any) error {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("failed to unmarshal LLM JSON: %w", err)
	}
	return nil
}

// Package decode implements best-effort extraction of structured JSON
// from free-form model output. Models wrap JSON in markdown fences or
// surround it with commentary; every call site shares this one utility
// and supplies its own fallback value on failure.
package decode

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Object locates and parses a JSON object in raw model output. Fences
// are stripped and the payload is bounded by the first '{' and the last
// '}' so leading and trailing prose is tolerated.
func Object(raw string, v interface{}) error {
	content := stripFences(raw)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("no JSON object found in response")
	}

	return json.Unmarshal([]byte(content[start:end+1]), v)
}

// Array locates and parses a JSON array in raw model output, bounded by
// the first '[' and the last ']'.
func Array(raw string, v interface{}) error {
	content := stripFences(raw)

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("no JSON array found in response")
	}

	return json.Unmarshal([]byte(content[start:end+1]), v)
}

// stripFences removes markdown code fences around a payload.
func stripFences(s string) string {
	content := strings.TrimSpace(s)
	if idx := strings.Index(content, "```json"); idx != -1 {
		content = content[idx+len("```json"):]
		if end := strings.Index(content, "```"); end != -1 {
			content = content[:end]
		}
	} else if idx := strings.Index(content, "```"); idx != -1 {
		content = content[idx+len("```"):]
		if end := strings.Index(content, "```"); end != -1 {
			content = content[:end]
		}
	}
	return strings.TrimSpace(content)
}

// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock normalizes an LLM response down to its JSON payload. It
// removes markdown code block wrappers, then strips any conversational
// preamble or trailing prose around the first complete JSON object or array.
// LLMs often add both even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		// Handle generic ``` ... ``` blocks
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			// If first line looks like a language identifier (no spaces, short), skip it
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	objIdx := strings.Index(text, "{")
	arrIdx := strings.Index(text, "[")

	switch {
	case objIdx >= 0 && (arrIdx < 0 || objIdx < arrIdx):
		if payload := extractJSONObject(text[objIdx:]); payload != "" {
			return payload
		}
	case arrIdx >= 0:
		if payload := extractJSONArray(text[arrIdx:]); payload != "" {
			return payload
		}
	}

	return text
}

// extractJSONObject returns the first balanced JSON object at the start of
// text. Braces inside string values do not end the scan. Returns "" when
// text does not start with an object or the object never closes.
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray is the array counterpart of extractJSONObject.
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

func extractBalanced(text string, open, close byte) string {
	if len(text) == 0 || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}

	return ""
}

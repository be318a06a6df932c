package llm

import "strings"

// CleanJSONBlock normalizes a model reply down to its JSON payload. Models
// wrap JSON in ```json fences or conversational preamble even when told not
// to; this strips fences, leading prose, and trailing chatter. Input with no
// recognizable JSON passes through trimmed so the parse error surfaces on
// the original content.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	objIdx := strings.Index(text, "{")
	arrIdx := strings.Index(text, "[")
	if objIdx >= 0 && (arrIdx < 0 || objIdx < arrIdx) {
		if obj := extractJSONObject(text[objIdx:]); obj != "" {
			return obj
		}
	} else if arrIdx >= 0 {
		if arr := extractJSONArray(text[arrIdx:]); arr != "" {
			return arr
		}
	}

	return text
}

// extractJSONObject returns the balanced JSON object at the start of text,
// or "" when text does not begin with one. String literals and escapes are
// respected so braces inside values do not affect the depth count.
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the balanced JSON array at the start of text.
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
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case open:
			if !inString {
				depth++
			}
		case close:
			if !inString {
				depth--
				if depth == 0 {
					return text[:i+1]
				}
			}
		}
	}
	return ""
}

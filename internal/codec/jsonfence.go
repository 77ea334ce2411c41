// Package codec normalizes semi-structured output from the reasoning
// service. The service is asked for strict JSON but may wrap it in
// markdown code fences or surrounding prose; every reasoner operation
// runs its response through ExtractJSON before parsing.
package codec

import "strings"

// ExtractJSON strips markdown fences and surrounding prose from s and
// returns the best candidate JSON payload. It never fails; if no JSON
// object or array can be located, the trimmed input is returned as-is
// and the subsequent json.Unmarshal reports the parse failure.
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)

	// Fenced block (```json ... ``` or ``` ... ```) takes priority.
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			s = rest[:end]
		} else {
			s = rest
		}
		s = strings.TrimSpace(s)
	}

	// Stray backticks and a leading language tag.
	s = strings.Trim(s, "`")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSpace(s)

	// Cut leading/trailing prose around the outermost object or array.
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	var open, close byte = '{', '}'
	if s[start] == '[' {
		open, close = '[', ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	// Unbalanced payload: return from the opening bracket on and let
	// the parser complain.
	return s[start:]
}

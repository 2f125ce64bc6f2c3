package lib

import "strings"

// CleanJSONResponse strips the markdown fences and stray prose LLMs wrap
// around JSON payloads, returning the bare object/array text.
func CleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```JSON")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	// Models occasionally prefix a sentence before the payload; cut to the
	// first brace or bracket when the string does not already start with one.
	if len(s) > 0 && s[0] != '{' && s[0] != '[' {
		obj := strings.IndexByte(s, '{')
		arr := strings.IndexByte(s, '[')
		switch {
		case obj >= 0 && (arr < 0 || obj < arr):
			s = s[obj:]
		case arr >= 0:
			s = s[arr:]
		}
	}

	return strings.TrimSpace(s)
}

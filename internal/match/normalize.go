package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier for comparison: word boundaries from
// CamelCase and snake_case are dropped and everything is lowercased, so
// "OptionalValue", "optional_value" and "OPTIONAL_VALUE" compare equal.
func NormalizeIdent(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, word := range Words(s) {
		sb.WriteString(strings.ToLower(word))
	}

	return sb.String()
}

// Words splits an identifier into its words.
// Examples:
//   - "HashMap" -> ["Hash", "Map"]
//   - "raw_bytes" -> ["raw", "bytes"]
//   - "HTTPClient" -> ["HTTP", "Client"]
//   - "u8" -> ["u8"]
func Words(s string) []string {
	var (
		words []string
		start = -1
	)

	runes := []rune(s)

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}

		start = -1
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush(i)
			continue
		}

		if start >= 0 && wordBreak(runes, i) {
			flush(i)
		}

		if start < 0 {
			start = i
		}
	}

	flush(len(runes))

	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// wordBreak reports whether a new word starts at runes[i]: a lower to upper
// transition, or the last capital of an acronym followed by lowercase.
func wordBreak(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// Package depends evaluates dependency expressions between fields. An
// expression is a field name optionally followed by an extraction spec:
// "Name", "Name[w2]" (second word) or "Name[ch1-4]" (character range).
// Indices are 1-based; anything out of range extracts to the empty string.
package depends

import (
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`^(.+)\[(w|ch)(.+)\]$`)

// BaseField returns the referenced field name with any extraction spec
// stripped. Rotation inheritance resolves the parent field through this.
func BaseField(expr string) string {
	if idx := strings.Index(expr, "["); idx >= 0 {
		return expr[:idx]
	}
	return expr
}

// IsImagePayload reports whether a value is an embedded image reference.
// Dependent image fields mirror the whole payload; extraction specs never
// slice into a data URI.
func IsImagePayload(value string) bool {
	return strings.HasPrefix(value, "data:image/") || strings.HasPrefix(value, "blob:")
}

// Resolve computes the effective value of a dependency expression against the
// current field values. Unknown fields and out-of-range extractions resolve
// to the empty string rather than failing: fields are independent units of
// work.
func Resolve(values map[string]string, expr string) string {
	if match := exprPattern.FindStringSubmatch(expr); match != nil {
		value := values[match[1]]
		if IsImagePayload(value) {
			return value
		}
		switch match[2] {
		case "w":
			return extractWord(value, match[3])
		case "ch":
			return extractChars(value, match[3])
		}
	}
	value := values[expr]
	if IsImagePayload(value) {
		return value
	}
	return value
}

func extractWord(text, spec string) string {
	words := strings.Fields(strings.TrimSpace(text))
	index, err := strconv.Atoi(spec)
	if err != nil {
		return ""
	}
	index--
	if index < 0 || index >= len(words) {
		return ""
	}
	return words[index]
}

func extractChars(text, spec string) string {
	runes := []rune(text)

	if strings.Contains(spec, ",") {
		var out []rune
		for _, part := range strings.Split(spec, ",") {
			index, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			index--
			if index >= 0 && index < len(runes) {
				out = append(out, runes[index])
			}
		}
		return string(out)
	}

	if strings.Contains(spec, "-") {
		bounds := strings.SplitN(spec, "-", 2)
		start, err1 := strconv.Atoi(strings.TrimSpace(bounds[0]))
		end, err2 := strconv.Atoi(strings.TrimSpace(bounds[1]))
		if err1 != nil || err2 != nil {
			return ""
		}
		if start < 1 {
			start = 1
		}
		if end > len(runes) {
			end = len(runes)
		}
		if start > end {
			return ""
		}
		return string(runes[start-1 : end])
	}

	index, err := strconv.Atoi(spec)
	if err != nil {
		return ""
	}
	index--
	if index < 0 || index >= len(runes) {
		return ""
	}
	return string(runes[index])
}

// Package rendering maps document data onto visual templates. Rendering is
// deterministic: identical input produces byte-identical output.
package rendering

import "strings"

// EscapeHTML escapes the characters with special meaning in HTML text and
// attribute values: & < > " '
func EscapeHTML(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/4)

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '"':
			result.WriteString("&quot;")
		case '\'':
			result.WriteString("&#39;")
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// JoinNonEmpty joins the non-empty parts with sep, omitting the separator
// entirely for absent fields rather than rendering empty fragments.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// FormatDateRange renders "start - end". A current role always shows
// "Present" for the end regardless of the stored end date. Either side may
// be absent.
func FormatDateRange(start, end string, current bool) string {
	if current {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	default:
		return start + " - " + end
	}
}

// SplitParagraphs splits newline-delimited body text into non-empty
// paragraphs.
func SplitParagraphs(body string) []string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Jane Doe", "Jane Doe"},
		{"angle brackets", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"ampersand", "R&D", "R&amp;D"},
		{"quotes", `say "hi" and 'bye'`, "say &quot;hi&quot; and &#39;bye&#39;"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeHTML(tt.input))
		})
	}
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "a | b", JoinNonEmpty(" | ", "a", "", "b"))
	assert.Equal(t, "a", JoinNonEmpty(" | ", "a"))
	assert.Equal(t, "", JoinNonEmpty(" | ", "", ""))
	assert.Equal(t, "Austin, TX", JoinNonEmpty(", ", "Austin", "TX"))
}

func TestFormatDateRange(t *testing.T) {
	assert.Equal(t, "2020-01 - 2022-06", FormatDateRange("2020-01", "2022-06", false))
	// Current roles always show Present, even with a stored end date.
	assert.Equal(t, "2020-01 - Present", FormatDateRange("2020-01", "2022-06", true))
	assert.Equal(t, "2020-01 - Present", FormatDateRange("2020-01", "", true))
	assert.Equal(t, "2020-01", FormatDateRange("2020-01", "", false))
	assert.Equal(t, "", FormatDateRange("", "", false))
}

func TestSplitParagraphs(t *testing.T) {
	paras := SplitParagraphs("First paragraph.\n\nSecond paragraph.\n\n\nThird.")
	assert.Equal(t, []string{"First paragraph.", "Second paragraph.", "Third."}, paras)

	assert.Empty(t, SplitParagraphs(""))
	assert.Equal(t, []string{"Only one."}, SplitParagraphs("Only one."))
}

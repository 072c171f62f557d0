package pipeline

import (
	"regexp"
	"strings"
)

// categoryPattern matches an explicit category suggestion in generated text.
// Best-effort: models follow the directive most of the time, not always.
// Whitespace after the label may include a line break, so a value placed on
// the following line is still picked up.
var categoryPattern = regexp.MustCompile(`(?i)Categoria Sugerida:\s*([^\n]+)`)

// ExtractSuggestedCategory scans generated text for a "Categoria Sugerida:"
// line and returns the trimmed value. A miss is not an error; the second
// return value reports whether a suggestion was found.
func ExtractSuggestedCategory(text string) (string, bool) {
	m := categoryPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	value := strings.TrimSpace(m[1])
	if value == "" {
		return "", false
	}
	return value, true
}

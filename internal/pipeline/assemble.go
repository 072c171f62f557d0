package pipeline

import (
	"fmt"
	"strings"

	"github.com/reviewnexus/reviewnexus/internal/models"
)

const (
	// metaTitleMaxLen is the SEO length cap for meta titles.
	metaTitleMaxLen = 60
	// metaTitleTruncLen leaves room for the ellipsis marker.
	metaTitleTruncLen = 57
	// excerptSourceLen is how much of the article body feeds the excerpt.
	excerptSourceLen = 200
)

// AssembleResult derives the SEO metadata and packages the final generation
// result. Pure transformation, no failure modes.
func AssembleResult(title, articleHTML string, thumbnail, suggestedCategory *string) models.GenerationResult {
	return models.GenerationResult{
		Content:           articleHTML,
		MetaTitle:         MetaTitle(title),
		MetaDescription:   fmt.Sprintf("Review completo e análise detalhada: %s. Prós, contras, comparações, ficha técnica e veredito final.", title),
		Excerpt:           Excerpt(articleHTML),
		Thumbnail:         thumbnail,
		SuggestedCategory: suggestedCategory,
	}
}

// MetaTitle returns the title unchanged when it fits the SEO cap, otherwise
// the first 57 runes plus an ellipsis marker (exactly 60 runes).
func MetaTitle(title string) string {
	r := []rune(title)
	if len(r) <= metaTitleMaxLen {
		return title
	}
	return string(r[:metaTitleTruncLen]) + "..."
}

// Excerpt takes the first 200 runes of the article body, strips markup, trims
// whitespace, and appends an ellipsis marker. The marker is appended even
// when the stripped text is shorter than the cap; callers rely on that.
func Excerpt(articleHTML string) string {
	r := []rune(articleHTML)
	if len(r) > excerptSourceLen {
		r = r[:excerptSourceLen]
	}
	return strings.TrimSpace(stripTags(string(r))) + "..."
}

// stripTags removes markup from text, including a trailing tag left
// unterminated by the excerpt cut.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

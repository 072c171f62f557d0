package pipeline

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMetaTitleShortTitleUnchanged(t *testing.T) {
	for _, title := range []string{"Fone XYZ", strings.Repeat("a", 60), "Ré"} {
		if got := MetaTitle(title); got != title {
			t.Errorf("MetaTitle(%q) = %q, want unchanged", title, got)
		}
	}
}

func TestMetaTitleLongTitleTruncated(t *testing.T) {
	title := strings.Repeat("ab", 40) // 80 runes
	got := MetaTitle(title)
	if utf8.RuneCountInString(got) != 60 {
		t.Errorf("expected 60 runes, got %d (%q)", utf8.RuneCountInString(got), got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if got[:57] != title[:57] {
		t.Errorf("expected first 57 characters preserved, got %q", got[:57])
	}
}

func TestExcerptStripsMarkupAndAppendsEllipsis(t *testing.T) {
	got := Excerpt("<div class=\"review-article\"><h1>Fone XYZ</h1><p>Um review honesto.</p></div>")
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if strings.ContainsAny(got, "<>") {
		t.Errorf("expected no markup characters, got %q", got)
	}
	if !strings.Contains(got, "Fone XYZ") {
		t.Errorf("expected text content preserved, got %q", got)
	}
}

func TestExcerptTruncationMidTag(t *testing.T) {
	// The 200-rune cut can land inside a tag; the unterminated tail must
	// still be stripped.
	html := "<p>" + strings.Repeat("a", 190) + "</p><div class=\"pros-cons\">more</div>"
	got := Excerpt(html)
	if strings.ContainsAny(got, "<>") {
		t.Errorf("expected no markup characters after mid-tag cut, got %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}

func TestExcerptShortContentStillGetsEllipsis(t *testing.T) {
	got := Excerpt("<p>curto</p>")
	if got != "curto..." {
		t.Errorf("expected %q, got %q", "curto...", got)
	}
}

func TestAssembleResult(t *testing.T) {
	thumb := "data:image/png;base64,abc"
	suggested := "Eletrônicos"
	result := AssembleResult("Fone XYZ", "<div><p>corpo do review</p></div>", &thumb, &suggested)

	if result.MetaTitle != "Fone XYZ" {
		t.Errorf("unexpected metaTitle %q", result.MetaTitle)
	}
	if !strings.Contains(result.MetaDescription, "Fone XYZ") {
		t.Errorf("expected title embedded in metaDescription, got %q", result.MetaDescription)
	}
	if result.Content != "<div><p>corpo do review</p></div>" {
		t.Errorf("unexpected content %q", result.Content)
	}
	if result.Thumbnail == nil || *result.Thumbnail != thumb {
		t.Errorf("unexpected thumbnail %v", result.Thumbnail)
	}
	if result.SuggestedCategory == nil || *result.SuggestedCategory != suggested {
		t.Errorf("unexpected suggestedCategory %v", result.SuggestedCategory)
	}
}

func TestAssembleResultAbsentOptionals(t *testing.T) {
	result := AssembleResult("Fone XYZ", "<p>corpo</p>", nil, nil)
	if result.Thumbnail != nil {
		t.Errorf("expected nil thumbnail, got %v", *result.Thumbnail)
	}
	if result.SuggestedCategory != nil {
		t.Errorf("expected nil suggestedCategory, got %v", *result.SuggestedCategory)
	}
}

package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/reviewnexus/reviewnexus/internal/models"
)

// mockGenerator implements Generator for testing.
type mockGenerator struct {
	articleHTML    string
	articleErr     error
	thumbnail      string
	thumbnailOK    bool
	articleCalls   int
	thumbnailCalls int
}

func (m *mockGenerator) GenerateArticle(_ context.Context, _, _ string) (string, error) {
	m.articleCalls++
	return m.articleHTML, m.articleErr
}

func (m *mockGenerator) GenerateThumbnail(_ context.Context, _ string) (string, bool) {
	m.thumbnailCalls++
	return m.thumbnail, m.thumbnailOK
}

func TestGenerateSuppliedCategoryNeverSuggests(t *testing.T) {
	// Even when the generated text contains a suggestion line, a supplied
	// category means the result carries none.
	gen := &mockGenerator{articleHTML: "<div>review</div>\nCategoria Sugerida: Eletrônicos", thumbnail: "data:image/png;base64,x", thumbnailOK: true}
	p := New(gen)

	result, err := p.Generate(context.Background(), models.GenerationRequest{Title: "Fone XYZ", Category: "Áudio"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.SuggestedCategory != nil {
		t.Errorf("expected no suggestion with supplied category, got %q", *result.SuggestedCategory)
	}
}

func TestGenerateExtractsSuggestionWhenCategoryAbsent(t *testing.T) {
	gen := &mockGenerator{articleHTML: "<div>review</div>\nCategoria Sugerida: Eletrônicos"}
	p := New(gen)

	result, err := p.Generate(context.Background(), models.GenerationRequest{Title: "Fone XYZ"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.SuggestedCategory == nil || *result.SuggestedCategory != "Eletrônicos" {
		t.Errorf("expected suggestion Eletrônicos, got %v", result.SuggestedCategory)
	}
}

func TestGenerateNoSuggestionLine(t *testing.T) {
	gen := &mockGenerator{articleHTML: "<div>review sem sugestão</div>"}
	p := New(gen)

	result, err := p.Generate(context.Background(), models.GenerationRequest{Title: "Fone XYZ"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.SuggestedCategory != nil {
		t.Errorf("expected no suggestion, got %q", *result.SuggestedCategory)
	}
}

func TestGenerateThumbnailFailureDoesNotAbort(t *testing.T) {
	gen := &mockGenerator{articleHTML: "<div>review</div>", thumbnailOK: false}
	p := New(gen)

	result, err := p.Generate(context.Background(), models.GenerationRequest{Title: "Fone XYZ", Category: "Áudio"})
	if err != nil {
		t.Fatalf("expected no error when only the thumbnail fails, got %v", err)
	}
	if result.Thumbnail != nil {
		t.Errorf("expected nil thumbnail, got %q", *result.Thumbnail)
	}
	if result.Content != "<div>review</div>" {
		t.Errorf("expected article content populated, got %q", result.Content)
	}
}

func TestGenerateArticleFailureSkipsThumbnail(t *testing.T) {
	gen := &mockGenerator{articleErr: errors.New("upstream down")}
	p := New(gen)

	_, err := p.Generate(context.Background(), models.GenerationRequest{Title: "Fone XYZ"})
	if err == nil {
		t.Fatal("expected error from failed generation")
	}
	if gen.thumbnailCalls != 0 {
		t.Errorf("expected thumbnail call skipped after generation failure, got %d calls", gen.thumbnailCalls)
	}
}

func TestGenerateThumbnailFollowsGeneration(t *testing.T) {
	gen := &mockGenerator{articleHTML: "<div>review</div>", thumbnail: "data:image/png;base64,x", thumbnailOK: true}
	p := New(gen)

	result, err := p.Generate(context.Background(), models.GenerationRequest{Title: "Fone XYZ", Category: "Áudio"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gen.articleCalls != 1 || gen.thumbnailCalls != 1 {
		t.Errorf("expected one article and one thumbnail call, got %d and %d", gen.articleCalls, gen.thumbnailCalls)
	}
	if result.Thumbnail == nil || *result.Thumbnail != "data:image/png;base64,x" {
		t.Errorf("expected thumbnail passed through, got %v", result.Thumbnail)
	}
}

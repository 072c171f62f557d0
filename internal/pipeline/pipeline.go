package pipeline

import (
	"context"
	"log/slog"

	"github.com/reviewnexus/reviewnexus/internal/models"
)

// Generator defines the gateway operations the pipeline depends on.
type Generator interface {
	GenerateArticle(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	GenerateThumbnail(ctx context.Context, title string) (string, bool)
}

// Pipeline turns a generation request into a finished article body plus SEO
// metadata and an optional thumbnail. It is stateless between invocations.
type Pipeline struct {
	gw Generator
}

// New creates a pipeline backed by the given gateway client.
func New(gw Generator) *Pipeline {
	return &Pipeline{gw: gw}
}

// Generate runs the sequence: prompt building, article generation, category
// extraction, thumbnail generation, response assembly. Only the article
// generation step's failure aborts the pipeline; category extraction and
// thumbnail generation degrade to absent values. The thumbnail call is never
// started until article generation has succeeded.
func (p *Pipeline) Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResult, error) {
	systemPrompt, userPrompt := BuildPrompts(req.Title, req.Content, req.Category, req.SourceURL)

	articleHTML, err := p.gw.GenerateArticle(ctx, systemPrompt, userPrompt)
	if err != nil {
		return models.GenerationResult{}, err
	}
	slog.Debug("Pipeline.Generate: article generated", "title", req.Title, "content_len", len(articleHTML))

	var suggested *string
	if req.Category == "" {
		if value, ok := ExtractSuggestedCategory(articleHTML); ok {
			suggested = &value
			slog.Debug("Pipeline.Generate: category suggestion extracted", "category", value)
		}
	}

	var thumbnail *string
	if url, ok := p.gw.GenerateThumbnail(ctx, req.Title); ok {
		thumbnail = &url
	}

	return AssembleResult(req.Title, articleHTML, thumbnail, suggested), nil
}

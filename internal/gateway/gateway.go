// Package gateway provides the client for the AI inference gateway used to
// generate article bodies and thumbnail images.
//
// The gateway speaks the OpenAI chat-completions protocol, so both calls go
// through the openai-go SDK pointed at the gateway base URL. Article
// generation failures are classified by upstream status so the API layer can
// surface 429/402 distinctly; thumbnail generation is best-effort and never
// reports an error to callers.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"
)

// Default configuration for the inference gateway.
const (
	// DefaultBaseURL is the chat-completions endpoint of the AI gateway.
	DefaultBaseURL = "https://ai.gateway.lovable.dev/v1"
	// DefaultTextModel generates article bodies.
	DefaultTextModel = "google/gemini-2.5-flash"
	// DefaultImageModel generates thumbnails via image modality output.
	DefaultImageModel = "google/gemini-2.5-flash-image-preview"
	// thumbnailMaxTokens bounds the image response size.
	thumbnailMaxTokens = 1024
)

// thumbnailPromptTemplate is parameterized only by the article title.
const thumbnailPromptTemplate = `Create a professional, clean, and elegant product review thumbnail image for: "%s".
Style: modern, trustworthy, neutral colors, minimalist design, high quality, similar to TechRadar or Tom's Guide thumbnails.
The image should be suitable for a professional review website. 16:9 aspect ratio.
IMPORTANT: Generate a SMALL, OPTIMIZED image suitable for web use (max ~100KB).`

// Error variables for upstream failure classification.
var (
	// ErrMissingAPIKey indicates the gateway credential was not configured.
	ErrMissingAPIKey = errors.New("AI gateway API key not set")
	// ErrRateLimited indicates the gateway rejected the request with HTTP 429.
	ErrRateLimited = errors.New("ai gateway rate limit exceeded")
	// ErrQuotaExhausted indicates the gateway rejected the request with HTTP 402.
	ErrQuotaExhausted = errors.New("ai gateway credits exhausted")
	// ErrMalformedResponse indicates the gateway response lacked the expected structure.
	ErrMalformedResponse = errors.New("ai gateway returned no completion choices")
)

// UpstreamError wraps any other non-success gateway status.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ai gateway error: status %d", e.Status)
}

// chatService defines the minimal interface for chat completions.
type chatService interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Opts holds configuration for the gateway client.
type Opts struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
}

// Option configures the gateway client.
type Option func(*Opts)

// WithAPIKey sets the gateway credential.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithBaseURL overrides the gateway endpoint.
func WithBaseURL(url string) Option {
	return func(o *Opts) { o.BaseURL = url }
}

// WithTextModel overrides the article-generation model.
func WithTextModel(model string) Option {
	return func(o *Opts) { o.TextModel = model }
}

// WithImageModel overrides the thumbnail-generation model.
func WithImageModel(model string) Option {
	return func(o *Opts) { o.ImageModel = model }
}

// Client issues text and image generation requests to the AI gateway.
type Client struct {
	chat       chatService
	textModel  string
	imageModel string
}

// NewClient initializes a gateway client. A missing API key is a
// configuration error surfaced at construction time, before any request.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	slog.Debug("gateway.NewClient: configured", "base_url", cfg.BaseURL, "text_model", cfg.TextModel, "image_model", cfg.ImageModel)
	cli := openai.NewClient(option.WithAPIKey(cfg.APIKey), option.WithBaseURL(cfg.BaseURL))
	return &Client{chat: &cli.Chat.Completions, textModel: cfg.TextModel, imageModel: cfg.ImageModel}, nil
}

// GenerateArticle sends the built prompts as a two-message conversation and
// returns the generated article body. This is the only gateway call whose
// failure aborts the pipeline.
func (c *Client) GenerateArticle(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.textModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	}
	resp, err := c.chat.New(ctx, params)
	if err != nil {
		classified := classify(err)
		slog.Error("Client.GenerateArticle: gateway request failed", "error", err, "classified", classified)
		return "", classified
	}
	if len(resp.Choices) == 0 {
		slog.Error("Client.GenerateArticle: gateway response missing choices")
		return "", ErrMalformedResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateThumbnail requests a 16:9 review thumbnail for the given title.
// Any failure is absorbed: the second return value reports whether an image
// was produced, and callers must treat absence as an expected outcome.
func (c *Client) GenerateThumbnail(ctx context.Context, title string) (string, bool) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.imageModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(fmt.Sprintf(thumbnailPromptTemplate, title)),
		},
		MaxTokens: openai.Int(thumbnailMaxTokens),
	}
	// The modalities field is gateway-specific and has no typed equivalent in
	// the SDK, so it is injected into the request body directly.
	resp, err := c.chat.New(ctx, params, option.WithJSONSet("modalities", []string{"image", "text"}))
	if err != nil {
		slog.Error("Client.GenerateThumbnail: gateway request failed", "error", err, "title", title)
		return "", false
	}
	if len(resp.Choices) == 0 {
		slog.Warn("Client.GenerateThumbnail: gateway response missing choices", "title", title)
		return "", false
	}
	// The image payload rides in an untyped message field:
	// choices[0].message.images[0].image_url.url
	images, ok := resp.Choices[0].Message.JSON.ExtraFields["images"]
	if !ok {
		slog.Warn("Client.GenerateThumbnail: gateway response carried no image", "title", title)
		return "", false
	}
	url := gjson.Get(images.Raw(), "0.image_url.url").String()
	if url == "" {
		slog.Warn("Client.GenerateThumbnail: image payload missing url", "title", title)
		return "", false
	}
	slog.Debug("Client.GenerateThumbnail: thumbnail generated", "title", title)
	return url, true
}

// classify maps an SDK error to the pipeline failure taxonomy by upstream
// status code. Errors without a status (network, context) pass through.
func classify(err error) error {
	var apierr *openai.Error
	if !errors.As(err, &apierr) {
		return err
	}
	switch apierr.StatusCode {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusPaymentRequired:
		return ErrQuotaExhausted
	default:
		return &UpstreamError{Status: apierr.StatusCode}
	}
}

// Package models defines the core data structures for ReviewNexus.
//
// It includes the transient generation request/result pair exchanged with the
// admin console, and the article, category, and settings records shared
// between the API and store modules.
package models

import (
	"errors"
	"time"
	"unicode/utf8"
)

// ArticleStatus defines the publication state of an article.
type ArticleStatus string

const (
	// ArticleStatusDraft marks an article that is not publicly visible.
	ArticleStatusDraft ArticleStatus = "draft"
	// ArticleStatusPublished marks an article visible on the public catalogue.
	ArticleStatusPublished ArticleStatus = "published"
	// ArticleStatusArchived marks an article removed from the catalogue but retained.
	ArticleStatusArchived ArticleStatus = "archived"
)

// Validation constants for input validation. Lengths are counted in runes so
// the caps agree with the rune-based metadata truncation downstream.
const (
	// MaxTitleLength defines the maximum allowed length for article titles
	MaxTitleLength = 300
	// MaxSourceContentLength defines the maximum allowed length for reference content
	MaxSourceContentLength = 65536
	// MaxCategoryNameLength defines the maximum allowed length for category names
	MaxCategoryNameLength = 100
	// MaxRating is the upper bound of the review rating scale
	MaxRating = 5.0
)

// Error variables for better error handling and testability
var (
	ErrEmptyTitle           = errors.New("title cannot be empty")
	ErrTitleTooLong         = errors.New("title exceeds maximum length")
	ErrSourceContentTooLong = errors.New("content exceeds maximum length")
	ErrCategoryNameTooLong  = errors.New("category exceeds maximum length")
	ErrEmptyCategoryName    = errors.New("category name cannot be empty")
	ErrInvalidStatus        = errors.New("invalid article status")
	ErrInvalidRating        = errors.New("rating must be between 0 and 5")
	ErrEmptyContentHTML     = errors.New("content_html cannot be empty")
)

// IsValidArticleStatus checks if the given status is supported.
func IsValidArticleStatus(s ArticleStatus) bool {
	switch s {
	case ArticleStatusDraft, ArticleStatusPublished, ArticleStatusArchived:
		return true
	default:
		return false
	}
}

// GenerationRequest is the body of a generate-article call from the admin
// console. Content is reference material only and is never copied verbatim
// into the generated article.
type GenerationRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	Category  string `json:"category,omitempty"`
	SourceURL string `json:"sourceUrl,omitempty"`
}

// Validate performs validation on a GenerationRequest.
func (g *GenerationRequest) Validate() error {
	if g.Title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(g.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(g.Content) > MaxSourceContentLength {
		return ErrSourceContentTooLong
	}
	if utf8.RuneCountInString(g.Category) > MaxCategoryNameLength {
		return ErrCategoryNameTooLong
	}
	return nil
}

// GenerationResult is the payload returned by a successful generate-article
// call. Thumbnail and SuggestedCategory serialize as null when absent;
// thumbnail absence is an expected outcome, not an error.
type GenerationResult struct {
	Content           string  `json:"content"`
	MetaTitle         string  `json:"metaTitle"`
	MetaDescription   string  `json:"metaDescription"`
	Excerpt           string  `json:"excerpt"`
	Thumbnail         *string `json:"thumbnail"`
	SuggestedCategory *string `json:"suggestedCategory"`
}

// AffiliateLink is a purchase link attached to an article after generation.
type AffiliateLink struct {
	StoreName string `json:"store_name"`
	URL       string `json:"url"`
}

// Article is a review record, draft or published.
type Article struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	CategoryID      string          `json:"category_id,omitempty"`
	ContentHTML     string          `json:"content_html"`
	Excerpt         string          `json:"excerpt,omitempty"`
	Rating          float64         `json:"rating,omitempty"`
	Status          ArticleStatus   `json:"status"`
	MetaTitle       string          `json:"meta_title,omitempty"`
	MetaDescription string          `json:"meta_description,omitempty"`
	Thumbnail       string          `json:"thumbnail,omitempty"`
	AffiliateLinks  []AffiliateLink `json:"affiliate_links,omitempty"`
	AuthorID        string          `json:"author_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	PublishedAt     *time.Time      `json:"published_at,omitempty"`
}

// Validate performs validation on an Article before it is persisted.
func (a *Article) Validate() error {
	if a.Title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(a.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if a.ContentHTML == "" {
		return ErrEmptyContentHTML
	}
	if a.Status != "" && !IsValidArticleStatus(a.Status) {
		return ErrInvalidStatus
	}
	if a.Rating < 0 || a.Rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// ArticleFilter narrows article listings. Zero values match everything.
type ArticleFilter struct {
	Status     ArticleStatus
	CategoryID string
	Query      string // matched against title and excerpt
}

// Category groups articles on the public catalogue.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate performs validation on a Category before it is persisted.
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrEmptyCategoryName
	}
	if utf8.RuneCountInString(c.Name) > MaxCategoryNameLength {
		return ErrCategoryNameTooLong
	}
	return nil
}

// Settings is the single-row site configuration edited from the admin console.
type Settings struct {
	SiteName        string    `json:"site_name,omitempty"`
	SiteDescription string    `json:"site_description,omitempty"`
	SiteLogo        string    `json:"site_logo,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ErrorBody is the JSON error envelope returned by every failing endpoint.
type ErrorBody struct {
	Error string `json:"error"`
}

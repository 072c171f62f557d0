package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reviewnexus/reviewnexus/internal/models"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// newID generates a record identifier.
func newID() string {
	return uuid.NewString()
}

// requireRowAffected converts a zero-row write into ErrNotFound.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// nilIfEmpty returns nil if s is empty, otherwise returns s.
// Used for nullable database columns.
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// affiliateLinksJSON marshals affiliate links for a nullable JSON column.
func affiliateLinksJSON(links []models.AffiliateLink) (interface{}, error) {
	if len(links) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("marshal affiliate links failed: %w", err)
	}
	return string(data), nil
}

// articleScanner abstracts sql.Row and sql.Rows for scanArticle.
type articleScanner interface {
	Scan(dest ...interface{}) error
}

// scanArticle scans an Article from a row with the canonical column order:
// id, title, slug, category_id, content_html, excerpt, rating, status,
// meta_title, meta_description, thumbnail, affiliate_links, author_id,
// created_at, updated_at, published_at.
func scanArticle(row articleScanner) (models.Article, error) {
	var a models.Article
	var categoryID, excerpt, metaTitle, metaDescription, thumbnail, linksJSON, authorID sql.NullString
	var rating sql.NullFloat64
	var publishedAt sql.NullTime
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &categoryID, &a.ContentHTML, &excerpt, &rating, &a.Status,
		&metaTitle, &metaDescription, &thumbnail, &linksJSON, &authorID,
		&a.CreatedAt, &a.UpdatedAt, &publishedAt,
	)
	if err != nil {
		return a, err
	}
	a.CategoryID = categoryID.String
	a.Excerpt = excerpt.String
	a.Rating = rating.Float64
	a.MetaTitle = metaTitle.String
	a.MetaDescription = metaDescription.String
	a.Thumbnail = thumbnail.String
	a.AuthorID = authorID.String
	if publishedAt.Valid {
		a.PublishedAt = &publishedAt.Time
	}
	if linksJSON.Valid && linksJSON.String != "" {
		if err := json.Unmarshal([]byte(linksJSON.String), &a.AffiliateLinks); err != nil {
			return a, fmt.Errorf("unmarshal affiliate links failed: %w", err)
		}
	}
	return a, nil
}

// scanCategory scans a Category from a row with the canonical column order:
// id, name, slug, description, created_at, updated_at.
func scanCategory(row articleScanner) (models.Category, error) {
	var c models.Category
	var description sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return c, err
	}
	c.Description = description.String
	return c, nil
}

// Package store provides storage backends for ReviewNexus.
//
// This file implements the PostgreSQL-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	_ "github.com/lib/pq"

	"github.com/reviewnexus/reviewnexus/internal/models"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore persists articles, categories, and settings in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("PostgresStore.NewPostgresStore: creating Postgres store", "DSN_set", cfg.DSN != "")
	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run Postgres migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")
	return &PostgresStore{db: db}, nil
}

const postgresArticleColumns = `id, title, slug, category_id, content_html, excerpt, rating, status,
	meta_title, meta_description, thumbnail, affiliate_links, author_id, created_at, updated_at, published_at`

func (s *PostgresStore) CreateArticle(a models.Article) (models.Article, error) {
	if a.ID == "" {
		a.ID = newID()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	links, err := affiliateLinksJSON(a.AffiliateLinks)
	if err != nil {
		return a, err
	}
	_, err = s.db.Exec(`INSERT INTO articles (`+postgresArticleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		a.ID, a.Title, a.Slug, nilIfEmpty(a.CategoryID), a.ContentHTML, nilIfEmpty(a.Excerpt), a.Rating, a.Status,
		nilIfEmpty(a.MetaTitle), nilIfEmpty(a.MetaDescription), nilIfEmpty(a.Thumbnail), links, nilIfEmpty(a.AuthorID),
		a.CreatedAt, a.UpdatedAt, a.PublishedAt)
	if err != nil {
		return a, fmt.Errorf("insert article failed: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) GetArticle(id string) (*models.Article, error) {
	row := s.db.QueryRow(`SELECT `+postgresArticleColumns+` FROM articles WHERE id = $1`, id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PostgresStore) GetArticleBySlug(slug string) (*models.Article, error) {
	row := s.db.QueryRow(`SELECT `+postgresArticleColumns+` FROM articles WHERE slug = $1`, slug)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PostgresStore) ListArticles(f models.ArticleFilter) ([]models.Article, error) {
	query := `SELECT ` + postgresArticleColumns + ` FROM articles WHERE 1=1`
	var args []interface{}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR excerpt ILIKE $%d)", len(args), len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles failed: %w", err)
	}
	defer rows.Close()
	var out []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateArticle(a models.Article) error {
	links, err := affiliateLinksJSON(a.AffiliateLinks)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE articles SET title = $2, slug = $3, category_id = $4, content_html = $5,
		excerpt = $6, rating = $7, status = $8, meta_title = $9, meta_description = $10, thumbnail = $11,
		affiliate_links = $12, author_id = $13, updated_at = $14, published_at = $15 WHERE id = $1`,
		a.ID, a.Title, a.Slug, nilIfEmpty(a.CategoryID), a.ContentHTML, nilIfEmpty(a.Excerpt), a.Rating, a.Status,
		nilIfEmpty(a.MetaTitle), nilIfEmpty(a.MetaDescription), nilIfEmpty(a.Thumbnail), links, nilIfEmpty(a.AuthorID),
		time.Now().UTC(), a.PublishedAt)
	if err != nil {
		return fmt.Errorf("update article failed: %w", err)
	}
	return requireRowAffected(res)
}

func (s *PostgresStore) DeleteArticle(id string) error {
	res, err := s.db.Exec(`DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article failed: %w", err)
	}
	return requireRowAffected(res)
}

func (s *PostgresStore) CreateCategory(c models.Category) (models.Category, error) {
	if c.ID == "" {
		c.ID = newID()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := s.db.Exec(`INSERT INTO categories (id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Slug, nilIfEmpty(c.Description), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return c, fmt.Errorf("insert category failed: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) GetCategory(id string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT id, name, slug, description, created_at, updated_at FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) ListCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT id, name, slug, description, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories failed: %w", err)
	}
	defer rows.Close()
	var out []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateCategory(c models.Category) error {
	res, err := s.db.Exec(`UPDATE categories SET name = $2, slug = $3, description = $4, updated_at = $5 WHERE id = $1`,
		c.ID, c.Name, c.Slug, nilIfEmpty(c.Description), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update category failed: %w", err)
	}
	return requireRowAffected(res)
}

func (s *PostgresStore) DeleteCategory(id string) error {
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category failed: %w", err)
	}
	return requireRowAffected(res)
}

func (s *PostgresStore) GetSettings() (models.Settings, error) {
	var out models.Settings
	var name, description, logo sql.NullString
	row := s.db.QueryRow(`SELECT site_name, site_description, site_logo, updated_at FROM settings WHERE id = 1`)
	err := row.Scan(&name, &description, &logo, &out.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.Settings{}, nil
	}
	if err != nil {
		return out, err
	}
	out.SiteName = name.String
	out.SiteDescription = description.String
	out.SiteLogo = logo.String
	return out, nil
}

func (s *PostgresStore) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`INSERT INTO settings (id, site_name, site_description, site_logo, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			site_name = EXCLUDED.site_name,
			site_description = EXCLUDED.site_description,
			site_logo = EXCLUDED.site_logo,
			updated_at = EXCLUDED.updated_at`,
		nilIfEmpty(settings.SiteName), nilIfEmpty(settings.SiteDescription), nilIfEmpty(settings.SiteLogo), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save settings failed: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Package store provides storage backends for ReviewNexus.
//
// This file implements the SQLite-backed store for single-node installs.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	_ "github.com/mattn/go-sqlite3"

	"github.com/reviewnexus/reviewnexus/internal/models"
)

// DefaultDirPermissions defines the default permissions for database directories
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore persists articles, categories, and settings in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("SQLiteStore.NewSQLiteStore: creating SQLite store", "DSN_set", cfg.DSN != "")
	if cfg.DSN == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run SQLite migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully", "path", cfg.DSN)
	return &SQLiteStore{db: db}, nil
}

const sqliteArticleColumns = `id, title, slug, category_id, content_html, excerpt, rating, status,
	meta_title, meta_description, thumbnail, affiliate_links, author_id, created_at, updated_at, published_at`

func (s *SQLiteStore) CreateArticle(a models.Article) (models.Article, error) {
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
	_, err = s.db.Exec(`INSERT INTO articles (`+sqliteArticleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Slug, nilIfEmpty(a.CategoryID), a.ContentHTML, nilIfEmpty(a.Excerpt), a.Rating, a.Status,
		nilIfEmpty(a.MetaTitle), nilIfEmpty(a.MetaDescription), nilIfEmpty(a.Thumbnail), links, nilIfEmpty(a.AuthorID),
		a.CreatedAt, a.UpdatedAt, a.PublishedAt)
	if err != nil {
		return a, fmt.Errorf("insert article failed: %w", err)
	}
	return a, nil
}

func (s *SQLiteStore) GetArticle(id string) (*models.Article, error) {
	row := s.db.QueryRow(`SELECT `+sqliteArticleColumns+` FROM articles WHERE id = ?`, id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *SQLiteStore) GetArticleBySlug(slug string) (*models.Article, error) {
	row := s.db.QueryRow(`SELECT `+sqliteArticleColumns+` FROM articles WHERE slug = ?`, slug)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *SQLiteStore) ListArticles(f models.ArticleFilter) ([]models.Article, error) {
	query := `SELECT ` + sqliteArticleColumns + ` FROM articles WHERE 1=1`
	var args []interface{}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.Query != "" {
		query += ` AND (title LIKE ? OR excerpt LIKE ?)`
		pattern := "%" + f.Query + "%"
		args = append(args, pattern, pattern)
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

func (s *SQLiteStore) UpdateArticle(a models.Article) error {
	links, err := affiliateLinksJSON(a.AffiliateLinks)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE articles SET title = ?, slug = ?, category_id = ?, content_html = ?,
		excerpt = ?, rating = ?, status = ?, meta_title = ?, meta_description = ?, thumbnail = ?,
		affiliate_links = ?, author_id = ?, updated_at = ?, published_at = ? WHERE id = ?`,
		a.Title, a.Slug, nilIfEmpty(a.CategoryID), a.ContentHTML, nilIfEmpty(a.Excerpt), a.Rating, a.Status,
		nilIfEmpty(a.MetaTitle), nilIfEmpty(a.MetaDescription), nilIfEmpty(a.Thumbnail), links, nilIfEmpty(a.AuthorID),
		time.Now().UTC(), a.PublishedAt, a.ID)
	if err != nil {
		return fmt.Errorf("update article failed: %w", err)
	}
	return requireRowAffected(res)
}

func (s *SQLiteStore) DeleteArticle(id string) error {
	res, err := s.db.Exec(`DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete article failed: %w", err)
	}
	return requireRowAffected(res)
}

func (s *SQLiteStore) CreateCategory(c models.Category) (models.Category, error) {
	if c.ID == "" {
		c.ID = newID()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := s.db.Exec(`INSERT INTO categories (id, name, slug, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Slug, nilIfEmpty(c.Description), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return c, fmt.Errorf("insert category failed: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) GetCategory(id string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT id, name, slug, description, created_at, updated_at FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *SQLiteStore) ListCategories() ([]models.Category, error) {
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

func (s *SQLiteStore) UpdateCategory(c models.Category) error {
	res, err := s.db.Exec(`UPDATE categories SET name = ?, slug = ?, description = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Slug, nilIfEmpty(c.Description), time.Now().UTC(), c.ID)
	if err != nil {
		return fmt.Errorf("update category failed: %w", err)
	}
	return requireRowAffected(res)
}

func (s *SQLiteStore) DeleteCategory(id string) error {
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category failed: %w", err)
	}
	return requireRowAffected(res)
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
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

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`INSERT INTO settings (id, site_name, site_description, site_logo, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			site_name = excluded.site_name,
			site_description = excluded.site_description,
			site_logo = excluded.site_logo,
			updated_at = excluded.updated_at`,
		nilIfEmpty(settings.SiteName), nilIfEmpty(settings.SiteDescription), nilIfEmpty(settings.SiteLogo), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save settings failed: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

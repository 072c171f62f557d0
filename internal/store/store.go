// Package store provides storage backends for ReviewNexus.
//
// Three implementations share one interface: an in-memory store for tests and
// credential-only deployments, an SQLite store for single-node installs, and
// a PostgreSQL store for the hosted backend. Backend selection is DSN-driven.
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reviewnexus/reviewnexus/internal/models"
)

// Store is the persistence interface shared by all backends.
type Store interface {
	CreateArticle(a models.Article) (models.Article, error)
	GetArticle(id string) (*models.Article, error)
	GetArticleBySlug(slug string) (*models.Article, error)
	ListArticles(f models.ArticleFilter) ([]models.Article, error)
	UpdateArticle(a models.Article) error
	DeleteArticle(id string) error

	CreateCategory(c models.Category) (models.Category, error)
	GetCategory(id string) (*models.Category, error)
	ListCategories() ([]models.Category, error)
	UpdateCategory(c models.Category) error
	DeleteCategory(id string) error

	GetSettings() (models.Settings, error)
	SaveSettings(s models.Settings) error

	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	Driver string
	DSN    string
}

// Option configures a store backend.
type Option func(*Opts)

// WithPostgresDSN selects the PostgreSQL backend with the given DSN.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) {
		o.Driver = "postgres"
		o.DSN = dsn
	}
}

// WithSQLiteDSN selects the SQLite backend with the given database path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) {
		o.Driver = "sqlite3"
		o.DSN = dsn
	}
}

// DetectDSNType reports "postgres" for PostgreSQL-style DSNs and "sqlite"
// for anything else (assumed to be a file path).
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}

// New creates a store backend based on the provided options. With no options
// it returns an in-memory store.
func New(opts ...Option) (Store, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	switch cfg.Driver {
	case "postgres":
		return NewPostgresStore(opts...)
	case "sqlite3":
		return NewSQLiteStore(opts...)
	default:
		return NewInMemoryStore(), nil
	}
}

// InMemoryStore keeps all records in process memory. Used by tests and by
// deployments that delegate persistence entirely to the managed backend.
type InMemoryStore struct {
	mu         sync.RWMutex
	articles   map[string]models.Article
	categories map[string]models.Category
	settings   models.Settings
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		articles:   make(map[string]models.Article),
		categories: make(map[string]models.Category),
	}
}

func (s *InMemoryStore) CreateArticle(a models.Article) (models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.articles[a.ID] = a
	return a, nil
}

func (s *InMemoryStore) GetArticle(id string) (*models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.articles[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *InMemoryStore) GetArticleBySlug(slug string) (*models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.articles {
		if a.Slug == slug {
			return &a, nil
		}
	}
	return nil, nil
}

func (s *InMemoryStore) ListArticles(f models.ArticleFilter) ([]models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if matchesFilter(a, f) {
			out = append(out, a)
		}
	}
	// Newest first, matching the public catalogue ordering.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) UpdateArticle(a models.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.articles[a.ID]
	if !ok {
		return ErrNotFound
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now().UTC()
	s.articles[a.ID] = a
	return nil
}

func (s *InMemoryStore) DeleteArticle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[id]; !ok {
		return ErrNotFound
	}
	delete(s.articles, id)
	return nil
}

func (s *InMemoryStore) CreateCategory(c models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.categories[c.ID] = c
	return c, nil
}

func (s *InMemoryStore) GetCategory(id string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *InMemoryStore) ListCategories() ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryStore) UpdateCategory(c models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.categories[c.ID]
	if !ok {
		return ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	s.categories[c.ID] = c
	return nil
}

func (s *InMemoryStore) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *InMemoryStore) GetSettings() (models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *InMemoryStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings.UpdatedAt = time.Now().UTC()
	s.settings = settings
	return nil
}

func (s *InMemoryStore) Close() error { return nil }

// matchesFilter applies an ArticleFilter to a single article.
func matchesFilter(a models.Article, f models.ArticleFilter) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.CategoryID != "" && a.CategoryID != f.CategoryID {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(a.Title), q) && !strings.Contains(strings.ToLower(a.Excerpt), q) {
			return false
		}
	}
	return true
}

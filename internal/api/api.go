// Package api provides HTTP handlers and the main API server logic for
// ReviewNexus.
//
// It exposes the article-generation proxy consumed by the admin console plus
// the content endpoints for articles, categories, and site settings. The API
// integrates with the gateway, pipeline, and store modules.
package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/reviewnexus/reviewnexus/internal/gateway"
	"github.com/reviewnexus/reviewnexus/internal/models"
	"github.com/reviewnexus/reviewnexus/internal/pipeline"
	"github.com/reviewnexus/reviewnexus/internal/store"
)

// DefaultAddr is the default API listen address.
const DefaultAddr = ":8080"

// Opts holds configuration options for the API server.
type Opts struct {
	Addr       string
	AdminToken string
}

// Option configures the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithAdminToken enables bearer-token authentication on mutating content
// endpoints.
func WithAdminToken(token string) Option {
	return func(o *Opts) { o.AdminToken = token }
}

// Server handles HTTP requests for ReviewNexus.
type Server struct {
	store      store.Store
	pipe       *pipeline.Pipeline
	addr       string
	adminToken string
}

// NewServer creates an API server over the given store and pipeline.
func NewServer(st store.Store, pipe *pipeline.Pipeline, opts ...Option) *Server {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return &Server{store: st, pipe: pipe, addr: cfg.Addr, adminToken: cfg.AdminToken}
}

// Run builds the gateway client, store, and server from the provided options
// and serves until the listener fails. A missing gateway credential surfaces
// here, before any request is accepted.
func Run(storeOpts []store.Option, gatewayOpts []gateway.Option, apiOpts []Option) error {
	gw, err := gateway.NewClient(gatewayOpts...)
	if err != nil {
		return err
	}
	st, err := store.New(storeOpts...)
	if err != nil {
		return err
	}
	srv := NewServer(st, pipeline.New(gw), apiOpts...)
	slog.Info("ReviewNexus API running", "addr", srv.addr)
	return http.ListenAndServe(srv.addr, srv.Handler())
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Registered without a method pattern: the handler deals with the CORS
	// preflight OPTIONS itself.
	mux.HandleFunc("/api/generate-article", s.generateArticleHandler)

	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("GET /api/articles", s.listArticlesHandler)
	mux.HandleFunc("POST /api/articles", s.requireAdmin(s.createArticleHandler))
	mux.HandleFunc("GET /api/articles/{id}", s.getArticleHandler)
	mux.HandleFunc("PUT /api/articles/{id}", s.requireAdmin(s.updateArticleHandler))
	mux.HandleFunc("DELETE /api/articles/{id}", s.requireAdmin(s.deleteArticleHandler))
	mux.HandleFunc("GET /api/articles/slug/{slug}", s.getArticleBySlugHandler)

	mux.HandleFunc("GET /api/categories", s.listCategoriesHandler)
	mux.HandleFunc("POST /api/categories", s.requireAdmin(s.createCategoryHandler))
	mux.HandleFunc("PUT /api/categories/{id}", s.requireAdmin(s.updateCategoryHandler))
	mux.HandleFunc("DELETE /api/categories/{id}", s.requireAdmin(s.deleteCategoryHandler))

	mux.HandleFunc("GET /api/settings", s.getSettingsHandler)
	mux.HandleFunc("PUT /api/settings", s.requireAdmin(s.updateSettingsHandler))

	return mux
}

// requireAdmin enforces bearer-token authentication when an admin token is
// configured. With no token configured, authorization is delegated entirely
// to the deployment's fronting auth service and requests pass through.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken != "" {
			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || token != s.adminToken {
				slog.Warn("Server.requireAdmin: rejected request", "path", r.URL.Path)
				writeJSONResponse(w, http.StatusUnauthorized, models.ErrorBody{Error: "unauthorized"})
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

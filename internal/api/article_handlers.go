package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/reviewnexus/reviewnexus/internal/models"
	"github.com/reviewnexus/reviewnexus/internal/pipeline"
	"github.com/reviewnexus/reviewnexus/internal/store"
	"github.com/reviewnexus/reviewnexus/internal/util"
)

func (s *Server) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ArticleFilter{
		Status:     models.ArticleStatus(q.Get("status")),
		CategoryID: q.Get("category"),
		Query:      q.Get("q"),
	}
	if filter.Status != "" && !models.IsValidArticleStatus(filter.Status) {
		writeError(w, http.StatusBadRequest, models.ErrInvalidStatus.Error())
		return
	}
	articles, err := s.store.ListArticles(filter)
	if err != nil {
		slog.Error("Server.listArticlesHandler: list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list articles")
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	writeJSONResponse(w, http.StatusOK, articles)
}

func (s *Server) createArticleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	var a models.Article
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		slog.Warn("Server.createArticleHandler: failed to decode JSON", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if a.Status == "" {
		a.Status = models.ArticleStatusDraft
	}
	if err := a.Validate(); err != nil {
		slog.Warn("Server.createArticleHandler: validation failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	applyArticleDefaults(&a)

	created, err := s.store.CreateArticle(a)
	if err != nil {
		slog.Error("Server.createArticleHandler: insert failed", "error", err, "slug", a.Slug)
		writeError(w, http.StatusInternalServerError, "Failed to create article")
		return
	}
	slog.Info("Server.createArticleHandler: article created", "id", created.ID, "slug", created.Slug, "status", created.Status)
	writeJSONResponse(w, http.StatusCreated, created)
}

func (s *Server) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.GetArticle(r.PathValue("id"))
	if err != nil {
		slog.Error("Server.getArticleHandler: lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load article")
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	writeJSONResponse(w, http.StatusOK, a)
}

func (s *Server) getArticleBySlugHandler(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.GetArticleBySlug(r.PathValue("slug"))
	if err != nil {
		slog.Error("Server.getArticleBySlugHandler: lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load article")
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	writeJSONResponse(w, http.StatusOK, a)
}

func (s *Server) updateArticleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	var a models.Article
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		slog.Warn("Server.updateArticleHandler: failed to decode JSON", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	a.ID = r.PathValue("id")
	if a.Status == "" {
		a.Status = models.ArticleStatusDraft
	}
	if err := a.Validate(); err != nil {
		slog.Warn("Server.updateArticleHandler: validation failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	applyArticleDefaults(&a)

	if err := s.store.UpdateArticle(a); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Article not found")
			return
		}
		slog.Error("Server.updateArticleHandler: update failed", "error", err, "id", a.ID)
		writeError(w, http.StatusInternalServerError, "Failed to update article")
		return
	}
	slog.Info("Server.updateArticleHandler: article updated", "id", a.ID, "status", a.Status)
	writeJSONResponse(w, http.StatusOK, a)
}

func (s *Server) deleteArticleHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteArticle(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Article not found")
			return
		}
		slog.Error("Server.deleteArticleHandler: delete failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to delete article")
		return
	}
	slog.Info("Server.deleteArticleHandler: article deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// applyArticleDefaults fills the fields the admin console leaves for the
// server to derive: slug from title, excerpt and meta fields from content,
// publication timestamp on first publish.
func applyArticleDefaults(a *models.Article) {
	if a.Slug == "" {
		a.Slug = util.Slugify(a.Title)
	}
	if a.Excerpt == "" {
		a.Excerpt = pipeline.Excerpt(a.ContentHTML)
	}
	if a.MetaTitle == "" {
		a.MetaTitle = pipeline.MetaTitle(a.Title)
	}
	if a.MetaDescription == "" {
		a.MetaDescription = a.Excerpt
	}
	if a.Status == models.ArticleStatusPublished && a.PublishedAt == nil {
		now := time.Now().UTC()
		a.PublishedAt = &now
	}
}

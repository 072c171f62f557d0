package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/reviewnexus/reviewnexus/internal/models"
	"github.com/reviewnexus/reviewnexus/internal/store"
	"github.com/reviewnexus/reviewnexus/internal/util"
)

func (s *Server) listCategoriesHandler(w http.ResponseWriter, _ *http.Request) {
	categories, err := s.store.ListCategories()
	if err != nil {
		slog.Error("Server.listCategoriesHandler: list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSONResponse(w, http.StatusOK, categories)
}

func (s *Server) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		slog.Warn("Server.createCategoryHandler: failed to decode JSON", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if err := c.Validate(); err != nil {
		slog.Warn("Server.createCategoryHandler: validation failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if c.Slug == "" {
		c.Slug = util.Slugify(c.Name)
	}
	created, err := s.store.CreateCategory(c)
	if err != nil {
		slog.Error("Server.createCategoryHandler: insert failed", "error", err, "name", c.Name)
		writeError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}
	slog.Info("Server.createCategoryHandler: category created", "id", created.ID, "slug", created.Slug)
	writeJSONResponse(w, http.StatusCreated, created)
}

func (s *Server) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		slog.Warn("Server.updateCategoryHandler: failed to decode JSON", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	c.ID = r.PathValue("id")
	if err := c.Validate(); err != nil {
		slog.Warn("Server.updateCategoryHandler: validation failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if c.Slug == "" {
		c.Slug = util.Slugify(c.Name)
	}
	if err := s.store.UpdateCategory(c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		slog.Error("Server.updateCategoryHandler: update failed", "error", err, "id", c.ID)
		writeError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}
	writeJSONResponse(w, http.StatusOK, c)
}

func (s *Server) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteCategory(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		slog.Error("Server.deleteCategoryHandler: delete failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	slog.Info("Server.deleteCategoryHandler: category deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

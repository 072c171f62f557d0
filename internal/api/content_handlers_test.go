package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reviewnexus/reviewnexus/internal/models"
)

func doJSON(t *testing.T, h http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreateArticleDerivesFields(t *testing.T) {
	h := newTestServer(&mockGenerator{}).Handler()

	rr := doJSON(t, h, http.MethodPost, "/api/articles",
		`{"title":"Fone XYZ Pro Max","content_html":"<p>Um review detalhado do fone.</p>"}`, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rr.Code, rr.Body.String())
	}

	var a models.Article
	if err := json.Unmarshal(rr.Body.Bytes(), &a); err != nil {
		t.Fatalf("failed to decode article: %v", err)
	}
	if a.ID == "" {
		t.Error("expected server-assigned ID")
	}
	if a.Slug != "fone-xyz-pro-max" {
		t.Errorf("expected derived slug, got %q", a.Slug)
	}
	if a.Status != models.ArticleStatusDraft {
		t.Errorf("expected draft default, got %q", a.Status)
	}
	if a.Excerpt == "" || strings.ContainsAny(a.Excerpt, "<>") {
		t.Errorf("expected tag-free derived excerpt, got %q", a.Excerpt)
	}
	if a.MetaTitle != "Fone XYZ Pro Max" {
		t.Errorf("expected meta title derived from title, got %q", a.MetaTitle)
	}
}

func TestCreateArticleValidation(t *testing.T) {
	h := newTestServer(&mockGenerator{}).Handler()

	rr := doJSON(t, h, http.MethodPost, "/api/articles", `{"content_html":"<p>x</p>"}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing title, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodPost, "/api/articles", `{"title":"Fone","content_html":"<p>x</p>","status":"pending"}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid status, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodPost, "/api/articles", `{"title":"Fone","content_html":"<p>x</p>","rating":7}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range rating, got %d", rr.Code)
	}
}

func TestArticleLifecycle(t *testing.T) {
	h := newTestServer(&mockGenerator{}).Handler()

	rr := doJSON(t, h, http.MethodPost, "/api/articles",
		`{"title":"Fone XYZ","content_html":"<p>review</p>","status":"published"}`, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create failed: %d (%s)", rr.Code, rr.Body.String())
	}
	var created models.Article
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode created article: %v", err)
	}
	if created.PublishedAt == nil {
		t.Error("expected published_at set on first publish")
	}

	rr = doJSON(t, h, http.MethodGet, "/api/articles/"+created.ID, "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("get by id: expected 200, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodGet, "/api/articles/slug/"+created.Slug, "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("get by slug: expected 200, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodPut, "/api/articles/"+created.ID,
		`{"title":"Fone XYZ v2","content_html":"<p>review atualizado</p>"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, h, http.MethodDelete, "/api/articles/"+created.ID, "", nil)
	if rr.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodGet, "/api/articles/"+created.ID, "", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodPut, "/api/articles/"+created.ID,
		`{"title":"Fantasma","content_html":"<p>x</p>"}`, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("update missing: expected 404, got %d", rr.Code)
	}
}

func TestListArticlesFilters(t *testing.T) {
	h := newTestServer(&mockGenerator{}).Handler()

	doJSON(t, h, http.MethodPost, "/api/articles",
		`{"title":"Fone XYZ","content_html":"<p>a</p>","status":"published"}`, nil)
	doJSON(t, h, http.MethodPost, "/api/articles",
		`{"title":"Teclado ABC","content_html":"<p>b</p>"}`, nil)

	rr := doJSON(t, h, http.MethodGet, "/api/articles?status=published", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var articles []models.Article
	if err := json.Unmarshal(rr.Body.Bytes(), &articles); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "Fone XYZ" {
		t.Errorf("expected only the published article, got %v", articles)
	}

	rr = doJSON(t, h, http.MethodGet, "/api/articles?q=teclado", "", nil)
	if err := json.Unmarshal(rr.Body.Bytes(), &articles); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "Teclado ABC" {
		t.Errorf("expected query match on title, got %v", articles)
	}

	rr = doJSON(t, h, http.MethodGet, "/api/articles?status=pending", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status filter, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodGet, "/api/articles?q=inexistente", "", nil)
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("expected empty JSON array for no matches, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestCategoryLifecycle(t *testing.T) {
	h := newTestServer(&mockGenerator{}).Handler()

	rr := doJSON(t, h, http.MethodPost, "/api/categories", `{"name":"Eletrônicos"}`, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create failed: %d (%s)", rr.Code, rr.Body.String())
	}
	var c models.Category
	if err := json.Unmarshal(rr.Body.Bytes(), &c); err != nil {
		t.Fatalf("failed to decode category: %v", err)
	}
	if c.Slug != "eletronicos" {
		t.Errorf("expected diacritic-free slug, got %q", c.Slug)
	}

	rr = doJSON(t, h, http.MethodPost, "/api/categories", `{"name":""}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty name, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodGet, "/api/categories", "", nil)
	var list []models.Category
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected one category, got %d", len(list))
	}

	rr = doJSON(t, h, http.MethodDelete, "/api/categories/"+c.ID, "", nil)
	if rr.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rr.Code)
	}
	rr = doJSON(t, h, http.MethodDelete, "/api/categories/"+c.ID, "", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("delete missing: expected 404, got %d", rr.Code)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	h := newTestServer(&mockGenerator{}).Handler()

	rr := doJSON(t, h, http.MethodPut, "/api/settings", `{"site_name":"Review Nexus"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("put settings: expected 200, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodGet, "/api/settings", "", nil)
	var settings models.Settings
	if err := json.Unmarshal(rr.Body.Bytes(), &settings); err != nil {
		t.Fatalf("failed to decode settings: %v", err)
	}
	if settings.SiteName != "Review Nexus" {
		t.Errorf("expected saved site name, got %q", settings.SiteName)
	}
}

func TestRequireAdmin(t *testing.T) {
	h := newTestServer(&mockGenerator{}, WithAdminToken("s3cret")).Handler()
	body := `{"title":"Fone","content_html":"<p>x</p>"}`

	rr := doJSON(t, h, http.MethodPost, "/api/articles", body, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", rr.Code)
	}

	hdr := http.Header{"Authorization": {"Bearer errado"}}
	rr = doJSON(t, h, http.MethodPost, "/api/articles", body, hdr)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: expected 401, got %d", rr.Code)
	}

	hdr = http.Header{"Authorization": {"Bearer s3cret"}}
	rr = doJSON(t, h, http.MethodPost, "/api/articles", body, hdr)
	if rr.Code != http.StatusCreated {
		t.Errorf("valid token: expected 201, got %d (%s)", rr.Code, rr.Body.String())
	}

	// Reads stay open.
	rr = doJSON(t, h, http.MethodGet, "/api/articles", "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("unauthenticated read: expected 200, got %d", rr.Code)
	}
}

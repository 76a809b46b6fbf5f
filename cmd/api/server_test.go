package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/book"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/config"
	"bookcatalog/internal/document"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/testutil"
)

const (
	testSecret = "test-secret"
	seedXML    = `<?xml version="1.0" encoding="UTF-8"?>
<bookstore>
  <book category="cooking">
    <isbn>111</isbn>
    <title>Everyday Italian</title>
    <author>Giada De Laurentiis</author>
    <year>2005</year>
    <price>30</price>
  </book>
</bookstore>
`
)

func newTestServer(t *testing.T, secret string) (http.Handler, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.xml")
	require.NoError(t, os.WriteFile(path, []byte(seedXML), 0o644))

	cfg := config.Config{
		JWTSecret:      secret,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		MaxBodyBytes:   1 << 20,
	}
	repo := book.NewXMLRepo(document.NewFileAccessor(), path)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return newServer(ctx, cfg, catalog.NewService(repo), repo), path
}

func serve(h http.Handler, r *http.Request) testutil.RecordResponse {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return testutil.RecordHTTPResponse(w)
}

func TestServer_Routes(t *testing.T) {
	h, _ := newTestServer(t, testSecret)
	token := testutil.GenerateTestToken(testSecret, "ops", httpx.RoleAdmin)

	res := serve(h, testutil.NewRequest(http.MethodGet, "/books", nil))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.NotEmpty(t, res.Header.Get(httpx.RequestIDHeader))

	res = serve(h, testutil.NewRequest(http.MethodGet, "/books/111", nil))
	assert.Equal(t, http.StatusOK, res.Code)

	res = serve(h, testutil.NewRequest(http.MethodGet, "/books/report?type=html", nil))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), "text/html"))
	assert.Contains(t, res.Raw, "Everyday Italian")

	newBook := map[string]any{
		"isbn": "222", "title": "Learning XML", "authors": []string{"Erik T. Ray"},
		"category": "web", "year": 2003, "price": 39.95,
	}
	res = serve(h, testutil.NewRequestWithAuth(http.MethodPost, "/books", newBook, token))
	assert.Equal(t, http.StatusCreated, res.Code)

	res = serve(h, testutil.NewRequestWithAuth(http.MethodPost, "/books", newBook, token))
	assert.Equal(t, http.StatusConflict, res.Code)

	res = serve(h, testutil.NewRequestWithAuth(http.MethodPut, "/books", map[string]any{"isbn": "222", "price": 25}, token))
	require.Equal(t, http.StatusOK, res.Code)
	data := res.Body["data"].(map[string]any)
	assert.Equal(t, "Learning XML", data["title"])
	assert.Equal(t, "25", data["price"])

	res = serve(h, testutil.NewRequestWithAuth(http.MethodDelete, "/books/222", nil, token))
	assert.Equal(t, http.StatusNoContent, res.Code)

	res = serve(h, testutil.NewRequest(http.MethodGet, "/books/222", nil))
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestServer_WriteRoutesRequireAdmin(t *testing.T) {
	h, path := newTestServer(t, testSecret)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"expired", testutil.GenerateExpiredToken(testSecret, "ops", httpx.RoleAdmin), http.StatusUnauthorized},
		{"wrong secret", testutil.GenerateTestToken("other", "ops", httpx.RoleAdmin), http.StatusUnauthorized},
		{"wrong role", testutil.GenerateTestToken(testSecret, "ops", "USER"), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := serve(h, testutil.NewRequestWithAuth(http.MethodDelete, "/books/111", nil, tt.token))
			assert.Equal(t, tt.status, res.Code)
		})
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestServer_EmptySecretDisablesGuard(t *testing.T) {
	h, _ := newTestServer(t, "")

	res := serve(h, testutil.NewRequest(http.MethodDelete, "/books/111", nil))
	assert.Equal(t, http.StatusNoContent, res.Code)
}

func TestServer_Probes(t *testing.T) {
	h, path := newTestServer(t, "")

	assert.Equal(t, http.StatusOK, serve(h, testutil.NewRequest(http.MethodGet, "/healthz", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(h, testutil.NewRequest(http.MethodGet, "/readyz", nil)).Code)

	require.NoError(t, os.Remove(path))
	assert.Equal(t, http.StatusServiceUnavailable, serve(h, testutil.NewRequest(http.MethodGet, "/readyz", nil)).Code)

	res := serve(h, testutil.NewRequest(http.MethodGet, "/books", nil))
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "CATALOG_NOT_FOUND", res.ErrorCode())
}

func TestOpenRepository_SQLite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := config.Config{
		Backend:        config.BackendSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "books.db"),
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		MaxBodyBytes:   1 << 20,
	}

	repo, closeRepo, err := openRepository(ctx, cfg)
	require.NoError(t, err)
	defer closeRepo()
	h := newServer(ctx, cfg, catalog.NewService(repo), repo)

	assert.Equal(t, http.StatusOK, serve(h, testutil.NewRequest(http.MethodGet, "/readyz", nil)).Code)

	res := serve(h, testutil.NewRequest(http.MethodPost, "/books", testutil.SampleBook()))
	assert.Equal(t, http.StatusCreated, res.Code)

	res = serve(h, testutil.NewRequest(http.MethodGet, "/books/report", nil))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Raw, "Dennis M. Ritchie")
}

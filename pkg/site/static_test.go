package site

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func setupSite(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	writeFile(t, dir, "index.html", "<h1>home</h1>")
	writeFile(t, dir, "services/index.html", "<h1>services</h1>")
	writeFile(t, dir, "privacy-policy.html", "<h1>privacy</h1>")
	writeFile(t, dir, "static/app.css", "body{}")
	writeFile(t, dir, "static/app.js", "console.log(1)")
	writeFile(t, dir, "static/app.js.gz", "gzipped")

	router := gin.New()
	router.GET("/api/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	Register(router, dir)
	return router, dir
}

func get(router http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPages(t *testing.T) {
	router, _ := setupSite(t)

	cases := map[string]string{
		"/":               "home",
		"/services":       "services",
		"/services/":      "services",
		"/privacy-policy": "privacy",
	}
	for path, want := range cases {
		w := get(router, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), want, path)
		assert.Equal(t, pageCacheControl, w.Header().Get("Cache-Control"), path)
	}
}

func TestPages_NotFound(t *testing.T) {
	router, dir := setupSite(t)

	w := get(router, "/studios/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not found")

	writeFile(t, dir, "404.html", "<h1>lost</h1>")
	w = get(router, "/studios/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "lost")
}

func TestPages_DoNotEscapeRoot(t *testing.T) {
	router, dir := setupSite(t)
	writeFile(t, filepath.Dir(dir), "secret.html", "secret")

	w := get(router, "/../secret", nil)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestStaticAssets(t *testing.T) {
	router, _ := setupSite(t)

	w := get(router, "/static/app.css", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, immutableCacheControl, w.Header().Get("Cache-Control"))
	assert.Equal(t, "body{}", w.Body.String())

	w = get(router, "/static/missing.css", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStaticAssets_Gzip(t *testing.T) {
	router, _ := setupSite(t)

	w := get(router, "/static/app.js", map[string]string{"Accept-Encoding": "gzip, br"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	assert.Equal(t, "gzipped", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "javascript")

	w = get(router, "/static/app.js", nil)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "console.log(1)", w.Body.String())
}

func TestAPIRoutesTakePrecedence(t *testing.T) {
	router, _ := setupSite(t)

	w := get(router, "/api/ping", nil)
	assert.Equal(t, "pong", w.Body.String())
}

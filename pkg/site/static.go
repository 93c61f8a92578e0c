package site

import (
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	immutableCacheControl = "public, max-age=31536000, immutable"
	pageCacheControl      = "public, max-age=0, must-revalidate"
)

// Register serves the pre-rendered site in dir: hashed assets under /static/
// and pages for any path the API does not claim.
func Register(router *gin.Engine, dir string) {
	router.GET("/static/*filepath", func(c *gin.Context) {
		serveAsset(c, dir, c.Param("filepath"))
	})
	router.HEAD("/static/*filepath", func(c *gin.Context) {
		serveAsset(c, dir, c.Param("filepath"))
	})
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		servePage(c, dir, c.Request.URL.Path)
	})
}

func serveAsset(c *gin.Context, dir, requested string) {
	file := resolve(filepath.Join(dir, "static"), requested)

	if acceptsGzip(c.Request) && isFile(file+".gz") {
		if ctype := mime.TypeByExtension(filepath.Ext(file)); ctype != "" {
			c.Header("Content-Type", ctype)
		}
		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")
		c.Header("Cache-Control", immutableCacheControl)
		http.ServeFile(c.Writer, c.Request, file+".gz")
		return
	}

	if isFile(file) {
		c.Header("Cache-Control", immutableCacheControl)
		http.ServeFile(c.Writer, c.Request, file)
		return
	}

	c.Status(http.StatusNotFound)
}

func servePage(c *gin.Context, dir, requested string) {
	for _, candidate := range pageCandidates(dir, requested) {
		if isFile(candidate) {
			c.Header("Cache-Control", pageCacheControl)
			http.ServeFile(c.Writer, c.Request, candidate)
			return
		}
	}

	notFound := filepath.Join(dir, "404.html")
	if content, err := os.ReadFile(notFound); err == nil {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", content)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

// pageCandidates lists the files a clean URL may map to, most specific first
func pageCandidates(dir, requested string) []string {
	base := resolve(dir, requested)
	if strings.HasSuffix(requested, "/") || path.Clean("/"+requested) == "/" {
		return []string{filepath.Join(base, "index.html")}
	}
	if filepath.Ext(base) != "" {
		return []string{base}
	}
	return []string{base + ".html", filepath.Join(base, "index.html")}
}

// resolve joins a request path onto root without letting it escape root
func resolve(root, requested string) string {
	cleaned := path.Clean("/" + requested)
	return filepath.Join(root, filepath.FromSlash(cleaned))
}

func isFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/xwby268/BIO-LINK-2/handlers"
	"github.com/xwby268/BIO-LINK-2/middleware"
)

// SetupRouter builds the full route table: the JSON API, the admin surface
// and the static page server for everything else.
func SetupRouter(h *handlers.Handler, publicDir string) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Requested-With", "X-Request-Id"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(middleware.RequestID())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	// Settings
	router.GET("/api/config", h.GetConfig)
	router.POST("/api/admin/config", h.UpdateConfig)

	// Posts
	router.GET("/api/posts", h.ListPosts)
	router.POST("/api/posts", h.CreatePost)
	router.POST("/api/posts/:id/like", h.ToggleLike)
	router.POST("/api/posts/:id/comment", h.AddComment)
	router.DELETE("/api/admin/posts/:id", h.DeletePost)

	// Catalog
	router.GET("/api/products", h.ListProducts)
	router.POST("/api/admin/products", h.AddProduct)
	router.DELETE("/api/admin/products/:id", h.DeleteProduct)

	// Dynamic links
	router.GET("/api/links", h.ListLinks)
	router.POST("/api/admin/links", h.AddLink)
	router.DELETE("/api/admin/links/:id", h.DeleteLink)

	// File host passthrough
	router.POST("/api/upload", h.Upload)

	// Shared post pages always render the app shell; the client resolves the
	// identifier itself.
	router.GET("/share/sosial/:id", func(c *gin.Context) {
		c.File(filepath.Join(publicDir, "index.html"))
	})

	// Everything else is a page: serve the exact file from publicDir, then
	// try <page>.html for bare single-segment paths, like the old server did.
	router.NoRoute(servePage(publicDir))

	return router
}

func servePage(publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path

		if strings.HasPrefix(p, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found", "path": p})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}

		if p == "/" {
			p = "/index.html"
		}

		// filepath.Join cleans the path, so ".." cannot escape publicDir.
		target := filepath.Join(publicDir, filepath.FromSlash(strings.TrimPrefix(p, "/")))
		if !strings.HasPrefix(target, filepath.Clean(publicDir)+string(os.PathSeparator)) {
			c.Status(http.StatusNotFound)
			return
		}

		if fileExists(target) {
			c.File(target)
			return
		}

		// /about -> public/about.html, single segment only.
		if !strings.Contains(strings.Trim(p, "/"), "/") && fileExists(target+".html") {
			c.File(target + ".html")
			return
		}

		c.Status(http.StatusNotFound)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

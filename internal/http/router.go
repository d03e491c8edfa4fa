// Package http exposes the import database and sync operations over a JSON
// API.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/bruvellu/zim-kindle/internal/database"
	"github.com/bruvellu/zim-kindle/internal/importers"
	"github.com/bruvellu/zim-kindle/internal/tasks"
)

// RouterConfig carries the dependencies for the HTTP layer.
type RouterConfig struct {
	DB            *database.Database
	Importer      *importers.Importer
	TaskClient    *tasks.Client
	ClippingsPath string
	Version       string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	healthController := NewHealthController(cfg.DB, cfg.Version)
	router.GET("/health", healthController.Status)

	api := router.Group("/api")
	{
		booksController := NewBooksController(cfg.DB)
		api.GET("/books", booksController.List)
		api.GET("/books/:id", booksController.Get)
		api.GET("/sessions", booksController.Sessions)

		importController := NewImportController(cfg.Importer)
		api.POST("/import", importController.Import)

		syncController := NewSyncController(cfg.TaskClient, cfg.ClippingsPath)
		api.POST("/sync", syncController.Trigger)
	}

	return router
}

// Package entrypoint wires the server components together and manages
// graceful shutdown.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bruvellu/zim-kindle/internal/config"
	"github.com/bruvellu/zim-kindle/internal/database"
	"github.com/bruvellu/zim-kindle/internal/exporters"
	http_controllers "github.com/bruvellu/zim-kindle/internal/http"
	"github.com/bruvellu/zim-kindle/internal/importers"
	"github.com/bruvellu/zim-kindle/internal/scheduler"
	"github.com/bruvellu/zim-kindle/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until interrupted, then shuts down within the
// configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown signal received, waiting up to %v", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server shutdown: ", err)
	}

	log.Println("Server exiting")
}

// Run starts the full server: database, notebook exporter, task queue,
// cron scheduler and HTTP API.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting zim-kindle v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	var exporter *exporters.NotebookExporter
	if cfg.Notebook.Dir != "" {
		if _, err := os.Stat(cfg.Notebook.Dir); err != nil {
			log.Fatalf("Notebook directory %s not accessible: %v", cfg.Notebook.Dir, err)
		}
		exporter = exporters.NewNotebookExporter(cfg.Notebook.Dir, cfg.Notebook.Root)
		log.Printf("Notebook exports enabled: %s (root %s)", cfg.Notebook.Dir, exporter.Root)
	} else {
		log.Printf("WARNING: NOTEBOOK_DIR is not set. Imports will only be saved to the database.")
	}

	importer := importers.NewImporter(db, exporter)

	taskClient, err := tasks.NewClient(cfg.Database.Path, cfg.Tasks)
	if err != nil {
		log.Fatalf("Failed to initialize task queue: %v", err)
	}
	defer taskClient.Close()

	taskClient.Register(tasks.NewSyncQueue(importer))

	taskCtx, cancelTasks := context.WithCancel(context.Background())
	defer cancelTasks()
	go taskClient.Start(taskCtx)

	syncScheduler := scheduler.NewSyncScheduler(*cfg, taskClient)
	if err := syncScheduler.Start(taskCtx); err != nil {
		log.Fatalf("Failed to start sync scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		DB:            db,
		Importer:      importer,
		TaskClient:    taskClient,
		ClippingsPath: cfg.Clippings.Path,
		Version:       version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		syncScheduler.Stop()
		taskClient.Stop(ctx)
		cancelTasks()
	})
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bruvellu/zim-kindle/internal/tasks"
)

type SyncController struct {
	taskClient    *tasks.Client
	clippingsPath string
}

func NewSyncController(taskClient *tasks.Client, clippingsPath string) *SyncController {
	return &SyncController{
		taskClient:    taskClient,
		clippingsPath: clippingsPath,
	}
}

// Trigger enqueues a background sync of the configured clippings file.
func (sc *SyncController) Trigger(c *gin.Context) {
	if sc.taskClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "task queue not available"})
		return
	}

	if sc.clippingsPath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clippings path not configured"})
		return
	}

	ids, err := sc.taskClient.Add(tasks.SyncTask{
		ClippingsPath: sc.clippingsPath,
		Trigger:       "api",
	}).Save()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue sync task"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"queued": true, "task_ids": ids})
}

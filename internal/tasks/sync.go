package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/bruvellu/zim-kindle/internal/importers"
)

// SyncTask re-imports the configured clippings file and regenerates
// notebook pages. Trigger records where the sync came from (scheduler, API).
type SyncTask struct {
	ClippingsPath string `json:"clippings_path"`
	Trigger       string `json:"trigger"`
}

// Config returns the queue configuration for sync tasks.
func (t SyncTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sync",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SyncProcessor creates a processor function for SyncTask.
func SyncProcessor(importer *importers.Importer) backlite.QueueProcessor[SyncTask] {
	return func(ctx context.Context, task SyncTask) error {
		if importer == nil {
			return fmt.Errorf("importer not configured")
		}

		result, err := importer.ImportFile(task.ClippingsPath)
		if err != nil {
			return fmt.Errorf("sync %s: %w", task.ClippingsPath, err)
		}

		log.Printf("[TASK] Sync (%s): imported %d books with %d entries, dropped %d records",
			task.Trigger, result.Library.Len(), result.Library.TotalEntries,
			result.Library.DroppedRecords)

		return nil
	}
}

// NewSyncQueue creates a backlite queue for sync tasks.
func NewSyncQueue(importer *importers.Importer) backlite.Queue {
	return backlite.NewQueue(SyncProcessor(importer))
}

// Package scheduler triggers periodic clippings syncs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bruvellu/zim-kindle/internal/config"
	"github.com/bruvellu/zim-kindle/internal/tasks"
)

// SyncScheduler enqueues a sync task on the configured cron schedule.
type SyncScheduler struct {
	cfg        config.Config
	taskClient *tasks.Client

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewSyncScheduler(cfg config.Config, taskClient *tasks.Client) *SyncScheduler {
	return &SyncScheduler{
		cfg:        cfg,
		taskClient: taskClient,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if sync is enabled and a clippings path is
// configured.
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Sync.Enabled {
		log.Printf("Sync scheduler: disabled")
		return nil
	}

	if s.cfg.Clippings.Path == "" {
		log.Printf("Sync scheduler: clippings path not configured, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Sync.Schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Sync.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Sync scheduler: started with schedule '%s'", s.cfg.Sync.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Sync scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *SyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next sync will occur.
func (s *SyncScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *SyncScheduler) runSync() {
	if s.taskClient == nil {
		log.Printf("Sync scheduler: task queue not available, skipping")
		return
	}

	_, err := s.taskClient.Add(tasks.SyncTask{
		ClippingsPath: s.cfg.Clippings.Path,
		Trigger:       "scheduler",
	}).Save()
	if err != nil {
		log.Printf("Sync scheduler: failed to enqueue sync task: %v", err)
		return
	}

	log.Printf("Sync scheduler: enqueued sync for %s", s.cfg.Clippings.Path)
}

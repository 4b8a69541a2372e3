// Package scheduler runs the catalog import on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/config"
	"github.com/workshop-admin-api/internal/service"
)

// SyncScheduler triggers SyncService.Run for one collection on a schedule.
// A run still in progress when the next tick fires makes that tick a no-op.
type SyncScheduler struct {
	syncSvc      service.SyncService
	cfg          config.SyncConfig
	collectionID string
	log          zerolog.Logger

	cron    *cron.Cron
	entryID cron.EntryID
	mu      sync.Mutex
	running bool
}

// NewSyncScheduler creates a scheduler; nothing runs until Start
func NewSyncScheduler(syncSvc service.SyncService, cfg config.SyncConfig, collectionID string, log zerolog.Logger) *SyncScheduler {
	log = log.With().Str("component", "scheduler").Logger()
	cronLog := cronLogger{log: log}
	return &SyncScheduler{
		syncSvc:      syncSvc,
		cfg:          cfg,
		collectionID: collectionID,
		log:          log,
		cron: cron.New(
			cron.WithParser(scheduleParser),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
	}
}

// scheduleParser accepts 5-field expressions and descriptors like "@hourly"
var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSchedule checks a cron expression
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// Start schedules the job if enabled. It is a no-op when disabled or already started.
func (s *SyncScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if !s.cfg.Enabled {
		s.log.Info().Msg("Scheduled sync disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, s.runSync)
	if err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", s.cfg.Schedule, err)
	}
	s.entryID = entryID
	s.cron.Start()
	s.running = true

	s.log.Info().
		Str("schedule", s.cfg.Schedule).
		Str("collection_id", s.collectionID).
		Time("next_run", s.cron.Entry(entryID).Next).
		Msg("Scheduled sync started")
	return nil
}

// Stop stops the scheduler and waits for a running sync to finish or ctx to expire
func (s *SyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info().Msg("Scheduled sync stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for scheduled sync: %w", ctx.Err())
	}
}

// NextRun returns when the next sync fires, or nil when not running
func (s *SyncScheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *SyncScheduler) runSync() {
	result, err := s.syncSvc.Run(context.Background(), s.collectionID)
	if err != nil {
		s.log.Error().Err(err).Msg("Scheduled sync failed")
		return
	}
	s.log.Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("failed", len(result.Errors)).
		Msg("Scheduled sync finished")
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

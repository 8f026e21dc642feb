package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job is a scheduled unit of work; the context is cancelled when the scheduler stops
type Job func(ctx context.Context) error

// Scheduler runs named jobs on cron expressions (with a seconds field)
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]cron.EntryID // job name -> entry id
	jobsMux sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		// SkipIfStillRunning keeps a slow rebuild from stacking up behind itself
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		jobs:   make(map[string]cron.EntryID),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Strs("jobs", s.Jobs()).Msg("⏰ scheduler started")
}

// Stop cancels running jobs and waits for them to return
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	log.Info().Msg("⏰ scheduler stopped")
}

// Add registers a job; an existing job with the same name is replaced.
// schedule is a cron expression with seconds (e.g. "0 30 2 * * *" for 02:30 daily)
func (s *Scheduler) Add(name, schedule string, job Job) error {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
	}

	entryID, err := s.cron.AddFunc(schedule, func() {
		if err := job(s.ctx); err != nil {
			log.Error().Err(err).Str("job", name).Msg("scheduled job failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	log.Info().Str("job", name).Str("schedule", schedule).Msg("job scheduled")

	return nil
}

// Jobs returns the names of all scheduled jobs
func (s *Scheduler) Jobs() []string {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

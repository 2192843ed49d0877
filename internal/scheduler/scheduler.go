package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockDashboard/internal/collector"
	"StockDashboard/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the maintenance cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Recorder  recorder.Recorder
	Fetcher   collector.Fetcher
	Retention time.Duration
	Warm      collector.FetchRequest
	Ctx       context.Context

	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, rec recorder.Recorder, fetcher collector.Fetcher, retentionDays int) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Recorder:  rec,
		Fetcher:   fetcher,
		Retention: time.Duration(retentionDays) * 24 * time.Hour,
		Ctx:       ctx,
		now:       time.Now,
	}
}

// RegisterAll registers the prune task and, when warmCron is set, a task
// that refetches warm so the fetch cache stays hot.
func (s *Scheduler) RegisterAll(pruneCron, warmCron string, warm collector.FetchRequest) error {
	if _, err := s.Cron.AddFunc(pruneCron, s.pruneTask); err != nil {
		return fmt.Errorf("register prune task: %w", err)
	}
	if warmCron == "" {
		return nil
	}
	if warm.Interval == "" {
		warm.Interval = collector.IntervalDaily
	}
	s.Warm = warm
	if _, err := s.Cron.AddFunc(warmCron, s.warmTask); err != nil {
		return fmt.Errorf("register warm task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// PruneNow deletes history older than the retention window.
func (s *Scheduler) PruneNow() (int64, error) {
	if s.Retention <= 0 {
		return 0, nil
	}
	return s.Recorder.Prune(s.now().Add(-s.Retention))
}

// WarmNow fetches the warm request once.
func (s *Scheduler) WarmNow() error {
	resp, err := s.Fetcher.FetchDailyBars(s.Ctx, s.Warm)
	if err != nil {
		return err
	}
	log.Printf("[INFO] warmed %s %s..%s: %d rows", s.Warm.Symbol, s.Warm.Start, s.Warm.End, len(resp.Rows))
	return nil
}

func (s *Scheduler) pruneTask() {
	n, err := s.PruneNow()
	if err != nil {
		log.Printf("[ERROR] prune history: %v", err)
		return
	}
	log.Printf("[INFO] pruned %d history rows", n)
}

func (s *Scheduler) warmTask() {
	if err := s.WarmNow(); err != nil {
		log.Printf("[WARN] warm cache: %v", err)
	}
}

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"StockPulse/internal/collector"
	"StockPulse/internal/model"
	"StockPulse/internal/notifier"
	"StockPulse/internal/runid"

	"github.com/robfig/cron/v3"
)

// ErrNoResults means every symbol was skipped, so nothing was sent.
var ErrNoResults = errors.New("no stock data available")

// Outcome summarizes one run.
type Outcome struct {
	RunID    string
	Results  []*model.AnalysisResult
	Skipped  []string
	Message  *notifier.Message
	Finished time.Time
}

// Scheduler runs the analyze-and-report pipeline, once or on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  notifier.Sender
	Logos     notifier.LogoLookup
	Symbols   []string
	Username  string
	Ctx       context.Context
	Now       func() time.Time
}

// NewScheduler creates a new Scheduler. Cron expressions are evaluated in loc.
func NewScheduler(ctx context.Context, col *collector.Collector, sender notifier.Sender, logos notifier.LogoLookup, symbols []string, username string, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		Collector: col,
		Notifier:  sender,
		Logos:     logos,
		Symbols:   symbols,
		Username:  username,
		Ctx:       ctx,
		Now:       time.Now,
	}
}

// Register schedules a run for every tick of the cron expression (six fields, with seconds).
func (s *Scheduler) Register(expr string) error {
	if _, err := s.Cron.AddFunc(expr, s.scheduledRun); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler, waiting for a running report to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) scheduledRun() {
	s.RunAndLog(s.Ctx)
}

// RunAndLog performs one run and turns its outcome into a final log line.
// It never fails: every run-level error ends here.
func (s *Scheduler) RunAndLog(ctx context.Context) *Outcome {
	out, err := s.RunOnce(ctx)
	switch {
	case err == nil:
		log.Printf("[INFO] run %s: report delivered (%d analyzed, %d skipped)", out.RunID, len(out.Results), len(out.Skipped))
	case errors.Is(err, ErrNoResults):
		log.Printf("[WARN] run %s: %v, nothing sent", out.RunID, err)
	default:
		log.Printf("[ERROR] run %s: %v", out.RunID, err)
	}
	return out
}

// RunOnce fetches and analyzes every symbol in order, then delivers one report.
// Per-symbol failures are logged and skipped. The returned Outcome is never nil.
func (s *Scheduler) RunOnce(ctx context.Context) (*Outcome, error) {
	start := s.Now()
	out := &Outcome{RunID: runid.New(start)}
	log.Printf("[INFO] run %s: analyzing %d symbols via %s", out.RunID, len(s.Symbols), s.Collector.Fetcher.Name())

	for _, symbol := range s.Symbols {
		log.Printf("[INFO] fetching %s", symbol)
		res, err := s.Collector.Collect(ctx, symbol)
		if err != nil {
			log.Printf("[WARN] %s skipped: %v", symbol, err)
			out.Skipped = append(out.Skipped, symbol)
			continue
		}
		out.Results = append(out.Results, res)
	}

	if len(out.Results) == 0 {
		out.Finished = s.Now()
		return out, ErrNoResults
	}

	out.Message = notifier.BuildReport(ctx, out.Results, notifier.ReportOptions{
		Username: s.Username,
		RunID:    out.RunID,
		Now:      start,
		Logos:    s.Logos,
	})
	err := s.Notifier.Send(ctx, out.Message)
	out.Finished = s.Now()
	return out, err
}

// Package scheduler drives the reminder engine against wall-clock time:
// a due-reminder pass every minute and an overdue sweep once per day.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/billmind/go-bill-reminder/internal/metrics"
	"github.com/billmind/go-bill-reminder/internal/reminder"
	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

const (
	// duePassSpec fires every minute; the evaluator's HH:MM gate decides
	// which users actually match.
	duePassSpec = "* * * * *"
	// overdueSweepSpec fires once per day at 10:00 local time.
	overdueSweepSpec = "0 10 * * *"
)

// ReminderScheduler owns the cron runner for the two reminder jobs. A run
// of a job must finish before its next tick is considered: overlapping
// invocations of the same job are skipped, and a panic inside a tick is
// recovered and logged without deregistering the job.
type ReminderScheduler struct {
	cron      *cron.Cron
	evaluator *reminder.Evaluator
	log       *logger.Logger
}

// NewReminderScheduler creates a scheduler around the given evaluator
func NewReminderScheduler(evaluator *reminder.Evaluator, log *logger.Logger) *ReminderScheduler {
	cronLog := cron.PrintfLogger(log)
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cronLog),
		cron.Recover(cronLog),
	))

	return &ReminderScheduler{
		cron:      c,
		evaluator: evaluator,
		log:       log,
	}
}

// Start registers both jobs and starts the cron runner
func (s *ReminderScheduler) Start() error {
	if _, err := s.cron.AddFunc(duePassSpec, s.runDuePass); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(overdueSweepSpec, s.runOverdueSweep); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("reminder scheduler started",
		"due_pass", duePassSpec, "overdue_sweep", overdueSweepSpec)
	return nil
}

// Stop stops the cron runner and waits for in-flight jobs to finish
func (s *ReminderScheduler) Stop() {
	s.log.Info("stopping reminder scheduler")
	<-s.cron.Stop().Done()
}

// Entries exposes the registered cron entries
func (s *ReminderScheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *ReminderScheduler) runDuePass() {
	s.runJob("due_pass", s.evaluator.RunDuePass)
}

func (s *ReminderScheduler) runOverdueSweep() {
	s.runJob("overdue_sweep", s.evaluator.RunOverdueSweep)
}

// runJob executes one tick. Errors are logged and counted; they never
// propagate, so a failed tick does not disturb the schedule.
func (s *ReminderScheduler) runJob(name string, fn func(context.Context, time.Time) error) {
	start := time.Now()

	if err := fn(context.Background(), start); err != nil {
		s.log.Error("scheduler tick failed", "job", name, "error", err)
		metrics.TickErrors.WithLabelValues(name).Inc()
	}

	metrics.SweepDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

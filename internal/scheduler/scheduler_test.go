package scheduler

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

func TestStart_RegistersBothJobs(t *testing.T) {
	s := NewReminderScheduler(nil, logger.NewLogger())
	defer s.Stop()

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := len(s.Entries()); got != 2 {
		t.Errorf("Entries() = %d, want 2", got)
	}
}

func TestJobSpecs(t *testing.T) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	due, err := parser.Parse(duePassSpec)
	if err != nil {
		t.Fatalf("due pass spec: %v", err)
	}
	from := time.Date(2026, 3, 10, 9, 0, 30, 0, time.Local)
	if next := due.Next(from); next.Sub(from) > time.Minute {
		t.Errorf("due pass next tick at %v, want within one minute", next)
	}

	sweep, err := parser.Parse(overdueSweepSpec)
	if err != nil {
		t.Fatalf("overdue sweep spec: %v", err)
	}
	next := sweep.Next(from)
	if next.Hour() != 10 || next.Minute() != 0 {
		t.Errorf("overdue sweep next tick at %v, want 10:00", next)
	}
}

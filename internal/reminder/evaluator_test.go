package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/billmind/go-bill-reminder/internal/domain"
)

var tickAt9 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

func TestRunDuePass_DispatchesWithinWindow(t *testing.T) {
	tests := []struct {
		name     string
		daysLeft int
		want     int
	}{
		{name: "due today", daysLeft: 0, want: 1},
		{name: "due tomorrow", daysLeft: 1, want: 1},
		{name: "due in three days", daysLeft: 3, want: 1},
		{name: "due in four days", daysLeft: 4, want: 0},
		{name: "already past due", daysLeft: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, f := newFixture(false)
			user := userAlice()
			f.store.users = []*domain.User{user}
			f.store.settings[user.ID] = settingsAllOn(user.ID)
			f.store.bills[user.ID] = []*domain.Bill{billDueIn(tickAt9, tt.daysLeft)}

			if err := ev.RunDuePass(context.Background(), tickAt9); err != nil {
				t.Fatalf("RunDuePass() error = %v", err)
			}
			if got := len(f.chat.sent); got != tt.want {
				t.Errorf("chat sends = %d, want %d", got, tt.want)
			}
			if got := len(f.voice.sent); got != tt.want {
				t.Errorf("voice sends = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunDuePass_PreferredTimeGate(t *testing.T) {
	ev, f := newFixture(false)
	user := userAlice()
	f.store.users = []*domain.User{user}
	settings := settingsAllOn(user.ID)
	settings.PreferredTime = "21:30"
	f.store.settings[user.ID] = settings
	f.store.bills[user.ID] = []*domain.Bill{billDueIn(tickAt9, 0)}

	if err := ev.RunDuePass(context.Background(), tickAt9); err != nil {
		t.Fatalf("RunDuePass() error = %v", err)
	}
	if len(f.chat.sent) != 0 {
		t.Errorf("chat sends = %d, want 0 outside preferred minute", len(f.chat.sent))
	}

	evening := time.Date(2026, 3, 10, 21, 30, 45, 0, time.Local)
	if err := ev.RunDuePass(context.Background(), evening); err != nil {
		t.Fatalf("RunDuePass() error = %v", err)
	}
	if len(f.chat.sent) != 1 {
		t.Errorf("chat sends = %d, want 1 at preferred minute", len(f.chat.sent))
	}
}

func TestRunDuePass_MissingSettingsSkipsUser(t *testing.T) {
	ev, f := newFixture(false)
	user := userAlice()
	f.store.users = []*domain.User{user}
	f.store.bills[user.ID] = []*domain.Bill{billDueIn(tickAt9, 0)}

	if err := ev.RunDuePass(context.Background(), tickAt9); err != nil {
		t.Fatalf("RunDuePass() error = %v", err)
	}
	if len(f.chat.sent) != 0 || len(f.voice.sent) != 0 {
		t.Error("user without settings must not receive reminders")
	}
}

func TestRunDuePass_SettingsErrorSkipsUser(t *testing.T) {
	ev, f := newFixture(false)
	user := userAlice()
	f.store.users = []*domain.User{user}
	f.store.settingsErr = errors.New("connection reset")
	f.store.bills[user.ID] = []*domain.Bill{billDueIn(tickAt9, 0)}

	if err := ev.RunDuePass(context.Background(), tickAt9); err != nil {
		t.Fatalf("RunDuePass() error = %v, want nil on per-user failure", err)
	}
	if len(f.chat.sent) != 0 {
		t.Error("settings load failure must skip the user, not dispatch")
	}
}

func TestRunDuePass_NoDedupAcrossTicks(t *testing.T) {
	ev, f := newFixture(false)
	user := userAlice()
	f.store.users = []*domain.User{user}
	f.store.settings[user.ID] = settingsAllOn(user.ID)
	f.store.bills[user.ID] = []*domain.Bill{billDueIn(tickAt9, 1)}

	for i := 0; i < 2; i++ {
		if err := ev.RunDuePass(context.Background(), tickAt9); err != nil {
			t.Fatalf("RunDuePass() error = %v", err)
		}
	}
	if len(f.chat.sent) != 2 {
		t.Errorf("chat sends = %d, want 2 (one per tick)", len(f.chat.sent))
	}
}

func TestRunOverdueSweep_AgeCutoff(t *testing.T) {
	tests := []struct {
		name    string
		overdue time.Duration
		want    int
	}{
		{name: "seven days overdue", overdue: 7 * 24 * time.Hour, want: 1},
		{name: "eight days overdue", overdue: 8 * 24 * time.Hour, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, f := newFixture(false)
			user := userAlice()
			f.store.users = []*domain.User{user}
			bill := billDueIn(tickAt9, 0)
			bill.DueDate = tickAt9.Add(-tt.overdue)
			f.store.overdue = []*domain.Bill{bill}

			if err := ev.RunOverdueSweep(context.Background(), tickAt9); err != nil {
				t.Fatalf("RunOverdueSweep() error = %v", err)
			}
			if got := len(f.chat.sent); got != tt.want {
				t.Errorf("chat sends = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunOverdueSweep_DueTimeNotJustDate(t *testing.T) {
	// Due later the same day: past the calendar date check but not the
	// timestamp check, so no alert yet.
	ev, f := newFixture(false)
	user := userAlice()
	f.store.users = []*domain.User{user}
	bill := billDueIn(tickAt9, 0)
	bill.DueDate = time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local)
	f.store.overdue = []*domain.Bill{bill}

	if err := ev.RunOverdueSweep(context.Background(), tickAt9); err != nil {
		t.Fatalf("RunOverdueSweep() error = %v", err)
	}
	if len(f.chat.sent) != 0 {
		t.Error("bill due later today must not trigger an overdue alert")
	}
}

func TestRunOverdueSweep_SkipsOwnerWithoutPhone(t *testing.T) {
	ev, f := newFixture(false)
	user := userAlice()
	user.PhoneNumber = ""
	f.store.users = []*domain.User{user}
	bill := billDueIn(tickAt9, 0)
	bill.DueDate = tickAt9.Add(-48 * time.Hour)
	f.store.overdue = []*domain.Bill{bill}

	if err := ev.RunOverdueSweep(context.Background(), tickAt9); err != nil {
		t.Fatalf("RunOverdueSweep() error = %v", err)
	}
	if len(f.chat.sent) != 0 {
		t.Error("owner without phone number must be skipped")
	}
}

func TestRunOverdueSweep_SkipsMissingOwner(t *testing.T) {
	ev, f := newFixture(false)
	bill := billDueIn(tickAt9, 0)
	bill.UserID = "u-gone"
	bill.DueDate = tickAt9.Add(-48 * time.Hour)
	f.store.overdue = []*domain.Bill{bill}

	if err := ev.RunOverdueSweep(context.Background(), tickAt9); err != nil {
		t.Fatalf("RunOverdueSweep() error = %v", err)
	}
	if len(f.chat.sent) != 0 {
		t.Error("bill with no resolvable owner must be skipped")
	}
}

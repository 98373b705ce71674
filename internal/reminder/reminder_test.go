package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/notifier"
	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

// fakeStore is an in-memory BillStore for engine tests
type fakeStore struct {
	users       []*domain.User
	settings    map[string]*domain.ReminderSettings
	bills       map[string][]*domain.Bill
	overdue     []*domain.Bill
	settingsErr error
	billsErr    error
}

func (s *fakeStore) UsersWithPhoneNumber(ctx context.Context) ([]*domain.User, error) {
	return s.users, nil
}

func (s *fakeStore) ReminderSettingsFor(ctx context.Context, userID string) (*domain.ReminderSettings, error) {
	if s.settingsErr != nil {
		return nil, s.settingsErr
	}
	return s.settings[userID], nil
}

func (s *fakeStore) UnpaidBillsFor(ctx context.Context, userID string) ([]*domain.Bill, error) {
	if s.billsErr != nil {
		return nil, s.billsErr
	}
	return s.bills[userID], nil
}

func (s *fakeStore) UnpaidOverdueBills(ctx context.Context, asOf time.Time) ([]*domain.Bill, error) {
	var out []*domain.Bill
	for _, b := range s.overdue {
		if b.DueDate.Before(asOf) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeStore) UserByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// fakeComposer returns a canned message and counts invocations
type fakeComposer struct {
	calls int
}

func (c *fakeComposer) Compose(ctx context.Context, recipientName string, facts domain.BillFacts) string {
	c.calls++
	return "reminder for " + facts.Name
}

type sentMessage struct {
	phone   string
	message string
}

// fakeChannel records Send calls and can be made to fail
type fakeChannel struct {
	sent []sentMessage
	fail bool
}

func (f *fakeChannel) Send(ctx context.Context, phoneNumber, message string) notifier.Result {
	f.sent = append(f.sent, sentMessage{phone: phoneNumber, message: message})
	if f.fail {
		return notifier.Fail(errors.New("provider unavailable"))
	}
	return notifier.Ok("ref-123")
}

// fakePush records published reminder events
type fakePush struct {
	events []domain.ReminderEvent
	fail   bool
}

func (f *fakePush) Publish(ctx context.Context, event domain.ReminderEvent) notifier.Result {
	f.events = append(f.events, event)
	if f.fail {
		return notifier.Fail(errors.New("broker closed"))
	}
	return notifier.Ok("")
}

type engineFixture struct {
	store    *fakeStore
	composer *fakeComposer
	chat     *fakeChannel
	voice    *fakeChannel
	push     *fakePush
}

func newFixture(withPush bool) (*Evaluator, *engineFixture) {
	f := &engineFixture{
		store:    &fakeStore{settings: map[string]*domain.ReminderSettings{}, bills: map[string][]*domain.Bill{}},
		composer: &fakeComposer{},
		chat:     &fakeChannel{},
		voice:    &fakeChannel{},
	}
	var push PushPublisher
	if withPush {
		f.push = &fakePush{}
		push = f.push
	}
	log := logger.NewLogger()
	d := NewDispatcher(f.composer, f.chat, f.voice, push, log)
	return NewEvaluator(f.store, d, log), f
}

func userAlice() *domain.User {
	return &domain.User{ID: "u-alice", Name: "Alice", Email: "alice@example.com", PhoneNumber: "+911234567890"}
}

func settingsAllOn(userID string) *domain.ReminderSettings {
	return &domain.ReminderSettings{
		ID:                 "s-" + userID,
		UserID:             userID,
		LocalNotifications: true,
		WhatsAppEnabled:    true,
		CallEnabled:        true,
		DaysBefore:         3,
		PreferredTime:      "09:00",
	}
}

func billDueIn(now time.Time, days int) *domain.Bill {
	return &domain.Bill{
		ID:                      "b-1",
		UserID:                  "u-alice",
		Name:                    "Internet",
		Amount:                  799,
		DueDate:                 now.AddDate(0, 0, days),
		EnableWhatsApp:          true,
		EnableCall:              true,
		EnableLocalNotification: true,
	}
}

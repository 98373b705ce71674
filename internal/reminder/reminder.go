// Package reminder contains the time-driven reminder engine: the evaluator
// that decides which (user, bill) pairs get a reminder for a given instant,
// and the dispatcher that fans a composed message out to the enabled
// channels with per-channel failure isolation.
package reminder

import (
	"context"
	"time"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/notifier"
)

// BillStore is the read-only view of the bill store the engine needs
type BillStore interface {
	// UsersWithPhoneNumber returns all users that can receive reminders
	UsersWithPhoneNumber(ctx context.Context) ([]*domain.User, error)
	// ReminderSettingsFor returns a user's settings, or nil when absent
	ReminderSettingsFor(ctx context.Context, userID string) (*domain.ReminderSettings, error)
	// UnpaidBillsFor returns all unpaid bills for a user
	UnpaidBillsFor(ctx context.Context, userID string) ([]*domain.Bill, error)
	// UnpaidOverdueBills returns all unpaid bills due strictly before asOf
	UnpaidOverdueBills(ctx context.Context, asOf time.Time) ([]*domain.Bill, error)
	// UserByID resolves a bill's owner, or nil when the user is gone
	UserByID(ctx context.Context, id string) (*domain.User, error)
}

// Composer produces the reminder message text. Implementations must not
// fail: on upstream errors they return a fallback string.
type Composer interface {
	Compose(ctx context.Context, recipientName string, facts domain.BillFacts) string
}

// ChatNotifier delivers a chat message to a phone number
type ChatNotifier interface {
	Send(ctx context.Context, phoneNumber, message string) notifier.Result
}

// VoiceNotifier places a voice call reading the message to a phone number
type VoiceNotifier interface {
	Send(ctx context.Context, phoneNumber, message string) notifier.Result
}

// PushPublisher emits a reminder event for the local notification gateway
type PushPublisher interface {
	Publish(ctx context.Context, event domain.ReminderEvent) notifier.Result
}

// ChannelResult records the outcome of one channel for one (user, bill) pair
type ChannelResult struct {
	Channel domain.ReminderChannel
	Result  notifier.Result
}

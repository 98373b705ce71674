package service

import (
	"context"
	"time"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/repository"
)

// ReminderStore adapts the Mongo repositories to the read-only view the
// reminder engine consumes
type ReminderStore struct {
	users    *repository.UserRepository
	bills    *repository.BillRepository
	settings *repository.SettingsRepository
}

// NewReminderStore creates the store adapter
func NewReminderStore(users *repository.UserRepository, bills *repository.BillRepository, settings *repository.SettingsRepository) *ReminderStore {
	return &ReminderStore{
		users:    users,
		bills:    bills,
		settings: settings,
	}
}

// UsersWithPhoneNumber returns all users that can receive reminders
func (s *ReminderStore) UsersWithPhoneNumber(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindWithPhoneNumber(ctx)
}

// ReminderSettingsFor returns a user's settings, or nil when absent
func (s *ReminderStore) ReminderSettingsFor(ctx context.Context, userID string) (*domain.ReminderSettings, error) {
	return s.settings.FindByUserID(ctx, userID)
}

// UnpaidBillsFor returns all unpaid bills for a user
func (s *ReminderStore) UnpaidBillsFor(ctx context.Context, userID string) ([]*domain.Bill, error) {
	return s.bills.FindUnpaidByUserID(ctx, userID)
}

// UnpaidOverdueBills returns all unpaid bills due strictly before asOf
func (s *ReminderStore) UnpaidOverdueBills(ctx context.Context, asOf time.Time) ([]*domain.Bill, error) {
	return s.bills.FindUnpaidOverdue(ctx, asOf)
}

// UserByID resolves a user, or nil when the user is gone
func (s *ReminderStore) UserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

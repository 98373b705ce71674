package reminder

import (
	"context"
	"time"

	"github.com/billmind/go-bill-reminder/internal/metrics"
	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

// maxOverdueDays bounds the daily overdue sweep: bills overdue longer than
// this are silently dropped from alerting.
const maxOverdueDays = 7

// dueWindow reports whether a countdown value qualifies for today's
// reminder. The window is the fixed {3, 2, 1, 0} day set ending on the due
// date itself; the per-user days_before preference is not consulted.
func dueWindow(daysLeft int) bool {
	return daysLeft >= 0 && daysLeft <= 3
}

// Evaluator walks the bill store once per tick and hands qualifying
// (user, bill) pairs to the dispatcher. It owns no state and performs no
// writes; a missing settings row or phone number skips the user, never
// aborts the pass.
type Evaluator struct {
	store      BillStore
	dispatcher *Dispatcher
	log        *logger.Logger
}

// NewEvaluator creates an evaluator over the given store and dispatcher
func NewEvaluator(store BillStore, dispatcher *Dispatcher, log *logger.Logger) *Evaluator {
	return &Evaluator{
		store:      store,
		dispatcher: dispatcher,
		log:        log,
	}
}

// RunDuePass is the minute-granularity job. A user is evaluated only in the
// single minute where now formatted as HH:MM equals their preferred time;
// within that minute every unpaid bill with 0-3 whole days left is
// dispatched.
func (e *Evaluator) RunDuePass(ctx context.Context, now time.Time) error {
	currentTime := now.Format("15:04")

	users, err := e.store.UsersWithPhoneNumber(ctx)
	if err != nil {
		return err
	}
	e.log.Debug("due-reminder pass", "time", currentTime, "users", len(users))

	for _, user := range users {
		settings, err := e.store.ReminderSettingsFor(ctx, user.ID)
		if err != nil {
			e.log.Error("could not load reminder settings", "user_id", user.ID, "error", err)
			continue
		}
		if settings == nil {
			e.log.Warn("no reminder settings for user, skipping", "user_id", user.ID)
			continue
		}

		if currentTime != settings.PreferredTime {
			continue
		}

		bills, err := e.store.UnpaidBillsFor(ctx, user.ID)
		if err != nil {
			e.log.Error("could not load unpaid bills", "user_id", user.ID, "error", err)
			continue
		}

		for _, bill := range bills {
			metrics.BillsEvaluated.WithLabelValues("due_pass").Inc()

			daysLeft := bill.DaysLeft(now)
			if !dueWindow(daysLeft) {
				continue
			}

			e.log.Info("bill due for reminder",
				"user_id", user.ID, "bill_id", bill.ID, "days_left", daysLeft)
			e.dispatcher.Dispatch(ctx, user, bill, settings)
		}
	}

	return nil
}

// RunOverdueSweep is the daily job. It alerts on every unpaid bill whose
// due date-time has passed, up to maxOverdueDays days late; older bills are
// dropped. Bills that stay overdue are re-alerted on each daily run inside
// that window.
func (e *Evaluator) RunOverdueSweep(ctx context.Context, now time.Time) error {
	bills, err := e.store.UnpaidOverdueBills(ctx, now)
	if err != nil {
		return err
	}
	e.log.Info("overdue sweep", "overdue_bills", len(bills))

	for _, bill := range bills {
		metrics.BillsEvaluated.WithLabelValues("overdue_sweep").Inc()

		user, err := e.store.UserByID(ctx, bill.UserID)
		if err != nil {
			e.log.Error("could not resolve bill owner", "bill_id", bill.ID, "error", err)
			continue
		}
		if user == nil {
			e.log.Warn("owner not found for overdue bill, skipping", "bill_id", bill.ID)
			continue
		}
		if user.PhoneNumber == "" {
			e.log.Warn("owner has no phone number, skipping", "bill_id", bill.ID, "user_id", user.ID)
			continue
		}

		daysOverdue := bill.DaysOverdue(now)
		if daysOverdue > maxOverdueDays {
			e.log.Debug("bill too old for overdue alert",
				"bill_id", bill.ID, "days_overdue", daysOverdue)
			continue
		}

		e.dispatcher.DispatchOverdue(ctx, user, bill, daysOverdue)
	}

	return nil
}

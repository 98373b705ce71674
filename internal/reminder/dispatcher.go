package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/metrics"
	"github.com/billmind/go-bill-reminder/internal/notifier"
	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

// Dispatcher fans a reminder for one (user, bill) pair out to the channels
// enabled for it. Channel failures are isolated: every enabled channel is
// attempted regardless of earlier outcomes, and no error escapes Dispatch.
type Dispatcher struct {
	composer Composer
	chat     ChatNotifier
	voice    VoiceNotifier
	push     PushPublisher // nil when the push gateway is not configured
	log      *logger.Logger
}

// NewDispatcher creates a dispatcher. push may be nil.
func NewDispatcher(composer Composer, chat ChatNotifier, voice VoiceNotifier, push PushPublisher, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		composer: composer,
		chat:     chat,
		voice:    voice,
		push:     push,
		log:      log,
	}
}

// Dispatch composes the reminder message once and sends it through every
// channel enabled by both the user settings and the bill overrides. It
// returns one result per attempted channel.
func (d *Dispatcher) Dispatch(ctx context.Context, user *domain.User, bill *domain.Bill, settings *domain.ReminderSettings) []ChannelResult {
	facts := bill.Facts()
	message := d.composer.Compose(ctx, user.Name, facts)

	var results []ChannelResult

	if settings.WhatsAppEnabled && bill.EnableWhatsApp {
		res := d.chat.Send(ctx, user.PhoneNumber, message)
		results = append(results, d.record(domain.ChannelWhatsApp, user, bill, res))
	}

	if settings.CallEnabled && bill.EnableCall {
		res := d.voice.Send(ctx, user.PhoneNumber, message)
		results = append(results, d.record(domain.ChannelCall, user, bill, res))
	}

	if d.push != nil && settings.LocalNotifications && bill.EnableLocalNotification {
		res := d.push.Publish(ctx, domain.ReminderEvent{
			UserID:    user.ID,
			BillID:    bill.ID,
			BillName:  bill.Name,
			Amount:    bill.Amount,
			DueDate:   facts.DueDate,
			Message:   message,
			Timestamp: time.Now(),
		})
		results = append(results, d.record(domain.ChannelPush, user, bill, res))
	}

	return results
}

// DispatchOverdue sends the fixed-severity overdue alert. Only the chat
// channel is used, gated by the bill-level override alone; the user-level
// WhatsApp toggle is deliberately not consulted on this path.
func (d *Dispatcher) DispatchOverdue(ctx context.Context, user *domain.User, bill *domain.Bill, daysOverdue int) []ChannelResult {
	if !bill.EnableWhatsApp {
		return nil
	}

	message := OverdueMessage(bill, daysOverdue)
	res := d.chat.Send(ctx, user.PhoneNumber, message)
	if res.Success {
		metrics.OverdueAlerts.Inc()
	}
	return []ChannelResult{d.record(domain.ChannelWhatsApp, user, bill, res)}
}

// OverdueMessage is the fixed template for overdue alerts
func OverdueMessage(bill *domain.Bill, daysOverdue int) string {
	return fmt.Sprintf(
		"URGENT: Your %s payment of ₹%.2f is %d days overdue. Please pay immediately to avoid late fees.",
		bill.Name, bill.Amount, daysOverdue,
	)
}

func (d *Dispatcher) record(channel domain.ReminderChannel, user *domain.User, bill *domain.Bill, res notifier.Result) ChannelResult {
	status := "success"
	if res.Success {
		d.log.Info("reminder dispatched",
			"channel", channel, "user_id", user.ID, "bill_id", bill.ID, "ref", res.Ref)
	} else {
		status = "failure"
		d.log.Error("reminder dispatch failed",
			"channel", channel, "user_id", user.ID, "bill_id", bill.ID, "error", res.Error)
	}
	metrics.RemindersDispatched.WithLabelValues(string(channel), status).Inc()

	return ChannelResult{Channel: channel, Result: res}
}

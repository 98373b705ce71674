package domain

import (
	"time"
)

// ReminderChannel identifies one notification delivery mechanism
type ReminderChannel string

const (
	ChannelWhatsApp ReminderChannel = "whatsapp"
	ChannelCall     ReminderChannel = "call"
	ChannelPush     ReminderChannel = "push"
	ChannelSpeech   ReminderChannel = "speech"
)

// User represents a registered account. PhoneNumber is optional; outbound
// reminder channels require it to be set.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Name         string    `json:"name" bson:"name"`
	PhoneNumber  string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Bill represents a recurring bill belonging to one user. The four Enable*
// flags are per-bill channel overrides; a channel fires only when both the
// user-level setting and the bill-level override are true.
type Bill struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Name      string    `json:"name" bson:"name"`
	Amount    float64   `json:"amount" bson:"amount"`
	DueDate   time.Time `json:"due_date" bson:"due_date"`
	Category  string    `json:"category" bson:"category"`
	Frequency string    `json:"frequency" bson:"frequency"`
	IsPaid    bool      `json:"is_paid" bson:"is_paid"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	EnableWhatsApp          bool `json:"enable_whatsapp" bson:"enable_whatsapp"`
	EnableCall              bool `json:"enable_call" bson:"enable_call"`
	EnableSMS               bool `json:"enable_sms" bson:"enable_sms"`
	EnableLocalNotification bool `json:"enable_local_notification" bson:"enable_local_notification"`

	ReceiptFilename string `json:"receipt_filename,omitempty" bson:"receipt_filename,omitempty"`
}

// wallClockUTC rebuilds a timestamp's wall-clock fields in UTC. Day counts
// derived from the result are unaffected by daylight-saving transitions in
// the source zone.
func wallClockUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// DaysLeft returns the whole-day countdown from now's calendar date to the
// bill's due date. Zero on the due date itself, negative once past it.
func (b *Bill) DaysLeft(now time.Time) int {
	due := b.DueDate.In(now.Location())
	dueDate := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(dueDate.Sub(today).Hours() / 24)
}

// DaysOverdue returns the number of whole wall-clock days elapsed since the
// bill's due date-time. Unlike DaysLeft this compares full timestamps, so a
// bill due at 23:59 is not overdue at 00:01 the same day.
func (b *Bill) DaysOverdue(now time.Time) int {
	if !b.DueDate.Before(now) {
		return 0
	}
	due := b.DueDate.In(now.Location())
	return int(wallClockUTC(now).Sub(wallClockUTC(due)).Hours() / 24)
}

// Payment records a completed bill payment
type Payment struct {
	ID            string    `json:"id" bson:"_id"`
	BillID        string    `json:"bill_id" bson:"bill_id"`
	Amount        float64   `json:"amount" bson:"amount"`
	PaymentDate   time.Time `json:"payment_date" bson:"payment_date"`
	PaymentMethod string    `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	Notes         string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// ReminderSettings holds the per-user global channel toggles and the single
// HH:MM instant per day at which the user receives reminders. DaysBefore is a
// stored preference only; the due-reminder pass uses a fixed countdown window.
type ReminderSettings struct {
	ID                 string    `json:"id" bson:"_id"`
	UserID             string    `json:"user_id" bson:"user_id"`
	LocalNotifications bool      `json:"local_notifications" bson:"local_notifications"`
	WhatsAppEnabled    bool      `json:"whatsapp_enabled" bson:"whatsapp_enabled"`
	CallEnabled        bool      `json:"call_enabled" bson:"call_enabled"`
	SMSEnabled         bool      `json:"sms_enabled" bson:"sms_enabled"`
	DaysBefore         int       `json:"days_before" bson:"days_before"`
	PreferredTime      string    `json:"preferred_time" bson:"preferred_time"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
}

// BillFacts is the payload handed to the message composer
type BillFacts struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	DueDate string  `json:"due_date"`
}

// Facts extracts the composer payload from a bill
func (b *Bill) Facts() BillFacts {
	return BillFacts{
		Name:    b.Name,
		Amount:  b.Amount,
		DueDate: b.DueDate.Format("2006-01-02"),
	}
}

// ReminderEvent is the message published to the push gateway exchange for
// the local notification channel
type ReminderEvent struct {
	UserID    string    `json:"user_id"`
	BillID    string    `json:"bill_id"`
	BillName  string    `json:"bill_name"`
	Amount    float64   `json:"amount"`
	DueDate   string    `json:"due_date"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

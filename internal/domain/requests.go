package domain

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest updates mutable user fields
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// BillReminderPreferences carries the per-bill channel overrides
type BillReminderPreferences struct {
	EnableWhatsApp          *bool `json:"enable_whatsapp,omitempty"`
	EnableCall              *bool `json:"enable_call,omitempty"`
	EnableSMS               *bool `json:"enable_sms,omitempty"`
	EnableLocalNotification *bool `json:"enable_local_notification,omitempty"`
}

// CreateBillRequest is the payload for bill creation
type CreateBillRequest struct {
	Name                string                   `json:"name" binding:"required"`
	Amount              float64                  `json:"amount" binding:"required,gt=0"`
	DueDate             string                   `json:"due_date" binding:"required"`
	Category            string                   `json:"category" binding:"required"`
	Frequency           string                   `json:"frequency" binding:"required"`
	Notes               string                   `json:"notes,omitempty"`
	ReminderPreferences *BillReminderPreferences `json:"reminder_preferences,omitempty"`
}

// UpdateBillRequest is the payload for bill edits; nil fields are untouched
type UpdateBillRequest struct {
	Name                *string                  `json:"name,omitempty"`
	Amount              *float64                 `json:"amount,omitempty"`
	DueDate             *string                  `json:"due_date,omitempty"`
	Category            *string                  `json:"category,omitempty"`
	Frequency           *string                  `json:"frequency,omitempty"`
	Notes               *string                  `json:"notes,omitempty"`
	ReminderPreferences *BillReminderPreferences `json:"reminder_preferences,omitempty"`
}

// UpdateSettingsRequest updates reminder settings; nil fields are untouched
type UpdateSettingsRequest struct {
	LocalNotifications *bool   `json:"local_notifications,omitempty"`
	WhatsAppEnabled    *bool   `json:"whatsapp_enabled,omitempty"`
	CallEnabled        *bool   `json:"call_enabled,omitempty"`
	SMSEnabled         *bool   `json:"sms_enabled,omitempty"`
	DaysBefore         *int    `json:"days_before,omitempty"`
	PreferredTime      *string `json:"preferred_time,omitempty"`
}

// TestReminderRequest triggers a one-off reminder through a single channel
type TestReminderRequest struct {
	Type ReminderChannel `json:"type" binding:"required"`
}

// SendReminderRequest triggers a reminder for one bill through one channel
type SendReminderRequest struct {
	BillID string          `json:"bill_id" binding:"required"`
	Type   ReminderChannel `json:"type" binding:"required"`
}

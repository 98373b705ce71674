package service

import (
	"context"
	"time"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/notifier"
	"github.com/billmind/go-bill-reminder/internal/reminder"
	"github.com/billmind/go-bill-reminder/internal/repository"
	"github.com/billmind/go-bill-reminder/internal/shared/errors"
	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

// ReminderService backs the reminder settings endpoints and the on-demand
// reminder actions (test send, manual single-bill send, speech synthesis)
type ReminderService struct {
	users    *repository.UserRepository
	bills    *repository.BillRepository
	settings *repository.SettingsRepository
	composer reminder.Composer
	chat     reminder.ChatNotifier
	voice    reminder.VoiceNotifier
	speech   *notifier.SpeechSynthesizer
	log      *logger.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(
	users *repository.UserRepository,
	bills *repository.BillRepository,
	settings *repository.SettingsRepository,
	composer reminder.Composer,
	chat reminder.ChatNotifier,
	voice reminder.VoiceNotifier,
	speech *notifier.SpeechSynthesizer,
	log *logger.Logger,
) *ReminderService {
	return &ReminderService{
		users:    users,
		bills:    bills,
		settings: settings,
		composer: composer,
		chat:     chat,
		voice:    voice,
		speech:   speech,
		log:      log,
	}
}

// GetSettings returns the user's reminder settings, lazily creating
// defaults when the row is absent
func (s *ReminderService) GetSettings(ctx context.Context, userID string) (*domain.ReminderSettings, error) {
	settings, err := s.settings.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("could not load settings", err)
	}
	if settings == nil {
		settings = repository.DefaultSettings(userID)
		if err := s.settings.Create(ctx, settings); err != nil {
			return nil, errors.NewInternalError("could not create default settings", err)
		}
	}
	return settings, nil
}

// UpdateSettings applies a partial settings update
func (s *ReminderService) UpdateSettings(ctx context.Context, userID string, req *domain.UpdateSettingsRequest) (*domain.ReminderSettings, error) {
	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.LocalNotifications != nil {
		settings.LocalNotifications = *req.LocalNotifications
	}
	if req.WhatsAppEnabled != nil {
		settings.WhatsAppEnabled = *req.WhatsAppEnabled
	}
	if req.CallEnabled != nil {
		settings.CallEnabled = *req.CallEnabled
	}
	if req.SMSEnabled != nil {
		settings.SMSEnabled = *req.SMSEnabled
	}
	if req.DaysBefore != nil {
		settings.DaysBefore = *req.DaysBefore
	}
	if req.PreferredTime != nil {
		if _, err := time.Parse("15:04", *req.PreferredTime); err != nil {
			return nil, errors.NewValidationError("preferred_time must be HH:MM", err)
		}
		settings.PreferredTime = *req.PreferredTime
	}

	if err := s.settings.Upsert(ctx, settings); err != nil {
		return nil, errors.NewInternalError("could not save settings", err)
	}
	return settings, nil
}

// TestResult carries the outcome of an on-demand reminder action
type TestResult struct {
	Channel   domain.ReminderChannel `json:"channel"`
	Result    notifier.Result        `json:"result"`
	AudioPath string                 `json:"audio_path,omitempty"`
}

// SendTest sends a sample reminder to the user through one channel. The
// speech channel synthesizes audio instead of contacting the user.
func (s *ReminderService) SendTest(ctx context.Context, userID string, channel domain.ReminderChannel) (*TestResult, error) {
	user, err := s.requireUserWithPhone(ctx, userID)
	if err != nil {
		return nil, err
	}

	facts := domain.BillFacts{
		Name:    "Test Bill",
		Amount:  1000,
		DueDate: time.Now().Format("2006-01-02"),
	}
	message := s.composer.Compose(ctx, user.Name, facts)

	switch channel {
	case domain.ChannelWhatsApp:
		res := s.chat.Send(ctx, user.PhoneNumber, message)
		return &TestResult{Channel: channel, Result: res}, nil
	case domain.ChannelCall:
		res := s.voice.Send(ctx, user.PhoneNumber, message)
		return &TestResult{Channel: channel, Result: res}, nil
	case domain.ChannelSpeech:
		path, err := s.speech.Synthesize(ctx, message)
		if err != nil {
			return &TestResult{Channel: channel, Result: notifier.Fail(err)}, nil
		}
		return &TestResult{Channel: channel, Result: notifier.Ok(path), AudioPath: path}, nil
	default:
		return nil, errors.NewValidationError("invalid reminder type", nil)
	}
}

// SendForBill sends a reminder for one bill through one channel, honoring
// the bill-level channel override
func (s *ReminderService) SendForBill(ctx context.Context, userID string, req *domain.SendReminderRequest) (*TestResult, error) {
	user, err := s.requireUserWithPhone(ctx, userID)
	if err != nil {
		return nil, err
	}

	bill, err := s.bills.FindByID(ctx, req.BillID, userID)
	if err != nil {
		return nil, errors.NewInternalError("could not load bill", err)
	}
	if bill == nil {
		return nil, errors.NewNotFoundError("bill not found", nil)
	}

	message := s.composer.Compose(ctx, user.Name, bill.Facts())

	switch {
	case req.Type == domain.ChannelWhatsApp && bill.EnableWhatsApp:
		res := s.chat.Send(ctx, user.PhoneNumber, message)
		return &TestResult{Channel: req.Type, Result: res}, nil
	case req.Type == domain.ChannelCall && bill.EnableCall:
		res := s.voice.Send(ctx, user.PhoneNumber, message)
		return &TestResult{Channel: req.Type, Result: res}, nil
	default:
		return nil, errors.NewValidationError("reminder type not enabled for this bill", nil)
	}
}

func (s *ReminderService) requireUserWithPhone(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("could not load user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user not found", nil)
	}
	if user.PhoneNumber == "" {
		return nil, errors.NewValidationError("phone number required for reminders", nil)
	}
	return user, nil
}

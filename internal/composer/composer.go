package composer

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/metrics"
	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

const systemPrompt = `You are a friendly financial assistant creating a bill payment reminder.
Write a short, natural message. Keep it brief and friendly, and do not add
anything beyond the reminder itself.`

// MessageComposer turns bill facts into a short natural-language reminder.
// Compose never fails: on any upstream error it returns the deterministic
// fallback template instead.
type MessageComposer struct {
	client *openai.Client
	model  string
	log    *logger.Logger
	now    func() time.Time
}

// NewMessageComposer creates a composer backed by a chat completion API.
// An empty apiKey yields a composer that always uses the fallback template.
func NewMessageComposer(apiKey, baseURL, model string, log *logger.Logger) *MessageComposer {
	c := &MessageComposer{
		model: model,
		log:   log,
		now:   time.Now,
	}
	if c.model == "" {
		c.model = openai.GPT4oMini
	}
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		c.client = openai.NewClientWithConfig(cfg)
	}
	return c
}

// Compose returns a reminder message for the recipient and bill facts
func (c *MessageComposer) Compose(ctx context.Context, recipientName string, facts domain.BillFacts) string {
	if c.client == nil {
		metrics.ComposerFallbacks.Inc()
		return FallbackMessage(recipientName, facts)
	}

	prompt := fmt.Sprintf(
		"Start with: \"Hey %s, %s.\"\n"+
			"Remind about this bill payment:\n"+
			"- Bill: %s\n- Amount: ₹%.2f\n- Due Date: %s\n"+
			"End with: \"Hope you have a nice day.\"",
		recipientName, greeting(c.now()), facts.Name, facts.Amount, facts.DueDate,
	)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 1.0,
	})
	if err != nil || len(resp.Choices) == 0 {
		c.log.Warn("composer upstream failed, using fallback template", "error", err, "bill", facts.Name)
		metrics.ComposerFallbacks.Inc()
		return FallbackMessage(recipientName, facts)
	}

	message := strings.TrimSpace(resp.Choices[0].Message.Content)
	if message == "" {
		metrics.ComposerFallbacks.Inc()
		return FallbackMessage(recipientName, facts)
	}
	return message
}

// FallbackMessage is the deterministic template used when the upstream
// composer is unavailable
func FallbackMessage(recipientName string, facts domain.BillFacts) string {
	return fmt.Sprintf(
		"Hi %s, this is a reminder that your payment for '%s' is due on %s. Amount due: ₹%.2f.",
		recipientName, facts.Name, facts.DueDate, facts.Amount,
	)
}

func greeting(now time.Time) string {
	switch hour := now.Hour(); {
	case hour >= 5 && hour < 12:
		return "Good morning"
	case hour >= 12 && hour < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

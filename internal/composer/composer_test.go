package composer

import (
	"context"
	"testing"
	"time"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

func TestFallbackMessage(t *testing.T) {
	facts := domain.BillFacts{Name: "Electricity", Amount: 1250.5, DueDate: "2026-04-02"}
	got := FallbackMessage("Alice", facts)
	want := "Hi Alice, this is a reminder that your payment for 'Electricity' is due on 2026-04-02. Amount due: ₹1250.50."
	if got != want {
		t.Errorf("FallbackMessage() = %q, want %q", got, want)
	}
}

func TestCompose_NoAPIKeyUsesFallback(t *testing.T) {
	c := NewMessageComposer("", "", "", logger.NewLogger())
	facts := domain.BillFacts{Name: "Rent", Amount: 15000, DueDate: "2026-03-31"}

	got := c.Compose(context.Background(), "Bob", facts)
	if got != FallbackMessage("Bob", facts) {
		t.Errorf("Compose() = %q, want fallback template", got)
	}
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{hour: 4, want: "Good evening"},
		{hour: 5, want: "Good morning"},
		{hour: 11, want: "Good morning"},
		{hour: 12, want: "Good afternoon"},
		{hour: 16, want: "Good afternoon"},
		{hour: 17, want: "Good evening"},
		{hour: 23, want: "Good evening"},
	}

	for _, tt := range tests {
		now := time.Date(2026, 3, 10, tt.hour, 0, 0, 0, time.Local)
		if got := greeting(now); got != tt.want {
			t.Errorf("greeting(hour=%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

// WhatsAppNotifier sends chat messages through the Twilio Messages API
type WhatsAppNotifier struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	client     *http.Client
	log        *logger.Logger
}

// NewWhatsAppNotifier creates a new WhatsApp notifier
func NewWhatsAppNotifier(accountSID, authToken, from string, log *logger.Logger) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    "https://api.twilio.com",
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// Send delivers a WhatsApp message to the given phone number
func (n *WhatsAppNotifier) Send(ctx context.Context, phoneNumber, message string) Result {
	form := url.Values{}
	form.Set("From", n.from)
	form.Set("To", "whatsapp:"+phoneNumber)
	form.Set("Body", message)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", n.baseURL, n.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Fail(err)
	}
	req.SetBasicAuth(n.accountSID, n.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return Fail(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Fail(fmt.Errorf("twilio returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var created struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		// Message was accepted; a malformed body only loses the reference.
		n.log.Warn("could not decode twilio response", "error", err)
		return Ok("")
	}
	return Ok(created.SID)
}

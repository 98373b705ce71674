package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

// VoiceNotifier places automated reminder calls through the Bland AI API
type VoiceNotifier struct {
	apiKey  string
	baseURL string
	voiceID string
	client  *http.Client
	log     *logger.Logger
}

// NewVoiceNotifier creates a new voice call notifier
func NewVoiceNotifier(apiKey, baseURL, voiceID string, log *logger.Logger) *VoiceNotifier {
	return &VoiceNotifier{
		apiKey:  apiKey,
		baseURL: baseURL,
		voiceID: voiceID,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// Send places a reminder call that reads the message to the recipient
func (n *VoiceNotifier) Send(ctx context.Context, phoneNumber, message string) Result {
	// URLs read out loud are useless; drop everything from the first one on.
	task := message
	if i := strings.Index(task, "http"); i >= 0 {
		task = strings.TrimSpace(task[:i])
	}

	payload := map[string]any{
		"phone_number":   phoneNumber,
		"task":           task,
		"reduce_latency": true,
		"voice_id":       n.voiceID,
		"speed":          0.85,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Fail(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/v1/calls", bytes.NewReader(body))
	if err != nil {
		return Fail(err)
	}
	req.Header.Set("Authorization", n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return Fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Fail(fmt.Errorf("bland ai returned status %d", resp.StatusCode))
	}

	var call struct {
		CallID string `json:"call_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&call); err != nil {
		n.log.Warn("could not decode bland ai response", "error", err)
		return Ok("")
	}
	return Ok(call.CallID)
}

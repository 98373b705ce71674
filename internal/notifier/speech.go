package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

// SpeechSynthesizer renders a reminder message to an audio file through the
// ElevenLabs text-to-speech API. It backs the on-demand reminder test action
// and is not part of the automatic sweeps.
type SpeechSynthesizer struct {
	apiKey  string
	baseURL string
	voiceID string
	client  *http.Client
	log     *logger.Logger
}

// NewSpeechSynthesizer creates a new speech synthesizer
func NewSpeechSynthesizer(apiKey, baseURL, voiceID string, log *logger.Logger) *SpeechSynthesizer {
	return &SpeechSynthesizer{
		apiKey:  apiKey,
		baseURL: baseURL,
		voiceID: voiceID,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		log: log,
	}
}

// Synthesize renders the message to an mp3 file and returns its path
func (s *SpeechSynthesizer) Synthesize(ctx context.Context, message string) (string, error) {
	payload := map[string]any{
		"text": message,
		"voice_settings": map[string]any{
			"stability":         0.5,
			"similarity_boost":  0.75,
			"style":             0.5,
			"use_speaker_boost": true,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, s.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("elevenlabs returned status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "reminder-*.mp3")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	s.log.Info("synthesized reminder audio", "path", tmp.Name())
	return tmp.Name(), nil
}

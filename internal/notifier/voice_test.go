package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

func TestVoiceNotifier_Send(t *testing.T) {
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/calls" {
			t.Errorf("path = %s, want /v1/calls", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "bland-key" {
			t.Errorf("authorization = %q, want bland-key", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Fatalf("decoding payload: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"call_id": "c-9"})
	}))
	defer srv.Close()

	n := NewVoiceNotifier("bland-key", srv.URL, "voice-1", logger.NewLogger())

	res := n.Send(context.Background(), "+911234567890", "Your rent is due tomorrow. Pay at https://pay.example.com/abc")
	if !res.Success {
		t.Fatalf("Send() = %+v, want success", res)
	}
	if res.Ref != "c-9" {
		t.Errorf("Ref = %q, want c-9", res.Ref)
	}
	if gotPayload["task"] != "Your rent is due tomorrow. Pay at" {
		t.Errorf("task = %q, want URL stripped from spoken text", gotPayload["task"])
	}
	if gotPayload["phone_number"] != "+911234567890" {
		t.Errorf("phone_number = %q", gotPayload["phone_number"])
	}
}

func TestVoiceNotifier_SendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewVoiceNotifier("wrong-key", srv.URL, "voice-1", logger.NewLogger())
	if res := n.Send(context.Background(), "+911234567890", "hello"); res.Success {
		t.Fatal("Send() succeeded, want failure on 401")
	}
}

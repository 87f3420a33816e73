package slack

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNew_MissingWebhookURL(t *testing.T) {
	_, err := New("")
	if !errors.Is(err, ErrMissingWebhookURL) {
		t.Errorf("expected ErrMissingWebhookURL, got %v", err)
	}
}

func TestNewDGAAlert(t *testing.T) {
	msg := NewDGAAlert("kq3v9z7j1x5f8g2h.info", 0.973, "glm_1_lr0.30_ep400")

	if !strings.Contains(msg.Text, "kq3v9z7j1x5f8g2h.info") {
		t.Errorf("expected fallback text to contain the domain, got %q", msg.Text)
	}

	if !strings.Contains(msg.Text, "97.3%") {
		t.Errorf("expected fallback text to contain the probability, got %q", msg.Text)
	}

	if len(msg.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(msg.Blocks))
	}

	fields := msg.Blocks[1].Fields
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}

	if !strings.Contains(fields[2].Text, "glm_1_lr0.30_ep400") {
		t.Errorf("expected model field, got %q", fields[2].Text)
	}
}

func TestSend(t *testing.T) {
	var received Message

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode message: %v", err)
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := NewDGAAlert("example.top", 0.88, "gbm_1_nt60_lr0.10")

	if err := client.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if received.Text != msg.Text {
		t.Errorf("expected text %q, got %q", msg.Text, received.Text)
	}
}

func TestSend_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = client.Send(context.Background(), Message{Text: "x"})
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("expected ErrUnexpectedStatus, got %v", err)
	}
}

package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	client, err := New("test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.model != defaultModel {
		t.Errorf("expected default model %s, got %s", defaultModel, client.model)
	}

	if client.httpClient == nil {
		t.Fatal("expected default HTTP client to be set")
	}
}

func TestNew_MissingAPIKey(t *testing.T) {
	_, err := New("")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNew_Options(t *testing.T) {
	customClient := &http.Client{Timeout: 5 * time.Second}

	client, err := New("test-key",
		WithHTTPClient(customClient),
		WithBaseURL("http://localhost:9999"),
		WithModel("gemini-test"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.httpClient != customClient {
		t.Error("expected custom HTTP client to be set")
	}

	if client.baseURL != "http://localhost:9999" {
		t.Errorf("unexpected base URL %s", client.baseURL)
	}

	if client.model != "gemini-test" {
		t.Errorf("unexpected model %s", client.model)
	}
}

func TestGenerateURL(t *testing.T) {
	client, err := New("se/cret", WithBaseURL("http://api.test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := client.generateURL()
	want := "http://api.test/models/" + defaultModel + ":generateContent?key=se%2Fcret"

	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestGeneratePlaybook_Success(t *testing.T) {
	const playbookText = "Phase 1: Immediate Containment\n1. Sinkhole the domain."

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("expected key query parameter test-key, got %s", got)
		}

		var reqBody generateRequest
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}

		if len(reqBody.Contents) != 2 {
			t.Fatalf("expected 2 content turns, got %d", len(reqBody.Contents))
		}

		if !strings.Contains(reqBody.Contents[1].Parts[0].Text, "kq3v9z7j1x5f8g2h.info") {
			t.Error("expected findings to be embedded in the user prompt")
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(generateResponse{
			Candidates: []candidate{
				{Content: content{Parts: []part{{Text: playbookText}}}},
			},
		}); err != nil {
			t.Fatalf("failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	client, err := New("test-key",
		WithHTTPClient(server.Client()),
		WithBaseURL(server.URL),
	)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	got, err := client.GeneratePlaybook(context.Background(), "- Domain: 'kq3v9z7j1x5f8g2h.info'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != playbookText {
		t.Errorf("expected %q, got %q", playbookText, got)
	}
}

func TestGeneratePlaybook_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"key invalid"}}`))
	}))
	defer server.Close()

	client, err := New("bad-key", WithHTTPClient(server.Client()), WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.GeneratePlaybook(context.Background(), "findings")
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestGeneratePlaybook_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client, err := New("test-key", WithHTTPClient(server.Client()), WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.GeneratePlaybook(context.Background(), "findings")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestPlaybook_DegradesToErrorString(t *testing.T) {
	got := Playbook(context.Background(), "", "findings")
	if !strings.Contains(got, "[genai error]") {
		t.Errorf("expected degraded error string, got %q", got)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	got = Playbook(context.Background(), "key", "findings",
		WithHTTPClient(server.Client()), WithBaseURL(server.URL))
	if !strings.Contains(got, "[genai error]") {
		t.Errorf("expected degraded error string, got %q", got)
	}
}

func TestPlaybook_PassesThroughText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"do the thing"}]}}]}`))
	}))
	defer server.Close()

	got := Playbook(context.Background(), "key", "findings",
		WithHTTPClient(server.Client()), WithBaseURL(server.URL))
	if got != "do the thing" {
		t.Errorf("expected playbook text, got %q", got)
	}
}

package toxicity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Config{APIKey: "test-key", BaseURL: baseURL}, newTestLogger())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}, newTestLogger()); err != ErrMissingCredentials {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestAnalyze_MapsAttributeScores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1alpha1/comments:analyze" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query")
		}

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Comment.Text != "you are ugly" {
			t.Errorf("unexpected comment text %q", req.Comment.Text)
		}
		if _, ok := req.RequestedAttributes["TOXICITY"]; !ok {
			t.Error("TOXICITY attribute not requested")
		}

		json.NewEncoder(w).Encode(map[string]any{
			"attributeScores": map[string]any{
				"TOXICITY": map[string]any{"summaryScore": map[string]any{"value": 0.82}},
				"INSULT":   map[string]any{"summaryScore": map[string]any{"value": 0.67}},
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	payload, err := c.Analyze(context.Background(), "you are ugly")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if payload["TOXICITY"].(float64) != 0.82 {
		t.Errorf("expected TOXICITY 0.82, got %v", payload["TOXICITY"])
	}
	if payload["INSULT"].(float64) != 0.67 {
		t.Errorf("expected INSULT 0.67, got %v", payload["INSULT"])
	}
	if c.Source() != models.SourceExternalClassifier {
		t.Errorf("unexpected source %s", c.Source())
	}
}

func TestAnalyze_RetriesOnServerError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"attributeScores": map[string]any{
				"TOXICITY": map[string]any{"summaryScore": map[string]any{"value": 0.1}},
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	payload, err := c.Analyze(context.Background(), "hi")
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts.Load())
	}
	if payload["TOXICITY"].(float64) != 0.1 {
		t.Errorf("unexpected payload %v", payload)
	}
}

func TestAnalyze_FailsOnClientError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	if _, err := c.Analyze(context.Background(), "hi"); err == nil {
		t.Error("expected error on 400")
	}
	if attempts.Load() != 1 {
		t.Errorf("client errors must not be retried, got %d attempts", attempts.Load())
	}
}

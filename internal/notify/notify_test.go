package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func sampleAlert() Alert {
	return Alert{
		RequestID:       "req-1",
		RequesterName:   "mia",
		GuardianContact: "parent@example.com",
		Score:           85,
		Severity:        "high",
		Labels:          []string{"grooming"},
		CreatedAt:       time.Now(),
	}
}

func TestWebhook_Notify(t *testing.T) {
	var got Alert
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, newTestLogger())
	if err := wh.Notify(context.Background(), sampleAlert()); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	if got.Score != 85 || got.Severity != "high" {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestWebhook_PayloadOmitsGuardianContact(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&raw)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, newTestLogger())
	if err := wh.Notify(context.Background(), sampleAlert()); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	for key := range raw {
		if strings.Contains(key, "guardian") {
			t.Errorf("guardian contact leaked into webhook payload: %v", raw)
		}
	}
}

func TestWebhook_RetryOnServerError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, newTestLogger())
	if err := wh.Notify(context.Background(), sampleAlert()); err != nil {
		t.Errorf("expected success after retries, got: %v", err)
	}
	if attempts.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts.Load())
	}
}

func TestWebhook_NoRetryOnClientError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, newTestLogger())
	if err := wh.Notify(context.Background(), sampleAlert()); err == nil {
		t.Error("expected error on 400")
	}
	if attempts.Load() != 1 {
		t.Errorf("expected 1 attempt for client error, got %d", attempts.Load())
	}
}

type fakeNotifier struct {
	calls atomic.Int32
	err   error
}

func (f *fakeNotifier) Notify(ctx context.Context, alert Alert) error {
	f.calls.Add(1)
	return f.err
}

func TestDispatcher_DeliversAsync(t *testing.T) {
	fake := &fakeNotifier{}
	d := NewDispatcher([]Notifier{fake}, 4, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	if !d.Enqueue(sampleAlert()) {
		t.Fatal("Enqueue refused an alert with queue capacity available")
	}

	deadline := time.After(2 * time.Second)
	for fake.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("alert was never delivered")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcher_FailureDoesNotPropagate(t *testing.T) {
	fake := &fakeNotifier{err: errors.New("smtp down")}
	d := NewDispatcher([]Notifier{fake}, 4, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(sampleAlert())

	deadline := time.After(2 * time.Second)
	for fake.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("failing notifier was never invoked")
		case <-time.After(10 * time.Millisecond):
		}
	}
	// Nothing to assert beyond delivery: the error must stay inside the
	// dispatcher.
}

func TestDispatcher_FullQueueDrops(t *testing.T) {
	fake := &fakeNotifier{}
	d := NewDispatcher([]Notifier{fake}, 1, newTestLogger())
	// Worker not started, so the queue fills up.

	if !d.Enqueue(sampleAlert()) {
		t.Fatal("first enqueue should succeed")
	}
	if d.Enqueue(sampleAlert()) {
		t.Error("second enqueue should drop when the queue is full")
	}
}

func TestDispatcher_NilIsSafe(t *testing.T) {
	var d *Dispatcher

	d.Start(context.Background())
	if d.Enqueue(sampleAlert()) {
		t.Error("nil dispatcher must refuse alerts")
	}
	d.Wait()
}

func TestRenderMailBody_OmitsContentMention(t *testing.T) {
	body := renderMailBody(sampleAlert())

	if !strings.Contains(body, "85/100") {
		t.Errorf("score missing from mail body:\n%s", body)
	}
	if !strings.Contains(body, "grooming") {
		t.Errorf("labels missing from mail body:\n%s", body)
	}
	if !strings.Contains(body, "not included") {
		t.Errorf("mail body must state that message text is excluded:\n%s", body)
	}
}

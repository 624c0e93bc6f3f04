package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

func TestWebhookSend(t *testing.T) {
	var got webhookRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/notifications" {
			t.Errorf("path = %s, want /notifications", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, 1)
	err := n.Send(context.Background(), domain.Notification{
		Title: "Block starting soon",
		Body:  "Deep work begins in 10 minutes.",
		Extra: map[string]any{"type": "block_upcoming"},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.Title != "Block starting soon" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Extra["type"] != "block_upcoming" {
		t.Errorf("extra = %v", got.Extra)
	}
}

func TestWebhookSendRetriesServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, 3)
	if err := n.Send(context.Background(), domain.Notification{Title: "t", Body: "b"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestWebhookSendExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, 2)
	if err := n.Send(context.Background(), domain.Notification{Title: "t", Body: "b"}); err == nil {
		t.Fatal("Send should fail after exhausting retries")
	}
}

func TestWebhookPermission(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/permission" {
			t.Errorf("path = %s, want /permission", r.URL.Path)
		}
		granted := r.Method == http.MethodPost
		json.NewEncoder(w).Encode(permissionResponse{Granted: granted})
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, 1)

	granted, err := n.PermissionGranted(context.Background())
	if err != nil {
		t.Fatalf("PermissionGranted: %v", err)
	}
	if granted {
		t.Error("PermissionGranted = true, want false")
	}

	granted, err = n.RequestPermission(context.Background())
	if err != nil {
		t.Fatalf("RequestPermission: %v", err)
	}
	if !granted {
		t.Error("RequestPermission = false, want true")
	}
}

package closing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		WebAppURL:  srv.URL,
		APIKey:     "test-key",
		Timeout:    2 * time.Second,
		RatePerSec: 100,
		RateBurst:  100,
	}, zap.NewNop())
}

func TestValidAction(t *testing.T) {
	t.Parallel()

	for _, a := range []string{ActionStartClosing, ActionRunNow, ActionStopClosing, ActionStatus, ActionWriteParseResults} {
		if !ValidAction(a) {
			t.Fatalf("ValidAction(%q) = false, want true", a)
		}
	}
	if ValidAction("drop_tables") {
		t.Fatalf("ValidAction(drop_tables) = true, want false")
	}
}

func TestClientStatus(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("undecodable request body: %v", err)
		}
		if payload["key"] != "test-key" || payload["action"] != ActionStatus {
			t.Errorf("unexpected payload: %v", payload)
		}
		io.WriteString(w, `{"status": {"active": true, "competencia": "FEV-26", "endDate": "2026-02-15"}}`)
	})

	st, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if st == nil || !st.Active || st.Competencia != "FEV-26" || st.EndDate != "2026-02-15" {
		t.Fatalf("status = %+v", st)
	}
}

func TestClientStatusUndecodableReply(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json at all")
	})

	st, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() error: %v, want nil (unknown window is not fatal)", err)
	}
	if st != nil {
		t.Fatalf("status = %+v, want nil", st)
	}
}

func TestClientTriggerPayload(t *testing.T) {
	t.Parallel()

	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("undecodable request body: %v", err)
		}
		io.WriteString(w, `{"ok": true}`)
	})

	reply, err := c.Trigger(context.Background(), Command{
		Action:      ActionStartClosing,
		Competencia: "FEV-26",
		Days:        5,
		Initiator:   "gc@empresa.com",
	})
	if err != nil {
		t.Fatalf("Trigger() error: %v", err)
	}
	if string(reply) != `{"ok": true}` {
		t.Fatalf("reply = %s, want verbatim pass-through", reply)
	}

	if got["key"] != "test-key" || got["action"] != ActionStartClosing {
		t.Fatalf("payload = %v", got)
	}
	if got["competencia"] != "FEV-26" || got["days"] != float64(5) {
		t.Fatalf("payload = %v", got)
	}
	if got["initiator"] != "gc@empresa.com" {
		t.Fatalf("initiator = %v", got["initiator"])
	}
	if got["request_id"] == "" || got["request_id"] == nil {
		t.Fatalf("missing request_id")
	}
}

func TestClientTriggerRejectsUnknownAction(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unknown action must never reach the web app")
	})

	if _, err := c.Trigger(context.Background(), Command{Action: "nuke"}); err == nil {
		t.Fatalf("Trigger(nuke) error = nil, want error")
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, `{"status": null}`)
	})

	if _, err := c.Status(context.Background()); err != nil {
		t.Fatalf("Status() error after retries: %v", err)
	}
	if n := calls.Load(); n != 3 {
		t.Fatalf("calls = %d, want 3", n)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.Status(context.Background())
	if err == nil {
		t.Fatalf("Status() error = nil, want status error")
	}
	var sErr *StatusError
	if !errors.As(err, &sErr) || sErr.Code != http.StatusForbidden {
		t.Fatalf("error = %v, want StatusError 403", err)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("calls = %d, want 1 (4xx is unrecoverable)", n)
	}
}

func TestClientHonorsRetryAfter(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	start := time.Now()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		io.WriteString(w, `{"status": null}`)
	})

	if _, err := c.Status(context.Background()); err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Fatalf("calls = %d, want 2", n)
	}
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Fatalf("retried after %v, want at least the Retry-After delay", elapsed)
	}
}

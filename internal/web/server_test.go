package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/relay-cycler/internal/logic"
	"github.com/sweeney/relay-cycler/internal/status"
)

func testServer() *Server {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tracker := status.NewTracker(start, status.Config{
		PollMs:      100,
		HeartbeatMs: 500,
		TelemetryMs: 1000,
		ADCMax:      1023,
		RelayPin:    26,
		Broker:      "tcp://localhost:1883",
		HTTPAddr:    ":8080",
	})
	tracker.Update(logic.StateOn, true, 511, 49, logic.DurationRange{Low: 5, High: 16}, 12, 90_000,
		logic.Counts{RelayOn: 3, RelayOff: 2, Heartbeats: 100, Reports: 50})
	return New(":0", tracker)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestIndexHTML(t *testing.T) {
	s := testServer()
	rec := get(t, s, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{"Relay Cycler", "ON", "511", "49", "tcp://localhost:1883"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestIndexJSON(t *testing.T) {
	s := testServer()
	rec := get(t, s, "/index.json")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}

	var parsed status.StatusJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Relay != "ON" {
		t.Errorf("relay = %s, want ON", parsed.Status.Relay)
	}
	if parsed.Status.Reading != 511 {
		t.Errorf("reading = %d, want 511", parsed.Status.Reading)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer()
	rec := get(t, s, "/metrics")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// The Go runtime collectors are always registered.
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("metrics output missing default collectors")
	}
}

func TestNotFound(t *testing.T) {
	s := testServer()
	rec := get(t, s, "/nope")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

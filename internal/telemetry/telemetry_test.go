package telemetry

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/relay-cycler/internal/logic"
)

func TestFormatTransitionPayload(t *testing.T) {
	at := time.Date(2026, 2, 2, 22, 18, 12, 0, time.UTC)
	ev := logic.Event{
		Type:        logic.EventRelayOn,
		Prev:        logic.StateOff,
		Next:        logic.StateOn,
		Reading:     511,
		Range:       logic.DurationRange{Low: 5, High: 16},
		DurationMin: 12,
	}

	payload, err := FormatTransitionPayload(at, ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed TransitionPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Relay.Timestamp != "2026-02-02T22:18:12Z" {
		t.Errorf("unexpected timestamp: %s", parsed.Relay.Timestamp)
	}
	if parsed.Relay.Event != "RELAY_ON" {
		t.Errorf("unexpected event: %s", parsed.Relay.Event)
	}
	if parsed.Relay.State != "ON" {
		t.Errorf("unexpected state: %s", parsed.Relay.State)
	}
	if parsed.Relay.Reading != 511 {
		t.Errorf("unexpected reading: %d", parsed.Relay.Reading)
	}
	if parsed.Relay.RangeMinutesLow != 5 || parsed.Relay.RangeMinutesHigh != 16 {
		t.Errorf("unexpected range: (%d, %d)", parsed.Relay.RangeMinutesLow, parsed.Relay.RangeMinutesHigh)
	}
	if parsed.Relay.DurationMinutes != 12 {
		t.Errorf("unexpected duration: %d", parsed.Relay.DurationMinutes)
	}
}

func TestFormatReportPayload(t *testing.T) {
	at := time.Date(2026, 2, 2, 22, 18, 12, 0, time.UTC)
	ev := logic.Event{
		Type:    logic.EventReport,
		Reading: 1023,
		Percent: 100,
		Range:   logic.DurationRange{Low: 10, High: 25},
	}

	payload, err := FormatReportPayload(at, ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed ReportPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Sensor.Reading != 1023 {
		t.Errorf("unexpected reading: %d", parsed.Sensor.Reading)
	}
	if parsed.Sensor.Percent != 100 {
		t.Errorf("unexpected percent: %d", parsed.Sensor.Percent)
	}
	if parsed.Sensor.RangeMinutesLow != 10 || parsed.Sensor.RangeMinutesHigh != 25 {
		t.Errorf("unexpected range: (%d, %d)", parsed.Sensor.RangeMinutesLow, parsed.Sensor.RangeMinutesHigh)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 2, 2, 22, 18, 12, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed SystemPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.System.Event != "SHUTDOWN" {
		t.Errorf("unexpected event: %s", parsed.System.Event)
	}
	if parsed.System.Reason != "SIGTERM" {
		t.Errorf("unexpected reason: %s", parsed.System.Reason)
	}
}

func TestFormatSystemPayloadRaw(t *testing.T) {
	raw := []byte(`{"status":{"custom":true}}`)
	event := SystemEvent{
		Timestamp:  time.Now(),
		Event:      "STARTUP",
		RawPayload: raw,
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("raw payload not passed through: %s", payload)
	}
}

func TestTransitionLine(t *testing.T) {
	ev := logic.Event{
		Type:        logic.EventRelayOff,
		Prev:        logic.StateOn,
		Next:        logic.StateOff,
		Reading:     0,
		Range:       logic.DurationRange{Low: 1, High: 8},
		DurationMin: 3,
	}

	got := TransitionLine(ev)
	want := "relay ON -> OFF: range 1-8 min, holding 3 min (reading 0)"
	if got != want {
		t.Errorf("TransitionLine = %q, want %q", got, want)
	}
}

func TestTransitionLineScheduled(t *testing.T) {
	ev := logic.Event{
		Type:        logic.EventScheduled,
		Prev:        logic.StateOff,
		Next:        logic.StateOn,
		Reading:     511,
		Range:       logic.DurationRange{Low: 5, High: 16},
		DurationMin: 7,
	}

	got := TransitionLine(ev)
	want := "scheduled first toggle to ON: range 5-16 min, holding 7 min (reading 511)"
	if got != want {
		t.Errorf("TransitionLine = %q, want %q", got, want)
	}
}

func TestReportLine(t *testing.T) {
	ev := logic.Event{
		Type:    logic.EventReport,
		Reading: 511,
		Percent: 49,
		Range:   logic.DurationRange{Low: 5, High: 16},
	}

	got := ReportLine(ev)
	want := "sensor 511 (49%), range 5-16 min"
	if got != want {
		t.Errorf("ReportLine = %q, want %q", got, want)
	}
}

func TestFakePublisher(t *testing.T) {
	f := NewFakePublisher()
	at := time.Now()

	ev := logic.Event{
		Type:        logic.EventRelayOn,
		Next:        logic.StateOn,
		Range:       logic.DurationRange{Low: 1, High: 8},
		DurationMin: 4,
	}
	if err := f.PublishTransition(at, ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.PublishReport(at, logic.Event{Type: logic.EventReport, Reading: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.PublishSystem(SystemEvent{Timestamp: at, Event: "STARTUP"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Transitions) != 1 || len(f.Reports) != 1 || len(f.SystemEvents) != 1 {
		t.Fatalf("recorded %d/%d/%d events, want 1/1/1",
			len(f.Transitions), len(f.Reports), len(f.SystemEvents))
	}
	if len(f.Payloads) != 3 {
		t.Fatalf("recorded %d payloads, want 3", len(f.Payloads))
	}
}

func TestFakePublisherError(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("simulated error")

	if err := f.PublishTransition(time.Now(), logic.Event{}); err == nil {
		t.Error("expected transition publish error")
	}
	if err := f.PublishReport(time.Now(), logic.Event{}); err == nil {
		t.Error("expected report publish error")
	}
	if len(f.Transitions) != 0 || len(f.Reports) != 0 {
		t.Error("failed publishes should not be recorded")
	}
}

func TestFakePublisherReset(t *testing.T) {
	f := NewFakePublisher()
	f.PublishTransition(time.Now(), logic.Event{})
	f.Connected = true
	f.Close()

	f.Reset()

	if len(f.Transitions) != 0 || f.Closed || f.Connected {
		t.Error("Reset did not clear state")
	}
}

// Package telemetry publishes relay transitions and sensor reports over MQTT,
// with abstraction for testing. It also holds the human-readable line
// formatters used for the local text log.
package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sweeney/relay-cycler/internal/logic"
)

// TopicEvents is the MQTT topic for relay transition events.
const TopicEvents = "home/relay-cycler/events"

// TopicTelemetry is the MQTT topic for periodic sensor reports.
const TopicTelemetry = "home/relay-cycler/telemetry"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/relay-cycler/system"

// Publisher publishes cycler events to MQTT.
type Publisher interface {
	// PublishTransition sends a relay transition (or the initial schedule
	// record) to the broker. Returns error if publishing fails (should not
	// crash the process).
	PublishTransition(at time.Time, ev logic.Event) error

	// PublishReport sends a periodic sensor report to the broker.
	PublishReport(at time.Time, ev logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// TransitionPayload is the MQTT message payload for relay events.
type TransitionPayload struct {
	Relay TransitionInner `json:"relay"`
}

// TransitionInner contains the relay event details.
type TransitionInner struct {
	Timestamp        string `json:"timestamp"`
	Event            string `json:"event"`
	State            string `json:"state"`
	Reading          int    `json:"reading"`
	RangeMinutesLow  int    `json:"range_minutes_low"`
	RangeMinutesHigh int    `json:"range_minutes_high"`
	DurationMinutes  int    `json:"duration_minutes"`
}

// FormatTransitionPayload creates the JSON payload for a relay event.
func FormatTransitionPayload(at time.Time, ev logic.Event) ([]byte, error) {
	payload := TransitionPayload{
		Relay: TransitionInner{
			Timestamp:        at.UTC().Format(time.RFC3339),
			Event:            string(ev.Type),
			State:            string(ev.Next),
			Reading:          ev.Reading,
			RangeMinutesLow:  ev.Range.Low,
			RangeMinutesHigh: ev.Range.High,
			DurationMinutes:  ev.DurationMin,
		},
	}
	return json.Marshal(payload)
}

// ReportPayload is the MQTT message payload for sensor reports.
type ReportPayload struct {
	Sensor ReportInner `json:"sensor"`
}

// ReportInner contains the sensor report details.
type ReportInner struct {
	Timestamp        string `json:"timestamp"`
	Reading          int    `json:"reading"`
	Percent          int    `json:"percent"`
	RangeMinutesLow  int    `json:"range_minutes_low"`
	RangeMinutesHigh int    `json:"range_minutes_high"`
}

// FormatReportPayload creates the JSON payload for a sensor report.
func FormatReportPayload(at time.Time, ev logic.Event) ([]byte, error) {
	payload := ReportPayload{
		Sensor: ReportInner{
			Timestamp:        at.UTC().Format(time.RFC3339),
			Reading:          ev.Reading,
			Percent:          ev.Percent,
			RangeMinutesLow:  ev.Range.Low,
			RangeMinutesHigh: ev.Range.High,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status
// snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// TransitionLine renders a relay event as one human-readable log line.
func TransitionLine(ev logic.Event) string {
	if ev.Type == logic.EventScheduled {
		return fmt.Sprintf("scheduled first toggle to %s: range %d-%d min, holding %d min (reading %d)",
			ev.Next, ev.Range.Low, ev.Range.High, ev.DurationMin, ev.Reading)
	}
	return fmt.Sprintf("relay %s -> %s: range %d-%d min, holding %d min (reading %d)",
		ev.Prev, ev.Next, ev.Range.Low, ev.Range.High, ev.DurationMin, ev.Reading)
}

// ReportLine renders a sensor report as one human-readable log line.
func ReportLine(ev logic.Event) string {
	return fmt.Sprintf("sensor %d (%d%%), range %d-%d min",
		ev.Reading, ev.Percent, ev.Range.Low, ev.Range.High)
}

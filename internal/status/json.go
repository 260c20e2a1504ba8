package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Relay         string     `json:"relay"`
	Heartbeat     bool       `json:"heartbeat"`
	Reading       int        `json:"reading"`
	Percent       int        `json:"percent"`
	Range         RangeJSON  `json:"range_minutes"`
	DurationMin   int        `json:"hold_minutes"`
	NextToggleSec int64      `json:"next_toggle_seconds"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// RangeJSON is the JSON representation of a duration range.
type RangeJSON struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	RelayOn    int `json:"relay_on"`
	RelayOff   int `json:"relay_off"`
	Heartbeats int `json:"heartbeats"`
	Reports    int `json:"reports"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs       int64  `json:"poll_ms"`
	HeartbeatMs  int64  `json:"heartbeat_ms"`
	TelemetryMs  int64  `json:"telemetry_ms"`
	ADCMax       int    `json:"adc_max"`
	RelayPin     int    `json:"relay_pin"`
	StatePin     int    `json:"state_pin"`
	HeartbeatPin int    `json:"heartbeat_pin"`
	Broker       string `json:"broker"`
	HTTPAddr     string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	relay := string(snap.Relay)
	if relay == "" {
		relay = "UNKNOWN"
	}

	return StatusInner{
		Relay:         relay,
		Heartbeat:     snap.Heartbeat,
		Reading:       snap.Reading,
		Percent:       snap.Percent,
		Range:         RangeJSON{Low: snap.Range.Low, High: snap.Range.High},
		DurationMin:   snap.DurationMin,
		NextToggleSec: snap.NextToggleMs / 1000,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			RelayOn:    snap.Counts.RelayOn,
			RelayOff:   snap.Counts.RelayOff,
			Heartbeats: snap.Counts.Heartbeats,
			Reports:    snap.Counts.Reports,
		},
		Config: ConfigJSON{
			PollMs:       snap.Config.PollMs,
			HeartbeatMs:  snap.Config.HeartbeatMs,
			TelemetryMs:  snap.Config.TelemetryMs,
			ADCMax:       snap.Config.ADCMax,
			RelayPin:     snap.Config.RelayPin,
			StatePin:     snap.Config.StatePin,
			HeartbeatPin: snap.Config.HeartbeatPin,
			Broker:       snap.Config.Broker,
			HTTPAddr:     snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}

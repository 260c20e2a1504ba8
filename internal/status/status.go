// Package status provides a thread-safe status tracker for the relay-cycler
// daemon. It is read by the HTTP handlers and used to build the system-event
// payloads published at startup and shutdown.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/relay-cycler/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs       int64
	HeartbeatMs  int64
	TelemetryMs  int64
	ADCMax       int
	RelayPin     int
	StatePin     int
	HeartbeatPin int
	Broker       string
	HTTPAddr     string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Relay         logic.State
	Heartbeat     bool
	Reading       int
	Percent       int
	Range         logic.DurationRange
	DurationMin   int
	NextToggleMs  int64
	Counts        logic.Counts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex. The loop writes it
// once per iteration; the HTTP handlers read it.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the cycler-derived fields. Called from the loop on every tick.
func (t *Tracker) Update(relay logic.State, heartbeat bool, reading, percent int, r logic.DurationRange, durationMin int, nextToggleMs int64, counts logic.Counts) {
	t.mu.Lock()
	t.snap.Relay = relay
	t.snap.Heartbeat = heartbeat
	t.snap.Reading = reading
	t.snap.Percent = percent
	t.snap.Range = r
	t.snap.DurationMin = durationMin
	t.snap.NextToggleMs = nextToggleMs
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}

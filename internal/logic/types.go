// Package logic contains pure scheduling and mapping logic for the relay cycler.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via Millis parameters.
package logic

// Millis is a sample of the monotonic millisecond clock. It wraps at 32 bits,
// matching the width of the hardware counter it models. Ordering across a wrap
// is only valid via Due's signed-difference comparison.
type Millis uint32

// MillisPerMinute converts whole-minute durations to clock units.
const MillisPerMinute Millis = 60_000

// State represents the logical state of the relay.
type State string

const (
	StateOn  State = "ON"
	StateOff State = "OFF"
)

// EventType identifies a record produced by the cycler.
type EventType string

const (
	// EventScheduled is emitted once, at construction, when the first toggle
	// is scheduled. No state change has happened yet.
	EventScheduled EventType = "SCHEDULED"
	EventRelayOn   EventType = "RELAY_ON"
	EventRelayOff  EventType = "RELAY_OFF"
	EventHeartbeat EventType = "HEARTBEAT"
	EventReport    EventType = "REPORT"
)

// DurationRange is a pair of whole-minute bounds with Low <= High.
type DurationRange struct {
	Low  int
	High int
}

// Event is a record of one due-check firing (or the initial scheduling).
// Fields beyond Type and At are populated per event type:
// relay transitions and SCHEDULED carry Prev/Next/Reading/Range/DurationMin,
// HEARTBEAT carries IndicatorOn, REPORT carries Reading/Percent/Range.
type Event struct {
	Type EventType
	At   Millis

	Prev        State
	Next        State
	Reading     int
	Range       DurationRange
	DurationMin int

	IndicatorOn bool

	Percent int
}

// Input is one loop iteration's view of the world: the shared clock sample
// and the sensor value read in the same iteration.
type Input struct {
	Now     Millis
	Reading int
}

// Counts tracks how many times each task has fired since startup.
type Counts struct {
	RelayOn    int
	RelayOff   int
	Heartbeats int
	Reports    int
}

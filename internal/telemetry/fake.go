package telemetry

import (
	"time"

	"github.com/sweeney/relay-cycler/internal/logic"
)

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	// Transitions contains all relay events that were published.
	Transitions []logic.Event

	// Reports contains all sensor reports that were published.
	Reports []logic.Event

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// Payloads contains every JSON payload that was published, in order.
	Payloads [][]byte

	// PublishError, if set, will be returned by the Publish methods.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishTransition records the relay event.
func (f *FakePublisher) PublishTransition(at time.Time, ev logic.Event) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Transitions = append(f.Transitions, ev)

	payload, err := FormatTransitionPayload(at, ev)
	if err != nil {
		return err
	}
	f.Payloads = append(f.Payloads, payload)
	return nil
}

// PublishReport records the sensor report.
func (f *FakePublisher) PublishReport(at time.Time, ev logic.Event) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Reports = append(f.Reports, ev)

	payload, err := FormatReportPayload(at, ev)
	if err != nil {
		return err
	}
	f.Payloads = append(f.Payloads, payload)
	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.Payloads = append(f.Payloads, payload)
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded events.
func (f *FakePublisher) Reset() {
	f.Transitions = nil
	f.Reports = nil
	f.SystemEvents = nil
	f.Payloads = nil
	f.PublishError = nil
	f.Closed = false
	f.Connected = false
}

//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// Board is not available on non-Linux platforms.
type Board struct{}

// OutputPin describes one output line to request.
type OutputPin struct {
	Pin       int
	ActiveLow bool
}

// NewBoard returns an error on non-Linux platforms.
func NewBoard(relay, state, heartbeat OutputPin) (*Board, error) {
	return nil, errUnsupported
}

func (b *Board) Relay() Output     { return nil }
func (b *Board) State() Output     { return nil }
func (b *Board) Heartbeat() Output { return nil }
func (b *Board) Close() error      { return nil }

// RealAnalog is not available on non-Linux platforms.
type RealAnalog struct{}

// NewRealAnalog returns an error on non-Linux platforms.
func NewRealAnalog(device, channel int) (*RealAnalog, error) {
	return nil, errUnsupported
}

func (r *RealAnalog) Read() (int, error) { return 0, errUnsupported }
func (r *RealAnalog) Close() error       { return nil }

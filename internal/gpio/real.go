//go:build linux

package gpio

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/warthog618/go-gpiocdev"
)

// RealOutput drives a GPIO line on actual hardware via the Linux GPIO
// character device.
type RealOutput struct {
	line      *gpiocdev.Line
	activeLow bool
}

// Board owns the GPIO chip and the three output lines.
type Board struct {
	chip      *gpiocdev.Chip
	relay     *RealOutput
	state     *RealOutput
	heartbeat *RealOutput
}

// OutputPin describes one output line to request.
type OutputPin struct {
	Pin       int
	ActiveLow bool
}

// NewBoard opens the GPIO chip and requests the relay, state-indicator and
// heartbeat-indicator lines as outputs, each initialized to its logical OFF
// level.
func NewBoard(relay, state, heartbeat OutputPin) (*Board, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	b := &Board{chip: chip}

	b.relay, err = requestOutput(chip, relay)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request relay pin %d: %w", relay.Pin, err)
	}
	b.state, err = requestOutput(chip, state)
	if err != nil {
		b.relay.Close()
		chip.Close()
		return nil, fmt.Errorf("request state pin %d: %w", state.Pin, err)
	}
	b.heartbeat, err = requestOutput(chip, heartbeat)
	if err != nil {
		b.state.Close()
		b.relay.Close()
		chip.Close()
		return nil, fmt.Errorf("request heartbeat pin %d: %w", heartbeat.Pin, err)
	}

	return b, nil
}

func requestOutput(chip *gpiocdev.Chip, p OutputPin) (*RealOutput, error) {
	line, err := chip.RequestLine(p.Pin, gpiocdev.AsOutput(level(false, p.ActiveLow)))
	if err != nil {
		return nil, err
	}
	return &RealOutput{line: line, activeLow: p.ActiveLow}, nil
}

// Relay returns the relay output.
func (b *Board) Relay() Output { return b.relay }

// State returns the state-indicator output.
func (b *Board) State() Output { return b.state }

// Heartbeat returns the heartbeat-indicator output.
func (b *Board) Heartbeat() Output { return b.heartbeat }

// Close drives every output to its logical OFF level, reconfigures the lines
// back to inputs (matching Pi boot defaults), and releases the chip. Leaving
// the relay de-energized on exit matters more than reporting a partial close,
// so all errors are collected.
func (b *Board) Close() error {
	var errs []error
	for _, o := range []*RealOutput{b.relay, b.state, b.heartbeat} {
		if o == nil {
			continue
		}
		if err := o.Set(false); err != nil {
			errs = append(errs, err)
		}
		if err := o.line.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure: %w", err))
		}
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// Set drives the line to the given logical state, applying polarity.
func (o *RealOutput) Set(on bool) error {
	if err := o.line.SetValue(level(on, o.activeLow)); err != nil {
		return fmt.Errorf("set line: %w", err)
	}
	return nil
}

// Close releases the line.
func (o *RealOutput) Close() error {
	return o.line.Close()
}

// RealAnalog reads an ADC channel through the Linux IIO sysfs interface
// (in_voltageN_raw). There is no character-device API for IIO raw reads, so
// this goes through the filesystem.
type RealAnalog struct {
	path string
}

// NewRealAnalog creates a reader for the given IIO device and channel. Fails
// immediately if the attribute cannot be read, so a missing ADC surfaces at
// startup instead of on the first loop iteration.
func NewRealAnalog(device, channel int) (*RealAnalog, error) {
	r := &RealAnalog{
		path: fmt.Sprintf("/sys/bus/iio/devices/iio:device%d/in_voltage%d_raw", device, channel),
	}
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("probe adc: %w", err)
	}
	return r, nil
}

// Read returns one raw ADC sample.
func (r *RealAnalog) Read() (int, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", r.path, err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse adc value %q: %w", strings.TrimSpace(string(data)), err)
	}
	return v, nil
}

// Close releases ADC resources (none for sysfs).
func (r *RealAnalog) Close() error {
	return nil
}

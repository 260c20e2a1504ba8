// Package gpio drives the relay and indicator outputs and reads the analog
// sensor, with hardware abstraction. The real implementation uses the Linux
// GPIO character device for outputs and the IIO sysfs interface for the ADC.
// The fake implementations allow testing without hardware.
package gpio

// Output drives a single digital output line. Set takes the logical level;
// the implementation applies the configured polarity (active-high or
// active-low) underneath.
type Output interface {
	// Set drives the line to the given logical state.
	Set(on bool) error

	// Close releases the line.
	Close() error
}

// AnalogReader reads the analog sensor.
type AnalogReader interface {
	// Read returns one raw ADC sample. Each call issues a fresh hardware
	// read; values are not cached. The result is not clamped — callers
	// clamp into [0, ADCMax].
	Read() (int, error)

	// Close releases ADC resources.
	Close() error
}

// Pin defaults (BCM numbering) and ADC full scale.
const (
	DefaultPinRelay     = 26 // relay driver
	DefaultPinState     = 16 // relay state indicator
	DefaultPinHeartbeat = 13 // heartbeat indicator

	DefaultADCDevice  = 0 // iio:device0
	DefaultADCChannel = 0
	DefaultADCMax     = 1023 // 10-bit converter
)

// level maps a logical state to a line value under the given polarity.
func level(on, activeLow bool) int {
	if on != activeLow {
		return 1
	}
	return 0
}

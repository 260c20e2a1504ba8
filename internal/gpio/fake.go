package gpio

import "errors"

// FakeOutput is a test double that records every logical level written.
type FakeOutput struct {
	// Levels contains every value passed to Set, in order.
	Levels []bool

	// Closed tracks if Close was called.
	Closed bool

	// SetError, if set, will be returned by Set.
	SetError error
}

// NewFakeOutput creates a FakeOutput.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

// Set records the logical level.
func (f *FakeOutput) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Levels = append(f.Levels, on)
	return nil
}

// Last returns the most recently written level, or false if none.
func (f *FakeOutput) Last() bool {
	if len(f.Levels) == 0 {
		return false
	}
	return f.Levels[len(f.Levels)-1]
}

// Close marks the output as closed.
func (f *FakeOutput) Close() error {
	f.Closed = true
	return nil
}

// FakeAnalog is a test double that returns scripted ADC samples.
type FakeAnalog struct {
	// Samples contains scripted raw values. Each call to Read() consumes
	// the next sample; when exhausted, the last sample repeats.
	Samples []int

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeAnalog creates a FakeAnalog with the given samples.
func NewFakeAnalog(samples []int) *FakeAnalog {
	return &FakeAnalog{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeAnalog) Read() (int, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}
	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return sample, nil
}

// Close marks the reader as closed.
func (f *FakeAnalog) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeAnalog) Reset() {
	f.index = 0
	f.Closed = false
}

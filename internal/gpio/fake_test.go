package gpio

import (
	"errors"
	"testing"
)

func TestFakeOutputRecordsLevels(t *testing.T) {
	f := NewFakeOutput()

	if f.Last() != false {
		t.Error("Last() on fresh output should be false")
	}

	for _, on := range []bool{true, false, true, true} {
		if err := f.Set(on); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want := []bool{true, false, true, true}
	if len(f.Levels) != len(want) {
		t.Fatalf("recorded %d levels, want %d", len(f.Levels), len(want))
	}
	for i, w := range want {
		if f.Levels[i] != w {
			t.Errorf("level %d: got %v, want %v", i, f.Levels[i], w)
		}
	}
	if f.Last() != true {
		t.Error("Last() should be true")
	}
}

func TestFakeOutputError(t *testing.T) {
	f := NewFakeOutput()
	f.SetError = errors.New("simulated error")

	if err := f.Set(true); err == nil {
		t.Error("expected error to be returned")
	}
	if len(f.Levels) != 0 {
		t.Errorf("failed Set should not record a level, got %d", len(f.Levels))
	}
}

func TestFakeOutputClose(t *testing.T) {
	f := NewFakeOutput()
	if f.Closed {
		t.Error("should not be closed initially")
	}
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}

func TestFakeAnalogRead(t *testing.T) {
	f := NewFakeAnalog([]int{0, 511, 1023})

	for i, want := range []int{0, 511, 1023, 1023} {
		got, err := f.Read()
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if got != want {
			t.Errorf("read %d: got %d, want %d", i, got, want)
		}
	}
}

func TestFakeAnalogNoSamples(t *testing.T) {
	f := NewFakeAnalog(nil)
	if _, err := f.Read(); err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakeAnalogError(t *testing.T) {
	f := NewFakeAnalog([]int{100})
	f.ReadError = errors.New("simulated error")

	if _, err := f.Read(); err == nil {
		t.Error("expected error to be returned")
	}
}

func TestFakeAnalogReset(t *testing.T) {
	f := NewFakeAnalog([]int{1, 2})
	f.Read()
	f.Reset()

	got, _ := f.Read()
	if got != 1 {
		t.Errorf("after reset: got %d, want 1", got)
	}
}

func TestLevelPolarity(t *testing.T) {
	tests := []struct {
		on        bool
		activeLow bool
		want      int
	}{
		{true, false, 1},
		{false, false, 0},
		{true, true, 0},
		{false, true, 1},
	}

	for _, tt := range tests {
		if got := level(tt.on, tt.activeLow); got != tt.want {
			t.Errorf("level(on=%v, activeLow=%v) = %d, want %d", tt.on, tt.activeLow, got, tt.want)
		}
	}
}

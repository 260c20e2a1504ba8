package logic

// Interpolation endpoints, in whole minutes. At reading 0 the range is
// (LowAtZero, HighAtZero); at full scale it is (LowAtMax, HighAtMax).
const (
	LowAtZero  = 1
	LowAtMax   = 10
	HighAtZero = 8
	HighAtMax  = 25
)

// Clamp forces a raw sensor value into [0, adcMax]. Out-of-range values are
// silently corrected, never reported.
func Clamp(reading, adcMax int) int {
	if reading < 0 {
		return 0
	}
	if reading > adcMax {
		return adcMax
	}
	return reading
}

// MapRange converts a sensor reading into a duration range via two
// independent integer linear interpolations over [0, adcMax]. If rounding
// would invert the pair, High is raised to Low.
func MapRange(reading, adcMax int) DurationRange {
	reading = Clamp(reading, adcMax)
	r := DurationRange{
		Low:  remap(reading, adcMax, LowAtZero, LowAtMax),
		High: remap(reading, adcMax, HighAtZero, HighAtMax),
	}
	if r.High < r.Low {
		r.High = r.Low
	}
	return r
}

// Percent converts a reading into an integer percentage of full scale.
func Percent(reading, adcMax int) int {
	return Clamp(reading, adcMax) * 100 / adcMax
}

// remap is the standard integer (floor) range-remap over [0, inMax].
func remap(x, inMax, outMin, outMax int) int {
	return outMin + x*(outMax-outMin)/inMax
}

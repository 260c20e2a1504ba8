package logic

// Due reports whether deadline has been reached at now.
//
// The wrapping difference now-deadline is reinterpreted as a signed value of
// the clock's width: any deadline up to half the clock's range in the past
// reads as due, and any deadline up to half the range in the future reads as
// not due. This stays correct across exactly one wrap of the counter between
// scheduling and firing, which is the only distance that can occur here since
// every task period is far smaller than the ~49.7 day wrap period.
//
// Pure and total: no error conditions.
func Due(now, deadline Millis) bool {
	return int32(now-deadline) >= 0
}

// Remaining returns the time until deadline, or zero if it has passed.
func Remaining(now, deadline Millis) Millis {
	d := int32(deadline - now)
	if d <= 0 {
		return 0
	}
	return Millis(d)
}

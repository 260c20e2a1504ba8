package logic

// Config holds the cycler's fixed parameters. Periods are immutable for the
// process lifetime.
type Config struct {
	ADCMax          int
	HeartbeatPeriod Millis
	TelemetryPeriod Millis
}

// Cycler owns the relay state and the three task deadlines, and decides on
// each tick which tasks are due. All mutation happens inside Tick (and New),
// from a single goroutine; there is nothing to lock.
type Cycler struct {
	cfg    Config
	picker *Picker

	state       State
	heartbeatOn bool

	relayDeadline     Millis
	heartbeatDeadline Millis
	telemetryDeadline Millis

	lastRange    DurationRange
	lastDuration int
	counts       Counts
}

// New creates a Cycler with the relay OFF and all three deadlines scheduled
// from start. The first toggle is scheduled immediately, using the supplied
// sensor reading, and the returned event records the intent (next state ON)
// so the log is meaningful from the start. The actual flip happens strictly
// inside Tick when the deadline fires, never here.
func New(cfg Config, picker *Picker, start Millis, reading int) (*Cycler, Event) {
	c := &Cycler{
		cfg:               cfg,
		picker:            picker,
		state:             StateOff,
		heartbeatDeadline: start + cfg.HeartbeatPeriod,
		telemetryDeadline: start + cfg.TelemetryPeriod,
	}
	ev := c.scheduleToggle(start, reading, StateOn)
	ev.Type = EventScheduled
	return c, ev
}

// Tick evaluates the three due-checks against one clock sample, in a fixed
// order: heartbeat, relay, telemetry. Each check fires at most once per call
// and reschedules only its own deadline. Returned events are in firing order.
func (c *Cycler) Tick(in Input) []Event {
	var events []Event

	if Due(in.Now, c.heartbeatDeadline) {
		c.heartbeatOn = !c.heartbeatOn
		c.heartbeatDeadline = in.Now + c.cfg.HeartbeatPeriod
		c.counts.Heartbeats++
		events = append(events, Event{
			Type:        EventHeartbeat,
			At:          in.Now,
			IndicatorOn: c.heartbeatOn,
		})
	}

	if Due(in.Now, c.relayDeadline) {
		prev := c.state
		next := StateOn
		if prev == StateOn {
			next = StateOff
		}
		c.state = next
		ev := c.scheduleToggle(in.Now, in.Reading, next)
		ev.Prev = prev
		if next == StateOn {
			ev.Type = EventRelayOn
			c.counts.RelayOn++
		} else {
			ev.Type = EventRelayOff
			c.counts.RelayOff++
		}
		events = append(events, ev)
	}

	if Due(in.Now, c.telemetryDeadline) {
		c.telemetryDeadline = in.Now + c.cfg.TelemetryPeriod
		c.counts.Reports++
		reading := Clamp(in.Reading, c.cfg.ADCMax)
		events = append(events, Event{
			Type:    EventReport,
			At:      in.Now,
			Reading: reading,
			Percent: Percent(reading, c.cfg.ADCMax),
			Range:   MapRange(reading, c.cfg.ADCMax),
		})
	}

	return events
}

// scheduleToggle maps the reading to a range, draws a hold duration, and sets
// the relay deadline. The returned event carries the chosen range and
// duration; Type and Prev are filled in by the caller.
func (c *Cycler) scheduleToggle(now Millis, reading int, next State) Event {
	reading = Clamp(reading, c.cfg.ADCMax)
	r := MapRange(reading, c.cfg.ADCMax)
	minutes := c.picker.Pick(r)

	c.lastRange = r
	c.lastDuration = minutes
	c.relayDeadline = now + Millis(minutes)*MillisPerMinute

	return Event{
		At:          now,
		Next:        next,
		Reading:     reading,
		Range:       r,
		DurationMin: minutes,
	}
}

// State returns the current relay state.
func (c *Cycler) State() State {
	return c.state
}

// HeartbeatOn returns the current heartbeat indicator level.
func (c *Cycler) HeartbeatOn() bool {
	return c.heartbeatOn
}

// LastRange returns the range the current hold duration was drawn from.
func (c *Cycler) LastRange() DurationRange {
	return c.lastRange
}

// LastDuration returns the current hold duration in minutes.
func (c *Cycler) LastDuration() int {
	return c.lastDuration
}

// NextToggleIn returns the time until the relay's deadline, zero if passed.
func (c *Cycler) NextToggleIn(now Millis) Millis {
	return Remaining(now, c.relayDeadline)
}

// CountsSnapshot returns a copy of the event counts.
func (c *Cycler) CountsSnapshot() Counts {
	return c.counts
}

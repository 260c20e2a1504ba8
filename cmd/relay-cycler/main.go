// Command relay-cycler toggles a relay on a sensor-derived random schedule,
// blinks a heartbeat indicator, and publishes telemetry to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/relay-cycler/internal/gpio"
	"github.com/sweeney/relay-cycler/internal/logic"
	"github.com/sweeney/relay-cycler/internal/metrics"
	"github.com/sweeney/relay-cycler/internal/status"
	"github.com/sweeney/relay-cycler/internal/telemetry"
	"github.com/sweeney/relay-cycler/internal/web"
)

type options struct {
	poll            time.Duration
	heartbeatPeriod time.Duration
	telemetryPeriod time.Duration

	relayPin           int
	relayActiveLow     bool
	statePin           int
	stateActiveLow     bool
	heartbeatPin       int
	heartbeatActiveLow bool

	adcDevice      int
	adcChannel     int
	entropyChannel int
	adcMax         int

	broker   string
	httpAddr string

	readSensor bool
}

func main() {
	var opts options
	flag.DurationVar(&opts.poll, "poll", 100*time.Millisecond, "Scheduler polling interval")
	flag.DurationVar(&opts.heartbeatPeriod, "heartbeat-period", 500*time.Millisecond, "Heartbeat indicator toggle period")
	flag.DurationVar(&opts.telemetryPeriod, "telemetry-period", time.Second, "Sensor telemetry report period")
	flag.IntVar(&opts.relayPin, "relay-pin", gpio.DefaultPinRelay, "BCM pin number for the relay driver")
	flag.BoolVar(&opts.relayActiveLow, "relay-active-low", true, "Relay module is driven active-low")
	flag.IntVar(&opts.statePin, "state-pin", gpio.DefaultPinState, "BCM pin number for the relay state indicator")
	flag.BoolVar(&opts.stateActiveLow, "state-active-low", false, "State indicator is wired active-low")
	flag.IntVar(&opts.heartbeatPin, "heartbeat-pin", gpio.DefaultPinHeartbeat, "BCM pin number for the heartbeat indicator")
	flag.BoolVar(&opts.heartbeatActiveLow, "heartbeat-active-low", false, "Heartbeat indicator is wired active-low")
	flag.IntVar(&opts.adcDevice, "adc-device", gpio.DefaultADCDevice, "IIO device index for the ADC")
	flag.IntVar(&opts.adcChannel, "adc-channel", gpio.DefaultADCChannel, "ADC channel for the sensor")
	flag.IntVar(&opts.entropyChannel, "entropy-channel", 1, "Unconnected ADC channel sampled once for the random seed")
	flag.IntVar(&opts.adcMax, "adc-max", gpio.DefaultADCMax, "ADC full-scale value (1023 for 10-bit, 4095 for 12-bit)")
	flag.StringVar(&opts.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	flag.StringVar(&opts.httpAddr, "http", ":80", "HTTP status address (empty to disable)")
	flag.BoolVar(&opts.readSensor, "read-sensor", false, "Print the current sensor reading and exit")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(opts options) error {
	// Initialize ADC
	analog, err := gpio.NewRealAnalog(opts.adcDevice, opts.adcChannel)
	if err != nil {
		return fmt.Errorf("init adc: %w", err)
	}
	defer analog.Close()

	// Read-sensor mode
	if opts.readSensor {
		raw, err := analog.Read()
		if err != nil {
			return fmt.Errorf("read adc: %w", err)
		}
		reading := logic.Clamp(raw, opts.adcMax)
		r := logic.MapRange(reading, opts.adcMax)
		fmt.Printf("reading: %d (%d%%), range: %d-%d min\n",
			reading, logic.Percent(reading, opts.adcMax), r.Low, r.High)
		return nil
	}

	// Initialize GPIO outputs
	board, err := gpio.NewBoard(
		gpio.OutputPin{Pin: opts.relayPin, ActiveLow: opts.relayActiveLow},
		gpio.OutputPin{Pin: opts.statePin, ActiveLow: opts.stateActiveLow},
		gpio.OutputPin{Pin: opts.heartbeatPin, ActiveLow: opts.heartbeatActiveLow},
	)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer board.Close()

	// Seed the duration picker once, before anything draws from it.
	picker := logic.NewPicker(entropySeed(opts.adcDevice, opts.entropyChannel))

	// Initialize MQTT
	publisher, err := telemetry.NewRealPublisher(opts.broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:       opts.poll.Milliseconds(),
		HeartbeatMs:  opts.heartbeatPeriod.Milliseconds(),
		TelemetryMs:  opts.telemetryPeriod.Milliseconds(),
		ADCMax:       opts.adcMax,
		RelayPin:     opts.relayPin,
		StatePin:     opts.statePin,
		HeartbeatPin: opts.heartbeatPin,
		Broker:       opts.broker,
		HTTPAddr:     opts.httpAddr,
	})

	// Startup banner
	atZero := logic.MapRange(0, opts.adcMax)
	atMax := logic.MapRange(opts.adcMax, opts.adcMax)
	log.Printf("hold range at reading 0: %d-%d min; at reading %d: %d-%d min",
		atZero.Low, atZero.High, opts.adcMax, atMax.Low, atMax.High)
	log.Printf("relay pin %d (%s); state indicator pin %d (%s), lit while relay is ON",
		opts.relayPin, polarity(opts.relayActiveLow), opts.statePin, polarity(opts.stateActiveLow))
	log.Printf("heartbeat pin %d (%s) every %v; telemetry every %v",
		opts.heartbeatPin, polarity(opts.heartbeatActiveLow), opts.heartbeatPeriod, opts.telemetryPeriod)

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := telemetry.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if opts.httpAddr != "" {
		srv := web.New(opts.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", opts.httpAddr)
	}

	cfg := logic.Config{
		ADCMax:          opts.adcMax,
		HeartbeatPeriod: logic.Millis(opts.heartbeatPeriod.Milliseconds()),
		TelemetryPeriod: logic.Millis(opts.telemetryPeriod.Milliseconds()),
	}

	ticker := time.NewTicker(opts.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(board.Relay(), board.State(), board.Heartbeat(), analog,
		publisher, publisher, tracker, cfg, picker, time.Now, ticker.C, sigCh)
}

func runLoop(relayOut, stateOut, heartbeatOut gpio.Output, analog gpio.AnalogReader,
	publisher telemetry.Publisher, mqttStatus telemetry.ConnectionStatus, tracker *status.Tracker,
	cfg logic.Config, picker *logic.Picker, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {

	start := now()
	millis := func(t time.Time) logic.Millis {
		return logic.Millis(uint32(t.Sub(start).Milliseconds()))
	}

	// First scheduling call: announces the intended first transition (to ON)
	// but the flip itself only happens inside the loop's due-check.
	reading, err := analog.Read()
	if err != nil {
		log.Printf("adc read error: %v", err)
		reading = 0
	}
	cyc, ev := logic.New(cfg, picker, millis(start), reading)
	log.Printf("%s", telemetry.TransitionLine(ev))
	if err := publisher.PublishTransition(start, ev); err != nil {
		log.Printf("publish error: %v", err)
	}
	metrics.HoldDuration.Set(float64(ev.DurationMin))

	// Drive everything to its OFF level before the first tick.
	if err := relayOut.Set(false); err != nil {
		log.Printf("relay pin write error: %v", err)
	}
	if err := stateOut.Set(false); err != nil {
		log.Printf("state pin write error: %v", err)
	}
	if err := heartbeatOut.Set(false); err != nil {
		log.Printf("heartbeat pin write error: %v", err)
	}

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := telemetry.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				event.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			nowMs := millis(t)

			raw, err := analog.Read()
			if err != nil {
				log.Printf("adc read error: %v", err)
				continue
			}

			for _, ev := range cyc.Tick(logic.Input{Now: nowMs, Reading: raw}) {
				switch ev.Type {
				case logic.EventHeartbeat:
					if err := heartbeatOut.Set(ev.IndicatorOn); err != nil {
						log.Printf("heartbeat pin write error: %v", err)
					}
					metrics.HeartbeatToggles.Inc()

				case logic.EventRelayOn, logic.EventRelayOff:
					on := ev.Next == logic.StateOn
					if err := relayOut.Set(on); err != nil {
						log.Printf("relay pin write error: %v", err)
						// Don't crash on write failure
					}
					if err := stateOut.Set(on); err != nil {
						log.Printf("state pin write error: %v", err)
					}
					log.Printf("%s", telemetry.TransitionLine(ev))
					if err := publisher.PublishTransition(t, ev); err != nil {
						log.Printf("publish error: %v", err)
					}
					metrics.RelayTransitions.WithLabelValues(string(ev.Next)).Inc()
					metrics.HoldDuration.Set(float64(ev.DurationMin))

				case logic.EventReport:
					log.Printf("%s", telemetry.ReportLine(ev))
					if err := publisher.PublishReport(t, ev); err != nil {
						log.Printf("publish error: %v", err)
					}
					metrics.TelemetryReports.Inc()
					metrics.SensorReading.Set(float64(ev.Reading))
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				clamped := logic.Clamp(raw, cfg.ADCMax)
				tracker.Update(cyc.State(), cyc.HeartbeatOn(), clamped, logic.Percent(clamped, cfg.ADCMax),
					cyc.LastRange(), cyc.LastDuration(), int64(cyc.NextToggleIn(nowMs)), cyc.CountsSnapshot())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

// entropySeed mixes the wall clock with one sample from an otherwise-unused
// ADC channel, so the random sequence differs across restarts even on hosts
// with poor boot-time entropy.
func entropySeed(device, channel int) int64 {
	seed := time.Now().UnixNano()
	noise, err := gpio.NewRealAnalog(device, channel)
	if err != nil {
		log.Printf("entropy channel unavailable, seeding from clock only: %v", err)
		return seed
	}
	defer noise.Close()
	sample, err := noise.Read()
	if err != nil {
		log.Printf("entropy sample failed, seeding from clock only: %v", err)
		return seed
	}
	return seed ^ int64(sample)<<32
}

func polarity(activeLow bool) string {
	if activeLow {
		return "active-low"
	}
	return "active-high"
}

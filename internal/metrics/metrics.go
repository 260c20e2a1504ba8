// Package metrics exposes Prometheus instrumentation for the relay cycler.
// Metrics are served on the status HTTP server's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RelayTransitions counts relay state changes, labeled by the state
	// entered ("ON" or "OFF").
	RelayTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_cycler_transitions_total",
		Help: "Relay state transitions since startup, by state entered.",
	}, []string{"state"})

	// HeartbeatToggles counts heartbeat indicator toggles.
	HeartbeatToggles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_cycler_heartbeat_toggles_total",
		Help: "Heartbeat indicator toggles since startup.",
	})

	// TelemetryReports counts published sensor reports.
	TelemetryReports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_cycler_telemetry_reports_total",
		Help: "Sensor telemetry reports since startup.",
	})

	// SensorReading tracks the most recent clamped ADC reading.
	SensorReading = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_cycler_sensor_reading",
		Help: "Most recent clamped ADC reading.",
	})

	// HoldDuration tracks the currently scheduled hold duration in minutes.
	HoldDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_cycler_hold_duration_minutes",
		Help: "Hold duration of the current relay state, in minutes.",
	})
)

package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/relay-cycler/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"stateOrUnknown": func(s string) string {
		if s == "" {
			return "UNKNOWN"
		}
		return s
	},
	"countdown": func(ms int64) string {
		d := (time.Duration(ms) * time.Millisecond).Truncate(time.Second)
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="5">
<title>Relay Cycler</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.unknown { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Relay Cycler</h1>

<h2>Relay</h2>
<table>
<tr><th>State</th><td class="{{if eq (stateOrUnknown (printf "%s" .Relay)) "ON"}}on{{else if eq (stateOrUnknown (printf "%s" .Relay)) "OFF"}}off{{else}}unknown{{end}}">{{stateOrUnknown (printf "%s" .Relay)}}</td></tr>
<tr><th>Holding for</th><td>{{.DurationMin}} min (drawn from {{.Range.Low}}&ndash;{{.Range.High}} min)</td></tr>
<tr><th>Next toggle in</th><td>{{countdown .NextToggleMs}}</td></tr>
</table>

<h2>Sensor</h2>
<table>
<tr><th>Reading</th><td>{{.Reading}} / {{.Config.ADCMax}} ({{.Percent}}%)</td></tr>
<tr><th>Mapped range</th><td>{{.Range.Low}}&ndash;{{.Range.High}} min</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Relay ON</th><td>{{.Counts.RelayOn}}</td></tr>
<tr><th>Relay OFF</th><td>{{.Counts.RelayOff}}</td></tr>
<tr><th>Heartbeats</th><td>{{.Counts.Heartbeats}}</td></tr>
<tr><th>Reports</th><td>{{.Counts.Reports}}</td></tr>
</table>

<h2>Daemon</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02 15:04:05 MST"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}} ms</td></tr>
<tr><th>Heartbeat</th><td>{{.Config.HeartbeatMs}} ms on pin {{.Config.HeartbeatPin}}</td></tr>
<tr><th>Telemetry</th><td>{{.Config.TelemetryMs}} ms</td></tr>
<tr><th>Relay pin</th><td>{{.Config.RelayPin}} (state LED {{.Config.StatePin}})</td></tr>
</table>

<p><a href="/index.json">JSON</a> &middot; <a href="/metrics">metrics</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Printf("render status page: %v", err)
	}
}

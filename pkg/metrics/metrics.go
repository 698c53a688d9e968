// Package metrics exports scan-cycle and Modbus request metrics to
// Prometheus.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tanksim/tanksim-go/pkg/log"
	"github.com/tanksim/tanksim-go/pkg/register"
	"github.com/tanksim/tanksim-go/pkg/transport"
)

// Namespace prefixes every metric name.
const Namespace = "tanksim"

// Collector turns cycle events and served requests into metrics.
type Collector struct {
	cycles        *prometheus.CounterVec
	cycleErrors   *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	stepSeconds   prometheus.Histogram

	level       prometheus.Gauge
	temperature prometheus.Gauge
	pressure    prometheus.Gauge
	inflow      prometheus.Gauge
	outflow     prometheus.Gauge
	status      prometheus.Gauge
	faultMask   prometheus.Gauge

	flags    *prometheus.GaugeVec
	requests *prometheus.CounterVec
}

// NewCollector registers the metrics on reg. It panics if a metric is
// already registered there.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	gauge := func(name, help string) prometheus.Gauge {
		return f.NewGauge(prometheus.GaugeOpts{Namespace: Namespace, Name: name, Help: help})
	}

	return &Collector{
		cycles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cycles_total",
			Help:      "Scan cycles run, by result.",
		}, []string{"result"}),
		cycleErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cycle_errors_total",
			Help:      "Failed scan cycles, by failing stage.",
		}, []string{"stage"}),
		cycleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Wall time spent inside a scan cycle.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}),
		stepSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "step_seconds",
			Help:      "Clamped model step length.",
			Buckets:   []float64{.1, .25, .5, .75, 1, 1.5, 2, 5},
		}),

		level:       gauge("level_cm", "Published tank level."),
		temperature: gauge("temperature_celsius", "Published temperature."),
		pressure:    gauge("pressure_kpa", "Published pressure."),
		inflow:      gauge("inflow_lps", "Published inflow."),
		outflow:     gauge("outflow_lps", "Published outflow."),
		status:      gauge("status_word", "Published status word."),
		faultMask:   gauge("fault_mask", "Requested fault mask."),

		flags: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "flag",
			Help:      "Latched fault flags and alarm bits (1 = set).",
		}, []string{"flag"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "modbus_requests_total",
			Help:      "Modbus requests served, by table, operation and result.",
		}, []string{"table", "op", "result"}),
	}
}

// Log records a cycle event.
func (c *Collector) Log(event log.Event) {
	if event.Error != nil {
		c.cycles.WithLabelValues("error").Inc()
		c.cycleErrors.WithLabelValues(strings.ToLower(event.Error.Stage.String())).Inc()
		return
	}
	c.cycles.WithLabelValues("ok").Inc()
	c.cycleDuration.Observe(event.Duration.Seconds())
	c.stepSeconds.Observe(event.Dt)

	r := event.Reading
	c.level.Set(r.LevelCM)
	c.temperature.Set(r.TempC)
	c.pressure.Set(r.PressureKPa)
	c.inflow.Set(r.InflowLPS)
	c.outflow.Set(r.OutflowLPS)
	c.status.Set(float64(event.Status))
	c.faultMask.Set(float64(event.Setpoints.FaultMask))

	c.flags.WithLabelValues("fault_active").Set(b2f(event.Faults.Active))
	c.flags.WithLabelValues("sensor_fail").Set(b2f(event.Faults.SensorFail))
	c.flags.WithLabelValues("high_level").Set(b2f(event.Alarms.HighLevel))
	c.flags.WithLabelValues("high_temp").Set(b2f(event.Alarms.HighTemp))
}

// ObserveRequest records a served Modbus request.
func (c *Collector) ObserveRequest(table register.Table, write bool, err error) {
	op := "read"
	if write {
		op = "write"
	}
	result := "ok"
	if err != nil {
		result = "refused"
	}
	c.requests.WithLabelValues(table.String(), op, result).Inc()
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

var (
	_ log.Logger         = (*Collector)(nil)
	_ transport.Observer = (*Collector)(nil)
)

package orrery

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects the simulation counters. A nil *Metrics records nothing.
type Metrics struct {
	ticks           prometheus.Counter
	tickDuration    prometheus.Histogram
	pathGenerations prometheus.Counter
	bodies          prometheus.Gauge
	simYears        prometheus.Gauge
}

// NewMetrics returns metrics registered with the provided registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orrery",
			Name:      "ticks_total",
			Help:      "Total number of simulation ticks",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "orrery",
			Name:      "tick_duration_seconds",
			Help:      "Time spent resolving the positions of all bodies for one tick",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		pathGenerations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orrery",
			Name:      "orbit_path_generations_total",
			Help:      "Total number of orbit paths sampled",
		}),
		bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orrery",
			Name:      "bodies",
			Help:      "Number of bodies in the simulated system",
		}),
		simYears: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orrery",
			Name:      "simulated_years",
			Help:      "Elapsed simulation time in years",
		}),
	}
	reg.MustRegister(m.ticks, m.tickDuration, m.pathGenerations, m.bodies, m.simYears)
	return m
}

func (m *Metrics) observeTick(d time.Duration, years float64) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.tickDuration.Observe(d.Seconds())
	m.simYears.Set(years)
}

func (m *Metrics) pathGenerated() {
	if m == nil {
		return
	}
	m.pathGenerations.Inc()
}

func (m *Metrics) setBodies(n int) {
	if m == nil {
		return
	}
	m.bodies.Set(float64(n))
}

package orrery

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	sim := NewSimulation(SolarSystem(), WithMetrics(m))
	for k := 0; k < 3; k++ {
		sim.Tick(1)
	}
	if v := testutil.ToFloat64(m.ticks); v != 3 {
		t.Fatalf("ticks=%f", v)
	}
	// Every orbiting body samples its path once.
	if v := testutil.ToFloat64(m.pathGenerations); v != float64(len(SolarSystemCatalog)-1) {
		t.Fatalf("path generations=%f", v)
	}
	if v := testutil.ToFloat64(m.bodies); v != float64(len(SolarSystemCatalog)) {
		t.Fatalf("bodies=%f", v)
	}
	if v := testutil.ToFloat64(m.simYears); v != sim.Clock.Years {
		t.Fatalf("years=%f", v)
	}
	if n := testutil.CollectAndCount(m.tickDuration); n != 1 {
		t.Fatalf("%d tick duration metrics", n)
	}
	if n, err := testutil.GatherAndCount(reg); err != nil || n != 5 {
		t.Fatalf("gathered %d metrics (%v)", n, err)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.observeTick(0, 1)
	m.pathGenerated()
	m.setBodies(3)
}

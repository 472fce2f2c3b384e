package main

import (
	"testing"

	"github.com/ChristopherRabotin/orrery"
	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestViewportProject(t *testing.T) {
	v := viewport{width: 80, height: 25, zoom: 2}
	if col, row := v.project(r3.Vec{}); col != 40 || row != 12 {
		t.Fatalf("origin at (%d, %d)", col, row)
	}
	// Display Y points out of the screen and is ignored.
	if col, row := v.project(r3.Vec{X: 5, Y: 100, Z: -4}); col != 50 || row != 8 {
		t.Fatalf("(5, 100, -4) at (%d, %d)", col, row)
	}
	if v.visible(40, 24) {
		t.Fatal("status line must not be drawn over")
	}
	if zoom := v.fit(10); zoom != 2.4 {
		t.Fatalf("zoom=%f", zoom)
	}
}

func TestDrawFrame(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init: %s", err)
	}
	defer s.Fini()
	s.SetSize(400, 200)

	sim := orrery.NewSimulation(orrery.SolarSystem(), orrery.WithTrails(true))
	v := viewport{width: 400, height: 200}
	v.zoom = v.fit(systemExtent(sim))
	frame := sim.Tick(0.5)
	drawFrame(s, v, sim, frame, true)

	if r, _, _, _ := s.GetContent(200, 100); r != '☼' {
		t.Fatalf("expected the star at the center, got %q", r)
	}
	// Neptune is drawn last.
	neptune, _ := frame.Body("Neptune")
	col, row := v.project(neptune.World)
	if r, _, _, _ := s.GetContent(col, row); r != '●' {
		t.Fatalf("expected Neptune at (%d, %d), got %q", col, row, r)
	}
	if r, _, _, _ := s.GetContent(col+2, row); r != 'N' {
		t.Fatalf("expected the Neptune label, got %q", r)
	}
	if r, _, _, _ := s.GetContent(1, 199); r == ' ' {
		t.Fatal("no status line")
	}
}

package orrery

import "gonum.org/v1/gonum/spatial/r3"

const (
	// PlanetTrailPoints is the default trail length of bodies orbiting the root.
	PlanetTrailPoints = 4000
	// SatelliteTrailPoints is the default trail length of satellites.
	SatelliteTrailPoints = 200
	fallbackTrailPoints  = 2000
)

// Trail is a bounded history of world positions, oldest first.
type Trail struct {
	max    int
	points []r3.Vec
	start  int
}

// NewTrail returns a trail keeping at most max points.
func NewTrail(max int) *Trail {
	if max <= 0 {
		max = fallbackTrailPoints
	}
	return &Trail{max: max, points: make([]r3.Vec, 0, max)}
}

// Record appends a position, dropping the oldest one if the trail is full.
func (t *Trail) Record(pos r3.Vec) {
	if len(t.points) < t.max {
		t.points = append(t.points, pos)
		return
	}
	t.points[t.start] = pos
	t.start = (t.start + 1) % t.max
}

// Len returns the number of recorded points.
func (t *Trail) Len() int {
	return len(t.points)
}

// Points returns a copy of the recorded positions, oldest first.
func (t *Trail) Points() []r3.Vec {
	out := make([]r3.Vec, 0, len(t.points))
	out = append(out, t.points[t.start:]...)
	return append(out, t.points[:t.start]...)
}

// Reset drops all the recorded points.
func (t *Trail) Reset() {
	t.points = t.points[:0]
	t.start = 0
}

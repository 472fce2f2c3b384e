package orrery

import (
	"gonum.org/v1/gonum/mat"
)

// AdvanceSpin accumulates the spin angle of the body over dtSimulated seconds.
// The caller is responsible for scaling dtSimulated by the time acceleration and zeroing it while paused.
func AdvanceSpin(b *Body, dtSimulated float64) {
	b.spinAngleDeg += b.SpinDegPerSec * dtSimulated
}

// Attitude returns the rotation from the body frame to the display frame: the spin axis is the
// display Y axis, tilted about Z by the axial tilt.
func (b *Body) Attitude() *mat.Dense {
	var att mat.Dense
	att.Mul(R3(-Deg2rad(b.AxialTiltDeg)), R2(-Deg2rad(b.spinAngleDeg)))
	return &att
}

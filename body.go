package orrery

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Body is a node of the system hierarchy: the star at the root, its planets, and their satellites.
type Body struct {
	Name          string
	Orbit         *OrbitalElements // Relative to the parent; nil for the root.
	SpinDegPerSec float64          // Spin rate per simulated second.
	AxialTiltDeg  float64
	RadiusRender  float64

	mass         float64 // Arbitrary but consistent units across the system.
	spinAngleDeg float64
	parent       *Body
	children     []*Body
	path         *OrbitPath
	trail        *Trail
}

// NewStar returns the root of a system, fixed at the origin.
func NewStar(name string, mass float64) (*Body, error) {
	if err := checkMass(name, mass); err != nil {
		return nil, err
	}
	return &Body{Name: name, mass: mass}, nil
}

// NewBody returns a body orbiting a parent it is yet to be added to.
func NewBody(name string, mass float64, orbit OrbitalElements) (*Body, error) {
	if err := checkMass(name, mass); err != nil {
		return nil, err
	}
	if err := orbit.Validate(); err != nil {
		return nil, fmt.Errorf("body %s: %w", name, err)
	}
	return &Body{Name: name, mass: mass, Orbit: &orbit}, nil
}

// Mass is fixed at construction.
func (b *Body) Mass() float64 { return b.mass }

func checkMass(name string, mass float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: body without a name", ErrInvalidConfiguration)
	}
	if !finite(mass) || mass < 0 {
		return fmt.Errorf("%w: body %s has mass %f", ErrInvalidConfiguration, name, mass)
	}
	return nil
}

// AddChild attaches the provided body as an orbiting child of this one.
// The child must have an orbit, must not already have a parent, and must not be an ancestor of b.
func (b *Body) AddChild(c *Body) error {
	if c == nil || c.Orbit == nil {
		return fmt.Errorf("%w: child of %s without an orbit", ErrInvalidConfiguration, b.Name)
	}
	if c.parent != nil {
		return fmt.Errorf("%w: %s already orbits %s", ErrInvalidConfiguration, c.Name, c.parent.Name)
	}
	for anc := b; anc != nil; anc = anc.parent {
		if anc == c {
			return fmt.Errorf("%w: adding %s to %s creates a cycle", ErrInvalidConfiguration, c.Name, b.Name)
		}
	}
	c.parent = b
	b.children = append(b.children, c)
	return nil
}

// Parent returns the body this one orbits, or nil for the root.
func (b *Body) Parent() *Body {
	return b.parent
}

// Children returns the bodies orbiting this one, in insertion order.
func (b *Body) Children() []*Body {
	return b.children
}

// IsRoot returns whether this body has no parent.
func (b *Body) IsRoot() bool {
	return b.parent == nil
}

// Depth returns zero for the root, one for its planets, two for their satellites, etc.
func (b *Body) Depth() (d int) {
	for anc := b.parent; anc != nil; anc = anc.parent {
		d++
	}
	return
}

// Walk visits this body and all its descendants, parents first.
func (b *Body) Walk(fn func(*Body)) {
	fn(b)
	for _, c := range b.children {
		c.Walk(fn)
	}
}

// SpinAngleDeg returns the accumulated spin angle, which is never normalized.
func (b *Body) SpinAngleDeg() float64 {
	return b.spinAngleDeg
}

// Path returns the cached orbit path of this body, generating it with n samples on the first call.
// Subsequent calls ignore n. Returns nil for the root.
func (b *Body) Path(n int) []r3.Vec {
	if b.Orbit == nil {
		return nil
	}
	if b.path == nil {
		b.path = NewOrbitPath(n)
	}
	return b.path.Path(*b.Orbit)
}

// PathGenerated returns whether the orbit path of this body has been computed.
func (b *Body) PathGenerated() bool {
	return b.path != nil && b.path.Generated()
}

// OrbitProgress returns the progress index and fraction of this body along its cached path for
// the provided position relative to its parent. The fraction is zero when there is no progress.
func (b *Body) OrbitProgress(rel r3.Vec, n int) (int, float64) {
	path := b.Path(n)
	idx := FindProgressIndex(path, rel)
	frac, err := ProgressFraction(path, idx)
	if err != nil {
		return NoProgress, 0
	}
	return idx, frac
}

// Trail returns the trail of world positions of this body, creating it on first use.
// Bodies orbiting the root keep longer trails than satellites.
func (b *Body) Trail() *Trail {
	if b.trail == nil {
		switch b.Depth() {
		case 0:
			b.trail = NewTrail(0)
		case 1:
			b.trail = NewTrail(PlanetTrailPoints)
		default:
			b.trail = NewTrail(SatelliteTrailPoints)
		}
	}
	return b.trail
}

// SetTrailLength replaces the trail of this body with an empty one keeping at most n points.
func (b *Body) SetTrailLength(n int) {
	b.trail = NewTrail(n)
}

// String implements the Stringer interface.
func (b *Body) String() string {
	if b.Orbit == nil {
		return b.Name + " (root)"
	}
	return fmt.Sprintf("%s around %s: %s", b.Name, b.parent.nameOrNone(), b.Orbit)
}

func (b *Body) nameOrNone() string {
	if b == nil {
		return "nothing"
	}
	return b.Name
}

package orrery

import (
	"fmt"
	"strings"
)

// CelestialDefinition is a catalogued body, in simulation units: distances are render units,
// masses are Earth masses, spin rates are degrees per simulated second.
type CelestialDefinition struct {
	Name          string
	Parent        string
	Mass          float64
	RadiusRender  float64
	SpinDegPerSec float64
	AxialTiltDeg  float64
	TrailPoints   int // zero keeps the default trail length
	a, e, i, Ω, ω float64
	period, M0    float64
	Ωdot, ωdot    float64 // degrees per year
}

// Elements returns the orbital elements of this definition, or nil for the star.
func (c CelestialDefinition) Elements() (*OrbitalElements, error) {
	if c.Parent == "" {
		return nil, nil
	}
	el, err := NewOrbitalElements(c.a, c.e, c.i, c.Ω, c.ω, c.period, c.M0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	prec := el.WithPrecession(c.Ωdot, c.ωdot)
	return &prec, nil
}

// Body returns a new body from this definition, without parent.
func (c CelestialDefinition) Body() (*Body, error) {
	el, err := c.Elements()
	if err != nil {
		return nil, err
	}
	var b *Body
	if el == nil {
		b, err = NewStar(c.Name, c.Mass)
	} else {
		b, err = NewBody(c.Name, c.Mass, *el)
	}
	if err != nil {
		return nil, err
	}
	b.SpinDegPerSec = c.SpinDegPerSec
	b.AxialTiltDeg = c.AxialTiltDeg
	b.RadiusRender = c.RadiusRender
	if c.TrailPoints > 0 {
		b.SetTrailLength(c.TrailPoints)
	}
	return b, nil
}

// String implements the Stringer interface.
func (c CelestialDefinition) String() string {
	return c.Name + " body"
}

// CelestialDefinitionFromString returns the catalogued definition from its name.
func CelestialDefinitionFromString(name string) (CelestialDefinition, error) {
	for _, c := range SolarSystemCatalog {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return CelestialDefinition{}, fmt.Errorf("undefined body '%s'", name)
}

// SolarSystem returns a new system built from SolarSystemCatalog.
func SolarSystem() *System {
	sys, err := BuildSystem(SolarSystemCatalog)
	if err != nil {
		panic(fmt.Errorf("solar system catalog: %s", err))
	}
	return sys
}

// BuildSystem builds a system from definitions in any order. Exactly one of them must be without
// parent, and every other must orbit a defined body.
func BuildSystem(defs []CelestialDefinition) (*System, error) {
	var root *Body
	built := make(map[string]*Body, len(defs))
	pending := make([]CelestialDefinition, 0, len(defs))
	for _, def := range defs {
		if _, dup := built[def.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate body name %s", ErrInvalidConfiguration, def.Name)
		}
		b, err := def.Body()
		if err != nil {
			return nil, err
		}
		built[def.Name] = b
		if def.Parent == "" {
			if root != nil {
				return nil, fmt.Errorf("%w: both %s and %s are roots", ErrInvalidConfiguration, root.Name, def.Name)
			}
			root = b
			continue
		}
		pending = append(pending, def)
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no body without parent", ErrInvalidConfiguration)
	}
	// Attach children in definition order so that sibling order is stable.
	for _, def := range pending {
		parent, ok := built[def.Parent]
		if !ok {
			return nil, fmt.Errorf("%w: %s orbits unknown body %s", ErrInvalidConfiguration, def.Name, def.Parent)
		}
		if err := parent.AddChild(built[def.Name]); err != nil {
			return nil, err
		}
	}
	sys, err := NewSystem(root)
	if err != nil {
		return nil, err
	}
	if len(sys.Bodies()) != len(built) {
		return nil, fmt.Errorf("%w: %d bodies are not connected to %s", ErrInvalidConfiguration, len(built)-len(sys.Bodies()), root.Name)
	}
	return sys, nil
}

/* Definitions */

// SolarSystemCatalog is the Sun, its eight planets and the Moon. Elements are J2000 values with the
// semi-major axes compressed for display; precession rates are the secular rates per year.
var SolarSystemCatalog = []CelestialDefinition{
	// Sun is our closest star.
	{Name: "Sun", Mass: 332946, RadiusRender: 7, SpinDegPerSec: 0.04, AxialTiltDeg: 7.25},
	// Mercury is quick.
	{Name: "Mercury", Parent: "Sun", Mass: 0.0553, RadiusRender: 0.25, SpinDegPerSec: 0.1, AxialTiltDeg: 0.03,
		a: 16, e: 0.2056, i: 7.005, Ω: 48.33167, ω: 29.124, period: 0.240846, M0: 174.796, Ωdot: -0.0012534, ωdot: 0.0028581},
	// Venus is poisonous and spins backward.
	{Name: "Venus", Parent: "Sun", Mass: 0.815, RadiusRender: 0.6, SpinDegPerSec: -0.05, AxialTiltDeg: 177.4,
		a: 25, e: 0.006773, i: 3.39458, Ω: 76.67984, ω: 54.884, period: 0.615197, M0: 50.416, Ωdot: -0.0027769, ωdot: 0.0028037},
	// Earth is home.
	{Name: "Earth", Parent: "Sun", Mass: 1, RadiusRender: 0.65, SpinDegPerSec: 1, AxialTiltDeg: 23.44,
		a: 34, e: 0.0167086, i: 0.00005, Ω: -11.26064, ω: 102.94719, period: 1, M0: 357.51716, ωdot: 0.0032327},
	// Moon is tidally locked at the default time scale.
	{Name: "Moon", Parent: "Earth", Mass: 0.0123, RadiusRender: 0.18, SpinDegPerSec: 360 * DefaultYearsPerSecond / (27.321661 / DaysPerYear), AxialTiltDeg: 6.68,
		a: 3, e: 0.0549, i: 5.145, Ω: 125.08, ω: 318.15, period: 27.321661 / DaysPerYear, M0: 135.27, Ωdot: -19.3413, ωdot: 40.6901},
	// Mars is the vacation place.
	{Name: "Mars", Parent: "Sun", Mass: 0.107, RadiusRender: 0.34, SpinDegPerSec: 0.97, AxialTiltDeg: 25.19,
		a: 49, e: 0.0934, i: 1.85, Ω: 49.558, ω: 286.502, period: 1.8808476, M0: 19.412, Ωdot: -0.0029257, ωdot: 0.0073698},
	// Jupiter is big.
	{Name: "Jupiter", Parent: "Sun", Mass: 317.8, RadiusRender: 2.8, SpinDegPerSec: 2.4, AxialTiltDeg: 3.13,
		a: 94, e: 0.0489, i: 1.303, Ω: 100.556, ω: 14.75385, period: 11.862615, M0: 20.0202, Ωdot: 0.0020469, ωdot: 0.0000784},
	// Saturn floats and that's really cool.
	{Name: "Saturn", Parent: "Sun", Mass: 95.2, RadiusRender: 2.5, SpinDegPerSec: 2, AxialTiltDeg: 26.73,
		a: 140, e: 0.0565, i: 2.485, Ω: 113.715, ω: 92.43194, period: 29.447498, M0: 317.0207, Ωdot: -0.0028867, ωdot: -0.001303},
	// Uranus is no joke, and lies on its side.
	{Name: "Uranus", Parent: "Sun", Mass: 14.5, RadiusRender: 1.8, SpinDegPerSec: -1.4, AxialTiltDeg: 97.77,
		a: 190, e: 0.0472, i: 0.773, Ω: 74.006, ω: 96.998857, period: 84.016846, M0: 142.2386, Ωdot: 0.000424, ωdot: 0.0036565},
	// Neptune spins fast.
	{Name: "Neptune", Parent: "Sun", Mass: 17.1, RadiusRender: 1.7, SpinDegPerSec: 1.5, AxialTiltDeg: 28.32,
		a: 230, e: 0.008678, i: 1.769, Ω: 131.784, ω: 273.187, period: 164.79132, M0: 259.908, Ωdot: -0.0000509, ωdot: -0.0031732},
}

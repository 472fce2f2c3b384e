package orrery

import (
	"errors"
	"testing"
)

func TestSolarSystem(t *testing.T) {
	sys := SolarSystem()
	if sys.Root.Name != "Sun" || len(sys.Bodies()) != len(SolarSystemCatalog) {
		t.Fatalf("root %s with %d bodies", sys.Root.Name, len(sys.Bodies()))
	}
	moon, ok := sys.Find("Moon")
	if !ok || moon.Parent().Name != "Earth" {
		t.Fatal("the Moon does not orbit the Earth")
	}
	// Parents are listed before their children.
	seen := map[string]bool{}
	for _, b := range sys.Bodies() {
		if p := b.Parent(); p != nil && !seen[p.Name] {
			t.Fatalf("%s listed before its parent %s", b.Name, p.Name)
		}
		seen[b.Name] = true
	}
	for _, b := range sys.Bodies() {
		if b.Orbit != nil && b.Orbit.IsClamped() {
			t.Fatalf("%s has a clamped eccentricity", b.Name)
		}
	}
}

func TestCelestialDefinitionFromString(t *testing.T) {
	def, err := CelestialDefinitionFromString("jupiter")
	if err != nil || def.Name != "Jupiter" {
		t.Fatalf("got %s (%v)", def, err)
	}
	if _, err := CelestialDefinitionFromString("Vulcan"); err == nil {
		t.Fatal("Vulcan should not be defined")
	}
}

func TestBuildSystem(t *testing.T) {
	star := CelestialDefinition{Name: "Star", Mass: 10}
	planet := CelestialDefinition{Name: "Planet", Parent: "Star", Mass: 1, a: 1, period: 1}
	moon := CelestialDefinition{Name: "Moon", Parent: "Planet", Mass: 0.1, a: 0.1, period: 0.1, TrailPoints: 7}

	// Any order is accepted.
	sys, err := BuildSystem([]CelestialDefinition{moon, planet, star})
	if err != nil {
		t.Fatal(err)
	}
	if b, _ := sys.Find("Moon"); b.Depth() != 2 || b.Trail().max != 7 {
		t.Fatalf("moon at depth %d with a trail of %d", b.Depth(), b.Trail().max)
	}

	orphan := CelestialDefinition{Name: "Orphan", Parent: "Nothing", Mass: 1, a: 1, period: 1}
	looped := CelestialDefinition{Name: "Loop", Parent: "Loop", Mass: 1, a: 1, period: 1}
	badOrbit := CelestialDefinition{Name: "Bad", Parent: "Star", Mass: 1, a: 1, e: 1.5, period: 1}
	for name, defs := range map[string][]CelestialDefinition{
		"empty":         nil,
		"two roots":     {star, {Name: "Other"}},
		"duplicate":     {star, planet, planet},
		"unknown":       {star, orphan},
		"self parent":   {star, looped},
		"invalid orbit": {star, badOrbit},
	} {
		if _, err := BuildSystem(defs); !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("%s: expected an invalid configuration, got %v", name, err)
		}
	}
}

package orrery

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// System is a validated hierarchy of bodies with a name index.
type System struct {
	Root   *Body
	bodies []*Body // parents first
	index  map[string]*Body
}

// NewSystem indexes the hierarchy under root. Body names must be unique.
func NewSystem(root *Body) (*System, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: no root body", ErrInvalidConfiguration)
	}
	if root.parent != nil {
		return nil, fmt.Errorf("%w: root %s orbits %s", ErrInvalidConfiguration, root.Name, root.parent.Name)
	}
	s := &System{Root: root, index: make(map[string]*Body)}
	var err error
	root.Walk(func(b *Body) {
		if _, dup := s.index[b.Name]; dup && err == nil {
			err = fmt.Errorf("%w: duplicate body name %s", ErrInvalidConfiguration, b.Name)
		}
		s.index[b.Name] = b
		s.bodies = append(s.bodies, b)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Find returns the body of the provided name.
func (s *System) Find(name string) (*Body, bool) {
	b, ok := s.index[name]
	return b, ok
}

// Bodies returns all bodies, parents before their children.
func (s *System) Bodies() []*Body {
	return s.bodies
}

// UpdatePositions returns the absolute positions of all the bodies of the system at tYears.
func (s *System) UpdatePositions(tYears float64) map[*Body]r3.Vec {
	return UpdatePositions(s.Root, tYears)
}

// UpdatePositions returns the absolute position of every body under root at tYears.
// The root is fixed at the origin. Each other body is placed at its parent's corrected position
// plus its own Keplerian offset, itself corrected by the barycenter offset due to its direct children.
func UpdatePositions(root *Body, tYears float64) map[*Body]r3.Vec {
	return updatePositions(root, tYears, nil)
}

// updatePositions is UpdatePositions which also stores the uncorrected relative position of each
// orbiting body in rels, if not nil.
func updatePositions(root *Body, tYears float64, rels map[*Body]r3.Vec) map[*Body]r3.Vec {
	positions := make(map[*Body]r3.Vec)
	positions[root] = r3.Vec{}
	rel := rawRelatives(root, tYears)
	for k, c := range root.children {
		resolve(c, r3.Vec{}, rel[k], tYears, positions, rels)
	}
	return positions
}

// resolve places b given its parent's absolute position and its own uncorrected relative position.
// All of b's children relative positions are computed before b is placed, and b is placed before
// any of its children.
func resolve(b *Body, anchor, rel r3.Vec, tYears float64, positions, rels map[*Body]r3.Vec) {
	childRel := rawRelatives(b, tYears)
	abs := r3.Add(anchor, r3.Add(rel, BarycenterOffset(b.mass, b.children, childRel)))
	positions[b] = abs
	if rels != nil {
		rels[b] = rel
	}
	for k, c := range b.children {
		resolve(c, abs, childRel[k], tYears, positions, rels)
	}
}

// rawRelatives returns the uncorrected Keplerian positions of the direct children of b.
func rawRelatives(b *Body, tYears float64) []r3.Vec {
	rel := make([]r3.Vec, len(b.children))
	for k, c := range b.children {
		rel[k] = SolvePosition(*c.Orbit, tYears)
	}
	return rel
}

// BarycenterOffset returns the offset of a body of the provided mass from the focus of its own orbit,
// due to its direct children at the provided relative positions: it orbits the barycenter of the
// group, not its own center. The offset is zero if the group has no mass.
func BarycenterOffset(mass float64, children []*Body, childRel []r3.Vec) r3.Vec {
	total := mass
	for _, c := range children {
		total += c.mass
	}
	var offset r3.Vec
	if total <= 0 {
		return offset
	}
	for k, c := range children {
		offset = r3.Add(offset, r3.Scale(-c.mass/total, childRel[k]))
	}
	return offset
}

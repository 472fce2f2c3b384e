package orrery

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultPathSamples is the number of samples of a full orbit path.
	DefaultPathSamples = 3600
	// NoProgress is returned by FindProgressIndex when the path is too short to locate a body on it.
	NoProgress = -1
)

// OrbitPath caches a closed polyline of one full orbit, sampled at the epoch orientation.
// It is owned by a single Body and is not safe for concurrent use.
type OrbitPath struct {
	samples   int
	generated bool
	points    []r3.Vec
}

// NewOrbitPath returns an empty path cache which will sample the orbit n times.
func NewOrbitPath(n int) *OrbitPath {
	if n <= 0 {
		n = DefaultPathSamples
	}
	return &OrbitPath{samples: n}
}

// Generated returns whether the path has been computed.
func (p *OrbitPath) Generated() bool {
	return p.generated
}

// Path returns the cached orbit path, computing it on the first call only.
// Precession is ignored: the path represents the reference ellipse at epoch.
func (p *OrbitPath) Path(o OrbitalElements) []r3.Vec {
	if p.generated {
		return p.points
	}
	if p.samples <= 0 {
		p.samples = DefaultPathSamples
	}
	p.points = make([]r3.Vec, p.samples)
	for k := range p.points {
		p.points[k] = PositionAtEpochOrientation(o, float64(k)*o.period/float64(p.samples))
	}
	p.generated = true
	return p.points
}

// FindProgressIndex returns the index of the path sample nearest to the provided position.
// Ties go to the first index. Returns NoProgress if the path has fewer than two samples.
func FindProgressIndex(path []r3.Vec, pos r3.Vec) int {
	if len(path) < 2 {
		return NoProgress
	}
	best := 0
	bestDist := math.Inf(1)
	for k, pt := range path {
		if d := r3.Norm2(r3.Sub(pt, pos)); d < bestDist {
			best = k
			bestDist = d
		}
	}
	return best
}

// SplitPath splits the path at the progress index into the traversed arc (up to and including idx)
// and the remaining arc. Both are nil if idx is out of range.
func SplitPath(path []r3.Vec, idx int) (traversed, remaining []r3.Vec) {
	if idx < 0 || idx >= len(path) {
		return nil, nil
	}
	return path[:idx+1], path[idx+1:]
}

// ProgressFraction returns the fraction of the orbit completed, in [0, 1).
func ProgressFraction(path []r3.Vec, idx int) (float64, error) {
	if len(path) < 2 || idx < 0 || idx >= len(path) {
		return 0, ErrDegenerateQuery
	}
	return float64(idx) / float64(len(path)), nil
}

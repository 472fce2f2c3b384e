package orrery

import (
	"time"

	kitlog "github.com/go-kit/kit/log"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultYearsPerSecond is the number of simulated years per second of simulated time at scale 1.
	DefaultYearsPerSecond = 0.05
)

/* Per tick evaluation of the system. */

// Clock holds the elapsed simulation time and the time acceleration.
type Clock struct {
	Years          float64 // elapsed since epoch
	Scale          float64 // time acceleration, never negative
	YearsPerSecond float64
	Paused         bool
}

// Advance moves the clock forward by dtReal seconds and returns the simulated duration in seconds,
// which is zero while paused.
func (c *Clock) Advance(dtReal float64) (dtSim float64) {
	if c.Paused || dtReal <= 0 || c.Scale <= 0 {
		return 0
	}
	dtSim = dtReal * c.Scale
	c.Years += dtSim * c.YearsPerSecond
	return
}

// SetScale sets the time acceleration; negative values stop the clock.
func (c *Clock) SetScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.Scale = scale
}

// Accelerate multiplies the time acceleration by factor. A stopped clock restarts at a scale of 1.
func (c *Clock) Accelerate(factor float64) {
	if c.Scale == 0 && factor > 1 {
		c.Scale = 1
		return
	}
	c.SetScale(c.Scale * factor)
}

// BodyState is the per tick output for one body.
type BodyState struct {
	Name          string  `json:"name"`
	Parent        string  `json:"parent,omitempty"`
	Position      r3.Vec  `json:"position"` // absolute, orbital reference frame
	Relative      r3.Vec  `json:"relative"` // uncorrected Keplerian offset from the parent
	World         r3.Vec  `json:"world"`    // display frame, scaled
	SpinDeg       float64 `json:"spin_deg"`
	AxialTiltDeg  float64 `json:"axial_tilt_deg"`
	RadiusRender  float64 `json:"radius"`
	ProgressIndex int     `json:"progress_index"`
	Progress      float64 `json:"progress"`
}

// Frame is the state of all the bodies at one tick, parents first.
type Frame struct {
	Years  float64     `json:"years"`
	DT     time.Time   `json:"dt"`
	Bodies []BodyState `json:"bodies"`
}

// Body returns the state of the body of the provided name.
func (f Frame) Body(name string) (BodyState, bool) {
	for _, st := range f.Bodies {
		if st.Name == name {
			return st, true
		}
	}
	return BodyState{}, false
}

// Simulation owns a system and evaluates it once per tick. It is not safe for concurrent use:
// the frames it returns are values and may be handed to other goroutines.
type Simulation struct {
	System       *System
	Clock        Clock
	Epoch        time.Time
	RenderScale  float64
	PathSamples  int
	RecordTrails bool
	logger       kitlog.Logger
	metrics      *Metrics
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger of the simulation.
func WithLogger(l kitlog.Logger) Option {
	return func(s *Simulation) {
		s.logger = kitlog.With(l, "subsys", "sim")
	}
}

// WithMetrics sets the metrics collected by the simulation.
func WithMetrics(m *Metrics) Option {
	return func(s *Simulation) {
		s.metrics = m
	}
}

// WithEpoch sets the date at which the simulation time is zero.
func WithEpoch(epoch time.Time) Option {
	return func(s *Simulation) {
		s.Epoch = epoch.UTC()
	}
}

// WithStart sets the initial simulation time in years after epoch.
func WithStart(years float64) Option {
	return func(s *Simulation) {
		s.Clock.Years = years
	}
}

// WithTimeScale sets the simulated years per second and the time acceleration.
func WithTimeScale(yearsPerSecond, scale float64) Option {
	return func(s *Simulation) {
		s.Clock.YearsPerSecond = yearsPerSecond
		s.Clock.SetScale(scale)
	}
}

// WithRenderScale sets the factor applied to the world (display) positions.
func WithRenderScale(scale float64) Option {
	return func(s *Simulation) {
		s.RenderScale = scale
	}
}

// WithPathSamples sets the number of samples of each cached orbit path.
func WithPathSamples(n int) Option {
	return func(s *Simulation) {
		s.PathSamples = n
	}
}

// WithTrails enables the recording of the world positions of each body.
func WithTrails(enabled bool) Option {
	return func(s *Simulation) {
		s.RecordTrails = enabled
	}
}

// NewSimulation returns a simulation of the provided system, at epoch, not paused.
func NewSimulation(sys *System, opts ...Option) *Simulation {
	s := &Simulation{
		System:      sys,
		Clock:       Clock{Scale: 1, YearsPerSecond: DefaultYearsPerSecond},
		Epoch:       J2000,
		RenderScale: 1,
		PathSamples: DefaultPathSamples,
		logger:      kitlog.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics.setBodies(len(sys.Bodies()))
	s.logger.Log("level", "info", "root", sys.Root.Name, "bodies", len(sys.Bodies()), "epoch", s.Epoch)
	for _, b := range sys.Bodies() {
		if b.Orbit != nil && b.Orbit.IsClamped() {
			s.logger.Log("level", "warning", "body", b.Name, "e", b.Orbit.Eccentricity(), "clamped", b.Orbit.Clamped())
		}
	}
	return s
}

// Date returns the current simulation date.
func (s *Simulation) Date() time.Time {
	return TimeAtYears(s.Epoch, s.Clock.Years)
}

// LogStatus logs the status of the simulation.
func (s *Simulation) LogStatus() {
	s.logger.Log("level", "info", "years", s.Clock.Years, "date", s.Date(), "scale", s.Clock.Scale, "paused", s.Clock.Paused)
}

// TogglePause pauses or resumes the simulation clock.
func (s *Simulation) TogglePause() {
	s.Clock.Paused = !s.Clock.Paused
	s.logger.Log("level", "notice", "paused", s.Clock.Paused)
}

// Tick advances the simulation by dtReal seconds and returns the state of all the bodies.
// Spin angles advance with the scaled duration; a paused simulation still returns a frame.
func (s *Simulation) Tick(dtReal float64) Frame {
	start := time.Now()
	dtSim := s.Clock.Advance(dtReal)
	years := s.Clock.Years
	rels := make(map[*Body]r3.Vec)
	positions := updatePositions(s.System.Root, years, rels)

	frame := Frame{Years: years, DT: s.Date(), Bodies: make([]BodyState, 0, len(s.System.Bodies()))}
	for _, b := range s.System.Bodies() {
		AdvanceSpin(b, dtSim)
		abs := positions[b]
		st := BodyState{
			Name:          b.Name,
			Position:      abs,
			Relative:      rels[b],
			World:         r3.Scale(s.RenderScale, ToDisplay(abs)),
			SpinDeg:       b.spinAngleDeg,
			AxialTiltDeg:  b.AxialTiltDeg,
			RadiusRender:  b.RadiusRender,
			ProgressIndex: NoProgress,
		}
		if b.parent != nil {
			st.Parent = b.parent.Name
		}
		if b.Orbit != nil {
			generated := b.PathGenerated()
			st.ProgressIndex, st.Progress = b.OrbitProgress(rels[b], s.PathSamples)
			if !generated {
				s.metrics.pathGenerated()
				s.logger.Log("level", "debug", "body", b.Name, "path", "generated", "samples", len(b.path.points))
			}
		}
		if s.RecordTrails {
			b.Trail().Record(st.World)
		}
		frame.Bodies = append(frame.Bodies, st)
	}
	s.metrics.observeTick(time.Since(start), years)
	return frame
}

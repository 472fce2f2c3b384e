package orrery

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
)

const (
	// ConfigEnv is the environment variable naming the directory of the default scenario.
	ConfigEnv = "ORRERY_CONFIG"
	// DefaultScenarioName is the name (without extension) of the default scenario file.
	DefaultScenarioName = "orrery"
)

// SimulationConfig is the `[simulation]` table of a scenario.
type SimulationConfig struct {
	YearsPerSecond float64
	TimeScale      float64
	RenderScale    float64
	PathSamples    int
	Trails         bool
}

// BodyConfig is one entry of the `[[bodies]]` array of a scenario. Angles are in degrees.
type BodyConfig struct {
	Name                string  `mapstructure:"name"`
	Parent              string  `mapstructure:"parent"`
	Mass                float64 `mapstructure:"mass"`
	Radius              float64 `mapstructure:"radius"`
	SpinDegPerSec       float64 `mapstructure:"spin"`
	AxialTilt           float64 `mapstructure:"axial_tilt"`
	TrailPoints         int     `mapstructure:"trail_points"`
	SemiMajorAxis       float64 `mapstructure:"sma"`
	Eccentricity        float64 `mapstructure:"ecc"`
	Inclination         float64 `mapstructure:"inc"`
	AscNode             float64 `mapstructure:"RAAN"`
	ArgPeri             float64 `mapstructure:"argPeri"`
	PeriodYears         float64 `mapstructure:"period"`
	MeanAnomaly         float64 `mapstructure:"mAnomaly"`
	AscNodePrecession   float64 `mapstructure:"RAAN_rate"`
	PeriapsisPrecession float64 `mapstructure:"argPeri_rate"`
}

// Definition converts this configuration entry into a celestial definition.
func (c BodyConfig) Definition() CelestialDefinition {
	return CelestialDefinition{
		Name: c.Name, Parent: c.Parent, Mass: c.Mass, RadiusRender: c.Radius,
		SpinDegPerSec: c.SpinDegPerSec, AxialTiltDeg: c.AxialTilt, TrailPoints: c.TrailPoints,
		a: c.SemiMajorAxis, e: c.Eccentricity, i: c.Inclination, Ω: c.AscNode, ω: c.ArgPeri,
		period: c.PeriodYears, M0: c.MeanAnomaly, Ωdot: c.AscNodePrecession, ωdot: c.PeriapsisPrecession,
	}
}

// Scenario is a system and the parameters of its simulation, as read from a configuration file.
type Scenario struct {
	System *System
	Sim    SimulationConfig
	Epoch  time.Time
	Start  float64 // years after epoch
}

// LoadScenario reads the scenario TOML (or any format viper supports) at the provided path.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ScenarioFromViper(v)
}

// LoadDefaultScenario reads the default scenario from the directory named by ORRERY_CONFIG.
// If that variable is unset, the built-in solar system is returned.
func LoadDefaultScenario() (*Scenario, error) {
	confPath := os.Getenv(ConfigEnv)
	if confPath == "" {
		return ScenarioFromViper(viper.New())
	}
	v := viper.New()
	v.SetConfigName(DefaultScenarioName)
	v.AddConfigPath(confPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s.toml not found in %s: %w", DefaultScenarioName, filepath.Clean(confPath), err)
	}
	return ScenarioFromViper(v)
}

// ScenarioFromViper builds a scenario from an already loaded configuration.
// Missing simulation parameters get their default values, and a configuration without
// bodies simulates the built-in solar system.
func ScenarioFromViper(v *viper.Viper) (*Scenario, error) {
	v.SetDefault("simulation.years_per_second", DefaultYearsPerSecond)
	v.SetDefault("simulation.time_scale", 1.0)
	v.SetDefault("simulation.render_scale", 1.0)
	v.SetDefault("simulation.path_samples", DefaultPathSamples)
	v.SetDefault("simulation.trails", true)

	sc := &Scenario{Epoch: J2000}
	sc.Sim = SimulationConfig{
		YearsPerSecond: v.GetFloat64("simulation.years_per_second"),
		TimeScale:      v.GetFloat64("simulation.time_scale"),
		RenderScale:    v.GetFloat64("simulation.render_scale"),
		PathSamples:    v.GetInt("simulation.path_samples"),
		Trails:         v.GetBool("simulation.trails"),
	}
	if sc.Sim.YearsPerSecond <= 0 || sc.Sim.TimeScale < 0 || sc.Sim.RenderScale <= 0 || sc.Sim.PathSamples < 2 {
		return nil, fmt.Errorf("%w: [simulation] %+v", ErrInvalidConfiguration, sc.Sim)
	}
	if v.IsSet("simulation.epoch") {
		epoch, err := readJDEorTime(v, "simulation.epoch")
		if err != nil {
			return nil, err
		}
		sc.Epoch = epoch
	}
	if v.IsSet("simulation.start") {
		start, err := readJDEorTime(v, "simulation.start")
		if err != nil {
			return nil, err
		}
		sc.Start = YearsSinceEpoch(sc.Epoch, start)
	}

	defs := SolarSystemCatalog
	if v.IsSet("bodies") {
		var bodies []BodyConfig
		if err := v.UnmarshalKey("bodies", &bodies); err != nil {
			return nil, fmt.Errorf("%w: [[bodies]]: %s", ErrInvalidConfiguration, err)
		}
		defs = make([]CelestialDefinition, len(bodies))
		for k, b := range bodies {
			defs[k] = b.Definition()
		}
	}
	sys, err := BuildSystem(defs)
	if err != nil {
		return nil, err
	}
	sc.System = sys
	return sc, nil
}

// NewSimulation returns a simulation of this scenario. Extra options are applied last.
func (sc *Scenario) NewSimulation(extra ...Option) *Simulation {
	opts := []Option{
		WithEpoch(sc.Epoch),
		WithStart(sc.Start),
		WithTimeScale(sc.Sim.YearsPerSecond, sc.Sim.TimeScale),
		WithRenderScale(sc.Sim.RenderScale),
		WithPathSamples(sc.Sim.PathSamples),
		WithTrails(sc.Sim.Trails),
	}
	return NewSimulation(sc.System, append(opts, extra...)...)
}

// readJDEorTime reads the key either as a Julian date or as a date.
func readJDEorTime(v *viper.Viper, key string) (time.Time, error) {
	if jde := v.GetFloat64(key); jde != 0 {
		return julian.JDToTime(jde), nil
	}
	dt := v.GetTime(key)
	if dt.IsZero() {
		return dt, fmt.Errorf("%w: %s is neither a Julian date nor a date", ErrInvalidConfiguration, key)
	}
	return dt.UTC(), nil
}

package orrery

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"gonum.org/v1/gonum/spatial/r3"
)

// CgCatalog is a Cosmographia catalog.
type CgCatalog struct {
	Version string     `json:"version"`
	Name    string     `json:"name"`
	Items   []*CgItems `json:"items"`
	Require []string   `json:"require,omitempty"`
}

func (c *CgCatalog) String() string {
	return c.Name + "(" + c.Version + ")"
}

// CgItems is one body of a Cosmographia catalog.
type CgItems struct {
	Class           string            `json:"class"`
	Name            string            `json:"name"`
	StartTime       string            `json:"startTime"`
	EndTime         string            `json:"endTime"`
	Center          string            `json:"center"`
	TrajectoryFrame string            `json:"trajectoryFrame"`
	Trajectory      *CgTrajectory     `json:"trajectory,omitempty"`
	Label           *CgLabel          `json:"label,omitempty"`
	TrajectoryPlot  *CgTrajectoryPlot `json:"trajectoryPlot,omitempty"`
}

// CgTrajectory definition.
type CgTrajectory struct {
	Type   string `json:"type,omitempty"`
	Source string `json:"source,omitempty"`
}

// Validate validates a CgTrajectory.
func (t *CgTrajectory) Validate() error {
	if t.Type != "InterpolatedStates" || !strings.HasSuffix(t.Source, "xyzv") {
		return errors.New("only InterpolatedStates are supported in Cosmographia trajectory types")
	}
	return nil
}

func (t *CgTrajectory) String() string {
	return t.Source + " as " + t.Type
}

// CgLabel definition.
type CgLabel struct {
	Color    []float64 `json:"color,omitempty"`
	FadeSize int       `json:"fadeSize,omitempty"`
	ShowText bool      `json:"showText,omitempty"`
}

// CgTrajectoryPlot definition.
type CgTrajectoryPlot struct {
	Color       []float64 `json:"color,omitempty"`
	LineWidth   int       `json:"lineWidth,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Lead        string    `json:"lead,omitempty"`
	Fade        int       `json:"fade,omitempty"`
	SampleCount int       `json:"sampleCount,omitempty"`
}

// CgInterpolatedState is one record of an xyzv file. Velocity is in units per year.
type CgInterpolatedState struct {
	JD       float64
	Position r3.Vec
	Velocity r3.Vec
}

// FromText initializes from a record of seven fields.
func (i *CgInterpolatedState) FromText(record []string) error {
	if len(record) != 7 {
		return fmt.Errorf("xyzv record has %d fields instead of 7", len(record))
	}
	var vals [7]float64
	for k, field := range record {
		val, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fmt.Errorf("xyzv field %d: %w", k, err)
		}
		vals[k] = val
	}
	i.JD = vals[0]
	i.Position = r3.Vec{X: vals[1], Y: vals[2], Z: vals[3]}
	i.Velocity = r3.Vec{X: vals[4], Y: vals[5], Z: vals[6]}
	return nil
}

// ToText converts to text for written output.
func (i *CgInterpolatedState) ToText() string {
	return fmt.Sprintf("%f %f %f %f %f %f %f", i.JD, i.Position.X, i.Position.Y, i.Position.Z, i.Velocity.X, i.Velocity.Y, i.Velocity.Z)
}

// ParseInterpolatedStates reads the records of an xyzv file.
func ParseInterpolatedStates(s string) ([]CgInterpolatedState, error) {
	var states []CgInterpolatedState
	r := csv.NewReader(strings.NewReader(s))
	r.Comma = ' '
	r.Comment = '#'
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var state CgInterpolatedState
		if err := state.FromText(record); err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, nil
}

// ExportConfig configures the exporting of the simulation.
type ExportConfig struct {
	Dir       string
	Filename  string
	Cosmo     bool // one xyzv file per body and a catalog
	AsCSV     bool // one row per body per frame
	Timestamp bool
	Every     int // export one frame out of Every; zero or one exports them all
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.Cosmo && !c.AsCSV
}

func (c ExportConfig) path(prefix, name, ext string) string {
	if c.Timestamp {
		t := time.Now()
		name = fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d", name, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	return filepath.Join(c.Dir, fmt.Sprintf("%s-%s.%s", prefix, name, ext))
}

// createInterpolatedFile returns a file which requires a defer close statement!
func createInterpolatedFile(path string, start time.Time) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	_, err = fmt.Fprintf(f, `# Creation date (UTC): %s
# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Position in render units, in the orbital reference frame
#   Velocity in render units per year
#   Simulation time start (UTC): %s`, time.Now().UTC(), start.UTC())
	return f, err
}

type cgTrack struct {
	f         *os.File
	item      *CgItems
	prev      r3.Vec
	prevYears float64
	first     bool
}

// StreamFrames writes the frames read from the channel until it is closed.
// On error the remaining frames are drained so the producer never blocks.
func StreamFrames(conf ExportConfig, frames <-chan Frame) (err error) {
	defer func() {
		for range frames {
		}
	}()
	every := conf.Every
	if every < 1 {
		every = 1
	}
	var csvFile *os.File
	var csvW *csv.Writer
	tracks := make(map[string]*cgTrack)
	var order []string
	var first, last Frame
	count := 0

	defer func() {
		for _, name := range order {
			if tr := tracks[name]; tr.f != nil {
				fmt.Fprintf(tr.f, "\n# Simulation time end (UTC): %s\n", last.DT.UTC())
				if cerr := tr.f.Close(); err == nil {
					err = cerr
				}
			}
		}
		if csvW != nil {
			csvW.Flush()
			if werr := csvW.Error(); err == nil {
				err = werr
			}
			if cerr := csvFile.Close(); err == nil {
				err = cerr
			}
		}
		if conf.Cosmo && err == nil && count > 0 {
			err = writeCatalog(conf, tracks, order, first, last)
		}
	}()

	for frame := range frames {
		count++
		if count == 1 {
			first = frame
			if conf.AsCSV {
				if csvFile, err = os.Create(conf.path("frames", conf.Filename, "csv")); err != nil {
					return err
				}
				csvW = csv.NewWriter(csvFile)
				if err = csvW.Write([]string{"time", "years", "body", "parent", "x", "y", "z", "spin", "progress"}); err != nil {
					return err
				}
			}
		} else if (count-1)%every != 0 {
			continue
		}
		last = frame
		for _, st := range frame.Bodies {
			if conf.AsCSV {
				row := []string{
					frame.DT.UTC().Format("2006-01-02 15:04:05"), ftoa(frame.Years), st.Name, st.Parent,
					ftoa(st.Position.X), ftoa(st.Position.Y), ftoa(st.Position.Z), ftoa(st.SpinDeg), ftoa(st.Progress),
				}
				if err = csvW.Write(row); err != nil {
					return err
				}
			}
			if !conf.Cosmo {
				continue
			}
			tr, ok := tracks[st.Name]
			if !ok {
				tr = &cgTrack{first: true}
				tracks[st.Name] = tr
				order = append(order, st.Name)
				src := filepath.Base(conf.path("xyzv", conf.Filename+"-"+st.Name, "xyzv"))
				if tr.f, err = createInterpolatedFile(filepath.Join(conf.Dir, src), frame.DT); err != nil {
					return err
				}
				center := st.Parent
				if center == "" {
					center = "SSB"
				}
				color := []float64{0.4, 0.7, 1}
				tr.item = &CgItems{
					Class: "spacecraft", Name: st.Name, StartTime: frame.DT.UTC().String(), Center: center,
					TrajectoryFrame: "EclipticJ2000",
					Trajectory:      &CgTrajectory{Type: "InterpolatedStates", Source: src},
					Label:           &CgLabel{Color: color, FadeSize: 1000000, ShowText: true},
					TrajectoryPlot:  &CgTrajectoryPlot{Color: color, LineWidth: 1, Lead: "0 d", SampleCount: 100},
				}
			}
			var vel r3.Vec
			if !tr.first && frame.Years != tr.prevYears {
				vel = r3.Scale(1/(frame.Years-tr.prevYears), r3.Sub(st.Position, tr.prev))
			}
			tr.first = false
			tr.prev, tr.prevYears = st.Position, frame.Years
			rec := CgInterpolatedState{JD: julian.TimeToJD(frame.DT), Position: st.Position, Velocity: vel}
			if _, err = tr.f.WriteString("\n" + rec.ToText()); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeCatalog(conf ExportConfig, tracks map[string]*cgTrack, order []string, first, last Frame) error {
	items := make([]*CgItems, 0, len(order))
	for _, name := range order {
		item := tracks[name].item
		item.EndTime = last.DT.UTC().String()
		item.TrajectoryPlot.Duration = fmt.Sprintf("%d d", int(last.DT.Sub(first.DT).Hours()/24+1))
		items = append(items, item)
	}
	c := CgCatalog{Version: "1.0", Name: conf.Filename, Items: items}
	fc, err := os.Create(conf.path("catalog", conf.Filename, "json"))
	if err != nil {
		return err
	}
	defer fc.Close()
	enc := json.NewEncoder(fc)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// WritePaths writes the cached orbit path of every orbiting body of the system as JSON,
// generating the paths with n samples where needed.
func WritePaths(w io.Writer, sys *System, n int) error {
	paths := make(map[string][]r3.Vec)
	for _, b := range sys.Bodies() {
		if b.Orbit != nil {
			paths[b.Name] = b.Path(n)
		}
	}
	return json.NewEncoder(w).Encode(paths)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

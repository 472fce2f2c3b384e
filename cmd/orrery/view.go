package main

import (
	"fmt"
	"math"

	"github.com/ChristopherRabotin/orrery"
	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	pathStyle      = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	traversedStyle = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	trailStyle     = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	starStyle      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	bodyStyle      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	statusStyle    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// cellAspect compensates for terminal cells being about twice as tall as wide.
const cellAspect = 2.0

// viewport maps the display XZ plane onto the terminal, looking down the display Y axis.
type viewport struct {
	width, height int
	zoom          float64 // cells per world unit, horizontally
	center        r3.Vec  // world position at the middle of the screen
}

// project returns the cell of the world position.
func (v viewport) project(w r3.Vec) (col, row int) {
	d := r3.Sub(w, v.center)
	col = v.width/2 + int(math.Round(d.X*v.zoom))
	row = v.height/2 + int(math.Round(d.Z*v.zoom/cellAspect))
	return
}

func (v viewport) visible(col, row int) bool {
	// The last row is the status bar.
	return col >= 0 && col < v.width && row >= 0 && row < v.height-1
}

// fit returns the zoom showing the whole extent on the screen.
func (v viewport) fit(extent float64) float64 {
	if extent <= 0 {
		return 1
	}
	return math.Min(float64(v.width)/2, cellAspect*float64(v.height-1)/2) / extent
}

// systemExtent returns the largest distance from the origin reached by any orbit, in world units.
func systemExtent(sim *orrery.Simulation) (extent float64) {
	var sum func(b *orrery.Body) float64
	sum = func(b *orrery.Body) float64 {
		if b.Orbit == nil {
			return 0
		}
		return b.Orbit.Apoapsis() + sum(b.Parent())
	}
	for _, b := range sim.System.Bodies() {
		extent = math.Max(extent, sum(b))
	}
	return extent * sim.RenderScale
}

// drawFrame draws the orbit paths, the trails, the bodies and the status line.
func drawFrame(s tcell.Screen, v viewport, sim *orrery.Simulation, frame orrery.Frame, trails bool) {
	s.Clear()
	for _, st := range frame.Bodies {
		b, ok := sim.System.Find(st.Name)
		if !ok || b.Orbit == nil {
			continue
		}
		parent, _ := frame.Body(st.Parent)
		path := b.Path(sim.PathSamples)
		traversed, _ := orrery.SplitPath(path, st.ProgressIndex)
		step := len(path) / (4 * v.width)
		if step < 1 {
			step = 1
		}
		for k := 0; k < len(path); k += step {
			style := pathStyle
			if k < len(traversed) {
				style = traversedStyle
			}
			world := r3.Add(parent.World, r3.Scale(sim.RenderScale, orrery.ToDisplay(path[k])))
			if col, row := v.project(world); v.visible(col, row) {
				s.SetContent(col, row, '·', nil, style)
			}
		}
	}
	if trails && sim.RecordTrails {
		for _, b := range sim.System.Bodies() {
			for _, p := range b.Trail().Points() {
				if col, row := v.project(p); v.visible(col, row) {
					s.SetContent(col, row, '∙', nil, trailStyle)
				}
			}
		}
	}
	for _, st := range frame.Bodies {
		col, row := v.project(st.World)
		if !v.visible(col, row) {
			continue
		}
		style, glyph := bodyStyle, '●'
		if st.Parent == "" {
			style, glyph = starStyle, '☼'
		}
		s.SetContent(col, row, glyph, nil, style)
		drawText(s, col+2, row, v.width, st.Name, style)
	}
	state := "running"
	if sim.Clock.Paused {
		state = "paused"
	}
	status := fmt.Sprintf(" %s  %.3f yr  x%g  zoom %.2f  %s  [space] pause [+/-] speed [[/]] zoom [t] trails [q] quit",
		frame.DT.Format("2006-01-02"), frame.Years, sim.Clock.Scale, v.zoom, state)
	for col := 0; col < v.width; col++ {
		s.SetContent(col, v.height-1, ' ', nil, statusStyle)
	}
	drawText(s, 0, v.height-1, v.width, status, statusStyle)
	s.Show()
}

func drawText(s tcell.Screen, col, row, width int, text string, style tcell.Style) {
	for _, r := range text {
		if col >= width {
			return
		}
		s.SetContent(col, row, r, nil, style)
		col++
	}
}

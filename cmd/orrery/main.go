package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ChristopherRabotin/orrery"
	"github.com/gdamore/tcell/v2"
	kitlog "github.com/go-kit/kit/log"
)

// Terminal orrery: a top-down view of the system, looking down onto the orbital plane.

const defaultScenario = "~~unset~~"

var (
	scenario  string
	fps       int
	timeScale float64
	logFile   string
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "scenario TOML file (default: $ORRERY_CONFIG/orrery.toml or the solar system)")
	flag.IntVar(&fps, "fps", 30, "frames per second")
	flag.Float64Var(&timeScale, "scale", -1, "initial time acceleration (default: from the scenario)")
	flag.StringVar(&logFile, "log", "", "log file (the terminal is used by the view)")
}

type viewer struct {
	screen tcell.Screen
	sim    *orrery.Simulation
	view   viewport
	extent float64
	trails bool
}

func main() {
	flag.Parse()
	if fps < 1 {
		log.Fatalf("invalid frame rate %d", fps)
	}
	var sc *orrery.Scenario
	var err error
	if scenario == defaultScenario {
		sc, err = orrery.LoadDefaultScenario()
	} else {
		sc, err = orrery.LoadScenario(scenario)
	}
	if err != nil {
		log.Fatalf("could not load scenario: %s", err)
	}

	logger := kitlog.NewNopLogger()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("could not open log file: %s", err)
		}
		defer f.Close()
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(f))
	}
	opts := []orrery.Option{orrery.WithLogger(logger)}
	if timeScale >= 0 {
		opts = append(opts, orrery.WithTimeScale(sc.Sim.YearsPerSecond, timeScale))
	}
	sim := sc.NewSimulation(opts...)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("could not create screen: %s", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("could not initialize screen: %s", err)
	}
	v := &viewer{screen: screen, sim: sim, extent: systemExtent(sim), trails: true}
	v.resize()
	v.run()
	screen.Fini()
	sim.LogStatus()
	fmt.Printf("stopped at %s (%.3f years)\n", sim.Date().Format("2006-01-02"), sim.Clock.Years)
}

func (v *viewer) resize() {
	v.view.width, v.view.height = v.screen.Size()
	v.view.zoom = v.view.fit(v.extent)
}

// handleInput returns false when the viewer must quit.
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.sim.TogglePause()
			case '+', '=':
				v.sim.Clock.Accelerate(2)
			case '-':
				v.sim.Clock.Accelerate(0.5)
			case ']':
				v.view.zoom *= 1.25
			case '[':
				v.view.zoom /= 1.25
			case '0':
				v.view.zoom = v.view.fit(v.extent)
			case 't':
				v.trails = !v.trails
			}
		}
	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	}
	return true
}

func (v *viewer) run() {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			frame := v.sim.Tick(now.Sub(last).Seconds())
			last = now
			drawFrame(v.screen, v.view, v.sim, frame, v.trails)
		}
	}
}

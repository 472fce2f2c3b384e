package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ChristopherRabotin/orrery"
	"github.com/ChristopherRabotin/orrery/stream"
	kitlog "github.com/go-kit/kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Headless run of a scenario: exports the frames and optionally streams them over a websocket.

const defaultScenario = "~~unset~~"

var (
	scenario string
	ticks    int
	step     time.Duration
	every    int
	outDir   string
	name     string
	asCSV    bool
	cosmo    bool
	paths    bool
	listen   string
	maxRate  float64
	realtime bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "scenario TOML file (default: $ORRERY_CONFIG/orrery.toml or the solar system)")
	flag.IntVar(&ticks, "ticks", 1200, "number of ticks to run")
	flag.DurationVar(&step, "step", time.Second/20, "real duration of each tick")
	flag.IntVar(&every, "every", 1, "export one frame out of every N")
	flag.StringVar(&outDir, "out", ".", "output directory")
	flag.StringVar(&name, "name", "orrery", "base name of the output files")
	flag.BoolVar(&asCSV, "csv", true, "export the frames as CSV")
	flag.BoolVar(&cosmo, "cosmo", false, "export Cosmographia trajectories and catalog")
	flag.BoolVar(&paths, "paths", false, "write the cached orbit paths as JSON")
	flag.StringVar(&listen, "listen", "", "address serving the /stream websocket and /metrics (e.g. :8080)")
	flag.Float64Var(&maxRate, "rate", 10, "maximum frames per second sent to each websocket client")
	flag.BoolVar(&realtime, "realtime", false, "sleep for each step instead of running as fast as possible")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

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

	reg := prometheus.NewRegistry()
	sim := sc.NewSimulation(orrery.WithLogger(logger), orrery.WithMetrics(orrery.NewMetrics(reg)))

	var wg sync.WaitGroup
	var sinks []chan orrery.Frame
	conf := orrery.ExportConfig{Dir: outDir, Filename: name, AsCSV: asCSV, Cosmo: cosmo, Every: every}
	if !conf.IsUseless() {
		frames := make(chan orrery.Frame, 16)
		sinks = append(sinks, frames)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := orrery.StreamFrames(conf, frames); err != nil {
				logger.Log("level", "critical", "subsys", "export", "err", err)
			}
		}()
	}
	if listen != "" {
		hub := stream.NewHub(maxRate, logger)
		frames := make(chan orrery.Frame, 16)
		sinks = append(sinks, frames)
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Run(frames)
		}()
		mux := http.NewServeMux()
		mux.Handle("/stream", hub)
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			logger.Log("level", "info", "subsys", "http", "listen", listen)
			if err := http.ListenAndServe(listen, mux); err != nil {
				log.Fatalf("http: %s", err)
			}
		}()
	}

	for k := 0; k < ticks; k++ {
		frame := sim.Tick(step.Seconds())
		for _, sink := range sinks {
			sink <- frame
		}
		if realtime {
			time.Sleep(step)
		}
	}
	for _, sink := range sinks {
		close(sink)
	}
	wg.Wait()
	sim.LogStatus()

	if paths {
		f, err := os.Create(filepath.Join(outDir, "paths-"+name+".json"))
		if err != nil {
			log.Fatalf("could not create paths file: %s", err)
		}
		defer f.Close()
		if err := orrery.WritePaths(f, sim.System, sim.PathSamples); err != nil {
			log.Fatalf("could not write paths: %s", err)
		}
	}
}

// Command simulation runs the flock without a window and logs its state.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "JSON or TOML configuration file (defaults when empty)")
	schemaFile := flag.String("schema", "", "JSON schema for the configuration (embedded one when empty)")
	steps := flag.Int("steps", 1000, "number of steps to run")
	every := flag.Int("every", 100, "log flock statistics every n steps, 0 to disable")
	debug := flag.Bool("debug", false, "enable debug logs")
	flag.Parse()

	level := golog.InfoLevel
	if *debug {
		level = golog.DebugLevel
	}
	logger := golog.New(level, os.Stdout)

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile, *schemaFile); err != nil {
			logger.Errorf("simulation: %v", err)
			os.Exit(1)
		}
	}
	logger.Debugf("config: %+v", *cfg)

	flock := behavior.NewFlock(cfg.Settings(), cfg.Rand())
	start := time.Now()
	for i := 1; i <= *steps; i++ {
		flock.Step()
		if *every > 0 && i%*every == 0 {
			logger.Infof("step %s | mean speed %.4f | non-finite boids %d",
				humanize.Comma(int64(i)), flock.MeanSpeed(), countNonFinite(flock))
		}
	}

	elapsed := time.Since(start)
	logger.Infof("ran %s steps of %d boids in %s (%.2fms/step)",
		humanize.Comma(int64(flock.Steps())), flock.Len(), elapsed,
		float64(elapsed.Microseconds())/1000/float64(max(*steps, 1)))
}

// countNonFinite reports how many boids hold NaN or infinite state, which
// only happens in legacy mode.
func countNonFinite(f *behavior.Flock) int {
	n := 0
	for _, b := range f.Boids() {
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			n++
		}
	}
	return n
}

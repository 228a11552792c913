package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/render"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "JSON or TOML configuration file (defaults when empty)")
	schemaFile := flag.String("schema", "", "JSON schema for the configuration (embedded one when empty)")
	debug := flag.Bool("debug", false, "enable debug logs")
	flag.Parse()

	level := golog.InfoLevel
	if *debug {
		level = golog.DebugLevel
	}
	logger := golog.New(level, os.Stdout)

	if err := run(*configFile, *schemaFile, logger); err != nil {
		logger.Errorf("boids: %v", err)
		os.Exit(1)
	}
}

func run(configFile, schemaFile string, logger golog.Logger) error {
	cfg := simulation.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(configFile, schemaFile); err != nil {
			return err
		}
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return fmt.Errorf("failed to start actor system: %w", err)
	}
	defer func() {
		if err := system.Stop(ctx); err != nil {
			logger.Errorf("failed to stop actor system: %v", err)
		}
	}()

	game, err := render.NewGame(ctx, cfg, system)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Boids: alignment, cohesion, separation")
	return ebiten.RunGame(game)
}

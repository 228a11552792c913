package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/behavior"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

//go:embed config.schema.json
var defaultSchema string

type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth" toml:"worldWidth"`
	WorldHeight float64 `json:"worldHeight" toml:"worldHeight"`

	// Population, constant for the whole run
	Population int `json:"population" toml:"population"`

	// Physics / Behavior
	MaxForce         float64 `json:"maxForce" toml:"maxForce"`
	MaxSpeed         float64 `json:"maxSpeed" toml:"maxSpeed"`
	PerceptionRadius float64 `json:"perceptionRadius" toml:"perceptionRadius"`
	SeparationWeight float64 `json:"separationWeight" toml:"separationWeight"`

	// LegacyMode reproduces the original self-exclusion by state equality
	// and lets degenerate steering produce NaN.
	LegacyMode bool `json:"legacyMode" toml:"legacyMode"`

	// Seed of the initial placement, 0 picks a random one.
	Seed uint64 `json:"seed" toml:"seed"`

	// TicksPerFrame is how many steps the world advances per rendered frame.
	TicksPerFrame int `json:"ticksPerFrame" toml:"ticksPerFrame"`
}

func DefaultConfig() *Config {
	s := behavior.DefaultSettings()
	return &Config{
		WorldWidth:       s.Width,
		WorldHeight:      s.Height,
		Population:       s.Population,
		MaxForce:         s.MaxForce,
		MaxSpeed:         s.MaxSpeed,
		PerceptionRadius: s.PerceptionRadius,
		SeparationWeight: s.SeparationWeight,
		TicksPerFrame:    1,
	}
}

// LoadConfig loads configuration from a JSON or TOML file, on top of the
// defaults, and validates it against the schema.
// An empty schemaFile selects the schema embedded in the binary.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	sch, err := compileSchema(schemaFile)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".toml":
		err = loadTOML(configFile, sch, cfg)
	default:
		err = loadJSON(configFile, sch, cfg)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func compileSchema(schemaFile string) (*jsonschema.Schema, error) {
	var (
		sch *jsonschema.Schema
		err error
	)
	if schemaFile == "" {
		sch, err = jsonschema.CompileString("config.schema.json", defaultSchema)
	} else {
		sch, err = jsonschema.Compile(schemaFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return sch, nil
}

func loadJSON(configFile string, sch *jsonschema.Schema, cfg *Config) error {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := json.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

func loadTOML(configFile string, sch *jsonschema.Schema, cfg *Config) error {
	md, err := toml.DecodeFile(configFile, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode config toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown keys %v", ErrInvalidConfig, undecoded)
	}

	// the schema speaks JSON, so validate the merged result in that form
	b, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks the invariants the engine relies on.
func (c *Config) Validate() error {
	switch {
	case c.WorldWidth <= 0 || c.WorldHeight <= 0:
		return fmt.Errorf("%w: world must have a positive size, got %vx%v", ErrInvalidConfig, c.WorldWidth, c.WorldHeight)
	case c.Population < 0:
		return fmt.Errorf("%w: negative population %d", ErrInvalidConfig, c.Population)
	case c.MaxForce < 0 || c.MaxSpeed < 0:
		return fmt.Errorf("%w: maxForce and maxSpeed must not be negative", ErrInvalidConfig)
	case c.PerceptionRadius < 0:
		return fmt.Errorf("%w: negative perception radius %v", ErrInvalidConfig, c.PerceptionRadius)
	case c.TicksPerFrame < 1:
		return fmt.Errorf("%w: ticksPerFrame must be at least 1, got %d", ErrInvalidConfig, c.TicksPerFrame)
	}
	return nil
}

// Settings converts the configuration into the engine constants.
func (c *Config) Settings() behavior.Settings {
	return behavior.Settings{
		Width:            c.WorldWidth,
		Height:           c.WorldHeight,
		Population:       c.Population,
		MaxForce:         c.MaxForce,
		MaxSpeed:         c.MaxSpeed,
		PerceptionRadius: c.PerceptionRadius,
		SeparationWeight: c.SeparationWeight,
		LegacyMode:       c.LegacyMode,
	}
}

// Rand returns the random source used for the initial placement.
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	particle "github.com/esimov/ascii-particles/particle-system"
	"gopkg.in/yaml.v2"
)

// Run modes.
const (
	ModeTerminal = "terminal"
	ModeServer   = "server"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete application configuration.
type Config struct {
	Viewport  Viewport  `yaml:"viewport"`
	Particles Particles `yaml:"particles"`
	Seed      int64     `yaml:"seed"`
	FPS       int       `yaml:"fps"`
	Mode      string    `yaml:"mode"`
	Server    Server    `yaml:"server"`
	Log       Log       `yaml:"log"`
}

type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Particles struct {
	Capacity      int     `yaml:"capacity"`
	SpawnEvery    uint64  `yaml:"spawn_every"`
	ExplosionOdds int     `yaml:"explosion_odds"`
	Fanout        int     `yaml:"fanout"`
	Speed         float64 `yaml:"speed"`
	Size          float64 `yaml:"size"`
	Origin        Point   `yaml:"origin"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Server holds the websocket host parameters.
type Server struct {
	Address string `yaml:"address"`
	Prefix  string `yaml:"prefix"`
	Root    string `yaml:"root"`
}

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	ShowCaller bool   `yaml:"show_caller"`
}

// Default returns the reference configuration.
func Default() Config {
	p := particle.DefaultConfig()
	return Config{
		Viewport: Viewport{Width: p.Width, Height: p.Height},
		Particles: Particles{
			Capacity:      p.Capacity,
			SpawnEvery:    p.SpawnEvery,
			ExplosionOdds: p.ExplosionOdds,
			Fanout:        p.Fanout,
			Speed:         p.Speed,
			Size:          p.Size,
		},
		FPS:  60,
		Mode: ModeTerminal,
		Server: Server{
			Address: "localhost:5000",
			Prefix:  "/",
			Root:    ".",
		},
		Log: Log{
			Level: "info",
			File:  "debug.log",
		},
	}
}

// Load reads the YAML file at path on top of the defaults. A missing file
// is not an error when optional is set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	source, err := ioutil.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := Parse(source, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. Fields absent from source keep their value.
func Parse(source []byte, cfg *Config) error {
	return yaml.UnmarshalStrict(source, cfg)
}

// Simulation converts the config into simulation tunables.
func (c Config) Simulation() particle.Config {
	return particle.Config{
		Width:         c.Viewport.Width,
		Height:        c.Viewport.Height,
		Origin:        particle.Vec{X: c.Particles.Origin.X, Y: c.Particles.Origin.Y},
		Capacity:      c.Particles.Capacity,
		SpawnEvery:    c.Particles.SpawnEvery,
		ExplosionOdds: c.Particles.ExplosionOdds,
		Fanout:        c.Particles.Fanout,
		Speed:         c.Particles.Speed,
		Size:          c.Particles.Size,
	}
}

// Validate checks every section of the config.
func (c Config) Validate() error {
	if err := c.Simulation().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.FPS)
	}
	switch c.Mode {
	case ModeTerminal, ModeServer:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if c.Mode == ModeServer && c.Server.Address == "" {
		return fmt.Errorf("%w: server address is required", ErrInvalidConfig)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

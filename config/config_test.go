package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	particle "github.com/esimov/ascii-particles/particle-system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesSimulation(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, particle.DefaultConfig(), cfg.Simulation())
	assert.Equal(t, ModeTerminal, cfg.Mode)
	assert.Equal(t, "debug.log", cfg.Log.File)
}

func TestParseOverridesDefaults(t *testing.T) {
	src := []byte(`
viewport:
  width: 800
particles:
  capacity: 50
  origin: {x: 10, y: -5}
mode: server
log:
  level: debug
`)
	cfg := Default()
	require.NoError(t, Parse(src, &cfg))

	assert.Equal(t, 800.0, cfg.Viewport.Width)
	assert.Equal(t, 360.0, cfg.Viewport.Height, "untouched fields keep defaults")
	assert.Equal(t, 50, cfg.Particles.Capacity)
	assert.Equal(t, uint64(5), cfg.Particles.SpawnEvery)
	assert.Equal(t, particle.Vec{X: 10, Y: -5}, cfg.Simulation().Origin)
	assert.Equal(t, ModeServer, cfg.Mode)
	assert.NoError(t, cfg.Validate())
}

func TestParseRejectsUnknownFields(t *testing.T) {
	cfg := Default()
	assert.Error(t, Parse([]byte("particles:\n  gravity: 9.8\n"), &cfg))
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "particles")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("fps: 30\n"), 0644))

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.FPS)

	missing := filepath.Join(dir, "missing.yaml")
	cfg, err = Load(missing, true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(missing, false)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"viewport": func(c *Config) { c.Viewport.Height = -1 },
		"cadence":  func(c *Config) { c.Particles.SpawnEvery = 0 },
		"fps":      func(c *Config) { c.FPS = 0 },
		"mode":     func(c *Config) { c.Mode = "gui" },
		"address":  func(c *Config) { c.Mode = ModeServer; c.Server.Address = "" },
		"level":    func(c *Config) { c.Log.Level = "trace" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

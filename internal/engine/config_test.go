package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/dealing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, dealing.ModeDense, cfg.Mode())
	require.Len(t, cfg.Rooms, 1)
	assert.Equal(t, "main", cfg.Rooms[0].Name)
	assert.Equal(t, 30*time.Second, cfg.Rooms[0].ActionTimeout())
	assert.Equal(t, 60*time.Second, cfg.Rooms[0].ReconnectGrace())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
log_level    = "debug"
weights_path = "weights.json"
default_mode = "superDense"
seed         = 42

room "fast" {
  action_seconds = 5
  max_seats      = 6
}

room "deep" {
  initial_stack           = 5000
  reconnect_grace_seconds = 120
}

room "instant" {
  reconnect_grace_seconds = 0
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "weights.json", cfg.WeightsPath)
	assert.Equal(t, dealing.ModeSuperDense, cfg.Mode())
	assert.Equal(t, int64(42), cfg.Seed)

	fast := cfg.Room("fast")
	assert.Equal(t, 5*time.Second, fast.ActionTimeout())
	assert.Equal(t, 6, fast.MaxSeats)
	assert.Equal(t, 1000, fast.InitialStack)
	assert.Equal(t, 60*time.Second, fast.ReconnectGrace())

	deep := cfg.Room("deep")
	assert.Equal(t, 5000, deep.InitialStack)
	assert.Equal(t, 120*time.Second, deep.ReconnectGrace())

	instant := cfg.Room("instant")
	require.NotNil(t, instant.ReconnectGraceSeconds)
	assert.Equal(t, time.Duration(0), instant.ReconnectGrace(), "an explicit zero grace is kept")
	assert.Equal(t, 30*time.Second, instant.ActionTimeout())

	fallback := cfg.Room("unknown")
	assert.Equal(t, "unknown", fallback.Name)
	assert.Equal(t, 30, fallback.ActionSeconds)
}

func TestLoadConfigParseError(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `room "a" {`))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `unknown_key = 1`))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad mode", func(c *Config) { c.DefaultMode = "sparse" }},
		{"too many seats", func(c *Config) { c.Rooms[0].MaxSeats = 9 }},
		{"too few seats", func(c *Config) { c.Rooms[0].MaxSeats = 1 }},
		{"no chips", func(c *Config) { c.Rooms[0].InitialStack = 0 }},
		{"no clock", func(c *Config) { c.Rooms[0].ActionSeconds = -1 }},
		{"negative grace", func(c *Config) { c.Rooms[0].ReconnectGraceSeconds = seconds(-1) }},
		{"duplicate room", func(c *Config) { c.Rooms = append(c.Rooms, c.Rooms[0]) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

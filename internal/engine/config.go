package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-engine/internal/dealing"
)

const (
	defaultLogLevel      = "info"
	defaultInitialStack  = 1000
	defaultMaxSeats      = 8
	defaultActionSeconds = 30
	defaultGraceSeconds  = 60
	defaultRoomName      = "main"
	minSeats             = 2
	maxSeats             = 8
)

// Config represents the complete engine configuration
type Config struct {
	LogLevel    string       `hcl:"log_level,optional"`
	WeightsPath string       `hcl:"weights_path,optional"`
	DefaultMode string       `hcl:"default_mode,optional"`
	Seed        int64        `hcl:"seed,optional"`
	Rooms       []RoomConfig `hcl:"room,block"`
}

// RoomConfig holds the per-room settings the orchestrator reads
type RoomConfig struct {
	Name          string `hcl:"name,label"`
	InitialStack  int    `hcl:"initial_stack,optional"`
	MaxSeats      int    `hcl:"max_seats,optional"`
	ActionSeconds int    `hcl:"action_seconds,optional"`

	// ReconnectGraceSeconds is nil when unset; zero is a valid grace.
	ReconnectGraceSeconds *int `hcl:"reconnect_grace_seconds,optional"`
}

// ActionTimeout is how long the player to act has before a forced action.
func (r RoomConfig) ActionTimeout() time.Duration {
	return time.Duration(r.ActionSeconds) * time.Second
}

// ReconnectGrace is how long a silent player is still treated as present.
func (r RoomConfig) ReconnectGrace() time.Duration {
	if r.ReconnectGraceSeconds == nil {
		return defaultGraceSeconds * time.Second
	}
	return time.Duration(*r.ReconnectGraceSeconds) * time.Second
}

func seconds(n int) *int {
	return &n
}

// DefaultRoomConfig returns the settings used for rooms missing from the file.
func DefaultRoomConfig(name string) RoomConfig {
	return RoomConfig{
		Name:                  name,
		InitialStack:          defaultInitialStack,
		MaxSeats:              defaultMaxSeats,
		ActionSeconds:         defaultActionSeconds,
		ReconnectGraceSeconds: seconds(defaultGraceSeconds),
	}
}

// DefaultConfig returns default engine configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    defaultLogLevel,
		DefaultMode: string(dealing.ModeDense),
		Rooms:       []RoomConfig{DefaultRoomConfig(defaultRoomName)},
	}
}

// LoadConfig loads engine configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.DefaultMode == "" {
		c.DefaultMode = string(dealing.ModeDense)
	}
	if len(c.Rooms) == 0 {
		c.Rooms = []RoomConfig{DefaultRoomConfig(defaultRoomName)}
	}

	for i := range c.Rooms {
		r := &c.Rooms[i]
		if r.InitialStack == 0 {
			r.InitialStack = defaultInitialStack
		}
		if r.MaxSeats == 0 {
			r.MaxSeats = defaultMaxSeats
		}
		if r.ActionSeconds == 0 {
			r.ActionSeconds = defaultActionSeconds
		}
		if r.ReconnectGraceSeconds == nil {
			r.ReconnectGraceSeconds = seconds(defaultGraceSeconds)
		}
	}
}

// Validate validates the engine configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if _, err := dealing.ParseMode(c.DefaultMode); err != nil {
		return err
	}

	names := make(map[string]bool)
	for _, r := range c.Rooms {
		if names[r.Name] {
			return fmt.Errorf("duplicate room name: %s", r.Name)
		}
		names[r.Name] = true
		if err := r.Validate(); err != nil {
			return fmt.Errorf("room %s: %w", r.Name, err)
		}
	}
	return nil
}

// Validate checks a single room's settings.
func (r RoomConfig) Validate() error {
	if r.InitialStack <= 0 {
		return fmt.Errorf("initial_stack must be positive, got %d", r.InitialStack)
	}
	if r.MaxSeats < minSeats || r.MaxSeats > maxSeats {
		return fmt.Errorf("max_seats must be between %d and %d, got %d", minSeats, maxSeats, r.MaxSeats)
	}
	if r.ActionSeconds <= 0 {
		return fmt.Errorf("action_seconds must be positive, got %d", r.ActionSeconds)
	}
	if g := r.ReconnectGraceSeconds; g != nil && *g < 0 {
		return fmt.Errorf("reconnect_grace_seconds cannot be negative, got %d", *g)
	}
	return nil
}

// Room returns the named room's settings, falling back to the defaults.
func (c *Config) Room(name string) RoomConfig {
	for _, r := range c.Rooms {
		if r.Name == name {
			return r
		}
	}
	return DefaultRoomConfig(name)
}

// Mode returns the configured default dealing mode.
func (c *Config) Mode() dealing.Mode {
	return dealing.Mode(c.DefaultMode)
}

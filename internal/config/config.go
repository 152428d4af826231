// Package config gathers every tunable of the scene in one place and applies
// overrides from a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/litescript/ls-orbits/internal/capture"
	"github.com/litescript/ls-orbits/internal/starfield"
)

// EnvPrefix is prepended to every recognised environment variable.
const EnvPrefix = "LS_ORBITS_"

// Frame interval bounds.
const (
	MinFrameInterval = 8 * time.Millisecond
	MaxFrameInterval = 250 * time.Millisecond
)

// CameraConfig describes the auto-orbiting perspective camera.
type CameraConfig struct {
	FovDeg     float64
	Near       float64
	Far        float64
	Radius     float64 // Horizontal distance from the origin
	Height     float64
	RotateStep float64 // Radians per frame while not pressed
}

// Config holds all runtime settings.
type Config struct {
	FrameInterval time.Duration
	Seed          uint64 // 0 picks a time-based seed
	CellWidthPx   float64
	CellHeightPx  float64
	JournalSize   int

	LogLevel   string
	LogFile    string
	Background string

	Camera  CameraConfig
	Capture capture.Config
	Stars   starfield.Config
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		FrameInterval: 16 * time.Millisecond,
		CellWidthPx:   8,
		CellHeightPx:  16,
		JournalSize:   50,
		LogLevel:      "info",
		Camera: CameraConfig{
			FovDeg:     75,
			Near:       0.1,
			Far:        1000,
			Radius:     20,
			Height:     10,
			RotateStep: 0.002,
		},
		Capture: capture.DefaultConfig(),
		Stars:   starfield.DefaultConfig(),
	}
}

// FPS returns the frame rate implied by FrameInterval.
func (c Config) FPS() float64 {
	if c.FrameInterval <= 0 {
		return 0
	}
	return float64(time.Second) / float64(c.FrameInterval)
}

// SetFPS sets FrameInterval from a frame rate, clamped to the allowed range.
func (c *Config) SetFPS(fps float64) {
	if fps <= 0 {
		return
	}
	d := time.Duration(float64(time.Second) / fps)
	if d < MinFrameInterval {
		d = MinFrameInterval
	} else if d > MaxFrameInterval {
		d = MaxFrameInterval
	}
	c.FrameInterval = d
}

// LoadDotEnv reads KEY=VALUE pairs from path. A missing file is not an error.
func LoadDotEnv(path string) (map[string]string, error) {
	vals, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return vals, nil
}

// Lookup finds a setting by its full variable name.
type Lookup func(key string) (string, bool)

// Layered returns a Lookup that prefers the process environment and falls back
// to dotenv values.
func Layered(dotenv map[string]string) Lookup {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

// ApplyEnv overrides fields from LS_ORBITS_* variables.
func (c *Config) ApplyEnv(lookup Lookup) error {
	if v, ok := lookup(EnvPrefix + "FPS"); ok && v != "" {
		fps, err := strconv.ParseFloat(v, 64)
		if err != nil || fps <= 0 {
			return fmt.Errorf("%sFPS=%q: want a positive number", EnvPrefix, v)
		}
		c.SetFPS(fps)
	}
	if v, ok := lookup(EnvPrefix + "SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED=%q: %w", EnvPrefix, v, err)
		}
		c.Seed = seed
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FILE"); ok {
		c.LogFile = v
	}
	if v, ok := lookup(EnvPrefix + "BACKGROUND"); ok {
		c.Background = v
	}
	return nil
}

package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config holds the configuration for a simulation run
type Config struct {
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	FrameRate      time.Duration `json:"frame_rate"`
	MaxGenerations int           `json:"max_generations"` // 0 runs until interrupted
	Workers        int           `json:"workers"`         // 0 uses one worker per CPU
	Seed           string        `json:"seed"`            // selector understood by model.ParseSeed
	Color          bool          `json:"color"`
	Trace          bool          `json:"trace"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:          64,
		Height:         64,
		FrameRate:      100 * time.Millisecond,
		MaxGenerations: 0,
		Workers:        1,
		Seed:           "reference",
		Color:          true,
		Trace:          false,
	}
}

// LoadConfig loads configuration from JSON file, keeping defaults for
// missing fields
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("[Config.Validate] dimensions must be positive, got %dx%d", c.Width, c.Height)
	case c.FrameRate < 0:
		return errors.Errorf("[Config.Validate] negative frame rate %v", c.FrameRate)
	case c.MaxGenerations < 0:
		return errors.Errorf("[Config.Validate] negative generation limit %d", c.MaxGenerations)
	case c.Workers < 0:
		return errors.Errorf("[Config.Validate] negative worker count %d", c.Workers)
	}
	return nil
}

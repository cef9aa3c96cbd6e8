// Package config loads the InkBoard tuning file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"InkBoard/internal/spline"
	"InkBoard/internal/state"
)

// DefaultFilename is looked up in the working directory when no path is given.
const DefaultFilename = "inkboard.yml"

// maxConfigSize bounds how much of a config file is read.
const maxConfigSize = 1 << 20

// Tuning holds every setting of the binary. Stroke settings are copied into
// each stroke when it opens and never renegotiated mid-stroke.
type Tuning struct {
	Basis           spline.Basis  `yaml:"basis"`
	Cyclic          bool          `yaml:"cyclic"`
	MinPoints       int           `yaml:"min_points"`
	ResolutionMin   int           `yaml:"resolution_min"`
	ResolutionMax   int           `yaml:"resolution_max"`
	DistanceDivisor int           `yaml:"distance_divisor"`
	InitialCapacity int           `yaml:"initial_capacity"`
	Workers         int           `yaml:"workers"`
	FrameInterval   time.Duration `yaml:"frame_interval"`
	Listen          string        `yaml:"listen"`
	Advertise       bool          `yaml:"advertise"`
	LogLevel        string        `yaml:"log_level"`
}

// Default returns the built-in tuning.
func Default() Tuning {
	sc := state.DefaultConfig()
	return Tuning{
		Basis:           sc.Basis,
		Cyclic:          sc.Cyclic,
		MinPoints:       sc.MinPoints,
		ResolutionMin:   sc.ResolutionMin,
		ResolutionMax:   sc.ResolutionMax,
		DistanceDivisor: sc.DistanceDivisor,
		InitialCapacity: sc.InitialCapacity,
		FrameInterval:   16 * time.Millisecond,
		Listen:          ":8888",
		Advertise:       true,
		LogLevel:        "info",
	}
}

// Load reads the YAML file at path over the defaults. A missing file yields
// the defaults; a malformed or invalid one is an error.
func Load(path string) (Tuning, error) {
	t := Default()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return t, nil
		}
		return t, fmt.Errorf("stat config %s: %w", path, err)
	}
	if info.Size() > maxConfigSize {
		return t, fmt.Errorf("config %s is %d bytes, limit %d", path, info.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Parse(data, &t); err != nil {
		return t, fmt.Errorf("config %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes data into t, keeping the values of keys that are absent,
// and validates the result.
func Parse(data []byte, t *Tuning) error {
	if err := yaml.Unmarshal(data, t); err != nil {
		return err
	}
	return t.Validate()
}

// Validate checks the stroke settings and the process settings.
func (t Tuning) Validate() error {
	if err := t.StrokeConfig().Validate(); err != nil {
		return err
	}
	if t.FrameInterval <= 0 {
		return fmt.Errorf("frame_interval must be positive, got %s", t.FrameInterval)
	}
	if t.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", t.Workers)
	}
	return nil
}

// StrokeConfig extracts the per-stroke tessellation settings.
func (t Tuning) StrokeConfig() state.Config {
	return state.Config{
		Basis:           t.Basis,
		Cyclic:          t.Cyclic,
		MinPoints:       t.MinPoints,
		ResolutionMin:   t.ResolutionMin,
		ResolutionMax:   t.ResolutionMax,
		DistanceDivisor: t.DistanceDivisor,
		InitialCapacity: t.InitialCapacity,
	}
}

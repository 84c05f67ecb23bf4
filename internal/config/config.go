// Package config loads the backdrop configuration: embedded defaults with an
// optional YAML file laid over them.
package config

import (
	_ "embed"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the backdrop. It is not modified after startup.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Motion MotionConfig `yaml:"motion"`
	Field  FieldConfig  `yaml:"field"`
	Card   CardConfig   `yaml:"card"`
	Audio  AudioConfig  `yaml:"audio"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Title          string  `yaml:"title"`
	MaxDeviceScale float64 `yaml:"max_device_scale"` // Device pixel ratio cap
	Background     string  `yaml:"background"`
}

// MotionConfig holds accessibility preferences.
type MotionConfig struct {
	Reduced bool `yaml:"reduced"` // Never mount the particle field
}

// FieldConfig holds particle field parameters.
type FieldConfig struct {
	BaselineParticles int     `yaml:"baseline_particles"`
	DensityFactor     float64 `yaml:"density_factor"` // Extra particles per square logical pixel
	MaxParticles      int     `yaml:"max_particles"`
	MinSize           float64 `yaml:"min_size"`
	MaxSize           float64 `yaml:"max_size"`
	MaxVelocity       float64 `yaml:"max_velocity"`
	ConnectDistance   float64 `yaml:"connect_distance"`
	PointerInfluence  float64 `yaml:"pointer_influence"`
	PointerStrength   float64 `yaml:"pointer_strength"`
	BoundsMargin      float64 `yaml:"bounds_margin"` // Distance outside the view before a reset
	SpawnOffset       float64 `yaml:"spawn_offset"`  // Edge distance for respawned particles
	Color             string  `yaml:"color"`
	GlowBlur          float64 `yaml:"glow_blur"`
	GlowAlpha         float64 `yaml:"glow_alpha"`
	LineWidth         float64 `yaml:"line_width"`
	LineAlpha         float64 `yaml:"line_alpha"`
}

// CardConfig holds the tilt card parameters.
type CardConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Dampening   float64 `yaml:"dampening"`   // Degrees of rotation at the card edge, doubled
	Perspective float64 `yaml:"perspective"` // Viewer distance used when projecting corners
	Color       string  `yaml:"color"`
	Border      string  `yaml:"border"`
}

// AudioConfig holds background track settings.
type AudioConfig struct {
	Path        string        `yaml:"path"`
	Pick        bool          `yaml:"pick"` // Ask for a file when Path is empty
	Volume      float64       `yaml:"volume"`
	UnmuteDelay time.Duration `yaml:"unmute_delay"`
	RingSize    int           `yaml:"ring_size"`
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, errors.Wrap(err, "parse embedded defaults")
	}
	return cfg, nil
}

// Load reads the embedded defaults and overlays path when it is non-empty.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Window.MaxDeviceScale < 1:
		return errors.Errorf("window.max_device_scale must be at least 1, got %g", c.Window.MaxDeviceScale)
	case c.Field.BaselineParticles < 0 || c.Field.MaxParticles < 0:
		return errors.New("particle counts must not be negative")
	case c.Field.DensityFactor < 0:
		return errors.New("field.density_factor must not be negative")
	case c.Field.MinSize <= 0 || c.Field.MaxSize < c.Field.MinSize:
		return errors.Errorf("field size range [%g, %g] is invalid", c.Field.MinSize, c.Field.MaxSize)
	case c.Field.ConnectDistance <= 0:
		return errors.New("field.connect_distance must be positive")
	case c.Field.PointerInfluence <= 0:
		return errors.New("field.pointer_influence must be positive")
	case c.Field.SpawnOffset >= c.Field.BoundsMargin:
		return errors.Errorf("field.spawn_offset (%g) must be inside field.bounds_margin (%g)",
			c.Field.SpawnOffset, c.Field.BoundsMargin)
	case c.Card.Width <= 0 || c.Card.Height <= 0:
		return errors.New("card size must be positive")
	case c.Card.Perspective <= 0:
		return errors.New("card.perspective must be positive")
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return errors.Errorf("audio.volume must be in [0, 1], got %g", c.Audio.Volume)
	case c.Audio.UnmuteDelay < 0:
		return errors.New("audio.unmute_delay must not be negative")
	case c.Audio.RingSize <= 0:
		return errors.New("audio.ring_size must be positive")
	}

	colors := []struct{ name, hex string }{
		{"window.background", c.Window.Background},
		{"field.color", c.Field.Color},
		{"card.color", c.Card.Color},
		{"card.border", c.Card.Border},
	}
	for _, clr := range colors {
		if _, err := colorful.Hex(clr.hex); err != nil {
			return errors.Wrapf(err, "%s", clr.name)
		}
	}
	return nil
}

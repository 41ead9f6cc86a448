// Package config provides configuration loading and access for the plant viewer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/sprout/genetics"
	"github.com/pthm-cable/sprout/plant"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Gene      genetics.Meta   `yaml:"gene"`
	Growth    GrowthConfig    `yaml:"growth"`
	Animation AnimationConfig `yaml:"animation"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GrowthConfig holds plant construction parameters.
type GrowthConfig struct {
	BaseRadius  float64 `yaml:"base_radius"`  // trunk radius at the ground
	TypeGrammar bool    `yaml:"type_grammar"` // derive a gene per branch from the plant type grammar
	MaxNodes    int     `yaml:"max_nodes"`    // viewer refuses to grow past this many segments (0 = unlimited)

	plant.Settings `yaml:",inline"`
}

// AnimationConfig holds sway parameters.
type AnimationConfig struct {
	SwayAmplitude float64 `yaml:"sway_amplitude"` // radians
	TimeStep      float64 `yaml:"time_step"`      // timer advance per frame at 60 fps
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	MinPolar    float64 `yaml:"min_polar"` // radians from the up axis
	TargetY     float64 `yaml:"target_y"`
	Fovy        float64 `yaml:"fovy"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SwayAmplitude32 float32 // Animation.SwayAmplitude as float32
	TimeRate        float64 // timer advance per second
	ScreenW32       float32 // Screen.Width as float32
	ScreenH32       float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects settings the growth engine cannot work with.
func (c *Config) validate() error {
	if !(c.Growth.BaseRadius > plant.RootTaper.Max()) {
		return fmt.Errorf("growth.base_radius %g: %w", c.Growth.BaseRadius, plant.ErrBaseRadius)
	}
	// Sample one gene so bad gene ranges fail at load time instead of on first use.
	if _, err := genetics.NewGene(1, genetics.Root, c.Gene); err != nil {
		return fmt.Errorf("gene config: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.SwayAmplitude32 = float32(c.Animation.SwayAmplitude)
	c.Derived.TimeRate = c.Animation.TimeStep * 60
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Telemetry.PerfCollectorWindow < 1 {
		c.Telemetry.PerfCollectorWindow = 60
	}
	if c.Growth.LeafSlots < 1 {
		c.Growth.LeafSlots = 3
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

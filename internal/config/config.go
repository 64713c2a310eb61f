package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 1.0 / 60.0
	DefaultDuration = 10.0
	DefaultFPS      = 60
	DefaultWidth    = 800
	DefaultHeight   = 450
	DefaultTitle    = "flysim"
	DefaultDataDir  = ".flysim"
	DefaultLogLevel = "info"
)

// Config is the application configuration, stored as YAML.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	DataDir  string       `yaml:"data_dir"`
	Vehicles []string     `yaml:"vehicles"`
	Window   WindowConfig `yaml:"window"`
	Sim      SimConfig    `yaml:"sim"`
}

type WindowConfig struct {
	Title      string  `yaml:"title"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FPS        int     `yaml:"fps"`
	Monitor    int     `yaml:"monitor"`
	Opacity    float64 `yaml:"opacity"`
	Fullscreen bool    `yaml:"fullscreen"`
}

// SimConfig drives headless runs.
type SimConfig struct {
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Script   string  `yaml:"script"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		DataDir:  DefaultDataDir,
		Vehicles: []string{"plane", "drone", "spaceship"},
		Window: WindowConfig{
			Title:   DefaultTitle,
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			FPS:     DefaultFPS,
			Opacity: 1.0,
		},
		Sim: SimConfig{
			Dt:       DefaultDt,
			Duration: DefaultDuration,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadVehicles resolves every configured vehicle entry.
func (c *Config) LoadVehicles() ([]*VehicleSpec, error) {
	specs := make([]*VehicleSpec, 0, len(c.Vehicles))
	for _, name := range c.Vehicles {
		spec, err := ResolveSpec(name)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

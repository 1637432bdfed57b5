package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLength    = 10.0
	DefaultPoints    = 400
	DefaultExtent2D  = 20.0
	DefaultPoints2D  = 200
	DefaultWaveSpeed = 1.0
	DefaultOmega0    = 2.0
	DefaultCFL1D     = 0.9
	DefaultCFL2D     = 0.5
	DefaultSteps     = 300
	DefaultSaveEvery = 10
)

type Config struct {
	Mode    string        `yaml:"mode"` // "1d" or "2d"
	Grid    GridConfig    `yaml:"grid"`
	Physics PhysicsConfig `yaml:"physics"`
	Run     RunConfig     `yaml:"run"`
	Pulse   PulseConfig   `yaml:"pulse"`
}

type GridConfig struct {
	Length float64 `yaml:"length"` // 1d
	Points int     `yaml:"points"` // 1d
	Lx     float64 `yaml:"lx"`
	Ly     float64 `yaml:"ly"`
	Nx     int     `yaml:"nx"`
	Ny     int     `yaml:"ny"`
}

type PhysicsConfig struct {
	WaveSpeed float64 `yaml:"wave_speed"`
	Omega0    float64 `yaml:"omega0"`
}

type RunConfig struct {
	CFL       float64 `yaml:"cfl"`
	Steps     int     `yaml:"steps"`
	SaveEvery int     `yaml:"save_every"`
}

type PulseConfig struct {
	Type      string  `yaml:"type"` // gaussian, ring, interference
	Width     float64 `yaml:"width"`
	Amplitude float64 `yaml:"amplitude"`
	Radius    float64 `yaml:"radius"`
	CenterX   float64 `yaml:"center_x"`
	CenterY   float64 `yaml:"center_y"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode: "1d",
		Grid: GridConfig{
			Length: DefaultLength,
			Points: DefaultPoints,
			Lx:     DefaultExtent2D,
			Ly:     DefaultExtent2D,
			Nx:     DefaultPoints2D,
			Ny:     DefaultPoints2D,
		},
		Physics: PhysicsConfig{
			WaveSpeed: DefaultWaveSpeed,
			Omega0:    DefaultOmega0,
		},
		Run: RunConfig{
			CFL:       DefaultCFL1D,
			Steps:     DefaultSteps,
			SaveEvery: DefaultSaveEvery,
		},
		Pulse: PulseConfig{
			Type:      "gaussian",
			Width:     0.1,
			Amplitude: 1.0,
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

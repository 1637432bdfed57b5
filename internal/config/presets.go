package config

var Presets = map[string]*Config{
	"1d-baseline": {
		Mode:    "1d",
		Grid:    GridConfig{Length: 10.0, Points: 400},
		Physics: PhysicsConfig{WaveSpeed: 1.0, Omega0: 2.0},
		Run:     RunConfig{CFL: 0.9, Steps: 500, SaveEvery: 20},
		Pulse:   PulseConfig{Type: "gaussian", Width: 0.1, Amplitude: 1.0},
	},
	"2d-gaussian": {
		Mode:    "2d",
		Grid:    GridConfig{Lx: 20.0, Ly: 20.0, Nx: 200, Ny: 200},
		Physics: PhysicsConfig{WaveSpeed: 1.0, Omega0: 2.0},
		Run:     RunConfig{CFL: 0.5, Steps: 150, SaveEvery: 5},
		Pulse:   PulseConfig{Type: "gaussian", Width: 1.0, Amplitude: 1.0},
	},
	"2d-ring": {
		Mode:    "2d",
		Grid:    GridConfig{Lx: 20.0, Ly: 20.0, Nx: 200, Ny: 200},
		Physics: PhysicsConfig{WaveSpeed: 1.0, Omega0: 3.0},
		Run:     RunConfig{CFL: 0.5, Steps: 150, SaveEvery: 5},
		Pulse:   PulseConfig{Type: "ring", Width: 0.5, Amplitude: 1.0, Radius: 3.0},
	},
	"2d-interference": {
		Mode:    "2d",
		Grid:    GridConfig{Lx: 30.0, Ly: 30.0, Nx: 300, Ny: 300},
		Physics: PhysicsConfig{WaveSpeed: 1.0, Omega0: 1.5},
		Run:     RunConfig{CFL: 0.5, Steps: 150, SaveEvery: 5},
		Pulse:   PulseConfig{Type: "interference", Width: 1.0, Amplitude: 0.7},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

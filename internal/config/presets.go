package config

var Presets = map[string]map[string]*Config{
	"advection": {
		"diagonal": {
			Model: "advection", FactorCFL: 0.5, Duration: 1.0, Outputs: 4,
			Grid:     GridConfig{Dims: 2, Nodes: 81, Min: -1, Max: 1},
			Init:     InitConfig{Shape: "circle", Center: []float64{-0.4, -0.4}, Radius: 0.3},
			Velocity: []float64{0.8, 0.8},
		},
		"slow": {
			Model: "advection", FactorCFL: 0.25, Duration: 0.5, Outputs: 2,
			Grid:     GridConfig{Dims: 2, Nodes: 81, Min: -1, Max: 1},
			Init:     InitConfig{Shape: "circle", Center: []float64{-0.3, 0}, Radius: 0.4},
			Velocity: []float64{0.5, 0},
		},
		"line": {
			Model: "advection", FactorCFL: 0.5, Duration: 0.6, Outputs: 3,
			Grid:     GridConfig{Dims: 1, Nodes: 201, Min: -1, Max: 1},
			Init:     InitConfig{Shape: "interval", Lo: -0.6, Hi: -0.2},
			Velocity: []float64{1},
		},
	},
	"normal": {
		"shrink": {
			Model: "normal", FactorCFL: 0.5, Duration: 0.25, Outputs: 5,
			Grid:  GridConfig{Dims: 2, Nodes: 81, Min: -1, Max: 1},
			Init:  InitConfig{Shape: "circle", Center: []float64{0, 0}, Radius: 0.6},
			Speed: -0.5,
		},
		"grow": {
			Model: "normal", FactorCFL: 0.5, Duration: 0.25, Outputs: 5,
			Grid:  GridConfig{Dims: 2, Nodes: 81, Min: -1, Max: 1},
			Init:  InitConfig{Shape: "circle", Center: []float64{0, 0}, Radius: 0.2},
			Speed: 0.5,
		},
	},
	"pair": {
		"mirror": {
			Model: "pair", FactorCFL: 0.5, Duration: 0.4, Outputs: 4,
			Grid:     GridConfig{Dims: 2, Nodes: 81, Min: -1, Max: 1},
			Init:     InitConfig{Shape: "circle", Center: []float64{0, 0}, Radius: 0.35},
			Velocity: []float64{0.75, 0},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}

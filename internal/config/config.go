package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/robotsorcerer/LevelSetMat/internal/odecfl"
)

const (
	DefaultFactorCFL = 0.5
	DefaultDuration  = 0.5
	DefaultOutputs   = 4
	DefaultNodes     = 81
	DefaultRadius    = 0.4
)

type Config struct {
	Model     string     `yaml:"model"`
	FactorCFL float64    `yaml:"factor_cfl"`
	MaxStep   float64    `yaml:"max_step"` // 0 means unlimited
	Stats     bool       `yaml:"stats"`
	Duration  float64    `yaml:"duration"`
	Outputs   int        `yaml:"outputs"`
	Grid      GridConfig `yaml:"grid"`
	Init      InitConfig `yaml:"init"`
	Velocity  []float64  `yaml:"velocity"`
	Speed     float64    `yaml:"speed"`
}

type GridConfig struct {
	Dims  int     `yaml:"dims"`
	Nodes int     `yaml:"nodes"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

type InitConfig struct {
	Shape  string    `yaml:"shape"` // circle | interval
	Center []float64 `yaml:"center"`
	Radius float64   `yaml:"radius"`
	Lo     float64   `yaml:"lo"`
	Hi     float64   `yaml:"hi"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:     "advection",
		FactorCFL: DefaultFactorCFL,
		Duration:  DefaultDuration,
		Outputs:   DefaultOutputs,
		Grid:      GridConfig{Dims: 2, Nodes: DefaultNodes, Min: -1, Max: 1},
		Init:      InitConfig{Shape: "circle", Center: []float64{-0.3, 0}, Radius: DefaultRadius},
		Velocity:  []float64{1, 0},
		Speed:     -0.5,
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

// Times builds the requested output time span: t=0 plus Outputs evenly
// spaced checkpoints up to Duration.
func (c *Config) Times() ([]float64, error) {
	if c.Duration <= 0 {
		return nil, fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	if c.Outputs < 1 {
		return nil, fmt.Errorf("config: need at least one output time, got %d", c.Outputs)
	}
	ts := make([]float64, c.Outputs+1)
	for i := 1; i <= c.Outputs; i++ {
		ts[i] = c.Duration * float64(i) / float64(c.Outputs)
	}
	return ts, nil
}

// Options maps the configuration onto engine options.
func (c *Config) Options() *odecfl.Options {
	opts := odecfl.DefaultOptions()
	opts.FactorCFL = c.FactorCFL
	opts.Stats = c.Stats
	if c.MaxStep > 0 {
		opts.MaxStep = c.MaxStep
	} else {
		opts.MaxStep = math.Inf(1)
	}
	return opts
}

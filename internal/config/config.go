package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDiscipline = "async"
	DefaultSteps      = 20
	DefaultRuns       = 100
)

type Config struct {
	Network    string          `yaml:"network"`
	Format     string          `yaml:"format"`
	Target     string          `yaml:"target"`
	Discipline string          `yaml:"discipline"`
	Steps      int             `yaml:"steps"`
	Runs       int             `yaml:"runs"`
	Seed       int64           `yaml:"seed"`
	Workers    int             `yaml:"workers"`
	Fixed      map[string]bool `yaml:"fixed"`
	Set        map[string]bool `yaml:"set"`
	Converge   ConvergeConfig  `yaml:"converge"`
}

// ConvergeConfig enables early ensemble termination: stop once the cumulative
// ON% of the target varies less than Epsilon over Window runs.
type ConvergeConfig struct {
	Epsilon float64 `yaml:"epsilon"`
	Window  int     `yaml:"window"`
}

func DefaultConfig() *Config {
	return &Config{
		Discipline: DefaultDiscipline,
		Steps:      DefaultSteps,
		Runs:       DefaultRuns,
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

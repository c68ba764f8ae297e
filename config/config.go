// Package config loads experiment and agent settings from YAML files, with
// compiled-in defaults when no file is given.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Experiment Experiment `yaml:"experiment"`
	Agents     []Agent    `yaml:"agents"`
	Server     Server     `yaml:"server"`
}

type Experiment struct {
	Name  string `yaml:"name"`
	Games int    `yaml:"games"`
	Seed  uint64 `yaml:"seed"`
}

type Agent struct {
	ID              int    `yaml:"id"`
	Kind            string `yaml:"kind"` // random, greedy or mcts
	Episodes        int    `yaml:"episodes"`
	RolloutsPerNode int    `yaml:"rollouts_per_node"`
	RolloutDepth    int    `yaml:"rollout_depth"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

// Default returns the compiled-in configuration: the baseline matchup
// agents and the local server address.
func Default() Config {
	return Config{
		Experiment: Experiment{Name: "baseline", Games: 1000, Seed: 1},
		Agents: []Agent{
			{ID: 1, Kind: "random"},
			{ID: 2, Kind: "greedy"},
			{ID: 3, Kind: "mcts", Episodes: 50, RolloutsPerNode: 8, RolloutDepth: 5},
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads a YAML config file. Fields absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Experiment.Games <= 0 {
		return fmt.Errorf("experiment.games must be positive, got %d", c.Experiment.Games)
	}
	for _, a := range c.Agents {
		switch a.Kind {
		case "random", "greedy", "mcts":
		default:
			return fmt.Errorf("agent %d: unknown kind %q", a.ID, a.Kind)
		}
	}
	return nil
}

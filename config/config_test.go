package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
experiment:
  name: tuning
  games: 200
  seed: 7
server:
  addr: ":9090"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "tuning", cfg.Experiment.Name)
		require.Equal(t, 200, cfg.Experiment.Games)
		require.Equal(t, uint64(7), cfg.Experiment.Seed)
		require.Equal(t, ":9090", cfg.Server.Addr)
		require.Len(t, cfg.Agents, 3, "absent sections keep their defaults")
	})

	t.Run("agents replace the default roster", func(t *testing.T) {
		path := writeConfig(t, `
agents:
  - id: 1
    kind: mcts
    episodes: 100
    rollouts_per_node: 4
    rollout_depth: 10
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Len(t, cfg.Agents, 1)
		require.Equal(t, "mcts", cfg.Agents[0].Kind)
		require.Equal(t, 100, cfg.Agents[0].Episodes)
	})

	t.Run("unknown agent kind fails", func(t *testing.T) {
		path := writeConfig(t, `
agents:
  - id: 1
    kind: alphabeta
`)
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("non positive game count fails", func(t *testing.T) {
		path := writeConfig(t, `
experiment:
  games: 0
`)
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())
	require.Equal(t, "baseline", cfg.Experiment.Name)
	require.Equal(t, 1000, cfg.Experiment.Games)
}

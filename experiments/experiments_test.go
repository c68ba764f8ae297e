package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/eitancoronel/AI-Rummikub/experiments/metrics"
	"github.com/eitancoronel/AI-Rummikub/strategy"
)

func TestBaselineSuite(t *testing.T) {
	suite := BaselineSuite()
	require.Equal(t, 1000, suite.Games)
	require.Len(t, suite.Matchups, 3)

	byID := make(map[int]bool)
	for _, c := range suite.Agents {
		byID[c.ID] = true
	}
	for _, m := range suite.Matchups {
		require.True(t, byID[m[0]] && byID[m[1]], "matchup %v references a configured agent", m)
	}
}

func TestRunGame(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	random := metrics.AgentConfig{ID: 1, Kind: strategy.KindRandom}
	mcts := metrics.AgentConfig{ID: 2, Kind: strategy.KindMCTS, Episodes: 3, RolloutsPerNode: 1, RolloutDepth: 3}

	gm, moves, err := runGame(rng, random, mcts)
	require.NoError(t, err)
	require.Positive(t, gm.Turns)
	require.GreaterOrEqual(t, gm.Winner, -1)
	require.LessOrEqual(t, gm.Winner, 1)

	// Seat 1 runs MCTS, so every second turn yields a move metric. Turns
	// spent behind the opening gate never search and record zero episodes.
	for _, mm := range moves {
		require.Equal(t, 1, mm.Seat)
		require.Contains(t, []int{0, 3}, mm.Episodes)
	}
}

func TestRun(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	suite := Suite{
		Name:  "smoke",
		Games: 2,
		Seed:  1,
		Agents: []metrics.AgentConfig{
			{ID: 1, Kind: strategy.KindRandom},
			{ID: 2, Kind: strategy.KindGreedy},
		},
		Matchups: [][2]int{{1, 2}},
	}

	dir, err := Run(suite)
	require.NoError(t, err)

	for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "expected %s", name)
	}
}

func TestRunRejectsUnknownMatchup(t *testing.T) {
	suite := Suite{
		Name:     "broken",
		Games:    1,
		Agents:   []metrics.AgentConfig{{ID: 1, Kind: strategy.KindRandom}},
		Matchups: [][2]int{{1, 9}},
	}
	_, err := Run(suite)
	require.Error(t, err)
}

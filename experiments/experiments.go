// Package experiments pits configured agents against each other over many
// games and records per-game and per-move metrics as CSV files.
package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/eitancoronel/AI-Rummikub/engine"
	"github.com/eitancoronel/AI-Rummikub/experiments/metrics"
	"github.com/eitancoronel/AI-Rummikub/game"
	"github.com/eitancoronel/AI-Rummikub/searcher"
	"github.com/eitancoronel/AI-Rummikub/strategy"
)

// Suite describes one experiment: every matchup is played Games times.
type Suite struct {
	Name     string
	Games    int
	Seed     uint64
	Agents   []metrics.AgentConfig
	Matchups [][2]int // pairs of AgentConfig IDs
}

// BaselineSuite is the standing regression matchup: random versus greedy
// over a thousand games, which must terminate and must not leak tiles.
func BaselineSuite() Suite {
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: strategy.KindRandom},
		{ID: 2, Kind: strategy.KindGreedy},
		{ID: 3, Kind: strategy.KindMCTS, Episodes: 50, RolloutsPerNode: 8, RolloutDepth: 5},
	}
	return Suite{
		Name:   "baseline",
		Games:  1000,
		Seed:   1,
		Agents: configs,
		Matchups: [][2]int{
			{1, 2},
			{2, 3},
			{1, 3},
		},
	}
}

// Run plays the suite and writes its records. Returns the directory the
// CSV files were written to.
func Run(suite Suite) (string, error) {
	rng := rand.New(rand.NewSource(suite.Seed))

	byID := make(map[int]metrics.AgentConfig, len(suite.Agents))
	for _, c := range suite.Agents {
		byID[c.ID] = c
	}

	log.Info().Str("experiment", suite.Name).Int("matchups", len(suite.Matchups)).Msg("starting experiment")

	count := 0
	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	for mi, matchup := range suite.Matchups {
		config1, ok1 := byID[matchup[0]]
		config2, ok2 := byID[matchup[1]]
		if !ok1 || !ok2 {
			return "", fmt.Errorf("matchup %d references unknown agent config", mi+1)
		}

		log.Info().Int("matchup", mi+1).
			Str("agent1", string(config1.Kind)).
			Str("agent2", string(config2.Kind)).
			Msg("starting matchup")

		for i := 0; i < suite.Games; i++ {
			count++
			gameMetric, moves, err := runGame(rng, config1, config2)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}
		}
		log.Info().Int("matchup", mi+1).Msg("completed matchup")
	}

	writer, err := metrics.NewWriter(suite.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(suite.Agents); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}

	log.Info().Str("experiment", suite.Name).Str("dir", writer.BaseDir()).Msg("completed experiment")
	return writer.BaseDir(), nil
}

// runGame plays one game turn-by-turn so per-move search metrics can be
// sampled from MCTS agents as they act.
func runGame(rng *rand.Rand, config1, config2 metrics.AgentConfig) (metrics.GameMetric, []metrics.MoveMetric, error) {
	agent1, err := buildAgent(config1, rng)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	agent2, err := buildAgent(config2, rng)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	e := engine.New(rng, [2]strategy.Strategy{agent1, agent2})

	start := time.Now()
	var moves []metrics.MoveMetric
	turns := 0
	for !e.State.GameOver() && turns < engine.MaxTurns {
		seat := e.State.Current
		if err := e.PlayTurn(); err != nil {
			return metrics.GameMetric{}, nil, err
		}
		turns++
		if m, ok := e.Agents[seat].(*strategy.MCTS); ok {
			moves = append(moves, metrics.MoveMetric{
				Step:          turns,
				Seat:          seat,
				SearchMetrics: m.Metrics(),
			})
		}
	}
	end := time.Now()

	if got := e.State.TileCount(); got != game.PoolSize {
		return metrics.GameMetric{}, nil, fmt.Errorf("tile conservation broken: %d tiles in play", got)
	}

	return metrics.GameMetric{
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
		Winner:    e.State.Winner(),
		Turns:     turns,
		PoolEmpty: len(e.State.Pool) == 0,
	}, moves, nil
}

func buildAgent(config metrics.AgentConfig, rng *rand.Rand) (strategy.Strategy, error) {
	if config.Kind != strategy.KindMCTS {
		return strategy.New(config.Kind, rng)
	}
	return strategy.New(config.Kind, rng, strategy.WithSearchOptions(
		searcher.WithEpisodes(config.Episodes),
		searcher.WithRolloutsPerNode(config.RolloutsPerNode),
		searcher.WithRolloutDepth(config.RolloutDepth),
		searcher.WithCollector(searcher.NewCollector()),
	))
}

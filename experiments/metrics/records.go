package metrics

import (
	"time"

	"github.com/eitancoronel/AI-Rummikub/searcher"
	"github.com/eitancoronel/AI-Rummikub/strategy"
)

// AgentConfig describes one configured agent in an experiment.
type AgentConfig struct {
	ID              int
	Kind            strategy.Kind
	Episodes        int
	RolloutsPerNode int
	RolloutDepth    int
}

// GameMetric captures one finished game.
type GameMetric struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Winner    int // seat index, -1 for a tie
	Turns     int
	PoolEmpty bool
}

// MoveMetric captures one turn. Search stats are only populated for MCTS
// agents; the other strategies do not search.
type MoveMetric struct {
	Step int
	Seat int
	searcher.SearchMetrics
}

// GameRecord ties a game metric to the agents that produced it.
type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

// MoveRecord ties a move metric to its game.
type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

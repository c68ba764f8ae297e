// Package searcher implements Monte-Carlo tree search over rummikub board
// and hand states. The tree is an arena of nodes addressed by index with
// parent indices as back-references, so subtree reuse across turns never
// leaves ownership in question.
package searcher

import (
	"math"

	"github.com/eitancoronel/AI-Rummikub/game"
)

// Hyperparameters for MCTS

// Exploration constants, adapted to hand size: near a win (few tiles left)
// exploit, far from one (many tiles) explore.
const (
	ExploreDefault = 1.4
	ExploreLow     = 0.5
	ExploreHigh    = 2.0

	lowHandSize  = 3
	highHandSize = 10
)

// Rollout rewards.
const (
	RewardLoss = 0.0
	RewardTie  = 0.5
)

// Policy selects a move for one seat inside a rollout. Both rollout
// policies must be gate-free: rollouts assume the opening meld is behind
// every seat.
type Policy interface {
	SelectMove(board game.Board, hand game.Hand) (game.Move, bool)
}

func explorationConstant(handSize int) float64 {
	switch {
	case handSize <= lowHandSize:
		return ExploreLow
	case handSize >= highHandSize:
		return ExploreHigh
	default:
		return ExploreDefault
	}
}

// ucb1 scores a child under UCB1: mean value plus an exploration bonus that
// shrinks as the child soaks up visits.
func ucb1(value float64, visits, parentVisits int, c float64) float64 {
	if visits == 0 {
		// Prioritize unexplored nodes
		return math.Inf(1)
	}
	exploit := value / float64(visits)
	if c == 0 {
		return exploit
	}
	return exploit + c*math.Sqrt(2*math.Log(float64(parentVisits))/float64(visits))
}

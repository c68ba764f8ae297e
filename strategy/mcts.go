package strategy

import (
	"golang.org/x/exp/rand"

	"github.com/eitancoronel/AI-Rummikub/game"
	"github.com/eitancoronel/AI-Rummikub/searcher"
)

// Option configures the MCTS strategy.
type Option func(*MCTS)

func WithSearchOptions(options ...searcher.Option) Option {
	return func(m *MCTS) {
		m.searchOptions = append(m.searchOptions, options...)
	}
}

// MCTS fronts the tree search with the shared opening gate. Rollouts inside
// the search play the seat with the greedy policy against a random
// opponent; both sub-game policies skip the gate, since nested games start
// mid-flight.
type MCTS struct {
	meldGate
	search        *searcher.MCTS
	searchOptions []searcher.Option
}

func NewMCTS(rng *rand.Rand, options ...Option) *MCTS {
	m := &MCTS{}
	for _, option := range options {
		option(m)
	}

	own := NewGreedy()
	own.opened = true
	opp := NewRandom(rng)
	opp.opened = true
	m.search = searcher.New(rng, own, opp, m.searchOptions...)
	return m
}

func (m *MCTS) Reset() {
	m.meldGate = meldGate{}
	m.search.Reset()
}

// Metrics exposes the stats of the last search, for experiment records.
func (m *MCTS) Metrics() searcher.SearchMetrics {
	return m.search.Metrics()
}

func (m *MCTS) SelectMove(board game.Board, hand game.Hand) (game.Move, bool) {
	if len(hand) == 0 {
		return game.Move{}, false
	}
	if move, found, deferred := m.tryOpen(board, hand); !deferred {
		return move, found
	}
	return m.search.FindMove(board, hand)
}

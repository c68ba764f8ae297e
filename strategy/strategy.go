// Package strategy provides the move-selection policies an agent can play
// with. All of them answer the same question - given the committed board
// and a private hand, which move, if any - behind the Strategy interface,
// so the turn loop never branches on the concrete policy.
package strategy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/eitancoronel/AI-Rummikub/game"
)

// Strategy is the common contract for move selection. SelectMove returns
// ok=false when the seat has no legal move and must draw; an empty hand
// also returns ok=false, since the game is already won and there is nothing
// to select. Reset clears per-game state ahead of a new game.
type Strategy interface {
	SelectMove(board game.Board, hand game.Hand) (game.Move, bool)
	Reset()
}

// Kind names a selection policy.
type Kind string

const (
	KindRandom Kind = "random"
	KindGreedy Kind = "greedy"
	KindMCTS   Kind = "mcts"
)

// New builds a strategy of the given kind.
func New(kind Kind, rng *rand.Rand, options ...Option) (Strategy, error) {
	switch kind {
	case KindRandom:
		return NewRandom(rng), nil
	case KindGreedy:
		return NewGreedy(), nil
	case KindMCTS:
		return NewMCTS(rng, options...), nil
	default:
		return nil, fmt.Errorf("unknown strategy kind: %q", kind)
	}
}

// meldGate tracks the opening requirement: before a seat has committed
// melds worth 30 points in a single turn, it may only play hand-only melds
// that clear that threshold. The flag lives for one game.
type meldGate struct {
	opened bool
}

// tryOpen is the shared pre-move step. When the gate is still closed it
// either produces the opening move (and opens the gate) or reports that the
// seat must draw; when already open it defers to the caller's policy.
func (g *meldGate) tryOpen(board game.Board, hand game.Hand) (move game.Move, found, deferred bool) {
	if g.opened {
		return game.Move{}, false, true
	}

	melds, rest, ok := game.InitialMeld(hand)
	if !ok {
		return game.Move{}, false, false
	}

	newBoard := board.Clone()
	for _, m := range melds {
		newBoard = append(newBoard, m)
	}
	g.opened = true
	return game.Move{Board: newBoard, Hand: rest}, true, false
}

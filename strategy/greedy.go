package strategy

import "github.com/eitancoronel/AI-Rummikub/game"

// Greedy exhaustively generates every candidate move and keeps the one
// whose meld ranks highest by (length, joker-resolved point sum), length
// first. It maximizes tiles shed per turn at the cost of enumerating the
// full move set.
type Greedy struct {
	meldGate
}

func NewGreedy() *Greedy {
	return &Greedy{}
}

func (g *Greedy) Reset() {
	g.meldGate = meldGate{}
}

func (g *Greedy) SelectMove(board game.Board, hand game.Hand) (game.Move, bool) {
	if len(hand) == 0 {
		return game.Move{}, false
	}
	if move, found, deferred := g.tryOpen(board, hand); !deferred {
		return move, found
	}

	moves := game.Moves(board, hand)
	if len(moves) == 0 {
		return game.Move{}, false
	}

	var best game.Move
	bestLen, bestSum := -1, -1
	for _, move := range moves {
		for _, meld := range move.Board {
			length, sum := len(meld), game.MeldPoints(meld)
			if length > bestLen || (length == bestLen && sum > bestSum) {
				bestLen, bestSum = length, sum
				best = move
			}
		}
	}
	return best, true
}

package strategy

import (
	"sort"

	"golang.org/x/exp/rand"

	"github.com/eitancoronel/AI-Rummikub/game"
)

// Sampling bounds for the random policy. The attempt count itself is drawn
// uniformly from [MinAttempts, MaxAttempts] each turn.
const (
	MinAttempts    = 100
	MaxAttempts    = 10000
	minSampleTiles = 3
	maxSampleTiles = 6
)

// Random is a Monte-Carlo satisfaction search, not an optimizer: it keeps
// sampling small random subsets of the hand and accepts the first one that
// validates as a run or group.
type Random struct {
	meldGate
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) Reset() {
	r.meldGate = meldGate{}
}

func (r *Random) SelectMove(board game.Board, hand game.Hand) (game.Move, bool) {
	if len(hand) == 0 {
		return game.Move{}, false
	}
	if move, found, deferred := r.tryOpen(board, hand); !deferred {
		return move, found
	}

	attempts := MinAttempts + r.rng.Intn(MaxAttempts-MinAttempts+1)
	for i := 0; i < attempts; i++ {
		meld := r.sampleMeld(hand)
		if meld == nil {
			break // hand too small to ever form a meld
		}
		if !game.IsValidMeld(meld) {
			continue
		}
		rest, ok := hand.Remove(meld...)
		if !ok {
			continue
		}
		newBoard := board.Clone()
		newBoard = append(newBoard, meld)
		return game.Move{Board: newBoard, Hand: rest}, true
	}
	return game.Move{}, false
}

// sampleMeld picks 3..6 distinct hand tiles at random, sorted by value so a
// lucky draw lines up as a run.
func (r *Random) sampleMeld(hand game.Hand) game.Meld {
	if len(hand) < minSampleTiles {
		return nil
	}
	n := minSampleTiles + r.rng.Intn(maxSampleTiles-minSampleTiles+1)
	if n > len(hand) {
		n = len(hand)
	}

	picks := r.rng.Perm(len(hand))[:n]
	meld := make(game.Meld, n)
	for i, p := range picks {
		meld[i] = hand[p]
	}
	sort.Slice(meld, func(i, j int) bool {
		vi, vj := meld[i].Value, meld[j].Value
		if meld[i].Joker {
			vi = 0
		}
		if meld[j].Joker {
			vj = 0
		}
		return vi < vj
	})
	return meld
}

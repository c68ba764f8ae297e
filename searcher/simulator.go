package searcher

import (
	"golang.org/x/exp/rand"

	"github.com/eitancoronel/AI-Rummikub/game"
)

// simulator runs the nested sub-games that score an expanded node. Every
// rollout plays on its own deep copies of board, hand and pool; nothing is
// shared between rollouts, so results cannot bleed from one into the next.
type simulator struct {
	rng *rand.Rand
	own Policy // plays the node's seat
	opp Policy // plays the hidden opponent
}

// seat indices inside a rollout.
const (
	ownSeat = 0
	oppSeat = 1
)

// rollout plays one sub-game from the node's state to completion or the
// given ply cap. The opponent's hand is not observable, so it is dealt from
// the unseen remainder of the 106-tile set; the opponent acts first, as it
// would in the real game after the node's move.
func (s *simulator) rollout(board game.Board, hand game.Hand, maxPlies int) (reward float64, full bool) {
	board = board.Clone()
	hands := [2]game.Hand{hand.Clone(), nil}
	pool := s.unseenTiles(board, hand)
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	deal := game.HandSize
	if deal > len(pool) {
		deal = len(pool)
	}
	hands[oppSeat] = game.Hand(pool[:deal]).Clone()
	pool = pool[deal:]

	var done [2]bool
	seat := oppSeat
	for ply := 0; ply < maxPlies; ply++ {
		if len(hands[ownSeat]) == 0 || len(hands[oppSeat]) == 0 || (done[0] && done[1]) {
			break
		}

		policy := s.own
		if seat == oppSeat {
			policy = s.opp
		}
		move, ok := policy.SelectMove(board, hands[seat])
		if ok {
			board = move.Board
			hands[seat] = move.Hand
		} else if len(pool) > 0 {
			hands[seat] = append(hands[seat], pool[len(pool)-1])
			pool = pool[:len(pool)-1]
		} else {
			done[seat] = true
		}
		seat = (seat + 1) % 2
	}

	gameOver := len(hands[ownSeat]) == 0 || len(hands[oppSeat]) == 0 || (done[0] && done[1])
	if !gameOver {
		return RewardTie, false // depth cap reached
	}

	ownPoints, oppPoints := hands[ownSeat].Points(), hands[oppSeat].Points()
	switch {
	case ownPoints == oppPoints:
		return RewardTie, true
	case ownPoints < oppPoints:
		// A win pays extra for value still held, mirroring the scoring the
		// real game applies to the winning seat.
		return 1 + float64(nonJokerPoints(hands[ownSeat])), true
	default:
		return RewardLoss, true
	}
}

// unseenTiles is the full tile set minus everything visible from the node's
// perspective: the board and its own hand. The opponent hand and the draw
// pile are dealt from it.
func (s *simulator) unseenTiles(board game.Board, hand game.Hand) []game.Tile {
	seen := make(map[game.Tile]int)
	for _, meld := range board {
		for _, t := range meld {
			seen[normalize(t)]++
		}
	}
	for _, t := range hand {
		seen[normalize(t)]++
	}

	take := func(t game.Tile, unseen []game.Tile) []game.Tile {
		if seen[t] > 0 {
			seen[t]--
			return unseen
		}
		return append(unseen, t)
	}

	// Walk the full set in canonical order so the result is deterministic
	// for a seeded shuffle.
	unseen := make([]game.Tile, 0, game.PoolSize)
	for c := game.Color(0); c < 4; c++ {
		for v := game.MinValue; v <= game.MaxValue; v++ {
			unseen = take(game.Tile{Color: c, Value: v}, unseen)
			unseen = take(game.Tile{Color: c, Value: v}, unseen)
		}
	}
	unseen = take(game.Tile{Joker: true}, unseen)
	unseen = take(game.Tile{Joker: true}, unseen)
	return unseen
}

// normalize strips any resolved value from a joker so it matches the pool
// entry.
func normalize(t game.Tile) game.Tile {
	if t.Joker {
		return game.Tile{Joker: true}
	}
	return t
}

func nonJokerPoints(hand game.Hand) int {
	points := 0
	for _, t := range hand {
		if !t.Joker {
			points += t.Value
		}
	}
	return points
}

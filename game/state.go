package game

import (
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/rand"
)

// StateHash identifies a game state for tree reuse across turns.
type StateHash uint64

// GameState is the full dynamic state of one two-seat game: the draw pool,
// both hands, the committed board and whose turn it is. All mutating
// operations go through Draw and ApplyMove; search code works on copies.
type GameState struct {
	Pool    []Tile
	Hands   [2]Hand
	Board   Board
	Current int     // acting seat, 0 or 1
	Done    [2]bool // seat passed with an empty pool
}

// NewGameState builds a fresh game: shuffled pool, 14 tiles dealt to each
// seat, empty board, seat 0 to act.
func NewGameState(rng *rand.Rand) *GameState {
	gs := &GameState{Pool: NewPool(rng)}
	for seat := 0; seat < 2; seat++ {
		gs.Hands[seat] = make(Hand, HandSize)
		copy(gs.Hands[seat], gs.Pool[:HandSize])
		gs.Pool = gs.Pool[HandSize:]
	}
	return gs
}

// Copy returns a deep copy. Simulations must run on copies; sharing a
// mutable state across rollouts bleeds results between them.
func (gs *GameState) Copy() *GameState {
	pool := make([]Tile, len(gs.Pool))
	copy(pool, gs.Pool)

	return &GameState{
		Pool:    pool,
		Hands:   [2]Hand{gs.Hands[0].Clone(), gs.Hands[1].Clone()},
		Board:   gs.Board.Clone(),
		Current: gs.Current,
		Done:    gs.Done,
	}
}

// Draw moves the top pool tile into the current seat's hand. ok is false
// when the pool is empty; that is an informational condition, not an error,
// and the turn still ends.
func (gs *GameState) Draw() (Tile, bool) {
	if len(gs.Pool) == 0 {
		return Tile{}, false
	}
	t := gs.Pool[len(gs.Pool)-1]
	gs.Pool = gs.Pool[:len(gs.Pool)-1]
	gs.Hands[gs.Current] = append(gs.Hands[gs.Current], t)
	return t, true
}

// ApplyMove replaces the board and the current seat's hand with the move's
// result after verifying the delta balances: the move may not conjure or
// destroy tiles. A violation here means a strategy produced a move outside
// the generator's contract and is surfaced loudly rather than corrupting
// state.
func (gs *GameState) ApplyMove(move Move) error {
	placed := len(gs.Hands[gs.Current]) - len(move.Hand)
	if placed <= 0 {
		return fmt.Errorf("move places no tiles (hand %d -> %d)", len(gs.Hands[gs.Current]), len(move.Hand))
	}
	if got := move.Board.TileCount() - gs.Board.TileCount(); got != placed {
		return fmt.Errorf("move does not balance: hand shed %d tiles, board gained %d", placed, got)
	}

	// Every tile kept by the move must have been in the hand; what is left
	// over is exactly the set of tiles the move placed.
	leftover := gs.Hands[gs.Current]
	for _, t := range move.Hand {
		rest, ok := leftover.Remove(t)
		if !ok {
			return fmt.Errorf("move keeps tile %v not present in hand", t)
		}
		leftover = rest
	}

	// The board must gain those tiles and nothing else.
	gained, ok := flatten(move.Board).Remove(flatten(gs.Board)...)
	if !ok {
		return fmt.Errorf("move drops tiles from the board")
	}
	if _, ok := gained.Remove(leftover...); !ok || len(gained) != len(leftover) {
		return fmt.Errorf("move places tiles the hand never held")
	}

	for _, meld := range move.Board {
		if !IsValidMeld(meld) {
			return fmt.Errorf("move commits invalid meld %v", meld)
		}
	}

	gs.Board = move.Board
	gs.Hands[gs.Current] = move.Hand
	return nil
}

// EndTurn passes play to the other seat.
func (gs *GameState) EndTurn() {
	gs.Current = (gs.Current + 1) % 2
}

// GameOver reports whether play has finished: a seat emptied its hand, or
// both seats are done drawing from an exhausted pool.
func (gs *GameState) GameOver() bool {
	if len(gs.Hands[0]) == 0 || len(gs.Hands[1]) == 0 {
		return true
	}
	return gs.Done[0] && gs.Done[1]
}

// Winner returns the winning seat, or -1 for a tie. The seat with the lower
// remaining hand value wins; a joker left in hand counts 30 against it.
func (gs *GameState) Winner() int {
	p0, p1 := gs.Hands[0].Points(), gs.Hands[1].Points()
	switch {
	case p0 == p1:
		return -1
	case p0 < p1:
		return 0
	default:
		return 1
	}
}

// TileCount sums the tiles across pool, hands and board. It must equal
// PoolSize for the life of a game.
func (gs *GameState) TileCount() int {
	return len(gs.Pool) + len(gs.Hands[0]) + len(gs.Hands[1]) + gs.Board.TileCount()
}

func flatten(b Board) Hand {
	out := make(Hand, 0, b.TileCount())
	for _, m := range b {
		out = append(out, m...)
	}
	return out
}

// Hash digests the board plus the current seat's hand. Two turns with the
// same hash resume from the same searchable position.
func (gs *GameState) Hash() StateHash {
	h := fnv.New64a()
	h.Write([]byte(Signature(gs.Board, gs.Hands[gs.Current])))
	h.Write([]byte{byte(gs.Current)})
	return StateHash(h.Sum64())
}

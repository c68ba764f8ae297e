// Package engine drives complete games between two strategies: it owns the
// game state, runs the turn protocol (ask the strategy, apply or draw) and
// reports the outcome.
package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/eitancoronel/AI-Rummikub/game"
	"github.com/eitancoronel/AI-Rummikub/strategy"
)

// MaxTurns bounds a game against pathological stalls where both seats keep
// drawing without ever moving.
const MaxTurns = 1000

// Outcome summarizes a finished game.
type Outcome struct {
	Winner    int // seat index, -1 on a tie
	Turns     int
	PoolEmpty bool
}

// Engine runs one game between two agents. Seat i plays Agents[i].
type Engine struct {
	State  *game.GameState
	Agents [2]strategy.Strategy
}

// New deals a fresh game for the given agents.
func New(rng *rand.Rand, agents [2]strategy.Strategy) *Engine {
	for _, a := range agents {
		a.Reset()
	}
	return &Engine{
		State:  game.NewGameState(rng),
		Agents: agents,
	}
}

// Run plays the game to completion and returns the outcome. An error means
// an agent produced a move that failed the consistency checks - an internal
// defect, not a game result.
func (e *Engine) Run() (Outcome, error) {
	turns := 0
	for !e.State.GameOver() && turns < MaxTurns {
		if err := e.PlayTurn(); err != nil {
			return Outcome{}, err
		}
		turns++
	}

	outcome := Outcome{
		Winner:    e.State.Winner(),
		Turns:     turns,
		PoolEmpty: len(e.State.Pool) == 0,
	}
	log.Debug().
		Int("winner", outcome.Winner).
		Int("turns", outcome.Turns).
		Bool("pool_empty", outcome.PoolEmpty).
		Msg("game over")
	return outcome, nil
}

// PlayTurn runs one seat's turn: ask its strategy for a move, apply it
// after verification, or fall back to drawing a tile. The turn always
// passes to the other seat.
func (e *Engine) PlayTurn() error {
	seat := e.State.Current
	hand := e.State.Hands[seat]

	move, ok := e.Agents[seat].SelectMove(e.State.Board, hand)
	if ok {
		if err := e.State.ApplyMove(move); err != nil {
			// A strategy handed back a move outside the generator's
			// contract. Fail loudly instead of corrupting board or hand.
			return fmt.Errorf("seat %d: inconsistent move rejected: %w", seat, err)
		}
		if got := e.State.TileCount(); got != game.PoolSize {
			return fmt.Errorf("seat %d: tile conservation broken: %d tiles in play", seat, got)
		}
		log.Debug().Int("seat", seat).Int("hand", len(e.State.Hands[seat])).Msg("move applied")
	} else if _, drew := e.State.Draw(); drew {
		log.Debug().Int("seat", seat).Msg("no move, drew a tile")
	} else {
		// Empty pool on a forced draw: informational, the seat is done and
		// the turn still ends.
		e.State.Done[seat] = true
		log.Info().Int("seat", seat).Msg("no tiles left to draw")
	}

	e.State.EndTurn()
	return nil
}

package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/eitancoronel/AI-Rummikub/game"
	"github.com/eitancoronel/AI-Rummikub/searcher"
)

func tile(c game.Color, v int) game.Tile {
	return game.Tile{Color: c, Value: v}
}

func TestNew(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("builds every known kind", func(t *testing.T) {
		for _, kind := range []Kind{KindRandom, KindGreedy, KindMCTS} {
			s, err := New(kind, rng)
			require.NoError(t, err, "kind %q", kind)
			require.NotNil(t, s)
		}
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		_, err := New(Kind("minimax"), rng)
		require.Error(t, err)
	})
}

func TestMeldGate(t *testing.T) {
	t.Run("twenty nine points must draw", func(t *testing.T) {
		g := NewGreedy()
		hand := game.Hand{
			tile(game.Red, 2), tile(game.Red, 3), tile(game.Red, 4),
			tile(game.Red, 5), tile(game.Blue, 5), tile(game.Green, 5), tile(game.Yellow, 5),
		}
		_, ok := g.SelectMove(nil, hand)
		require.False(t, ok)
		require.False(t, g.opened)
	})

	t.Run("thirty points opens in one turn", func(t *testing.T) {
		g := NewGreedy()
		hand := game.Hand{
			tile(game.Red, 6), tile(game.Blue, 6), tile(game.Green, 6), tile(game.Yellow, 6),
			tile(game.Red, 1), tile(game.Red, 2), tile(game.Red, 3),
		}
		move, ok := g.SelectMove(nil, hand)
		require.True(t, ok)
		require.True(t, g.opened)

		points := 0
		for _, meld := range move.Board {
			require.True(t, game.IsValidMeld(meld))
			points += game.MeldPoints(meld)
		}
		require.GreaterOrEqual(t, points, game.InitialMeldPoints)
	})

	t.Run("open gate plays normally", func(t *testing.T) {
		g := NewGreedy()
		g.opened = true
		board := game.Board{{tile(game.Red, 5), tile(game.Red, 6), tile(game.Red, 7)}}
		move, ok := g.SelectMove(board, game.Hand{tile(game.Red, 8), tile(game.Blue, 1)})
		require.True(t, ok)
		require.Len(t, move.Board[0], 4)
	})

	t.Run("reset closes the gate", func(t *testing.T) {
		g := NewGreedy()
		g.opened = true
		g.Reset()
		require.False(t, g.opened)
	})
}

func TestGreedySelectMove(t *testing.T) {
	t.Run("prefers the longest meld", func(t *testing.T) {
		g := NewGreedy()
		g.opened = true
		hand := game.Hand{
			tile(game.Red, 5), tile(game.Red, 6), tile(game.Red, 7), tile(game.Red, 8),
			tile(game.Blue, 5), tile(game.Green, 5),
		}
		move, ok := g.SelectMove(nil, hand)
		require.True(t, ok)
		require.Len(t, move.Board, 1)
		require.Len(t, move.Board[0], 4, "the four-tile run beats the three-tile group")
		require.Len(t, move.Hand, 2)
	})

	t.Run("points break length ties", func(t *testing.T) {
		g := NewGreedy()
		g.opened = true
		hand := game.Hand{
			tile(game.Red, 1), tile(game.Red, 2), tile(game.Red, 3),
			tile(game.Blue, 9), tile(game.Green, 9), tile(game.Yellow, 9),
		}
		move, ok := g.SelectMove(nil, hand)
		require.True(t, ok)

		placed, ok := hand.Remove(move.Hand...)
		require.True(t, ok)
		require.Equal(t, 27, placed.Points(), "the nines outscore the low run")
	})

	t.Run("no move without candidates", func(t *testing.T) {
		g := NewGreedy()
		g.opened = true
		_, ok := g.SelectMove(nil, game.Hand{tile(game.Red, 1), tile(game.Blue, 5)})
		require.False(t, ok)
	})

	t.Run("empty hand selects nothing", func(t *testing.T) {
		g := NewGreedy()
		g.opened = true
		_, ok := g.SelectMove(nil, nil)
		require.False(t, ok)
	})
}

func TestRandomSelectMove(t *testing.T) {
	t.Run("finds the only meld", func(t *testing.T) {
		r := NewRandom(rand.New(rand.NewSource(1)))
		r.opened = true
		hand := game.Hand{tile(game.Red, 5), tile(game.Red, 6), tile(game.Red, 7)}
		move, ok := r.SelectMove(nil, hand)
		require.True(t, ok, "a three-tile hand is sampled whole every attempt")
		require.Len(t, move.Board, 1)
		require.True(t, game.IsValidMeld(move.Board[0]))
		require.Empty(t, move.Hand)
	})

	t.Run("gives up on a dead hand", func(t *testing.T) {
		r := NewRandom(rand.New(rand.NewSource(1)))
		r.opened = true
		hand := game.Hand{tile(game.Red, 1), tile(game.Blue, 5), tile(game.Green, 9), tile(game.Yellow, 13)}
		_, ok := r.SelectMove(nil, hand)
		require.False(t, ok)
	})

	t.Run("selected melds always validate", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		r := NewRandom(rng)
		r.opened = true
		hand := game.Hand{
			tile(game.Red, 4), tile(game.Red, 5), tile(game.Red, 6),
			tile(game.Blue, 5), tile(game.Green, 5), tile(game.Yellow, 11),
		}
		for i := 0; i < 20; i++ {
			move, ok := r.SelectMove(nil, hand)
			if !ok {
				continue
			}
			for _, meld := range move.Board {
				require.True(t, game.IsValidMeld(meld), "meld %v", meld)
			}
		}
	})
}

func TestMCTSSelectMove(t *testing.T) {
	hand := game.Hand{
		tile(game.Red, 5), tile(game.Red, 6), tile(game.Red, 7),
		tile(game.Blue, 9), tile(game.Green, 9), tile(game.Yellow, 9),
		tile(game.Blue, 10), tile(game.Green, 10), tile(game.Yellow, 10),
	}

	t.Run("opening move comes from the gate", func(t *testing.T) {
		m := NewMCTS(rand.New(rand.NewSource(1)))
		move, ok := m.SelectMove(nil, hand)
		require.True(t, ok)
		require.True(t, m.opened)

		points := 0
		for _, meld := range move.Board {
			points += game.MeldPoints(meld)
		}
		require.GreaterOrEqual(t, points, game.InitialMeldPoints)
	})

	t.Run("searches once the gate is open", func(t *testing.T) {
		m := NewMCTS(rand.New(rand.NewSource(1)),
			WithSearchOptions(searcher.WithEpisodes(5), searcher.WithRolloutsPerNode(2)))
		m.opened = true
		move, ok := m.SelectMove(nil, hand)
		require.True(t, ok)
		require.Less(t, len(move.Hand), len(hand))
		for _, meld := range move.Board {
			require.True(t, game.IsValidMeld(meld))
		}
	})

	t.Run("empty hand selects nothing", func(t *testing.T) {
		m := NewMCTS(rand.New(rand.NewSource(1)))
		_, ok := m.SelectMove(nil, nil)
		require.False(t, ok)
	})
}

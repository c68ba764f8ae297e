package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandMelds(t *testing.T) {
	t.Run("maximal run and group from the same tiles", func(t *testing.T) {
		hand := Hand{tile(Red, 5), tile(Red, 6), tile(Red, 7), tile(Red, 8), tile(Blue, 5), tile(Green, 5)}
		melds := HandMelds(hand)
		require.Len(t, melds, 2)
		for _, m := range melds {
			require.True(t, IsValidMeld(m), "meld %v must validate", m)
		}
	})

	t.Run("joker bridges a gap and stretches a streak", func(t *testing.T) {
		hand := Hand{tile(Red, 5), tile(Red, 6), tile(Red, 8), joker()}
		melds := HandMelds(hand)
		require.Len(t, melds, 2)
		points := make(map[int]bool)
		for _, m := range melds {
			require.True(t, IsValidRun(m), "meld %v must be a run", m)
			points[MeldPoints(m)] = true
		}
		require.True(t, points[26], "expected the bridged run 5,6,7,8")
		require.True(t, points[18], "expected the stretched run 5,6,7")
	})

	t.Run("four-tile group plus its triples", func(t *testing.T) {
		hand := Hand{tile(Red, 9), tile(Blue, 9), tile(Green, 9), tile(Yellow, 9)}
		melds := HandMelds(hand)
		require.Len(t, melds, 5, "four 3-combinations and the full group")
	})
}

func TestMoves(t *testing.T) {
	t.Run("hand melds land as new board melds", func(t *testing.T) {
		hand := Hand{tile(Red, 5), tile(Red, 6), tile(Red, 7), tile(Red, 8), tile(Blue, 5), tile(Green, 5)}
		moves := Moves(nil, hand)
		require.Len(t, moves, 2)
		for _, m := range moves {
			require.Len(t, m.Board, 1)
			require.Equal(t, len(hand)-len(m.Board[0]), len(m.Hand))
		}
	})

	t.Run("single tile extends a board meld", func(t *testing.T) {
		board := Board{{tile(Red, 5), tile(Red, 6), tile(Red, 7)}}
		hand := Hand{tile(Red, 8), tile(Blue, 1)}
		moves := Moves(board, hand)
		require.Len(t, moves, 1)
		require.Len(t, moves[0].Board[0], 4)
		require.Equal(t, Hand{tile(Blue, 1)}, moves[0].Hand)
	})

	t.Run("duplicate tiles collapse to one candidate", func(t *testing.T) {
		board := Board{{tile(Green, 5), tile(Green, 6), tile(Green, 7)}}
		hand := Hand{tile(Green, 8), tile(Green, 8)}
		moves := Moves(board, hand)
		require.Len(t, moves, 1, "either copy reaches the same state")
	})

	t.Run("no candidates from a dead hand", func(t *testing.T) {
		hand := Hand{tile(Red, 1), tile(Blue, 5), tile(Green, 9)}
		require.Empty(t, Moves(nil, hand))
	})

	t.Run("inputs are never mutated", func(t *testing.T) {
		board := Board{{tile(Red, 5), tile(Red, 6), tile(Red, 7)}}
		hand := Hand{tile(Red, 8)}
		before := Signature(board, hand)
		Moves(board, hand)
		require.Equal(t, before, Signature(board, hand))
	})
}

func TestPotentialMelds(t *testing.T) {
	tests := []struct {
		name string
		hand Hand
		want int
	}{
		{"group and run latent", Hand{tile(Red, 5), tile(Blue, 5), tile(Green, 5), tile(Red, 7), tile(Red, 8), tile(Red, 9)}, 2},
		{"pair promoted by joker", Hand{tile(Red, 5), tile(Blue, 5), joker()}, 1},
		{"nothing latent", Hand{tile(Red, 1), tile(Blue, 5), tile(Green, 9)}, 0},
		{"empty hand", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PotentialMelds(tt.hand))
		})
	}
}

func TestInitialMeld(t *testing.T) {
	t.Run("twenty nine points never opens", func(t *testing.T) {
		hand := Hand{
			tile(Red, 2), tile(Red, 3), tile(Red, 4),
			tile(Red, 5), tile(Blue, 5), tile(Green, 5), tile(Yellow, 5),
		}
		_, rest, ok := InitialMeld(hand)
		require.False(t, ok, "best disjoint packing is worth 29")
		require.Equal(t, hand, rest, "hand must come back untouched")
	})

	t.Run("exactly thirty opens", func(t *testing.T) {
		hand := Hand{
			tile(Red, 6), tile(Blue, 6), tile(Green, 6), tile(Yellow, 6),
			tile(Red, 1), tile(Red, 2), tile(Red, 3),
		}
		melds, rest, ok := InitialMeld(hand)
		require.True(t, ok)
		require.Empty(t, rest)

		points := 0
		for _, m := range melds {
			require.True(t, IsValidMeld(m), "meld %v must validate", m)
			points += MeldPoints(m)
		}
		require.Equal(t, InitialMeldPoints, points)
	})

	t.Run("highest melds pack first", func(t *testing.T) {
		hand := Hand{
			tile(Red, 11), tile(Red, 12), tile(Red, 13),
			tile(Blue, 1), tile(Green, 1), tile(Yellow, 1),
		}
		melds, rest, ok := InitialMeld(hand)
		require.True(t, ok)
		require.Len(t, melds, 1, "the 36-point run alone clears the threshold")
		require.Len(t, rest, 3)
	})

	t.Run("duplicate copies stay distinct", func(t *testing.T) {
		hand := Hand{
			tile(Red, 10), tile(Red, 10),
			tile(Blue, 10), tile(Green, 10),
		}
		melds, rest, ok := InitialMeld(hand)
		require.True(t, ok)
		require.Len(t, melds, 1)
		require.Len(t, rest, 1, "the second red ten cannot join the group")
	})
}

package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Color identifies one of the four tile colors. Jokers carry no color of
// their own; Tile.Joker marks them instead.
type Color uint8

const (
	Red Color = iota
	Blue
	Green
	Yellow
	numColors
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	default:
		return fmt.Sprintf("color(%d)", uint8(c))
	}
}

const (
	MinValue = 1
	MaxValue = 13

	// PoolSize is the total number of tiles in play: two copies of each
	// color/value pair plus two jokers. The sum of tiles across the pool,
	// both hands and the board stays at this value for the whole game.
	PoolSize = 2*4*13 + 2

	// JokerHandPoints is the penalty value of a joker left in a hand when
	// scoring a finished game.
	JokerHandPoints = 30

	// HandSize is the number of tiles dealt to each seat.
	HandSize = 14
)

// Tile is an immutable value type. Equality is structural, so tiles can be
// used directly as map keys. A joker has Joker set and a zero Value.
type Tile struct {
	Color Color
	Value int
	Joker bool
}

func (t Tile) String() string {
	if t.Joker {
		return "joker"
	}
	return fmt.Sprintf("%s %d", t.Color, t.Value)
}

// NewPool builds the full 106-tile pool shuffled with rng.
func NewPool(rng *rand.Rand) []Tile {
	tiles := make([]Tile, 0, PoolSize)
	for c := Color(0); c < numColors; c++ {
		for v := MinValue; v <= MaxValue; v++ {
			tiles = append(tiles, Tile{Color: c, Value: v}, Tile{Color: c, Value: v})
		}
	}
	tiles = append(tiles, Tile{Joker: true}, Tile{Joker: true})
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
	return tiles
}

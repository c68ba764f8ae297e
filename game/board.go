package game

import (
	"sort"
	"strconv"
	"strings"
)

// Board is the ordered collection of committed melds. It is only ever
// appended to or replaced meld-by-meld; loose tiles never live on it.
type Board []Meld

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	c := make(Board, len(b))
	for i, m := range b {
		c[i] = m.Clone()
	}
	return c
}

// TileCount is the total number of tiles across all melds.
func (b Board) TileCount() int {
	n := 0
	for _, m := range b {
		n += len(m)
	}
	return n
}

// Move is the result of applying one action: the board and the acting
// seat's hand after placement. The delta must balance exactly - every tile
// that left the hand appears on the board.
type Move struct {
	Board Board
	Hand  Hand
}

// Signature encodes a (board, hand) state canonically: tiles within each
// meld sorted, melds sorted, hand sorted. Two states reachable through
// different insertion orders share one signature, which is what bounds the
// move generator's output.
func Signature(board Board, hand Hand) string {
	melds := make([]string, len(board))
	for i, m := range board {
		melds[i] = encodeTiles(Hand(m).sorted())
	}
	sort.Strings(melds)

	var sb strings.Builder
	for _, m := range melds {
		sb.WriteString(m)
		sb.WriteByte('/')
	}
	sb.WriteByte('|')
	sb.WriteString(encodeTiles(hand.sorted()))
	return sb.String()
}

func encodeTiles(tiles []Tile) string {
	var sb strings.Builder
	for _, t := range tiles {
		if t.Joker {
			sb.WriteString("J,")
			continue
		}
		sb.WriteByte(byte('a' + t.Color))
		sb.WriteString(strconv.Itoa(t.Value))
		sb.WriteByte(',')
	}
	return sb.String()
}

package game

import "sort"

// Hand is the unordered multiset of tiles owned by one seat. Slice order is
// incidental; all operations treat it as a bag.
type Hand []Tile

// Clone returns an independent copy of the hand.
func (h Hand) Clone() Hand {
	c := make(Hand, len(h))
	copy(c, h)
	return c
}

// Contains reports whether the hand holds at least one copy of t.
func (h Hand) Contains(t Tile) bool {
	return h.index(t) >= 0
}

func (h Hand) index(t Tile) int {
	for i, v := range h {
		if v == t {
			return i
		}
	}
	return -1
}

// Remove returns a new hand with one copy of each given tile removed. The
// second result is false when some tile is not present; the hand is then
// returned unchanged.
func (h Hand) Remove(tiles ...Tile) (Hand, bool) {
	out := h.Clone()
	for _, t := range tiles {
		i := out.index(t)
		if i < 0 {
			return h, false
		}
		out[i] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out, true
}

// Points is the penalty value of the tiles left in the hand at game end.
// Unplayed jokers count a flat 30.
func (h Hand) Points() int {
	points := 0
	for _, t := range h {
		if t.Joker {
			points += JokerHandPoints
			continue
		}
		points += t.Value
	}
	return points
}

// sorted returns the hand's tiles in canonical order: jokers last, then by
// color and value.
func (h Hand) sorted() []Tile {
	s := h.Clone()
	sort.Slice(s, func(i, j int) bool {
		return tileLess(s[i], s[j])
	})
	return s
}

func tileLess(a, b Tile) bool {
	if a.Joker != b.Joker {
		return !a.Joker
	}
	if a.Color != b.Color {
		return a.Color < b.Color
	}
	return a.Value < b.Value
}

package game

import "sort"

// Meld is an ordered sequence of tiles committed to the board as either a
// run or a group. Order matters only for a joker sitting at the low end of
// a run; validity itself is order-insensitive.
type Meld []Tile

// IsValidRun reports whether tiles form a run: at least three tiles of one
// color with strictly consecutive values, jokers filling gaps or extending
// the ends. No wraparound below 1 or past 13.
func IsValidRun(tiles []Tile) bool {
	if len(tiles) < 3 {
		return false
	}

	jokers := 0
	values := make([]int, 0, len(tiles))
	color := Color(0)
	seenColor := false
	for _, t := range tiles {
		if t.Joker {
			jokers++
			continue
		}
		if !seenColor {
			color = t.Color
			seenColor = true
		} else if t.Color != color {
			return false
		}
		values = append(values, t.Value)
	}
	if len(values) == 0 {
		// Nothing but jokers; they can stand for any consecutive sequence.
		return true
	}

	sort.Ints(values)
	for i := 1; i < len(values); i++ {
		gap := values[i] - values[i-1] - 1
		if gap < 0 {
			return false // duplicate value within one run
		}
		if gap > jokers {
			return false
		}
		jokers -= gap
	}

	// Leftover jokers extend the run at the ends and must stay within 1..13.
	room := (values[0] - MinValue) + (MaxValue - values[len(values)-1])
	return jokers <= room
}

// IsValidGroup reports whether tiles form a group: three or four tiles of
// one value with pairwise-distinct colors, jokers substituting for missing
// colors.
func IsValidGroup(tiles []Tile) bool {
	if len(tiles) < 3 || len(tiles) > 4 {
		return false
	}

	jokers := 0
	value := 0
	seenValue := false
	var colors [numColors]bool
	distinct := 0
	for _, t := range tiles {
		if t.Joker {
			jokers++
			continue
		}
		if !seenValue {
			value = t.Value
			seenValue = true
		} else if t.Value != value {
			return false
		}
		if colors[t.Color] {
			return false
		}
		colors[t.Color] = true
		distinct++
	}
	return distinct+jokers == len(tiles)
}

// IsValidMeld reports whether tiles form either a run or a group. This is
// the predicate the surrounding UI uses to judge manual placements, so human
// and agent moves are validated identically.
func IsValidMeld(tiles []Tile) bool {
	return IsValidRun(tiles) || IsValidGroup(tiles)
}

// JokerValue resolves the numeric value a joker stands for within a meld.
// The value depends on the other tiles, so it must be recomputed per meld
// and never cached on the tile:
//   - a joker alone (transient, mid-placement) is worth 0
//   - in a group every tile shares one value, so the joker takes it
//   - in a run the joker fills the earliest internal gap, or extends the
//     run at the low end when it leads the meld, else at the high end
func JokerValue(meld Meld) int {
	if len(meld) == 1 {
		return 0
	}

	values := make([]int, 0, len(meld))
	for _, t := range meld {
		if !t.Joker {
			values = append(values, t.Value)
		}
	}
	if len(values) == 0 {
		return 0
	}

	allEqual := true
	for _, v := range values[1:] {
		if v != values[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return values[0]
	}

	sort.Ints(values)
	for i := 0; i+1 < len(values); i++ {
		if values[i+1]-values[i] > 1 {
			return values[i] + 1
		}
	}

	if meld[0].Joker {
		return values[0] - 1
	}
	return values[len(values)-1] + 1
}

// MeldPoints sums the tile values of a meld with jokers resolved in the
// context of this meld.
func MeldPoints(meld Meld) int {
	jokerValue := -1 // resolved lazily, most melds hold no joker
	points := 0
	for _, t := range meld {
		if t.Joker {
			if jokerValue < 0 {
				jokerValue = JokerValue(meld)
			}
			points += jokerValue
			continue
		}
		points += t.Value
	}
	return points
}

// Clone returns an independent copy of the meld.
func (m Meld) Clone() Meld {
	c := make(Meld, len(m))
	copy(c, m)
	return c
}

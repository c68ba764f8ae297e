package game

import "sort"

// Moves enumerates every candidate move from the given board and hand: all
// melds formable from hand tiles alone, plus every single-tile extension of
// an existing board meld that still validates. Candidates reachable through
// different insertion orders are collapsed by canonical signature.
//
// Worst case the hand-only path considers O(C(n,3)) color combinations per
// value plus one consecutive scan per color, and the extension path tests
// O(|board| * |hand|) insertions, so the emitted set is polynomial in hand
// size even though the raw subset space is exponential.
func Moves(board Board, hand Hand) []Move {
	seen := make(map[string]struct{})
	var moves []Move

	add := func(m Move) {
		sig := Signature(m.Board, m.Hand)
		if _, ok := seen[sig]; ok {
			return
		}
		seen[sig] = struct{}{}
		moves = append(moves, m)
	}

	for _, meld := range HandMelds(hand) {
		rest, ok := hand.Remove(meld...)
		if !ok {
			continue
		}
		newBoard := board.Clone()
		newBoard = append(newBoard, meld.Clone())
		add(Move{Board: newBoard, Hand: rest})
	}

	for i, meld := range board {
		for _, t := range hand {
			for _, extended := range []Meld{
				append(Meld{t}, meld...),
				append(meld.Clone(), t),
			} {
				if !IsValidMeld(extended) {
					continue
				}
				rest, ok := hand.Remove(t)
				if !ok {
					continue
				}
				newBoard := board.Clone()
				newBoard[i] = extended
				add(Move{Board: newBoard, Hand: rest})
			}
		}
	}

	return moves
}

// HandMelds enumerates the melds formable purely from hand tiles: maximal
// consecutive runs per color (with single gaps bridged by an available
// joker, and short streaks stretched by one), and every 3-combination of
// distinct colors per value plus the full 4-tile group where present.
func HandMelds(hand Hand) []Meld {
	melds := generateRuns(hand)
	return append(melds, generateGroups(hand)...)
}

func generateRuns(hand Hand) []Meld {
	jokers := 0
	byColor := make(map[Color][]Tile)
	for _, t := range hand {
		if t.Joker {
			jokers++
			continue
		}
		byColor[t.Color] = append(byColor[t.Color], t)
	}

	var runs []Meld
	for _, tiles := range byColor {
		// One tile per value; the duplicate copy cannot join the same run.
		byValue := make(map[int]Tile, len(tiles))
		for _, t := range tiles {
			byValue[t.Value] = t
		}
		values := make([]int, 0, len(byValue))
		for v := range byValue {
			values = append(values, v)
		}
		sort.Ints(values)

		segments := consecutiveSegments(values)
		for si, seg := range segments {
			if len(seg) >= 3 {
				runs = append(runs, segmentMeld(byValue, seg, nil))
			}

			if jokers == 0 {
				continue
			}
			// Bridge a single-value gap to the next segment with a joker.
			if si+1 < len(segments) && segments[si+1][0]-seg[len(seg)-1] == 2 {
				bridged := segmentMeld(byValue, seg, nil)
				bridged = append(bridged, Tile{Joker: true})
				bridged = append(bridged, segmentMeld(byValue, segments[si+1], nil)...)
				runs = append(runs, bridged)
			}
			// Stretch a two-tile streak to length three with a joker.
			if len(seg) == 2 {
				if seg[1] < MaxValue {
					runs = append(runs, append(segmentMeld(byValue, seg, nil), Tile{Joker: true}))
				} else if seg[0] > MinValue {
					runs = append(runs, segmentMeld(byValue, seg, Meld{{Joker: true}}))
				}
			}
		}
	}
	return runs
}

// segmentMeld builds a run meld from consecutive values, prefixed by lead
// tiles (used to put a joker at the low end).
func segmentMeld(byValue map[int]Tile, values []int, lead Meld) Meld {
	meld := append(Meld{}, lead...)
	for _, v := range values {
		meld = append(meld, byValue[v])
	}
	return meld
}

func consecutiveSegments(sorted []int) [][]int {
	var segments [][]int
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j] == sorted[j-1]+1 {
			j++
		}
		segments = append(segments, sorted[i:j])
		i = j
	}
	return segments
}

func generateGroups(hand Hand) []Meld {
	byValue := make(map[int][]Tile)
	for _, t := range hand {
		if t.Joker {
			continue
		}
		byValue[t.Value] = append(byValue[t.Value], t)
	}

	var groups []Meld
	for _, tiles := range byValue {
		var seen [numColors]bool
		distinct := make([]Tile, 0, numColors)
		for _, t := range tiles {
			if !seen[t.Color] {
				seen[t.Color] = true
				distinct = append(distinct, t)
			}
		}
		if len(distinct) < 3 {
			continue
		}
		for i := 0; i < len(distinct); i++ {
			for j := i + 1; j < len(distinct); j++ {
				for k := j + 1; k < len(distinct); k++ {
					groups = append(groups, Meld{distinct[i], distinct[j], distinct[k]})
				}
			}
		}
		if len(distinct) == 4 {
			groups = append(groups, Meld(distinct).Clone())
		}
	}
	return groups
}

// PotentialMelds counts the near-melds still latent in a hand: values held
// in three or more colors (or two plus a joker), and three-wide consecutive
// windows per color. The MCTS expansion step prunes children whose hands
// fall below two of these.
func PotentialMelds(hand Hand) int {
	jokers := 0
	byValue := make(map[int]int)
	byColor := make(map[Color][]int)
	for _, t := range hand {
		if t.Joker {
			jokers++
			continue
		}
		byValue[t.Value]++
		byColor[t.Color] = append(byColor[t.Color], t.Value)
	}

	count := 0
	for _, n := range byValue {
		if n >= 3 || (n == 2 && jokers > 0) {
			count++
		}
	}
	for _, values := range byColor {
		sort.Ints(values)
		for i := 0; i+2 < len(values); i++ {
			if values[i+1] == values[i]+1 && values[i+2] == values[i]+2 {
				count++
			}
		}
	}
	return count
}

// InitialMeldPoints is the minimum combined point value of the melds a seat
// must commit in one turn before it may play at all.
const InitialMeldPoints = 30

// InitialMeld searches for a set of disjoint hand-only melds worth at least
// InitialMeldPoints, packing highest-value melds first. It returns the
// chosen melds and the remaining hand, or ok=false when the hand cannot
// reach the threshold. Jokers are not spent on the opening melds.
func InitialMeld(hand Hand) (melds []Meld, rest Hand, ok bool) {
	candidates := indexMelds(hand)
	sort.SliceStable(candidates, func(i, j int) bool {
		return meldPointsAt(hand, candidates[i]) > meldPointsAt(hand, candidates[j])
	})

	used := make([]bool, len(hand))
	points := 0
	for _, idxs := range candidates {
		if points >= InitialMeldPoints {
			break
		}
		overlap := false
		for _, i := range idxs {
			if used[i] {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		meld := make(Meld, len(idxs))
		for k, i := range idxs {
			used[i] = true
			meld[k] = hand[i]
		}
		melds = append(melds, meld)
		points += MeldPoints(meld)
	}

	if points < InitialMeldPoints {
		return nil, hand, false
	}
	rest = make(Hand, 0, len(hand))
	for i, t := range hand {
		if !used[i] {
			rest = append(rest, t)
		}
	}
	return melds, rest, true
}

// indexMelds enumerates valid hand-only melds as index lists into the hand,
// so duplicate tiles are tracked per copy rather than by value.
func indexMelds(hand Hand) [][]int {
	var out [][]int

	// Groups: one index per distinct color for each value.
	byValue := make(map[int][]int)
	for i, t := range hand {
		if !t.Joker {
			byValue[t.Value] = append(byValue[t.Value], i)
		}
	}
	for _, idxs := range byValue {
		var seen [numColors]bool
		distinct := make([]int, 0, numColors)
		for _, i := range idxs {
			if !seen[hand[i].Color] {
				seen[hand[i].Color] = true
				distinct = append(distinct, i)
			}
		}
		if len(distinct) < 3 {
			continue
		}
		for a := 0; a < len(distinct); a++ {
			for b := a + 1; b < len(distinct); b++ {
				for c := b + 1; c < len(distinct); c++ {
					out = append(out, []int{distinct[a], distinct[b], distinct[c]})
				}
			}
		}
		if len(distinct) == 4 {
			out = append(out, append([]int(nil), distinct...))
		}
	}

	// Runs: every consecutive window of length >= 3 per color.
	byColor := make(map[Color][]int)
	for i, t := range hand {
		if !t.Joker {
			byColor[t.Color] = append(byColor[t.Color], i)
		}
	}
	for _, idxs := range byColor {
		byVal := make(map[int]int, len(idxs))
		for _, i := range idxs {
			byVal[hand[i].Value] = i
		}
		values := make([]int, 0, len(byVal))
		for v := range byVal {
			values = append(values, v)
		}
		sort.Ints(values)
		for _, seg := range consecutiveSegments(values) {
			for lo := 0; lo < len(seg); lo++ {
				for hi := lo + 2; hi < len(seg); hi++ {
					run := make([]int, 0, hi-lo+1)
					for _, v := range seg[lo : hi+1] {
						run = append(run, byVal[v])
					}
					out = append(out, run)
				}
			}
		}
	}
	return out
}

func meldPointsAt(hand Hand, idxs []int) int {
	meld := make(Meld, len(idxs))
	for k, i := range idxs {
		meld[k] = hand[i]
	}
	return MeldPoints(meld)
}

package scorer

import (
	"cmp"
	"math"
	"slices"

	"github.com/domino14/gomoku/board"
)

// Candidate is a blank cell ranked by GuessLikelyMoves.
type Candidate struct {
	Row, Col int
	Weight   float64
}

func (s *Scorer) forcedCell(c board.Color) (Candidate, bool) {
	k := s.weights.ForcedCount
	if k < 1 || k > s.runLength {
		return Candidate{}, false
	}
	for _, col := range []board.Color{c, c.Opponent()} {
		h := s.stats[col.Slot()]
		for i, j := range s.b.Blanks() {
			if h[(i*s.stride+j)*s.buckets+k] > 0 {
				return Candidate{Row: i, Col: j, Weight: math.Inf(1)}, true
			}
		}
	}
	return Candidate{}, false
}

// GuessLikelyMoves ranks the blank cells by the threats of both colors
// through them, since a cell matters as much for blocking as for building.
// It returns at most maxReturns candidates, best first, dropping those
// weighing less than cutoff times the best. A cell where either color
// reaches the forced count is returned alone with an infinite weight; the
// mover's own such cells come first.
func (s *Scorer) GuessLikelyMoves(c board.Color, maxReturns int, cutoff float64) []Candidate {
	if fc, ok := s.forcedCell(c); ok {
		return []Candidate{fc}
	}
	top := NewBoundedHeap(maxReturns, func(a, b Candidate) bool {
		return a.Weight < b.Weight
	})
	hw, hb := s.stats[board.White.Slot()], s.stats[board.Black.Slot()]
	for i, j := range s.b.Blanks() {
		idx := i*s.stride + j
		sum := func(short int) float64 {
			return s.count(hw, idx, short) + s.count(hb, idx, short)
		}
		top.Push(Candidate{Row: i, Col: j,
			Weight: s.nextMoveValue(sum(1), sum(2), sum(3), sum(4))})
	}
	out := slices.Clone(top.All())
	slices.SortFunc(out, func(a, b Candidate) int {
		if a.Weight != b.Weight {
			return cmp.Compare(b.Weight, a.Weight)
		}
		if a.Row != b.Row {
			return cmp.Compare(a.Row, b.Row)
		}
		return cmp.Compare(a.Col, b.Col)
	})
	if len(out) == 0 {
		return out
	}
	limit := cutoff * out[0].Weight
	return slices.DeleteFunc(out, func(x Candidate) bool {
		return x.Weight < limit
	})
}

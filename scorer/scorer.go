// Package scorer keeps, for each stone color and each cell, a histogram of
// the clean windows passing through that cell, bucketed by how many of the
// color's stones they hold. A window is clean for a color when it holds no
// wall and no stone of the other color. The histograms follow every change
// made through ChangeColor, so search code can try a move, score it, and
// take it back without rescanning the board.
package scorer

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/lines"
)

var ErrOutOfSync = errors.New("scorer histograms do not match the board")

// Scorer is bound to a single board for its whole life. Changing that board
// other than through the scorer leaves the histograms stale.
type Scorer struct {
	b         *board.Board
	index     *lines.Index
	runLength int
	buckets   int
	stride    int
	// stats[slot][cellIdx*buckets+k]
	stats   [2][]int32
	weights Weights
}

// New builds the histograms for the current contents of b.
func New(b *board.Board, runLength int, w Weights) *Scorer {
	if runLength < 1 {
		panic(fmt.Sprintf("invalid run length %d", runLength))
	}
	s := &Scorer{
		b:         b,
		index:     lines.For(b.Width(), b.Height(), runLength),
		runLength: runLength,
		buckets:   runLength + 1,
		stride:    b.Stride(),
		weights:   w,
	}
	for slot := range s.stats {
		s.stats[slot] = make([]int32, b.NumCells()*s.buckets)
	}
	for _, vl := range s.index.VirtualLines() {
		s.markLine(vl, 1)
	}
	return s
}

// Board returns the board the scorer tracks.
func (s *Scorer) Board() *board.Board {
	return s.b
}

// Index returns the line index the scorer was built on.
func (s *Scorer) Index() *lines.Index {
	return s.index
}

func (s *Scorer) RunLength() int {
	return s.runLength
}

func (s *Scorer) Weights() Weights {
	return s.weights
}

// markLine adds delta to the histograms of every cell of every clean window
// inside vl.
func (s *Scorer) markLine(vl lines.VirtualLine, delta int32) {
	l := s.runLength
	if vl.Len < l {
		return
	}
	di, dj := vl.Dir.Delta()
	step := di*s.stride + dj
	start := s.b.Index(vl.Row, vl.Col)

	var counts [board.NumColors]int
	lead := start
	for k := 0; k < l-1; k++ {
		counts[s.b.At(lead)]++
		lead += step
	}
	tail := start
	for k := l - 1; k < vl.Len; k++ {
		counts[s.b.At(lead)]++
		lead += step
		if counts[board.Wall] == 0 {
			for _, c := range board.StoneColors {
				if counts[c.Opponent()] != 0 {
					continue
				}
				h := s.stats[c.Slot()]
				own := counts[c]
				for p, n := tail, 0; n < l; p, n = p+step, n+1 {
					h[p*s.buckets+own] += delta
				}
			}
		}
		counts[s.b.At(tail)]--
		tail += step
	}
}

func (s *Scorer) markFor(i, j int, delta int32) {
	for _, seg := range s.index.WindowsThrough(i, j) {
		s.markLine(seg, delta)
	}
}

// ChangeColor sets (i, j) to c and updates the histograms of every window
// through it. Setting a cell to the color it already has does nothing.
func (s *Scorer) ChangeColor(i, j int, c board.Color) {
	if !s.b.InBounds(i, j) {
		panic(fmt.Errorf("change (%d, %d): %w", i, j, board.ErrOutOfBounds))
	}
	prev := s.b.Get(i, j)
	if prev == c {
		return
	}
	if prev == board.Wall {
		panic(fmt.Errorf("change (%d, %d) to %v: %w", i, j, c, board.ErrWallPermanent))
	}
	s.markFor(i, j, -1)
	s.b.Set(i, j, c)
	s.markFor(i, j, 1)
}

// With sets (i, j) to c, runs fn, and restores the previous color, even if
// fn panics.
func (s *Scorer) With(i, j int, c board.Color, fn func()) {
	prev := s.b.Get(i, j)
	s.ChangeColor(i, j, c)
	defer s.ChangeColor(i, j, prev)
	fn()
}

// Stats returns a copy of the histogram of color c at (i, j); entry k
// counts the clean windows through the cell holding k stones of c.
func (s *Scorer) Stats(c board.Color, i, j int) []int32 {
	idx := s.b.Index(i, j) * s.buckets
	return slices.Clone(s.stats[c.Slot()][idx : idx+s.buckets])
}

// count returns the bucket `short` stones away from a full run. Buckets
// that do not exist for short run lengths count as zero.
func (s *Scorer) count(h []int32, idx, short int) float64 {
	k := s.runLength - short
	if k < 1 {
		return 0
	}
	return float64(h[idx*s.buckets+k])
}

// Equal returns true if both scorers track boards of the same shape with
// identical histograms.
func (s *Scorer) Equal(o *Scorer) bool {
	return s.runLength == o.runLength &&
		s.b.Width() == o.b.Width() && s.b.Height() == o.b.Height() &&
		slices.Equal(s.stats[0], o.stats[0]) && slices.Equal(s.stats[1], o.stats[1])
}

// Verify rebuilds the histograms from the board and compares them with the
// incrementally maintained ones.
func (s *Scorer) Verify() error {
	fresh := New(s.b, s.runLength, s.weights)
	for slot, c := range board.StoneColors {
		if slices.Equal(s.stats[slot], fresh.stats[slot]) {
			continue
		}
		for idx := range s.stats[slot] {
			if s.stats[slot][idx] != fresh.stats[slot][idx] {
				cell := idx / s.buckets
				return fmt.Errorf("%w: %v at (%d, %d)", ErrOutOfSync, c,
					cell/s.stride, cell%s.stride)
			}
		}
	}
	return nil
}

// ScoreFor aggregates the histograms of color c into one number. With
// nextMove set, it scores the best reply for c instead of the position
// after c has moved.
func (s *Scorer) ScoreFor(c board.Color, nextMove bool) float64 {
	if nextMove {
		return s.ScoreForNextMove(c).Score
	}
	return s.ScoreForMoved(c)
}

// ScoreForMoved scores the position for c, who has just moved. A full run
// is +Inf.
func (s *Scorer) ScoreForMoved(c board.Color) float64 {
	w := &s.weights
	h := s.stats[c.Slot()]
	res := 0.0
	for i := 1; i <= s.b.Height(); i++ {
		for j := 1; j <= s.b.Width(); j++ {
			idx := i*s.stride + j
			if s.count(h, idx, 0) > 0 {
				return math.Inf(1)
			}
			c4, c3 := s.count(h, idx, 1), s.count(h, idx, 2)
			switch {
			case c4 >= float64(w.DoubleFourThreshold):
				res += w.DoubleFour
			case c4+c3 >= float64(w.FourThreeThreshold):
				res += w.FourThree
			default:
				res += c4*w.Four + c3*w.Three + s.count(h, idx, 3)*w.Two + s.count(h, idx, 4)*w.One
			}
		}
	}
	return res
}

// Reply is the outcome of scoring the next move for a color.
type Reply struct {
	Score    float64
	Row, Col int
	// Ok is false when there was no blank cell to reply on.
	Ok bool
}

// nextMoveValue scores a single blank cell for the player about to move
// there. A cell completing a run is +Inf.
func (s *Scorer) nextMoveValue(c4, c3, c2, c1 float64) float64 {
	w := &s.weights
	switch {
	case c4 > 0:
		return math.Inf(1)
	case c3 >= float64(w.NextDoubleThreeThreshold):
		return w.NextDoubleThree
	case c3+c2 >= float64(w.NextThreeTwoThreshold):
		return w.NextThreeTwo
	}
	return c3*w.NextThree + c2*w.NextTwo + c1*w.NextOne
}

// ScoreForNextMove scores the blank cells for c, who moves next, and
// reports the cell with the best single value. If some cell completes a
// run for c the score is +Inf and that cell is the reply.
func (s *Scorer) ScoreForNextMove(c board.Color) Reply {
	h := s.stats[c.Slot()]
	var best Reply
	bestValue := math.Inf(-1)
	res := 0.0
	for i, j := range s.b.Blanks() {
		idx := i*s.stride + j
		v := s.nextMoveValue(s.count(h, idx, 1), s.count(h, idx, 2),
			s.count(h, idx, 3), s.count(h, idx, 4))
		if math.IsInf(v, 1) {
			return Reply{Score: v, Row: i, Col: j, Ok: true}
		}
		res += v
		if v > bestValue {
			bestValue = v
			best.Row, best.Col, best.Ok = i, j, true
		}
	}
	best.Score = res
	return best
}

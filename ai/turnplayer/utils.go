package turnplayer

import (
	"iter"

	"github.com/rs/zerolog"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/lines"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/scorer"
)

// CenterMove returns a center cell of an empty board: the exact center for
// odd sizes, the top-left of the 2x2 center block for even ones, or the
// next free cell of that block if walls were carved there.
func CenterMove(b *board.Board) *move.Move {
	if !b.IsEmpty() {
		return nil
	}
	i, j := (b.Height()+1)>>1, (b.Width()+1)>>1
	for _, d := range [4][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		if b.Get(i+d[0], j+d[1]) == board.Blank {
			return move.NewPlacement(i+d[0], j+d[1], 0)
		}
	}
	return nil
}

// VictoryMove returns a cell completing a run of runLength for c, if any.
func VictoryMove(b *board.Board, c board.Color, runLength int) *move.Move {
	return victoryMove(lines.SemiLines(b, runLength, runLength-1), b, c, runLength)
}

// VictoryMoveIn is VictoryMove over a prebuilt index. Searches call it at
// every node.
func VictoryMoveIn(x *lines.Index, b *board.Board, c board.Color) *move.Move {
	return victoryMove(x.SemiLines(b, x.Length()-1), b, c, x.Length())
}

func victoryMove(windows iter.Seq[lines.Window], b *board.Board, c board.Color, runLength int) *move.Move {
	for w := range windows {
		if w.Color != c {
			continue
		}
		for k := 0; k < runLength; k++ {
			if i, j := w.Cell(k); b.Get(i, j) == board.Blank {
				return move.NewPlacement(i, j, 0)
			}
		}
	}
	return nil
}

// ObviousMove is the fast path shared by all selectors: open in the
// center, or win on the spot.
func ObviousMove(b *board.Board, c board.Color, runLength int) *move.Move {
	if m := CenterMove(b); m != nil {
		return m
	}
	return VictoryMove(b, c, runLength)
}

// VerifyScorer checks a scorer against a rebuild of its board. The check
// only runs at debug level.
func VerifyScorer(s *scorer.Scorer) error {
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		return nil
	}
	return s.Verify()
}

// Package lines precomputes the geometry of a board size: its maximal
// lines in each of the four directions, and for every cell the segments
// holding all fixed-length windows that pass through that cell.
package lines

import (
	"fmt"
	"iter"

	"github.com/samber/lo"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/cache"
)

// A VirtualLine is a run of cells along a direction, starting at
// (Row, Col). Lines returned by VirtualLines reach from edge to edge.
type VirtualLine struct {
	Row, Col int
	Dir      board.Direction
	Len      int
}

// Cell returns the coordinates of the k-th cell of the line.
func (vl VirtualLine) Cell(k int) (int, int) {
	di, dj := vl.Dir.Delta()
	return vl.Row + k*di, vl.Col + k*dj
}

// Contains returns true if (i, j) is one of the line's cells.
func (vl VirtualLine) Contains(i, j int) bool {
	for k := 0; k < vl.Len; k++ {
		if ii, jj := vl.Cell(k); ii == i && jj == j {
			return true
		}
	}
	return false
}

func (vl VirtualLine) String() string {
	return fmt.Sprintf("(%d,%d)%v*%d", vl.Row, vl.Col, vl.Dir, vl.Len)
}

func buildVirtualLines(w, h int) []VirtualLine {
	vls := make([]VirtualLine, 0, 3*w+h+2*(h-1))
	for j := 1; j <= w; j++ {
		vls = append(vls,
			VirtualLine{Row: 1, Col: j, Dir: board.Down, Len: h},
			VirtualLine{Row: 1, Col: j, Dir: board.DownRight, Len: min(w-j+1, h)},
			VirtualLine{Row: 1, Col: j, Dir: board.DownLeft, Len: min(j, h)})
	}
	for i := 1; i <= h; i++ {
		vls = append(vls, VirtualLine{Row: i, Col: 1, Dir: board.Right, Len: w})
	}
	for i := 2; i <= h; i++ {
		vls = append(vls,
			VirtualLine{Row: i, Col: 1, Dir: board.DownRight, Len: min(w, h-i+1)},
			VirtualLine{Row: i, Col: w, Dir: board.DownLeft, Len: min(w, h-i+1)})
	}
	return vls
}

// VirtualLines returns every maximal line of a w x h board. The slice is
// shared between callers and must not be modified.
func VirtualLines(w, h int) []VirtualLine {
	key := fmt.Sprintf("virtual-lines:%dx%d", w, h)
	return lo.Must(cache.Load(key, func(string) ([]VirtualLine, error) {
		return buildVirtualLines(w, h), nil
	}))
}

// Index holds, for one board size and window length, the segments through
// every interior cell.
type Index struct {
	width, height int
	length        int
	stride        int
	lines         []VirtualLine
	through       [][]VirtualLine
}

// For returns the index for a w x h board and windows of the given length.
// Indexes are built once per process and shared.
func For(w, h, length int) *Index {
	vls := VirtualLines(w, h)
	key := fmt.Sprintf("line-index:%dx%d:%d", w, h, length)
	return lo.Must(cache.Load(key, func(string) (*Index, error) {
		return newIndex(w, h, length, vls), nil
	}))
}

func newIndex(w, h, length int, vls []VirtualLine) *Index {
	x := &Index{
		width:   w,
		height:  h,
		length:  length,
		stride:  w + 2,
		lines:   vls,
		through: make([][]VirtualLine, (w+2)*(h+2)),
	}
	inBounds := func(i, j int) bool {
		return i >= 1 && i <= h && j >= 1 && j <= w
	}
	for i := 1; i <= h; i++ {
		for j := 1; j <= w; j++ {
			segs := make([]VirtualLine, 0, len(board.Directions))
			for _, d := range board.Directions {
				di, dj := d.Delta()
				back := 0
				for back < length-1 && inBounds(i-(back+1)*di, j-(back+1)*dj) {
					back++
				}
				fwd := 0
				for fwd < length-1 && inBounds(i+(fwd+1)*di, j+(fwd+1)*dj) {
					fwd++
				}
				if back+fwd+1 < length {
					continue
				}
				segs = append(segs, VirtualLine{
					Row: i - back*di, Col: j - back*dj, Dir: d, Len: back + fwd + 1})
			}
			x.through[i*x.stride+j] = segs
		}
	}
	return x
}

func (x *Index) Width() int  { return x.width }
func (x *Index) Height() int { return x.height }

// Length is the window length the index was built for.
func (x *Index) Length() int { return x.length }

// VirtualLines returns the maximal lines of the board size.
func (x *Index) VirtualLines() []VirtualLine {
	return x.lines
}

// WindowsThrough returns at most one segment per direction. Every window of
// the index's length inside a segment contains (i, j), and every such
// window on the board lies inside one of the segments.
func (x *Index) WindowsThrough(i, j int) []VirtualLine {
	return x.through[i*x.stride+j]
}

// Window is a fixed-length stretch of a line that is clean for one color:
// no walls and no stones of the other color.
type Window struct {
	Row, Col int
	Dir      board.Direction
	Count    int
	Color    board.Color
}

// Cell returns the coordinates of the k-th cell of the window.
func (w Window) Cell(k int) (int, int) {
	di, dj := w.Dir.Delta()
	return w.Row + k*di, w.Col + k*dj
}

// SemiLines yields every window of the given length holding at least
// threshold stones of one color and none of the other, and no wall.
// Windows come in virtual-line order, then by position along the line.
func SemiLines(b *board.Board, length, threshold int) iter.Seq[Window] {
	return semiLines(VirtualLines(b.Width(), b.Height()), b, length, threshold)
}

// SemiLines is the package-level SemiLines for a board of the index's size
// and windows of the index's length, without going through the cache.
func (x *Index) SemiLines(b *board.Board, threshold int) iter.Seq[Window] {
	return semiLines(x.lines, b, x.length, threshold)
}

func semiLines(vls []VirtualLine, b *board.Board, length, threshold int) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		for _, vl := range vls {
			if vl.Len < length {
				continue
			}
			var counts [board.NumColors]int
			di, dj := vl.Dir.Delta()
			i, j := vl.Row, vl.Col
			ii, jj := i, j
			for k := 0; k < length-1; k++ {
				counts[b.Get(ii, jj)]++
				ii, jj = ii+di, jj+dj
			}
			for k := length - 1; k < vl.Len; k++ {
				counts[b.Get(ii, jj)]++
				ii, jj = ii+di, jj+dj
				if counts[board.Wall] == 0 {
					var w Window
					ok := false
					if counts[board.Black] >= threshold && counts[board.White] == 0 {
						w, ok = Window{Row: i, Col: j, Dir: vl.Dir, Count: counts[board.Black], Color: board.Black}, true
					} else if counts[board.White] >= threshold && counts[board.Black] == 0 {
						w, ok = Window{Row: i, Col: j, Dir: vl.Dir, Count: counts[board.White], Color: board.White}, true
					}
					if ok && !yield(w) {
						return
					}
				}
				counts[b.Get(i, j)]--
				i, j = i+di, j+dj
			}
		}
	}
}

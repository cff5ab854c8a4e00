package lines

import (
	"slices"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/board"
)

func TestVirtualLinesCoverEveryCellOncePerDirection(t *testing.T) {
	is := is.New(t)
	for _, dims := range [][2]int{{1, 1}, {5, 5}, {15, 15}, {7, 3}, {3, 9}} {
		w, h := dims[0], dims[1]
		vls := VirtualLines(w, h)
		is.Equal(len(vls), 3*w+h+2*(h-1))
		seen := map[[3]int]int{}
		for _, vl := range vls {
			for k := 0; k < vl.Len; k++ {
				i, j := vl.Cell(k)
				is.True(i >= 1 && i <= h && j >= 1 && j <= w)
				seen[[3]int{i, j, int(vl.Dir)}]++
			}
		}
		for i := 1; i <= h; i++ {
			for j := 1; j <= w; j++ {
				for _, d := range board.Directions {
					is.Equal(seen[[3]int{i, j, int(d)}], 1)
				}
			}
		}
	}
}

func TestVirtualLinesMemoized(t *testing.T) {
	is := is.New(t)
	a := VirtualLines(11, 13)
	b := VirtualLines(11, 13)
	is.True(&a[0] == &b[0])
	is.True(For(11, 13, 5) == For(11, 13, 5))
}

func TestWindowsThroughCornerAndCenter(t *testing.T) {
	is := is.New(t)
	x := For(15, 15, 5)
	segs := x.WindowsThrough(8, 8)
	is.Equal(len(segs), 4)
	for _, s := range segs {
		is.Equal(s.Len, 9)
		is.True(s.Contains(8, 8))
	}
	segs = x.WindowsThrough(1, 1)
	is.Equal(segs, []VirtualLine{
		{Row: 1, Col: 1, Dir: board.Right, Len: 5},
		{Row: 1, Col: 1, Dir: board.Down, Len: 5},
		{Row: 1, Col: 1, Dir: board.DownRight, Len: 5},
	})
}

// Every window through a cell, found by sliding along the full virtual
// lines, must fall in the cell's segment for that direction.
func TestWindowsThroughMatchesBruteForce(t *testing.T) {
	is := is.New(t)
	for _, dims := range [][3]int{{15, 15, 5}, {5, 5, 3}, {9, 6, 5}, {4, 4, 5}} {
		w, h, l := dims[0], dims[1], dims[2]
		x := For(w, h, l)
		for i := 1; i <= h; i++ {
			for j := 1; j <= w; j++ {
				want := map[board.Direction]int{}
				for _, vl := range x.VirtualLines() {
					for start := 0; start+l <= vl.Len; start++ {
						r, c := vl.Cell(start)
						win := VirtualLine{Row: r, Col: c, Dir: vl.Dir, Len: l}
						if win.Contains(i, j) {
							want[vl.Dir]++
						}
					}
				}
				got := map[board.Direction]int{}
				for _, s := range x.WindowsThrough(i, j) {
					got[s.Dir] = s.Len - l + 1
				}
				is.Equal(got, want)
			}
		}
	}
}

func TestSemiLines(t *testing.T) {
	is := is.New(t)
	b := board.MustBoard(15, 15, board.BlackFourOpen)
	got := slices.Collect(SemiLines(b, 5, 4))
	is.Equal(got, []Window{
		{Row: 8, Col: 2, Dir: board.Right, Count: 4, Color: board.Black},
		{Row: 8, Col: 3, Dir: board.Right, Count: 4, Color: board.Black},
	})

	// the white stones make windows of three
	whites := 0
	for w := range SemiLines(b, 5, 3) {
		if w.Color == board.White {
			whites++
			is.Equal(w.Count, 3)
		}
	}
	is.Equal(whites, 3)
}

func TestSemiLinesSkipsWalls(t *testing.T) {
	is := is.New(t)
	b := board.MustBoard(8, 8, board.WalledFour)
	is.Equal(len(slices.Collect(SemiLines(b, 5, 4))), 0)
}

func TestSemiLinesMixedWindows(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard(5, 1)
	b.Set(1, 1, board.Black)
	b.Set(1, 2, board.Black)
	b.Set(1, 5, board.White)
	is.Equal(len(slices.Collect(SemiLines(b, 5, 1))), 0)
	b.Set(1, 5, board.Blank)
	is.Equal(slices.Collect(SemiLines(b, 5, 1)), []Window{
		{Row: 1, Col: 1, Dir: board.Right, Count: 2, Color: board.Black},
	})
}

func TestForFreshSizeReturns(t *testing.T) {
	is := is.New(t)
	done := make(chan *Index, 1)
	go func() { done <- For(17, 19, 6) }()
	select {
	case x := <-done:
		is.Equal(x.Width(), 17)
		is.Equal(x.Height(), 19)
		is.Equal(x.Length(), 6)
		is.True(&x.VirtualLines()[0] == &VirtualLines(17, 19)[0])
	case <-time.After(5 * time.Second):
		t.Fatal("building a new index did not return")
	}
}

func TestIndexSemiLinesMatchesPackageLevel(t *testing.T) {
	is := is.New(t)
	b := board.MustBoard(15, 15, board.BlackFourOpen)
	x := For(15, 15, 5)
	for threshold := 1; threshold <= 5; threshold++ {
		is.Equal(slices.Collect(x.SemiLines(b, threshold)),
			slices.Collect(SemiLines(b, 5, threshold)))
	}
}

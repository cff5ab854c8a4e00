// Package board holds the grid a five-in-a-row game is played on. The
// grid is stored as a flat buffer with a one-cell wall border on all
// sides, so line scans never need a bounds check.
package board

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"
)

var (
	ErrOutOfBounds   = errors.New("cell is outside the board interior")
	ErrWallPermanent = errors.New("a wall cannot be removed")
)

// A Board is the main board structure. Rows and columns are 1-indexed
// into the interior; row 0, row height+1, column 0 and column width+1
// hold walls.
type Board struct {
	width  int
	height int
	stride int
	cells  []Color
}

// Run is a maximal run of same-colored stones along one direction.
type Run struct {
	Row, Col int
	Dir      Direction
	Length   int
	Color    Color
}

// NewBoard creates an empty board with the given interior dimensions.
func NewBoard(width, height int) *Board {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("invalid board dimensions %dx%d", width, height))
	}
	b := &Board{
		width:  width,
		height: height,
		stride: width + 2,
		cells:  make([]Color, (width+2)*(height+2)),
	}
	for j := 0; j < b.stride; j++ {
		b.cells[j] = Wall
		b.cells[(height+1)*b.stride+j] = Wall
	}
	for i := 1; i <= height; i++ {
		b.cells[i*b.stride] = Wall
		b.cells[i*b.stride+width+1] = Wall
	}
	return b
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

// Stride is the distance in the flat buffer between two vertically
// adjacent cells.
func (b *Board) Stride() int {
	return b.stride
}

// Index returns the flat buffer index of a cell. Border cells are valid.
func (b *Board) Index(i, j int) int {
	return i*b.stride + j
}

// NumCells is the size of the flat buffer, border included.
func (b *Board) NumCells() int {
	return len(b.cells)
}

// InBounds returns true if (i, j) is an interior cell.
func (b *Board) InBounds(i, j int) bool {
	return i >= 1 && i <= b.height && j >= 1 && j <= b.width
}

// Get returns the color at (i, j). The wall border may be read.
func (b *Board) Get(i, j int) Color {
	return b.cells[i*b.stride+j]
}

// At returns the color at a flat buffer index.
func (b *Board) At(idx int) Color {
	return b.cells[idx]
}

// Set writes a color into an interior cell. A wall, once written, stays.
func (b *Board) Set(i, j int, c Color) {
	if !b.InBounds(i, j) {
		panic(fmt.Errorf("set (%d, %d): %w", i, j, ErrOutOfBounds))
	}
	idx := i*b.stride + j
	if b.cells[idx] == Wall && c != Wall {
		panic(fmt.Errorf("set (%d, %d) to %v: %w", i, j, c, ErrWallPermanent))
	}
	b.cells[idx] = c
}

// Copy returns an independent board with identical contents.
func (b *Board) Copy() *Board {
	nb := &Board{
		width:  b.width,
		height: b.height,
		stride: b.stride,
		cells:  make([]Color, len(b.cells)),
	}
	copy(nb.cells, b.cells)
	return nb
}

// CopyFrom overwrites this board with the contents of another board of the
// same dimensions.
func (b *Board) CopyFrom(other *Board) {
	if b.width != other.width || b.height != other.height {
		panic("copying from a board with different dimensions")
	}
	copy(b.cells, other.cells)
}

// Equal returns true if both boards have the same dimensions and cells.
func (b *Board) Equal(other *Board) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for idx := range b.cells {
		if b.cells[idx] != other.cells[idx] {
			return false
		}
	}
	return true
}

// Blanks yields every blank interior cell in row-major order. The sequence
// is lazy and restarts from the top on every call.
func (b *Board) Blanks() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := 1; i <= b.height; i++ {
			row := b.cells[i*b.stride : i*b.stride+b.width+1]
			for j := 1; j <= b.width; j++ {
				if row[j] != Blank {
					continue
				}
				if !yield(i, j) {
					return
				}
			}
		}
	}
}

// HasBlanks returns true if at least one interior cell is blank.
func (b *Board) HasBlanks() bool {
	for range b.Blanks() {
		return true
	}
	return false
}

// IsEmpty returns true if no interior cell holds a stone.
func (b *Board) IsEmpty() bool {
	for _, c := range b.cells {
		if c.IsStone() {
			return false
		}
	}
	return true
}

// CountStones returns the number of stones of color c on the board.
func (b *Board) CountStones(c Color) int {
	n := 0
	for _, cell := range b.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Runs yields every maximal run of at least minRun stones, in row-major
// order of the run's first cell, then direction order. Runs never cross a
// wall.
func (b *Board) Runs(minRun int) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		for i := 1; i <= b.height; i++ {
			for j := 1; j <= b.width; j++ {
				c := b.cells[i*b.stride+j]
				if !c.IsStone() {
					continue
				}
				for _, d := range Directions {
					di, dj := d.Delta()
					// only start counting at the first cell of a run
					if b.cells[(i-di)*b.stride+j-dj] == c {
						continue
					}
					l := 1
					for b.cells[(i+l*di)*b.stride+j+l*dj] == c {
						l++
					}
					if l < minRun {
						continue
					}
					if !yield(Run{Row: i, Col: j, Dir: d, Length: l, Color: c}) {
						return
					}
				}
			}
		}
	}
}

// FindLines returns the color of the first run of at least minRun stones,
// if there is one.
func (b *Board) FindLines(minRun int) (Color, bool) {
	for r := range b.Runs(minRun) {
		return r.Color, true
	}
	return Blank, false
}

// Fingerprint hashes the dimensions and contents of the board.
func (b *Board) Fingerprint() uint64 {
	buf := make([]byte, 8+len(b.cells))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(b.width))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(b.height))
	for idx, c := range b.cells {
		buf[8+idx] = byte(c)
	}
	return xxhash.Sum64(buf)
}

// CarveHoles turns up to n random blank interior cells into walls. It
// returns the number of walls carved.
func (b *Board) CarveHoles(n int) int {
	blanks := make([]int, 0, b.width*b.height)
	for i, j := range b.Blanks() {
		blanks = append(blanks, i*b.stride+j)
	}
	n = min(n, len(blanks))
	for k := 0; k < n; k++ {
		pick := frand.Intn(len(blanks))
		b.cells[blanks[pick]] = Wall
		blanks[pick] = blanks[len(blanks)-1]
		blanks = blanks[:len(blanks)-1]
	}
	return n
}

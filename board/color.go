package board

import "strings"

// Color is the content of a single cell.
type Color uint8

const (
	Blank Color = iota
	White
	Black
	// Wall is a sentinel. It lines the border of every board and can be
	// carved into the interior, but it is never a move target.
	Wall
)

// NumColors is the number of distinct cell contents.
const NumColors = 4

// StoneColors are the two colors that can be played.
var StoneColors = [2]Color{White, Black}

func (c Color) String() string {
	switch c {
	case Blank:
		return "BLANK"
	case White:
		return "WHITE"
	case Black:
		return "BLACK"
	case Wall:
		return "WALL"
	}
	return "UNKNOWN"
}

// Opponent returns the opposing color. For the non-stone colors it pairs
// Blank with Wall.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	case Blank:
		return Wall
	}
	return Blank
}

// IsStone returns true for White and Black.
func (c Color) IsStone() bool {
	return c == White || c == Black
}

// Slot maps a stone color to 0 (White) or 1 (Black), for per-player arrays.
func (c Color) Slot() int {
	if c == Black {
		return 1
	}
	return 0
}

// ColorFromString parses a color name, case-insensitively.
func ColorFromString(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "white", "w", "o":
		return White, true
	case "black", "b", "*":
		return Black, true
	}
	return Blank, false
}

// Direction is one of the four line directions. The reverse four are
// redundant for line scans.
type Direction uint8

const (
	Right Direction = iota
	Down
	DownRight
	DownLeft
)

// Directions lists all directions in scan order.
var Directions = [4]Direction{Right, Down, DownRight, DownLeft}

var deltas = [4][2]int{
	Right:     {0, 1},
	Down:      {1, 0},
	DownRight: {1, 1},
	DownLeft:  {1, -1},
}

// Delta returns the (row, col) step of the direction.
func (d Direction) Delta() (int, int) {
	return deltas[d][0], deltas[d][1]
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Down:
		return "down"
	case DownRight:
		return "down-right"
	case DownLeft:
		return "down-left"
	}
	return "none"
}

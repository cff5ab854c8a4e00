package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrBadCoords = errors.New("unrecognized coordinates")

// Move is the placement of a stone. It can carry the score a search gave
// it; the score plays no part in equality.
type Move struct {
	row   int
	col   int
	score float64
}

var reColFirst, reRowFirst, rePair *regexp.Regexp

func init() {
	reColFirst = regexp.MustCompile(`^(?P<col>[A-Z])(?P<row>[0-9]+)$`)
	reRowFirst = regexp.MustCompile(`^(?P<row>[0-9]+)(?P<col>[A-Z])$`)
	rePair = regexp.MustCompile(`^(?P<row>[0-9]+)\s*,\s*(?P<col>[0-9]+)$`)
}

// NewPlacement creates a move at (row, col), 1-indexed.
func NewPlacement(row, col int, score float64) *Move {
	return &Move{row: row, col: col, score: score}
}

func (m *Move) Row() int { return m.row }
func (m *Move) Col() int { return m.col }

// Coords returns row and column.
func (m *Move) Coords() (int, int) {
	return m.row, m.col
}

func (m *Move) Score() float64 {
	return m.score
}

func (m *Move) SetScore(s float64) {
	m.score = s
}

// Equals returns true if both moves place on the same cell.
func (m *Move) Equals(o *Move) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.row == o.row && m.col == o.col
}

// String provides a string just for debugging purposes.
func (m *Move) String() string {
	return fmt.Sprintf("<%s (%d,%d) score: %.3f>", m.ShortDescription(), m.row, m.col, m.score)
}

func (m *Move) ShortDescription() string {
	return ToBoardGameCoords(m.row, m.col)
}

// ToBoardGameCoords converts a 1-indexed row and column to a coordinate like
// 8H. Columns past Z are written as row,col.
func ToBoardGameCoords(row, col int) string {
	if col < 1 || col > 26 {
		return strconv.Itoa(row) + "," + strconv.Itoa(col)
	}
	return strconv.Itoa(row) + string(rune('A'+col-1))
}

// FromBoardGameCoords does the inverse operation of ToBoardGameCoords
// above. It also accepts the column first (H8), and a plain row,col pair.
func FromBoardGameCoords(c string) (int, int, error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if m := reRowFirst.FindStringSubmatch(c); len(m) == 3 {
		row, _ := strconv.Atoi(m[1])
		return row, int(m[2][0]-'A') + 1, nil
	}
	if m := reColFirst.FindStringSubmatch(c); len(m) == 3 {
		row, _ := strconv.Atoi(m[2])
		return row, int(m[1][0]-'A') + 1, nil
	}
	if m := rePair.FindStringSubmatch(c); len(m) == 3 {
		row, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		return row, col, nil
	}
	return 0, 0, fmt.Errorf("%q: %w", c, ErrBadCoords)
}

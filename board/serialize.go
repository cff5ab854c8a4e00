package board

import (
	"fmt"
	"strings"
)

// Single-character cell codes used by the plain-text board format.
const (
	BlackCode = '*'
	WhiteCode = 'o'
	WallCode  = 'x'
	BlankCode = ' '
)

// FormatError is returned when a plain-text board contains a character
// that is not a known cell code, or has more rows/columns than the board.
type FormatError struct {
	Row  int
	Col  int
	Char rune
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("board format error at line %d: %s", e.Row, e.Msg)
	}
	return fmt.Sprintf("board format error at line %d, column %d: unrecognized character %q",
		e.Row, e.Col, e.Char)
}

func codeFor(c Color) byte {
	switch c {
	case Black:
		return BlackCode
	case White:
		return WhiteCode
	case Wall:
		return WallCode
	}
	return BlankCode
}

func colorFor(ch rune) (Color, bool) {
	switch ch {
	case BlackCode:
		return Black, true
	case WhiteCode:
		return White, true
	case WallCode:
		return Wall, true
	case BlankCode:
		return Blank, true
	}
	return Blank, false
}

// Serialize writes the interior of the board as text: one line per row,
// cell codes separated by single spaces.
func (b *Board) Serialize() string {
	var sb strings.Builder
	sb.Grow(b.height * (2*b.width + 1))
	for i := 1; i <= b.height; i++ {
		for j := 1; j <= b.width; j++ {
			if j > 1 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(codeFor(b.Get(i, j)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func splitRows(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	rows := strings.Split(text, "\n")
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return rows
}

// Deserialize overwrites the interior of the board with the given text.
// Rows or lines that are shorter than the board are padded with blanks.
// Walls already on the board stay: a blank over a wall leaves it, and a
// stone over a wall is a FormatError.
func (b *Board) Deserialize(text string) error {
	rows := splitRows(text)
	if len(rows) > b.height {
		return &FormatError{Row: b.height + 1,
			Msg: fmt.Sprintf("too many rows for a board of height %d", b.height)}
	}
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)
	for i := 1; i <= b.height; i++ {
		for j := 1; j <= b.width; j++ {
			if cells[i*b.stride+j] != Wall {
				cells[i*b.stride+j] = Blank
			}
		}
	}
	for ridx, row := range rows {
		i := ridx + 1
		for pos, ch := range []rune(row) {
			if pos%2 == 1 {
				if ch != ' ' {
					return &FormatError{Row: i, Col: pos + 1, Char: ch}
				}
				continue
			}
			c, ok := colorFor(ch)
			if !ok {
				return &FormatError{Row: i, Col: pos + 1, Char: ch}
			}
			j := pos/2 + 1
			if j > b.width {
				if c == Blank {
					continue
				}
				return &FormatError{Row: i,
					Msg: fmt.Sprintf("too many columns for a board of width %d", b.width)}
			}
			if b.cells[i*b.stride+j] == Wall {
				if c.IsStone() {
					return &FormatError{Row: i, Col: pos + 1, Char: ch,
						Msg: fmt.Sprintf("column %d is a wall", j)}
				}
				continue
			}
			cells[i*b.stride+j] = c
		}
	}
	b.cells = cells
	return nil
}

// Parse builds a new board from text, inferring its dimensions from the
// number of lines and the longest line.
func Parse(text string) (*Board, error) {
	rows := splitRows(text)
	if len(rows) == 0 {
		return nil, &FormatError{Row: 1, Msg: "no rows"}
	}
	width := 0
	for _, row := range rows {
		width = max(width, (len([]rune(row))+1)/2)
	}
	if width == 0 {
		return nil, &FormatError{Row: 1, Msg: "no columns"}
	}
	b := NewBoard(width, len(rows))
	if err := b.Deserialize(text); err != nil {
		return nil, err
	}
	return b, nil
}

// MustParse is like Parse but panics on error. It is meant for fixtures.
func MustParse(width, height int, text string) *Board {
	b := NewBoard(width, height)
	text = strings.TrimPrefix(text, "\n")
	if err := b.Deserialize(text); err != nil {
		panic(err)
	}
	return b
}

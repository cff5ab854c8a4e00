package game

import (
	"fmt"
	"strings"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

var displayCodes = [board.NumColors]string{
	board.Blank: ".",
	board.White: "o",
	board.Black: "*",
	board.Wall:  "#",
}

func addText(lines []string, row int, hpad int, text string) []string {
	for len(lines) <= row {
		lines = append(lines, "")
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
	return lines
}

// BoardDisplayText draws the board with column letters and row numbers.
// The cell at (lastRow, lastCol), if on the board, is bracketed.
func BoardDisplayText(b *board.Board, lastRow, lastCol int) string {
	var sb strings.Builder
	sb.WriteString("    ")
	for j := 1; j <= b.Width(); j++ {
		fmt.Fprintf(&sb, "%-2s", colLabel(j))
	}
	sb.WriteString("\n")
	for i := 1; i <= b.Height(); i++ {
		fmt.Fprintf(&sb, "%3d", i)
		for j := 1; j <= b.Width(); j++ {
			code := displayCodes[b.Get(i, j)]
			switch {
			case i == lastRow && j == lastCol:
				sb.WriteString("[" + code)
			case i == lastRow && j == lastCol+1:
				sb.WriteString("]" + code)
			default:
				sb.WriteString(" " + code)
			}
		}
		if i == lastRow && lastCol == b.Width() {
			sb.WriteString("]")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func colLabel(j int) string {
	if j <= 26 {
		return string(rune('A' + j - 1))
	}
	return fmt.Sprint(j)
}

// ToDisplayText turns the current state of the game into a displayable
// string.
func (g *Game) ToDisplayText() string {
	lastRow, lastCol := 0, 0
	if evt, ok := g.history.Last(); ok && evt.Type == Placement {
		lastRow, lastCol = evt.Row, evt.Col
	}
	bt := BoardDisplayText(g.board, lastRow, lastCol)
	bts := strings.Split(strings.TrimSuffix(bt, "\n"), "\n")
	hpadding := 3

	for pi, c := range []board.Color{board.Black, board.White} {
		marker := " "
		if g.Playing() && g.onturn == c {
			marker = "->"
		}
		bts = addText(bts, 1+pi, hpadding, fmt.Sprintf("%-2s %s %s: %d moves",
			marker, displayCodes[c], g.PlayerName(c), g.MovesBy(c)))
	}
	bts = addText(bts, 4, hpadding, fmt.Sprintf("Turn %d:", g.turnnum))
	if evt, ok := g.history.Last(); ok {
		bts = addText(bts, 5, hpadding, evt.String())
	}
	if !g.Playing() {
		bts = addText(bts, 7, hpadding, fmt.Sprintf("Game is over: %v.", g.state))
	}
	return strings.Join(bts, "\n") + "\n"
}

// LastMove returns the most recent placement, or nil.
func (g *Game) LastMove() *move.Move {
	evt, ok := g.history.Last()
	if !ok {
		return nil
	}
	return evt.Move()
}

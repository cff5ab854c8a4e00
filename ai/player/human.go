package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

// HumanPlayer reads moves from a stream, one per line, as 8H, H8 or 8,8.
// "resign" resigns. Unreadable lines are asked for again; whether the cell
// can be played is left to the game.
type HumanPlayer struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHumanPlayer(in io.Reader, out io.Writer) *HumanPlayer {
	return &HumanPlayer{in: bufio.NewScanner(in), out: out}
}

func (p *HumanPlayer) Name() string {
	return "human"
}

func (p *HumanPlayer) SelectMove(ctx context.Context, b *board.Board, c board.Color) (*move.Move, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Fprintf(p.out, "%v to move: ", c)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return nil, err
			}
			return nil, io.ErrUnexpectedEOF
		}
		line := strings.TrimSpace(p.in.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "resign":
			return nil, nil
		}
		row, col, err := move.FromBoardGameCoords(line)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		return move.NewPlacement(row, col, 0), nil
	}
}

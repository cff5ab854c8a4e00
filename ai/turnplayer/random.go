package turnplayer

import (
	"context"

	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

// RandomPlayer places on a uniformly random blank cell.
type RandomPlayer struct{}

func (p *RandomPlayer) Name() string {
	return "random"
}

func (p *RandomPlayer) SelectMove(ctx context.Context, b *board.Board, c board.Color) (*move.Move, error) {
	return RandomMove(b), nil
}

// RandomMove returns a random blank cell, or nil on a full board.
func RandomMove(b *board.Board) *move.Move {
	blanks := make([][2]int, 0, b.Width()*b.Height())
	for i, j := range b.Blanks() {
		blanks = append(blanks, [2]int{i, j})
	}
	if len(blanks) == 0 {
		return nil
	}
	pick := blanks[frand.Intn(len(blanks))]
	return move.NewPlacement(pick[0], pick[1], 0)
}

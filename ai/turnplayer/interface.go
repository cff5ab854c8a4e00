package turnplayer

import (
	"context"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

// MoveSelector picks a move for color c on board b. The board may be
// changed during the call but must be restored before it returns. A nil
// move with a nil error means the selector resigns.
type MoveSelector interface {
	Name() string
	SelectMove(ctx context.Context, b *board.Board, c board.Color) (*move.Move, error)
}

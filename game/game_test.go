package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

func play(t *testing.T, g *Game, coords ...[2]int) {
	t.Helper()
	for _, c := range coords {
		if err := g.PlayMove(move.NewPlacement(c[0], c[1], 0)); err != nil {
			t.Fatalf("play %v: %v", c, err)
		}
	}
}

func TestNewGame(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.NewBoard(15, 15), 5)
	is.True(g.Playing())
	is.Equal(g.Onturn(), board.Black)
	is.Equal(g.Turn(), 0)

	g = NewGame(board.NewBoard(15, 15), 5, WhiteFirst(true))
	is.Equal(g.Onturn(), board.White)
	is.Equal(g.WentFirst(), board.White)
}

func TestNewGameCopiesBoard(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard(9, 9)
	g := NewGame(b, 5)
	play(t, g, [2]int{5, 5})
	is.Equal(b.Get(5, 5), board.Blank)
	is.Equal(g.Board().Get(5, 5), board.Black)
	is.Equal(g.InitialBoard().Get(5, 5), board.Blank)
}

func TestWinHorizontal(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.NewBoard(15, 15), 5)
	for j := 1; j <= 4; j++ {
		play(t, g, [2]int{8, j}, [2]int{9, j})
	}
	is.True(g.Playing())
	play(t, g, [2]int{8, 5})
	is.True(!g.Playing())
	is.Equal(g.State(), State{Play: WonByColor, Color: board.Black})
	w, ok := g.State().Winner()
	is.True(ok)
	is.Equal(w, board.Black)
	// the winner stays on turn
	is.Equal(g.Onturn(), board.Black)

	err := g.PlayMove(move.NewPlacement(1, 1, 0))
	is.True(errors.Is(err, ErrGameOver))
	is.True(errors.Is(g.Forfeit("late"), ErrGameOver))
	is.True(errors.Is(g.Resign(), ErrGameOver))
}

func TestShorterRunLength(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.NewBoard(5, 5), 3)
	play(t, g, [2]int{1, 1}, [2]int{5, 5}, [2]int{2, 2}, [2]int{5, 4}, [2]int{3, 3})
	is.Equal(g.State(), State{Play: WonByColor, Color: board.Black})
}

func TestDraw(t *testing.T) {
	is := is.New(t)
	b := board.MustParse(4, 4, "* o * o\no * o *\n* o * o\no * \n")
	g := NewGame(b, 5)
	is.True(g.Playing())
	play(t, g, [2]int{4, 3}, [2]int{4, 4})
	is.Equal(g.State(), State{Play: Drawn})
	_, ok := g.State().Winner()
	is.True(!ok)
	is.Equal(g.State().String(), "draw")
}

func TestAlreadyDecidedBoard(t *testing.T) {
	is := is.New(t)
	b := board.MustBoard(15, 15, board.BlackFourOpen)
	b.Set(8, 7, board.Black)
	g := NewGame(b, 5)
	is.Equal(g.State(), State{Play: WonByColor, Color: board.Black})
}

func TestIllegalMove(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard(9, 9)
	b.Set(2, 2, board.Wall)
	g := NewGame(b, 5)
	play(t, g, [2]int{5, 5})

	for _, c := range [][2]int{{5, 5}, {2, 2}, {0, 3}, {10, 1}, {3, 10}} {
		err := g.PlayMove(move.NewPlacement(c[0], c[1], 0))
		var ime *IllegalMoveError
		is.True(errors.As(err, &ime))
		is.Equal(ime.Row, c[0])
		is.Equal(ime.Col, c[1])
	}
	// nothing changed
	is.Equal(g.Onturn(), board.White)
	is.Equal(g.Turn(), 1)
	is.Equal(len(g.History().Events), 1)
}

func TestForfeitLimit(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.NewBoard(9, 9), 5, MaxForfeits(2))
	is.NoErr(g.Forfeit("illegal"))
	is.Equal(g.Onturn(), board.White)
	is.Equal(g.ConsecutiveForfeits(board.Black), 1)
	play(t, g, [2]int{1, 1})
	// a placement by the opponent does not reset black's count
	is.Equal(g.ConsecutiveForfeits(board.Black), 1)
	play(t, g, [2]int{2, 2})
	is.Equal(g.ConsecutiveForfeits(board.Black), 0)
	play(t, g, [2]int{3, 3})

	is.NoErr(g.Forfeit("illegal"))
	is.NoErr(g.Forfeit("illegal"))
	is.True(g.Playing())
	is.Equal(g.ConsecutiveForfeits(board.White), 1)
	is.NoErr(g.Forfeit("illegal"))
	is.Equal(g.State(), State{Play: Surrendered, Color: board.Black})
	w, ok := g.State().Winner()
	is.True(ok)
	is.Equal(w, board.White)
}

func TestResign(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.NewBoard(9, 9), 5)
	play(t, g, [2]int{5, 5})
	is.NoErr(g.Resign())
	is.Equal(g.State(), State{Play: Surrendered, Color: board.White})
	is.Equal(g.State().String(), "WHITE surrenders")
}

func TestUndo(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.NewBoard(15, 15), 5, MaxForfeits(3))
	is.True(errors.Is(g.Undo(), ErrNothingToUndo))

	for j := 1; j <= 4; j++ {
		play(t, g, [2]int{8, j}, [2]int{9, j})
	}
	play(t, g, [2]int{8, 5})
	is.True(!g.Playing())

	is.NoErr(g.Undo())
	is.True(g.Playing())
	is.Equal(g.Onturn(), board.Black)
	is.Equal(g.Board().Get(8, 5), board.Blank)
	is.Equal(g.MovesBy(board.Black), 4)
	is.Equal(g.Turn(), 8)

	is.NoErr(g.Forfeit("oops"))
	is.NoErr(g.Forfeit("oops"))
	is.Equal(g.ConsecutiveForfeits(board.Black), 1)
	is.Equal(g.ConsecutiveForfeits(board.White), 1)
	is.NoErr(g.Undo())
	is.Equal(g.Onturn(), board.White)
	is.Equal(g.ConsecutiveForfeits(board.White), 0)
	is.Equal(g.ConsecutiveForfeits(board.Black), 1)
}

func TestSaveTextRoundTrip(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.NewBoard(6, 6), 5)
	play(t, g, [2]int{3, 3}, [2]int{3, 4})
	is.NoErr(g.Forfeit("skip"))
	play(t, g, [2]int{6, 6})

	text := g.History().SaveText()
	is.True(strings.HasPrefix(text, "\n\n\n"))
	boards, err := ParseSaved(text, 6, 6)
	is.NoErr(err)
	is.Equal(len(boards), 3)
	is.True(boards[2].Equal(g.Board()))
	is.Equal(boards[0].CountStones(board.Black), 1)
	is.Equal(boards[1].Get(3, 4), board.White)
	is.Equal(boards[2].Get(6, 6), board.White)
}

func TestParseSavedBlankBoard(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard(3, 2)
	text := savedSeparator + b.Serialize()
	boards, err := ParseSaved(text, 3, 2)
	is.NoErr(err)
	is.Equal(len(boards), 1)
	is.True(boards[0].IsEmpty())
}

func TestDisplayText(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.NewBoard(5, 5), 5, Names("beam", "greedy"))
	play(t, g, [2]int{3, 3})
	text := g.ToDisplayText()
	lines := strings.Split(text, "\n")
	is.True(strings.HasPrefix(lines[0], "    A B C D E"))
	is.True(strings.HasPrefix(lines[3], "  3 . .[*]. ."))
	is.True(strings.Contains(lines[1], "* beam: 1 moves"))
	is.True(strings.Contains(lines[2], "-> o greedy: 0 moves"))
	is.True(strings.Contains(text, "BLACK 3C"))
	is.True(g.LastMove().Equals(move.NewPlacement(3, 3, 0)))
}

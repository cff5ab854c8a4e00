package turnplayer

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/lines"
)

func TestCenterMove(t *testing.T) {
	is := is.New(t)
	m := CenterMove(board.NewBoard(15, 15))
	is.Equal([2]int{m.Row(), m.Col()}, [2]int{8, 8})

	m = CenterMove(board.NewBoard(6, 6))
	is.Equal([2]int{m.Row(), m.Col()}, [2]int{3, 3})

	b := board.NewBoard(6, 6)
	b.Set(3, 3, board.Wall)
	m = CenterMove(b)
	is.Equal([2]int{m.Row(), m.Col()}, [2]int{3, 4})

	b.Set(4, 4, board.Black)
	is.True(CenterMove(b) == nil)
}

func TestVictoryMove(t *testing.T) {
	is := is.New(t)
	b := board.MustBoard(15, 15, board.BlackFourOpen)
	m := VictoryMove(b, board.Black, 5)
	is.Equal([2]int{m.Row(), m.Col()}, [2]int{8, 2})
	is.True(VictoryMove(b, board.White, 5) == nil)

	b = board.MustBoard(15, 15, board.WhiteFourBlockedTop)
	m = ObviousMove(b, board.White, 5)
	is.Equal([2]int{m.Row(), m.Col()}, [2]int{7, 5})
	b.Set(m.Row(), m.Col(), board.White)
	c, found := b.FindLines(5)
	is.True(found)
	is.Equal(c, board.White)

	is.True(VictoryMove(board.MustBoard(8, 8, board.WalledFour), board.Black, 5) == nil)
}

func TestVictoryMoveIn(t *testing.T) {
	is := is.New(t)
	for _, pos := range []board.Position{board.BlackFourOpen, board.WhiteFourBlockedTop, board.WalledFour} {
		b := board.MustBoard(15, 15, pos)
		x := lines.For(15, 15, 5)
		for _, c := range []board.Color{board.Black, board.White} {
			is.Equal(VictoryMoveIn(x, b, c), VictoryMove(b, c, 5))
		}
	}
}

func TestRandomPlayer(t *testing.T) {
	is := is.New(t)
	p := &RandomPlayer{}
	b := board.MustParse(3, 1, "* o\n")
	for range 10 {
		m, err := p.SelectMove(context.Background(), b, board.Black)
		is.NoErr(err)
		is.Equal([2]int{m.Row(), m.Col()}, [2]int{1, 3})
	}
	b.Set(1, 3, board.Black)
	m, err := p.SelectMove(context.Background(), b, board.White)
	is.NoErr(err)
	is.True(m == nil)
}

func TestSettings(t *testing.T) {
	is := is.New(t)
	s := DefaultSettings()
	is.NoErr(s.Validate())
	is.Equal(s.RunLength, 5)
	is.Equal(s.OpponentFactor(), 1.0)

	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigAggressiveness, 2)
	_, err := SettingsFromConfig(cfg)
	is.True(errors.Is(err, ErrBadSettings))
}

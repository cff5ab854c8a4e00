package player

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/ai/beam"
	"github.com/domino14/gomoku/ai/turnplayer"
	"github.com/domino14/gomoku/board"
)

func TestNames(t *testing.T) {
	is := is.New(t)
	is.Equal(Names(), []string{"beam", "greedy", "human", "negamax", "random"})
}

func TestNew(t *testing.T) {
	is := is.New(t)
	s := turnplayer.DefaultSettings()
	for _, n := range []string{"random", "greedy", "Greedy:0.5", "beam:300", "negamax:3"} {
		sel, err := New(n, s)
		is.NoErr(err)
		is.True(strings.HasPrefix(strings.ToLower(n), sel.Name()))
	}
	_, err := New("dolphin", s)
	is.True(errors.Is(err, ErrUnknownAgent))
	_, err = New("negamax:deep", s)
	is.True(err != nil)
	_, err = New("greedy:3", s)
	is.True(errors.Is(err, turnplayer.ErrBadSettings))
}

// On an empty board every agent opens in the center block.
func TestAgentsOpenInCenter(t *testing.T) {
	is := is.New(t)
	s := turnplayer.DefaultSettings()
	s.TimeBudget = 100 * time.Millisecond
	for _, n := range []string{"greedy", "beam", "negamax"} {
		sel, err := New(n, s)
		is.NoErr(err)
		m, err := sel.SelectMove(context.Background(), board.NewBoard(15, 15), board.Black)
		is.NoErr(err)
		is.Equal([2]int{m.Row(), m.Col()}, [2]int{8, 8})

		m, err = sel.SelectMove(context.Background(), board.NewBoard(8, 8), board.Black)
		is.NoErr(err)
		is.True(m.Row() >= 4 && m.Row() <= 5 && m.Col() >= 4 && m.Col() <= 5)
	}
	sel, err := New("beam:50", s)
	is.NoErr(err)
	_, isBeam := sel.(*beam.Player)
	is.True(isBeam)
}

// Every searching agent must stop the open four, leave the board as it found
// it, and still move when no window fits the board.
func TestAgentsBlockForcedCellAndRestore(t *testing.T) {
	is := is.New(t)
	s := turnplayer.DefaultSettings()
	s.TimeBudget = 100 * time.Millisecond
	for _, n := range []string{"greedy", "beam", "negamax"} {
		sel, err := New(n, s)
		is.NoErr(err)
		b := board.MustBoard(15, 15, board.WhiteFourBlockedTop)
		orig := b.Copy()
		m, err := sel.SelectMove(context.Background(), b, board.Black)
		is.NoErr(err)
		is.Equal([2]int{m.Row(), m.Col()}, [2]int{7, 5})
		is.True(b.Equal(orig))

		tiny := board.NewBoard(3, 3)
		tiny.Set(2, 2, board.Black)
		m, err = sel.SelectMove(context.Background(), tiny, board.White)
		is.NoErr(err)
		is.True(m != nil)
		is.Equal(tiny.Get(m.Row(), m.Col()), board.Blank)
	}
}

func TestHumanPlayer(t *testing.T) {
	is := is.New(t)
	var out bytes.Buffer
	p := NewHumanPlayer(strings.NewReader("\nzz\nh8\n8,9\nresign\n"), &out)
	b := board.NewBoard(15, 15)

	m, err := p.SelectMove(context.Background(), b, board.Black)
	is.NoErr(err)
	is.Equal([2]int{m.Row(), m.Col()}, [2]int{8, 8})
	is.True(strings.Contains(out.String(), "unrecognized coordinates"))

	m, err = p.SelectMove(context.Background(), b, board.White)
	is.NoErr(err)
	is.Equal([2]int{m.Row(), m.Col()}, [2]int{8, 9})

	m, err = p.SelectMove(context.Background(), b, board.Black)
	is.NoErr(err)
	is.True(m == nil)

	_, err = p.SelectMove(context.Background(), b, board.White)
	is.True(errors.Is(err, io.ErrUnexpectedEOF))
}

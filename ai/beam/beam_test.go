package beam

import (
	"context"
	"math"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/gomoku/ai/turnplayer"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/scorer"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func fastSettings() turnplayer.Settings {
	s := turnplayer.DefaultSettings()
	s.TimeBudget = 200 * time.Millisecond
	return s
}

func TestSearchFindsImmediateWin(t *testing.T) {
	is := is.New(t)
	b := board.MustBoard(15, 15, board.BlackFourOpen)
	orig := b.Copy()
	p := NewPlayer(fastSettings())
	s := scorer.New(b, 5, scorer.DefaultWeights())
	m := p.search(context.Background(), s, board.Black)
	is.Equal([2]int{m.Row(), m.Col()}, [2]int{8, 2})
	is.True(math.IsInf(m.Score(), 1))
	is.True(b.Equal(orig))
	is.NoErr(s.Verify())
}

func TestForcedBlockConverges(t *testing.T) {
	is := is.New(t)
	b := board.MustBoard(15, 15, board.WhiteFourBlockedTop)
	p := NewPlayer(fastSettings())
	m, err := p.SelectMove(context.Background(), b, board.Black)
	is.NoErr(err)
	is.Equal([2]int{m.Row(), m.Col()}, [2]int{7, 5})
	is.Equal(p.Rounds(), 0)
}

func TestLostPositionFallsBackToGreedy(t *testing.T) {
	is := is.New(t)
	b := board.MustParse(9, 9, `
* * * *



* * * *
`)
	p := NewPlayer(fastSettings())
	m, err := p.SelectMove(context.Background(), b, board.White)
	is.NoErr(err)
	is.True(m != nil)
	is.Equal([2]int{m.Row(), m.Col()}, [2]int{1, 5})
}

func TestRespectsBudgetAndRestoresBoard(t *testing.T) {
	is := is.New(t)
	b := board.MustBoard(15, 15, board.DiagonalThreat)
	orig := b.Copy()
	settings := fastSettings()
	settings.TimeBudget = 100 * time.Millisecond
	p := NewPlayer(settings)

	start := time.Now()
	m, err := p.SelectMove(context.Background(), b, board.White)
	is.NoErr(err)
	is.True(time.Since(start) < 5*time.Second)
	is.True(m != nil)
	is.Equal(b.Get(m.Row(), m.Col()), board.Blank)
	is.True(b.Equal(orig))
}

func TestCancelledContextStillMoves(t *testing.T) {
	is := is.New(t)
	b := board.MustBoard(15, 15, board.DiagonalThreat)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m, err := NewPlayer(fastSettings()).SelectMove(ctx, b, board.Black)
	is.NoErr(err)
	is.True(m != nil)
	is.Equal(b.Get(m.Row(), m.Col()), board.Blank)
}

func TestEmptyBoardOpensInCenter(t *testing.T) {
	is := is.New(t)
	m, err := NewPlayer(fastSettings()).SelectMove(context.Background(), board.NewBoard(10, 10), board.Black)
	is.NoErr(err)
	is.Equal([2]int{m.Row(), m.Col()}, [2]int{5, 5})
}

func TestWithSequenceRestores(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard(7, 7)
	s := scorer.New(b, 5, scorer.DefaultWeights())
	seq := []step{
		{row: 1, col: 1, replyRow: 2, replyCol: 2, hasReply: true},
		{row: 3, col: 3},
	}
	withSequence(s, seq, board.Black, func() {
		is.Equal(b.Get(1, 1), board.Black)
		is.Equal(b.Get(2, 2), board.White)
		is.Equal(b.Get(3, 3), board.Black)
	})
	is.True(b.IsEmpty())
	is.NoErr(s.Verify())
}

package automatic

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

var errBroken = errors.New("broken selector")

// scripted plays a fixed list of moves, then resigns.
type scripted struct {
	name   string
	moves  [][2]int
	k      int
	err    error
	panics bool
}

func (s *scripted) Name() string { return s.name }

func (s *scripted) SelectMove(ctx context.Context, b *board.Board, c board.Color) (*move.Move, error) {
	if s.panics {
		panic("out of cheese")
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.k >= len(s.moves) {
		return nil, nil
	}
	m := s.moves[s.k]
	s.k++
	return move.NewPlacement(m[0], m[1], 0), nil
}

func smallConfig(w, h int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigBoardWidth, w)
	cfg.Set(config.ConfigBoardHeight, h)
	cfg.Set(config.ConfigBlack, "random")
	cfg.Set(config.ConfigWhite, "random")
	return cfg
}

func newRunner(t *testing.T, cfg *config.Config, black, white *scripted) *GameRunner {
	t.Helper()
	r, err := NewGameRunner(cfg)
	if err != nil {
		t.Fatal(err)
	}
	r.SetSelector(board.Black, black)
	r.SetSelector(board.White, white)
	return r
}

func TestPlayGameWin(t *testing.T) {
	is := is.New(t)
	black := &scripted{name: "b", moves: [][2]int{{5, 1}, {5, 2}, {5, 3}, {5, 4}, {5, 5}}}
	white := &scripted{name: "w", moves: [][2]int{{6, 1}, {6, 2}, {6, 3}, {6, 4}}}
	r := newRunner(t, smallConfig(9, 9), black, white)
	var save bytes.Buffer
	r.SetSaveWriter(&save)

	res, err := r.PlayGame(context.Background())
	is.NoErr(err)
	is.Equal(res.State, game.State{Play: game.WonByColor, Color: board.Black})
	is.Equal(res.Turns, 9)
	is.Equal(res.Agents, [2]string{"w", "b"})
	is.Equal(res.Timings[board.Black.Slot()].Iterations(), 5)
	is.Equal(res.Timings[board.White.Slot()].Iterations(), 4)
	is.Equal(res.Final.CountStones(board.Black), 5)

	boards, err := game.ParseSaved(save.String(), 9, 9)
	is.NoErr(err)
	is.Equal(len(boards), 9)
	is.True(boards[8].Equal(res.Final))

	is.True(errors.Is(r.PlayTurn(context.Background()), game.ErrGameOver))
}

func TestIllegalMovesForfeitThenSurrender(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig(9, 9)
	cfg.Set(config.ConfigMaxForfeits, 2)
	black := &scripted{name: "b", moves: [][2]int{{1, 1}, {2, 2}}}
	white := &scripted{name: "w", moves: [][2]int{{1, 1}, {0, 4}}}
	r := newRunner(t, cfg, black, white)

	res, err := r.PlayGame(context.Background())
	is.NoErr(err)
	is.Equal(res.State, game.State{Play: game.Surrendered, Color: board.White})
	is.Equal(res.Turns, 4)
	is.Equal(res.Final.CountStones(board.White), 0)
}

func TestNoMoveIsSurrender(t *testing.T) {
	is := is.New(t)
	r := newRunner(t, smallConfig(9, 9), &scripted{name: "b"}, &scripted{name: "w"})
	res, err := r.PlayGame(context.Background())
	is.NoErr(err)
	is.Equal(res.State, game.State{Play: game.Surrendered, Color: board.Black})
	w, _ := res.State.Winner()
	is.Equal(w, board.White)
}

func TestStrategyFault(t *testing.T) {
	is := is.New(t)
	black := &scripted{name: "b", moves: [][2]int{{5, 5}}}
	white := &scripted{name: "w", err: errBroken}
	r := newRunner(t, smallConfig(9, 9), black, white)

	res, err := r.PlayGame(context.Background())
	var sf *StrategyFaultError
	is.True(errors.As(err, &sf))
	is.Equal(sf.Color, board.White)
	is.Equal(sf.Agent, "w")
	is.True(errors.Is(err, errBroken))
	is.Equal(res.State.Play, game.InProgress)
	is.Equal(res.Turns, 1)

	r = newRunner(t, smallConfig(9, 9), &scripted{name: "b", panics: true}, &scripted{name: "w"})
	_, err = r.PlayGame(context.Background())
	is.True(errors.As(err, &sf))
	is.Equal(sf.Color, board.Black)
	is.True(strings.Contains(err.Error(), "out of cheese"))
}

func TestCancelledGame(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, err := NewGameRunner(smallConfig(9, 9))
	is.NoErr(err)
	res, err := r.PlayGame(ctx)
	is.True(errors.Is(err, context.Canceled))
	is.Equal(res.Turns, 0)
}

func TestUnknownAgent(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig(9, 9)
	cfg.Set(config.ConfigWhite, "alphazero")
	_, err := NewGameRunner(cfg)
	is.True(err != nil)
}

func TestStartingBoard(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "start.txt")
	is.NoErr(os.WriteFile(path, []byte("* o\n  *\n"), 0o644))
	cfg := smallConfig(5, 5)
	cfg.Set(config.ConfigLoadPath, path)
	cfg.Set(config.ConfigHoles, 3)

	b, err := StartingBoard(cfg)
	is.NoErr(err)
	is.Equal(b.Get(1, 1), board.Black)
	is.Equal(b.Get(1, 2), board.White)
	is.Equal(b.Get(2, 2), board.Black)
	is.Equal(b.CountStones(board.Wall), 2*7+2*5+3)

	is.NoErr(os.WriteFile(path, []byte("* Q\n"), 0o644))
	_, err = StartingBoard(cfg)
	var fe *board.FormatError
	is.True(errors.As(err, &fe))
}

func TestWhiteFirst(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig(9, 9)
	cfg.Set(config.ConfigWhiteFirst, true)
	black := &scripted{name: "b"}
	white := &scripted{name: "w", moves: [][2]int{{3, 3}}}
	r := newRunner(t, cfg, black, white)
	res, err := r.PlayGame(context.Background())
	is.NoErr(err)
	is.Equal(res.Final.Get(3, 3), board.White)
	is.Equal(res.State, game.State{Play: game.Surrendered, Color: board.Black})
}

func TestDisplayChan(t *testing.T) {
	is := is.New(t)
	black := &scripted{name: "b", moves: [][2]int{{1, 1}}}
	r := newRunner(t, smallConfig(5, 5), black, &scripted{name: "w"})
	ch := make(chan string, 4)
	r.SetDisplayChan(ch)
	_, err := r.PlayGame(context.Background())
	is.NoErr(err)
	close(ch)
	var frames []string
	for f := range ch {
		frames = append(frames, f)
	}
	is.Equal(len(frames), 2)
	is.True(strings.Contains(frames[1], "Game is over"))
}

// Package automatic plays games between move selectors: one game at a
// time through a GameRunner, or whole batches of them with PlayMatches.
package automatic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/domino14/gomoku/ai/player"
	"github.com/domino14/gomoku/ai/turnplayer"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/stats"
)

// StrategyFaultError is returned when a move selector fails or panics in
// the middle of a game. The game cannot continue after one.
type StrategyFaultError struct {
	Color board.Color
	Agent string
	Err   error
}

func (e *StrategyFaultError) Error() string {
	return fmt.Sprintf("%v (%s) failed: %v", e.Color, e.Agent, e.Err)
}

func (e *StrategyFaultError) Unwrap() error {
	return e.Err
}

// GameResult is the outcome of a single game.
type GameResult struct {
	State  game.State
	Turns  int
	Final  *board.Board
	Agents [2]string
	// Timings are milliseconds per move, indexed by Color.Slot().
	Timings [2]*stats.Statistic
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game      *game.Game
	config    *config.Config
	selectors [2]turnplayer.MoveSelector
	agents    [2]string
	timings   [2]*stats.Statistic

	save     io.Writer
	gamechan chan string
}

// NewGameRunner sets up a game from the config: board size, loaded
// position, holes, who goes first, and the agents for both colors.
func NewGameRunner(cfg *config.Config) (*GameRunner, error) {
	r := &GameRunner{config: cfg}
	if err := r.Init(cfg.GetString(config.ConfigBlack), cfg.GetString(config.ConfigWhite)); err != nil {
		return nil, err
	}
	return r, nil
}

// Init (re)starts the runner with the named agents on a fresh board.
func (r *GameRunner) Init(black, white string) error {
	settings, err := turnplayer.SettingsFromConfig(r.config)
	if err != nil {
		return err
	}
	b, err := StartingBoard(r.config)
	if err != nil {
		return err
	}
	r.agents[board.Black.Slot()] = black
	r.agents[board.White.Slot()] = white
	for _, c := range board.StoneColors {
		sel, err := player.New(r.agents[c.Slot()], settings)
		if err != nil {
			return err
		}
		r.selectors[c.Slot()] = sel
		r.timings[c.Slot()] = &stats.Statistic{}
	}
	r.game = game.NewGame(b, settings.RunLength,
		game.WhiteFirst(r.config.GetBool(config.ConfigWhiteFirst)),
		game.MaxForfeits(r.config.GetInt(config.ConfigMaxForfeits)),
		game.Names(black, white))
	return nil
}

// StartingBoard builds the initial board: an optional position loaded
// from load-path, then a number of random holes.
func StartingBoard(cfg *config.Config) (*board.Board, error) {
	b := board.NewBoard(cfg.GetInt(config.ConfigBoardWidth), cfg.GetInt(config.ConfigBoardHeight))
	if path := cfg.GetString(config.ConfigLoadPath); path != "" {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := b.Deserialize(string(text)); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}
	if holes := cfg.GetInt(config.ConfigHoles); holes > 0 {
		b.CarveHoles(holes)
	}
	return b, nil
}

// SetSelector replaces the move selector for color c.
func (r *GameRunner) SetSelector(c board.Color, sel turnplayer.MoveSelector) {
	r.selectors[c.Slot()] = sel
	r.agents[c.Slot()] = sel.Name()
}

// SetSaveWriter makes the runner write every position after a placement,
// in the saved-game format.
func (r *GameRunner) SetSaveWriter(w io.Writer) {
	r.save = w
}

// SetDisplayChan makes the runner send the display text of the game after
// every turn. Sends block.
func (r *GameRunner) SetDisplayChan(ch chan string) {
	r.gamechan = ch
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// Timing returns the move time statistic of color c, in milliseconds.
func (r *GameRunner) Timing(c board.Color) *stats.Statistic {
	return r.timings[c.Slot()]
}

func (r *GameRunner) selectMove(ctx context.Context, c board.Color) (m *move.Move, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return r.selectors[c.Slot()].SelectMove(ctx, r.game.Board().Copy(), c)
}

// PlayTurn asks the agent on turn for a move and applies it. An illegal
// move forfeits the turn; no move at all is a surrender.
func (r *GameRunner) PlayTurn(ctx context.Context) error {
	if !r.game.Playing() {
		return game.ErrGameOver
	}
	logger := zerolog.Ctx(ctx)
	c := r.game.Onturn()
	agent := r.agents[c.Slot()]

	start := time.Now()
	m, err := r.selectMove(ctx, c)
	elapsed := time.Since(start)
	r.timings[c.Slot()].Push(float64(elapsed.Microseconds()) / 1000)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return ctxErr
		}
		logger.Error().Err(err).Str("color", c.String()).Str("agent", agent).Msg("strategy-fault")
		return &StrategyFaultError{Color: c, Agent: agent, Err: err}
	}
	if m == nil {
		logger.Info().Str("color", c.String()).Str("agent", agent).Msg("surrender")
		err = r.game.Resign()
	} else {
		err = r.game.PlayMove(m)
		var ime *game.IllegalMoveError
		if errors.As(err, &ime) {
			logger.Warn().Err(err).Str("color", c.String()).Str("agent", agent).Msg("illegal-move")
			err = r.game.Forfeit(ime.Error())
		} else if err == nil && r.save != nil {
			_, err = io.WriteString(r.save, "\n\n\n"+r.game.Board().Serialize())
		}
	}
	if err != nil {
		return err
	}
	if m != nil {
		logger.Debug().Str("color", c.String()).Str("move", m.ShortDescription()).
			Dur("elapsed", elapsed).Msg("turn")
	}
	if r.gamechan != nil {
		r.gamechan <- r.game.ToDisplayText()
	}
	return nil
}

// PlayGame plays turns until the game is over. A strategy fault ends the
// game early; the partial result is returned with the error.
func (r *GameRunner) PlayGame(ctx context.Context) (*GameResult, error) {
	var err error
	for r.game.Playing() {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = r.PlayTurn(ctx); err != nil {
			break
		}
	}
	res := r.result()
	if err == nil {
		zerolog.Ctx(ctx).Info().Str("result", res.State.String()).Int("turns", res.Turns).
			Str("black", res.Agents[board.Black.Slot()]).
			Str("white", res.Agents[board.White.Slot()]).Msg("game-over")
	}
	return res, err
}

func (r *GameRunner) result() *GameResult {
	res := &GameResult{
		State:  r.game.State(),
		Turns:  r.game.Turn(),
		Final:  r.game.Board().Copy(),
		Agents: r.agents,
	}
	for slot, t := range r.timings {
		cp := *t
		res.Timings[slot] = &cp
	}
	return res
}

// Package game encapsulates the rules of a five-in-a-row game: whose turn
// it is, what counts as a legal placement, and when the game is over. A
// Game doesn't care how it is played; agents and human players drive it
// from outside this package.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

var (
	ErrGameOver      = errors.New("game is over")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// IllegalMoveError is returned when a placement targets a cell that is off
// the board or already occupied.
type IllegalMoveError struct {
	Row, Col int
	Reason   string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move (%d, %d): %s", e.Row, e.Col, e.Reason)
}

// Game is the internal game structure. board holds the latest position;
// initial is kept so that a game can be replayed or saved from the start.
type Game struct {
	board     *board.Board
	initial   *board.Board
	runLength int

	onturn    board.Color
	wentfirst board.Color
	state     State
	turnnum   int

	players [2]*playerState
	history *History

	maxForfeits int
}

// Option configures a new game.
type Option func(*Game)

// WhiteFirst lets White move first. Black moves first otherwise.
func WhiteFirst(yes bool) Option {
	return func(g *Game) {
		if yes {
			g.wentfirst = board.White
		}
	}
}

// MaxForfeits sets the number of consecutive forfeited turns after which a
// player is considered to have surrendered. Zero disables the limit.
func MaxForfeits(n int) Option {
	return func(g *Game) {
		g.maxForfeits = n
	}
}

// Names sets the display names of the players.
func Names(black, white string) Option {
	return func(g *Game) {
		g.players[board.Black.Slot()].name = black
		g.players[board.White.Slot()].name = white
	}
}

// NewGame starts a game on a copy of the given board. The board may
// already hold stones and walls; if it is already decided the game starts
// out over.
func NewGame(b *board.Board, runLength int, opts ...Option) *Game {
	g := &Game{
		board:     b.Copy(),
		initial:   b.Copy(),
		runLength: runLength,
		wentfirst: board.Black,
		players: [2]*playerState{
			newPlayerState(board.White.String()),
			newPlayerState(board.Black.String()),
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.onturn = g.wentfirst
	g.history = newHistory(g.initial, g.wentfirst)
	g.state = g.terminalState()
	return g
}

func (g *Game) Board() *board.Board {
	return g.board
}

// InitialBoard is the position the game started from.
func (g *Game) InitialBoard() *board.Board {
	return g.initial
}

func (g *Game) RunLength() int {
	return g.runLength
}

func (g *Game) Onturn() board.Color {
	return g.onturn
}

func (g *Game) WentFirst() board.Color {
	return g.wentfirst
}

func (g *Game) State() State {
	return g.state
}

// Playing returns true while the game is in progress.
func (g *Game) Playing() bool {
	return g.state.Play == InProgress
}

// Turn returns the number of turns taken so far.
func (g *Game) Turn() int {
	return g.turnnum
}

func (g *Game) History() *History {
	return g.history
}

// PlayerName returns the display name of the player with color c.
func (g *Game) PlayerName(c board.Color) string {
	return g.players[c.Slot()].name
}

// MovesBy returns how many stones c has placed.
func (g *Game) MovesBy(c board.Color) int {
	return g.players[c.Slot()].moves
}

// ConsecutiveForfeits returns how many turns in a row c has forfeited.
func (g *Game) ConsecutiveForfeits(c board.Color) int {
	return g.players[c.Slot()].consecutiveForfeits
}

// ValidateMove checks that a move targets a blank interior cell.
func (g *Game) ValidateMove(m *move.Move) error {
	i, j := m.Coords()
	if !g.board.InBounds(i, j) {
		return &IllegalMoveError{Row: i, Col: j, Reason: "off the board"}
	}
	if c := g.board.Get(i, j); c != board.Blank {
		return &IllegalMoveError{Row: i, Col: j, Reason: fmt.Sprintf("cell holds %v", c)}
	}
	return nil
}

// PlayMove places a stone for the player on turn. An illegal move is
// rejected and the game state is not touched.
func (g *Game) PlayMove(m *move.Move) error {
	if !g.Playing() {
		return ErrGameOver
	}
	if err := g.ValidateMove(m); err != nil {
		return err
	}
	i, j := m.Coords()
	g.board.Set(i, j, g.onturn)
	g.history.add(Event{Type: Placement, Color: g.onturn, Row: i, Col: j, Score: m.Score()})
	p := g.players[g.onturn.Slot()]
	p.moves++
	p.consecutiveForfeits = 0
	g.turnnum++

	g.state = g.terminalState()
	if !g.Playing() {
		log.Debug().Str("state", g.state.String()).Int("turn", g.turnnum).Msg("game-over")
		return nil
	}
	g.onturn = g.onturn.Opponent()
	return nil
}

// Forfeit records a lost turn for the player on turn, for example after
// an illegal move. Reaching the forfeit limit ends the game as a
// surrender.
func (g *Game) Forfeit(reason string) error {
	if !g.Playing() {
		return ErrGameOver
	}
	g.history.add(Event{Type: Forfeited, Color: g.onturn, Note: reason})
	p := g.players[g.onturn.Slot()]
	p.forfeits++
	p.consecutiveForfeits++
	g.turnnum++
	if g.maxForfeits > 0 && p.consecutiveForfeits >= g.maxForfeits {
		g.state = State{Play: Surrendered, Color: g.onturn}
		log.Debug().Str("color", g.onturn.String()).Int("forfeits", p.consecutiveForfeits).
			Msg("forfeit-limit-reached")
		return nil
	}
	g.onturn = g.onturn.Opponent()
	return nil
}

// Resign ends the game with the player on turn surrendering.
func (g *Game) Resign() error {
	if !g.Playing() {
		return ErrGameOver
	}
	g.history.add(Event{Type: Resigned, Color: g.onturn})
	g.turnnum++
	g.state = State{Play: Surrendered, Color: g.onturn}
	return nil
}

// Undo takes back the last event, whatever it was, and resumes play with
// the player who made it.
func (g *Game) Undo() error {
	evt, ok := g.history.pop()
	if !ok {
		return ErrNothingToUndo
	}
	p := g.players[evt.Color.Slot()]
	switch evt.Type {
	case Placement:
		g.board.Set(evt.Row, evt.Col, board.Blank)
		p.moves--
	case Forfeited:
		p.forfeits--
	}
	g.turnnum--
	g.onturn = evt.Color
	g.state = State{Play: InProgress}
	g.recountForfeits()
	return nil
}

func (g *Game) recountForfeits() {
	for _, c := range board.StoneColors {
		n := 0
		for idx := len(g.history.Events) - 1; idx >= 0; idx-- {
			evt := g.history.Events[idx]
			if evt.Color != c {
				continue
			}
			if evt.Type != Forfeited {
				break
			}
			n++
		}
		g.players[c.Slot()].consecutiveForfeits = n
	}
}

func (g *Game) terminalState() State {
	if c, found := g.board.FindLines(g.runLength); found {
		return State{Play: WonByColor, Color: c}
	}
	if !g.board.HasBlanks() {
		return State{Play: Drawn}
	}
	return State{Play: InProgress}
}

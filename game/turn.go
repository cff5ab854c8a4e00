package game

import (
	"fmt"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

// PlayState is the coarse state of a game.
type PlayState uint8

const (
	InProgress PlayState = iota
	WonByColor
	Drawn
	Surrendered
)

// State is a PlayState plus the color it concerns: the winner for
// WonByColor, the player who gave up for Surrendered.
type State struct {
	Play  PlayState
	Color board.Color
}

// Winner returns the winning color, if the game has one. A surrender
// hands the win to the opponent.
func (s State) Winner() (board.Color, bool) {
	switch s.Play {
	case WonByColor:
		return s.Color, true
	case Surrendered:
		return s.Color.Opponent(), true
	}
	return board.Blank, false
}

func (s State) String() string {
	switch s.Play {
	case InProgress:
		return "in progress"
	case WonByColor:
		return fmt.Sprintf("%v wins", s.Color)
	case Drawn:
		return "draw"
	case Surrendered:
		return fmt.Sprintf("%v surrenders", s.Color)
	}
	return "unknown"
}

// EventType is what happened on a turn.
type EventType uint8

const (
	Placement EventType = iota
	Forfeited
	Resigned
)

// Event is one turn of the game.
type Event struct {
	Type  EventType
	Color board.Color
	Row   int
	Col   int
	Score float64
	Note  string
}

// Move returns the placement as a move, or nil for other events.
func (e Event) Move() *move.Move {
	if e.Type != Placement {
		return nil
	}
	return move.NewPlacement(e.Row, e.Col, e.Score)
}

func (e Event) String() string {
	switch e.Type {
	case Placement:
		return fmt.Sprintf("%v %s", e.Color, move.ToBoardGameCoords(e.Row, e.Col))
	case Forfeited:
		if e.Note != "" {
			return fmt.Sprintf("%v forfeits (%s)", e.Color, e.Note)
		}
		return fmt.Sprintf("%v forfeits", e.Color)
	case Resigned:
		return fmt.Sprintf("%v resigns", e.Color)
	}
	return "?"
}

package game

import (
	"regexp"
	"strings"

	"github.com/domino14/gomoku/board"
)

// savedSeparator goes in front of every position in a saved game.
const savedSeparator = "\n\n\n"

var reSavedSeparator = regexp.MustCompile(`\n{3,}`)

// History is the starting position plus every turn taken since.
type History struct {
	Initial   *board.Board
	WentFirst board.Color
	Events    []Event
}

func newHistory(initial *board.Board, wentfirst board.Color) *History {
	return &History{Initial: initial, WentFirst: wentfirst}
}

func (h *History) add(evt Event) {
	h.Events = append(h.Events, evt)
}

func (h *History) pop() (Event, bool) {
	if len(h.Events) == 0 {
		return Event{}, false
	}
	evt := h.Events[len(h.Events)-1]
	h.Events = h.Events[:len(h.Events)-1]
	return evt, true
}

// Last returns the most recent event, if any.
func (h *History) Last() (Event, bool) {
	if len(h.Events) == 0 {
		return Event{}, false
	}
	return h.Events[len(h.Events)-1], true
}

// Positions replays the history and returns the board after every
// placement. Turns without a placement do not produce a position.
func (h *History) Positions() []*board.Board {
	b := h.Initial.Copy()
	var out []*board.Board
	for _, evt := range h.Events {
		if evt.Type != Placement {
			continue
		}
		b.Set(evt.Row, evt.Col, evt.Color)
		out = append(out, b.Copy())
	}
	return out
}

// SaveText renders every position after a placement, each one preceded by
// two blank lines.
func (h *History) SaveText() string {
	var sb strings.Builder
	for _, b := range h.Positions() {
		sb.WriteString(savedSeparator)
		sb.WriteString(b.Serialize())
	}
	return sb.String()
}

// ParseSaved splits text written by SaveText back into positions on
// boards of the given size.
func ParseSaved(text string, width, height int) ([]*board.Board, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []*board.Board
	for _, chunk := range reSavedSeparator.Split(text, -1) {
		if strings.Trim(chunk, "\n") == "" {
			continue
		}
		b := board.NewBoard(width, height)
		if err := b.Deserialize(strings.TrimPrefix(chunk, "\n")); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Package player builds move selectors by name. A name may carry one option
// after a colon, e.g. "negamax:6" for a six-ply search or "beam:500" for a
// 500 ms budget.
package player

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/domino14/gomoku/ai/beam"
	"github.com/domino14/gomoku/ai/greedy"
	"github.com/domino14/gomoku/ai/negamax"
	"github.com/domino14/gomoku/ai/turnplayer"
)

var ErrUnknownAgent = errors.New("unknown agent")

type factory func(settings turnplayer.Settings, option string) (turnplayer.MoveSelector, error)

var registry = map[string]factory{
	"random": func(turnplayer.Settings, string) (turnplayer.MoveSelector, error) {
		return &turnplayer.RandomPlayer{}, nil
	},
	"greedy": func(s turnplayer.Settings, opt string) (turnplayer.MoveSelector, error) {
		if opt != "" {
			a, err := strconv.ParseFloat(opt, 64)
			if err != nil {
				return nil, fmt.Errorf("greedy aggressiveness %q: %w", opt, err)
			}
			s.Aggressiveness = a
		}
		return greedy.NewPlayer(s), s.Validate()
	},
	"beam": func(s turnplayer.Settings, opt string) (turnplayer.MoveSelector, error) {
		if opt != "" {
			ms, err := strconv.Atoi(opt)
			if err != nil {
				return nil, fmt.Errorf("beam budget %q: %w", opt, err)
			}
			s.TimeBudget = time.Duration(ms) * time.Millisecond
		}
		return beam.NewPlayer(s), s.Validate()
	},
	"negamax": func(s turnplayer.Settings, opt string) (turnplayer.MoveSelector, error) {
		if opt != "" {
			d, err := strconv.Atoi(opt)
			if err != nil {
				return nil, fmt.Errorf("negamax depth %q: %w", opt, err)
			}
			s.NegamaxDepth = d
		}
		return negamax.NewPlayer(s), s.Validate()
	},
	"human": func(turnplayer.Settings, string) (turnplayer.MoveSelector, error) {
		return NewHumanPlayer(os.Stdin, os.Stdout), nil
	},
}

// New returns the selector registered under name.
func New(name string, settings turnplayer.Settings) (turnplayer.MoveSelector, error) {
	base, opt, _ := strings.Cut(strings.ToLower(strings.TrimSpace(name)), ":")
	f, ok := registry[base]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownAgent, name,
			strings.Join(Names(), ", "))
	}
	sel, err := f(settings, opt)
	if err != nil {
		return nil, err
	}
	return sel, nil
}

// Names lists the registered selectors, sorted.
func Names() []string {
	names := lo.Keys(registry)
	slices.Sort(names)
	return names
}

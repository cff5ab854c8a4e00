package turnplayer

import (
	"errors"
	"fmt"
	"time"

	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/scorer"
)

var ErrBadSettings = errors.New("bad agent settings")

// Settings hold what the move selectors need to know about the game and
// their search budget.
type Settings struct {
	RunLength         int
	Weights           scorer.Weights
	TimeBudget        time.Duration
	LikelyMovesMax    int
	LikelyMovesCutoff float64
	Aggressiveness    float64
	NegamaxDepth      int
	NegamaxWidth      int
	TTFractionOfMem   float64
}

// DefaultSettings are the settings of a default config.
func DefaultSettings() Settings {
	s, err := SettingsFromConfig(config.DefaultConfig())
	if err != nil {
		panic(err)
	}
	return s
}

// SettingsFromConfig reads the selector settings, loading the scorer
// weights file if one is configured.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	w, err := scorer.LoadWeights(cfg.GetString(config.ConfigWeightsPath))
	if err != nil {
		return Settings{}, err
	}
	s := Settings{
		RunLength:         cfg.GetInt(config.ConfigRunLength),
		Weights:           w,
		TimeBudget:        time.Duration(cfg.GetInt(config.ConfigTimeBudgetMs)) * time.Millisecond,
		LikelyMovesMax:    cfg.GetInt(config.ConfigLikelyMovesMax),
		LikelyMovesCutoff: cfg.GetFloat64(config.ConfigLikelyMovesCutoff),
		Aggressiveness:    cfg.GetFloat64(config.ConfigAggressiveness),
		NegamaxDepth:      cfg.GetInt(config.ConfigNegamaxDepth),
		NegamaxWidth:      cfg.GetInt(config.ConfigNegamaxWidth),
		TTFractionOfMem:   cfg.GetFloat64(config.ConfigTTFractionOfMem),
	}
	return s, s.Validate()
}

func (s Settings) Validate() error {
	switch {
	case s.RunLength < 2:
		return fmt.Errorf("%w: run length %d is below 2", ErrBadSettings, s.RunLength)
	case s.Aggressiveness < 0 || s.Aggressiveness > 1:
		return fmt.Errorf("%w: aggressiveness %v is outside [0, 1]", ErrBadSettings, s.Aggressiveness)
	case s.LikelyMovesMax < 1:
		return fmt.Errorf("%w: likely-moves-max must be positive", ErrBadSettings)
	case s.LikelyMovesCutoff < 0 || s.LikelyMovesCutoff > 1:
		return fmt.Errorf("%w: likely-moves-cutoff %v is outside [0, 1]", ErrBadSettings, s.LikelyMovesCutoff)
	case s.NegamaxDepth < 1 || s.NegamaxWidth < 1:
		return fmt.Errorf("%w: negamax depth and width must be positive", ErrBadSettings)
	case s.TimeBudget <= 0:
		return fmt.Errorf("%w: time budget must be positive", ErrBadSettings)
	}
	return s.Weights.Validate()
}

// OpponentFactor is how much the opponent's threats are discounted:
// 1 at aggressiveness 0, down to 0.5 at aggressiveness 1.
func (s Settings) OpponentFactor() float64 {
	return 1 - s.Aggressiveness/2
}

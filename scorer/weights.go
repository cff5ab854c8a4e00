package scorer

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/gomoku/cache"
)

var ErrInvalidWeights = errors.New("invalid scorer weights")

// Weights are the policy constants turning histograms into scores. Counts
// are named by threat class relative to the run length: a "four" is a
// window one stone short of a full run, a "three" two stones short, and so on.
type Weights struct {
	// Scoring a position after a move.
	DoubleFourThreshold int     `yaml:"double-four-threshold"`
	FourThreeThreshold  int     `yaml:"four-three-threshold"`
	DoubleFour          float64 `yaml:"double-four"`
	FourThree           float64 `yaml:"four-three"`
	Four                float64 `yaml:"four"`
	Three               float64 `yaml:"three"`
	Two                 float64 `yaml:"two"`
	One                 float64 `yaml:"one"`

	// Scoring the best reply on blank cells.
	NextDoubleThreeThreshold int     `yaml:"next-double-three-threshold"`
	NextThreeTwoThreshold    int     `yaml:"next-three-two-threshold"`
	NextDoubleThree          float64 `yaml:"next-double-three"`
	NextThreeTwo             float64 `yaml:"next-three-two"`
	NextThree                float64 `yaml:"next-three"`
	NextTwo                  float64 `yaml:"next-two"`
	NextOne                  float64 `yaml:"next-one"`

	// A blank cell with at least one window holding this many stones of
	// either color is the only move worth considering.
	ForcedCount int `yaml:"forced-count"`
}

// DefaultWeights returns the stock scoring policy.
func DefaultWeights() Weights {
	return Weights{
		DoubleFourThreshold: 2,
		FourThreeThreshold:  2,
		DoubleFour:          1000000,
		FourThree:           50000,
		Four:                200,
		Three:               100,
		Two:                 8,
		One:                 1,

		NextDoubleThreeThreshold: 2,
		NextThreeTwoThreshold:    2,
		NextDoubleThree:          500000,
		NextThreeTwo:             50000,
		NextThree:                100,
		NextTwo:                  100.0 / 3,
		NextOne:                  2,

		ForcedCount: 4,
	}
}

// Validate checks that the bonuses keep their order: a double four beats a
// four-three, which beats any single linear term.
func (w Weights) Validate() error {
	if w.DoubleFourThreshold < 1 || w.FourThreeThreshold < 1 ||
		w.NextDoubleThreeThreshold < 1 || w.NextThreeTwoThreshold < 1 {
		return fmt.Errorf("%w: thresholds must be at least 1", ErrInvalidWeights)
	}
	if !(w.DoubleFour > w.FourThree && w.FourThree > w.Four && w.Four >= w.Three &&
		w.Three >= w.Two && w.Two >= w.One && w.One >= 0) {
		return fmt.Errorf("%w: need double-four > four-three > four >= three >= two >= one >= 0",
			ErrInvalidWeights)
	}
	if !(w.NextDoubleThree > w.NextThreeTwo && w.NextThreeTwo > w.NextThree &&
		w.NextThree >= w.NextTwo && w.NextTwo >= w.NextOne && w.NextOne >= 0) {
		return fmt.Errorf("%w: need next-double-three > next-three-two > next-three >= next-two >= next-one >= 0",
			ErrInvalidWeights)
	}
	if w.ForcedCount < 0 {
		return fmt.Errorf("%w: forced-count must not be negative", ErrInvalidWeights)
	}
	return nil
}

// LoadWeights reads a yaml weights file. Keys missing from the file keep
// their default values. Files are read once per process.
func LoadWeights(path string) (Weights, error) {
	if path == "" {
		return DefaultWeights(), nil
	}
	return cache.Load("weights:"+path, func(string) (Weights, error) {
		w := DefaultWeights()
		bts, err := os.ReadFile(path)
		if err != nil {
			return w, err
		}
		if err := yaml.Unmarshal(bts, &w); err != nil {
			return w, fmt.Errorf("parsing %s: %w", path, err)
		}
		if err := w.Validate(); err != nil {
			return w, err
		}
		log.Debug().Str("path", path).Interface("weights", w).Msg("loaded-weights")
		return w, nil
	})
}

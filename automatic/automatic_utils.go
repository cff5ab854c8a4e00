package automatic

// Batches of computer vs computer games.

import (
	"context"
	"errors"
	"expvar"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// AgentSummary is what one side of a match did over all games.
type AgentSummary struct {
	Agent           string  `yaml:"agent"`
	Wins            int     `yaml:"wins"`
	WinsBySurrender int     `yaml:"wins-by-surrender"`
	Faults          int     `yaml:"faults"`
	Moves           int     `yaml:"moves"`
	MsPerMove       float64 `yaml:"ms-per-move"`
	MsPerMoveStdev  float64 `yaml:"ms-per-move-stdev"`
	MaxMsPerMove    float64 `yaml:"max-ms-per-move"`
	// Score counts a win as 1 and a draw as 1/2.
	ScoreRateLow  float64 `yaml:"score-rate-low"`
	ScoreRateHigh float64 `yaml:"score-rate-high"`

	timing stats.Statistic
}

// MatchSummary aggregates the results of a batch of games.
type MatchSummary struct {
	Games                  int          `yaml:"games"`
	Draws                  int          `yaml:"draws"`
	Surrenders             int          `yaml:"surrenders"`
	Faults                 int          `yaml:"faults"`
	MeanTurns              float64      `yaml:"mean-turns"`
	DistinctFinalPositions int          `yaml:"distinct-final-positions"`
	Black                  AgentSummary `yaml:"black"`
	White                  AgentSummary `yaml:"white"`

	turns       stats.Statistic
	fingerprint map[uint64]struct{}
}

func newMatchSummary(black, white string) *MatchSummary {
	return &MatchSummary{
		Black:       AgentSummary{Agent: black},
		White:       AgentSummary{Agent: white},
		fingerprint: map[uint64]struct{}{},
	}
}

func (s *MatchSummary) side(c board.Color) *AgentSummary {
	if c == board.Black {
		return &s.Black
	}
	return &s.White
}

func (s *MatchSummary) add(res *GameResult, err error) {
	s.Games++
	s.turns.Push(float64(res.Turns))
	s.fingerprint[res.Final.Fingerprint()] = struct{}{}
	for _, c := range board.StoneColors {
		side := s.side(c)
		side.timing.Merge(res.Timings[c.Slot()])
	}
	var sf *StrategyFaultError
	if errors.As(err, &sf) {
		s.Faults++
		s.side(sf.Color).Faults++
		return
	}
	switch res.State.Play {
	case game.Drawn:
		s.Draws++
	case game.WonByColor:
		s.side(res.State.Color).Wins++
	case game.Surrendered:
		s.Surrenders++
		winner, _ := res.State.Winner()
		s.side(winner).Wins++
		s.side(winner).WinsBySurrender++
	}
}

func (s *MatchSummary) finish() {
	s.MeanTurns = s.turns.Mean()
	s.DistinctFinalPositions = len(s.fingerprint)
	for _, c := range board.StoneColors {
		side := s.side(c)
		side.Moves = side.timing.Iterations()
		side.MsPerMove = side.timing.Mean()
		side.MsPerMoveStdev = side.timing.Stdev()
		side.MaxMsPerMove = side.timing.Max()
		points := float64(side.Wins) + float64(s.Draws)/2
		side.ScoreRateLow, side.ScoreRateHigh = stats.ProportionInterval(points, s.Games, 95)
	}
}

// YAML renders the summary.
func (s *MatchSummary) YAML() (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// PlayMatches plays numGames games between the configured agents, at most
// threads at a time. Every game gets its own runner and selectors. A
// strategy fault is counted and does not stop the batch; a cancelled
// context does.
func PlayMatches(ctx context.Context, cfg *config.Config, numGames, threads int) (*MatchSummary, error) {
	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)
	CVCCounter.Set(0)

	black, white := cfg.GetString(config.ConfigBlack), cfg.GetString(config.ConfigWhite)
	summary := newMatchSummary(black, white)
	var mu sync.Mutex

	log.Debug().Int("games", numGames).Int("threads", threads).Msg("starting-matches")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(threads, 1))
	for i := 0; i < numGames; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r, err := NewGameRunner(cfg)
			if err != nil {
				return err
			}
			logger := zerolog.Ctx(ctx).With().Int("game", i).Logger()
			res, err := r.PlayGame(logger.WithContext(gctx))
			var sf *StrategyFaultError
			if err != nil && !errors.As(err, &sf) {
				return err
			}
			mu.Lock()
			summary.add(res, err)
			mu.Unlock()
			CVCCounter.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	summary.finish()
	log.Info().Int("games", summary.Games).Int("draws", summary.Draws).
		Int("black-wins", summary.Black.Wins).Int("white-wins", summary.White.Wins).
		Msg("matches-finished")
	return summary, nil
}

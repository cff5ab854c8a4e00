// Package beam searches sequences of own moves, each answered by the
// opponent's best single reply, keeping a shrinking beam of the best
// sequences between rounds until the first moves agree or time runs out.
package beam

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/gomoku/ai/greedy"
	"github.com/domino14/gomoku/ai/turnplayer"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/scorer"
)

type step struct {
	row, col int
	// the opponent's best reply, if there was a cell left for one
	replyRow, replyCol int
	hasReply           bool
}

type candidate struct {
	moves []step
	score float64
}

func byScore(a, b candidate) bool {
	return a.score < b.score
}

type Player struct {
	settings turnplayer.Settings
	// rounds completed by the last search
	rounds int
}

func NewPlayer(settings turnplayer.Settings) *Player {
	return &Player{settings: settings}
}

func (p *Player) Name() string {
	return "beam"
}

// Rounds returns the number of re-expansion rounds of the last search.
func (p *Player) Rounds() int {
	return p.rounds
}

// withSequence plays out a candidate's moves and replies, runs fn, and
// takes them all back.
func withSequence(s *scorer.Scorer, moves []step, c board.Color, fn func()) {
	if len(moves) == 0 {
		fn()
		return
	}
	m := moves[0]
	s.With(m.row, m.col, c, func() {
		if !m.hasReply {
			withSequence(s, moves[1:], c, fn)
			return
		}
		s.With(m.replyRow, m.replyCol, c.Opponent(), func() {
			withSequence(s, moves[1:], c, fn)
		})
	})
}

// expand evaluates every blank cell after prefix and pushes the extended
// sequences into h. If some cell wins outright it stops and returns that
// cell.
func (p *Player) expand(s *scorer.Scorer, prefix []step, c board.Color,
	h *scorer.BoundedHeap[candidate]) (int, int, bool) {

	factor := p.settings.OpponentFactor()
	for i, j := range s.Board().Blanks() {
		net, reply := greedy.Evaluate(s, i, j, c, factor)
		if math.IsInf(net, 1) {
			return i, j, true
		}
		if math.IsInf(net, -1) {
			continue
		}
		moves := append(slices.Clone(prefix), step{
			row: i, col: j,
			replyRow: reply.Row, replyCol: reply.Col, hasReply: reply.Ok,
		})
		h.Push(candidate{moves: moves, score: net})
	}
	return 0, 0, false
}

func first(cd candidate) *move.Move {
	return move.NewPlacement(cd.moves[0].row, cd.moves[0].col, cd.score)
}

func (p *Player) SelectMove(ctx context.Context, b *board.Board, c board.Color) (*move.Move, error) {
	if m := turnplayer.ObviousMove(b, c, p.settings.RunLength); m != nil {
		return m, nil
	}
	s := scorer.New(b, p.settings.RunLength, p.settings.Weights)
	m := p.search(ctx, s, c)
	if err := turnplayer.VerifyScorer(s); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Player) search(ctx context.Context, s *scorer.Scorer, c board.Color) *move.Move {
	b := s.Board()
	start := time.Now()
	deadline := start.Add(p.settings.TimeBudget)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	expired := func() bool {
		return ctx.Err() != nil || !time.Now().Before(deadline)
	}
	p.rounds = 0

	width := b.Width() * b.Height()
	localWidth := max(b.Width(), b.Height())
	beam := scorer.NewBoundedHeap(width, byScore)
	if i, j, won := p.expand(s, nil, c, beam); won {
		return move.NewPlacement(i, j, math.Inf(1))
	}
	stepTime := time.Since(start)

	for time.Until(deadline) > stepTime && ctx.Err() == nil {
		firsts := lo.UniqBy(beam.All(), func(cd candidate) [2]int {
			return [2]int{cd.moves[0].row, cd.moves[0].col}
		})
		if len(firsts) <= 1 {
			break
		}
		width = max(1, width/2)
		next := scorer.NewBoundedHeap(width, byScore)
		stepBegin := time.Now()
		var winner *candidate
		for _, item := range beam.Sorted() {
			if expired() {
				break
			}
			local := scorer.NewBoundedHeap(localWidth, byScore)
			won := false
			withSequence(s, item.moves, c, func() {
				_, _, won = p.expand(s, item.moves, c, local)
			})
			if won {
				winner = &item
				break
			}
			for _, cd := range local.All() {
				next.Push(cd)
			}
		}
		if winner != nil {
			log.Debug().Int("round", p.rounds+1).Int("depth", len(winner.moves)).Msg("beam-found-win")
			return first(*winner)
		}
		if expired() || next.Len() == 0 {
			break
		}
		beam = next
		p.rounds++
		stepTime = (stepTime + time.Since(stepBegin)) / 2
		log.Debug().Int("round", p.rounds).Int("width", width).Int("beam", beam.Len()).
			Dur("step-time", stepTime).Msg("beam-round")
	}

	if beam.Len() == 0 {
		// every move leaves the opponent a win
		return greedy.BestMove(s, c, p.settings.OpponentFactor())
	}
	best := beam.Sorted()[0]
	log.Debug().Int("rounds", p.rounds).Float64("score", best.score).
		Dur("elapsed", time.Since(start)).Msg("beam-move")
	return first(best)
}

// Package greedy looks one move ahead: it tries every blank cell, scores
// the result for itself, and subtracts the best reply the opponent has.
package greedy

import (
	"context"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/ai/turnplayer"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/scorer"
)

type Player struct {
	settings turnplayer.Settings
}

func NewPlayer(settings turnplayer.Settings) *Player {
	return &Player{settings: settings}
}

func (p *Player) Name() string {
	return "greedy"
}

// Evaluate scores placing c at (i, j): c's score after the move minus the
// discounted score of the opponent's best reply. A winning move is +Inf and
// a move leaving the opponent a win is -Inf. The board is restored before
// returning.
func Evaluate(s *scorer.Scorer, i, j int, c board.Color, opponentFactor float64) (float64, scorer.Reply) {
	var net float64
	var reply scorer.Reply
	s.With(i, j, c, func() {
		self := s.ScoreForMoved(c)
		if math.IsInf(self, 1) {
			net = self
			return
		}
		reply = s.ScoreForNextMove(c.Opponent())
		if math.IsInf(reply.Score, 1) {
			net = math.Inf(-1)
			return
		}
		net = self - opponentFactor*reply.Score
	})
	return net, reply
}

// BestMove returns the blank cell with the highest Evaluate score. Ties go
// to the first cell in row-major order. It returns nil only when there are
// no blank cells.
func BestMove(s *scorer.Scorer, c board.Color, opponentFactor float64) *move.Move {
	var best *move.Move
	for i, j := range s.Board().Blanks() {
		net, _ := Evaluate(s, i, j, c, opponentFactor)
		if best == nil || net > best.Score() {
			best = move.NewPlacement(i, j, net)
		}
	}
	return best
}

func (p *Player) SelectMove(ctx context.Context, b *board.Board, c board.Color) (*move.Move, error) {
	if m := turnplayer.ObviousMove(b, c, p.settings.RunLength); m != nil {
		return m, nil
	}
	s := scorer.New(b, p.settings.RunLength, p.settings.Weights)
	m := BestMove(s, c, p.settings.OpponentFactor())
	if err := turnplayer.VerifyScorer(s); err != nil {
		return nil, err
	}
	if m != nil {
		log.Debug().Str("move", m.ShortDescription()).Float64("score", m.Score()).Msg("greedy-move")
	}
	return m, nil
}

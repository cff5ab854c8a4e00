// Package negamax implements a depth-limited negamax search with alpha-beta
// pruning. Each ply only considers the likeliest moves, and fewer of them
// the deeper it goes; leaves are scored by the greedy one-move evaluation.
package negamax

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/ai/greedy"
	"github.com/domino14/gomoku/ai/turnplayer"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/scorer"
	"github.com/domino14/gomoku/zobrist"
)

const (
	// WinValue is the score of a node where the side to move can complete
	// a run.
	WinValue = 1e9
	// Leaf evaluations are clipped to this bound so that they never outrank
	// a win found by the search itself.
	leafBound = WinValue / 2
)

type Player struct {
	settings turnplayer.Settings

	tt            *TranspositionTable
	zobrist       *zobrist.Zobrist
	width, height int

	nodes uint64
}

func NewPlayer(settings turnplayer.Settings) *Player {
	return &Player{settings: settings}
}

func (p *Player) Name() string {
	return "negamax"
}

// Nodes returns the number of nodes visited by the last search.
func (p *Player) Nodes() uint64 {
	return p.nodes
}

// prepare sets up hashing and the table for the board's dimensions. Table
// entries stay valid from one move to the next of the same game.
func (p *Player) prepare(b *board.Board) {
	if p.zobrist != nil && p.width == b.Width() && p.height == b.Height() {
		return
	}
	p.width, p.height = b.Width(), b.Height()
	p.zobrist = &zobrist.Zobrist{}
	p.zobrist.Initialize(p.width, p.height)
	if p.tt == nil {
		p.tt = &TranspositionTable{}
	}
	p.tt.Reset(p.settings.TTFractionOfMem)
}

func clip(v float64) float64 {
	return max(-leafBound, min(leafBound, v))
}

func (p *Player) SelectMove(ctx context.Context, b *board.Board, c board.Color) (*move.Move, error) {
	if m := turnplayer.ObviousMove(b, c, p.settings.RunLength); m != nil {
		return m, nil
	}
	s := scorer.New(b, p.settings.RunLength, p.settings.Weights)
	var m *move.Move
	if p.settings.NegamaxDepth < 2 {
		m = greedy.BestMove(s, c, p.settings.OpponentFactor())
	} else {
		p.prepare(b)
		m = p.search(ctx, s, c)
	}
	if m == nil {
		// no candidate had any weight
		m = turnplayer.RandomMove(b)
	}
	if err := turnplayer.VerifyScorer(s); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Player) search(ctx context.Context, s *scorer.Scorer, c board.Color) *move.Move {
	start := time.Now()
	p.nodes = 0
	b := s.Board()
	key := p.zobrist.Hash(b, c)
	depth := p.settings.NegamaxDepth
	width := p.settings.NegamaxWidth

	cands := s.GuessLikelyMoves(c, width, p.settings.LikelyMovesCutoff)
	alpha, beta := math.Inf(-1), math.Inf(1)
	var best *move.Move
	for _, cd := range cands {
		var v float64
		s.With(cd.Row, cd.Col, c, func() {
			child := p.zobrist.AddStone(key, cd.Row, cd.Col, c)
			v = -p.negamax(ctx, s, child, c.Opponent(), depth-1, max(1, width/2), -beta, -alpha)
		})
		if best == nil || v > best.Score() {
			best = move.NewPlacement(cd.Row, cd.Col, v)
		}
		alpha = max(alpha, v)
		if ctx.Err() != nil {
			break
		}
	}
	if best != nil {
		lookups, hits, created := p.tt.Stats()
		log.Debug().Str("move", best.ShortDescription()).Float64("score", best.Score()).
			Uint64("nodes", p.nodes).Uint64("tt-lookups", lookups).Uint64("tt-hits", hits).
			Uint64("tt-created", created).Dur("elapsed", time.Since(start)).Msg("negamax-move")
	}
	return best
}

func (p *Player) negamax(ctx context.Context, s *scorer.Scorer, key uint64, c board.Color,
	depth, width int, alpha, beta float64) float64 {

	p.nodes++
	b := s.Board()
	if turnplayer.VictoryMoveIn(s.Index(), b, c) != nil {
		return WinValue
	}
	if !b.HasBlanks() {
		return 0
	}
	if depth <= 1 || ctx.Err() != nil {
		return clip(greedy.BestMove(s, c, p.settings.OpponentFactor()).Score())
	}

	alphaOrig := alpha
	entry := p.tt.lookup(key)
	if entry.valid() && int(entry.depth) >= depth {
		switch entry.flag {
		case TTExact:
			return entry.score
		case TTLower:
			alpha = max(alpha, entry.score)
		case TTUpper:
			beta = min(beta, entry.score)
		}
		if alpha >= beta {
			return entry.score
		}
	}

	cands := s.GuessLikelyMoves(c, width, p.settings.LikelyMovesCutoff)
	if len(cands) == 0 {
		return 0
	}
	if entry.valid() && entry.row != 0 {
		// try the table's best move first
		for k, cd := range cands {
			if cd.Row == int(entry.row) && cd.Col == int(entry.col) {
				copy(cands[1:k+1], cands[:k])
				cands[0] = cd
				break
			}
		}
	}

	best := math.Inf(-1)
	var bestRow, bestCol int
	for _, cd := range cands {
		var v float64
		s.With(cd.Row, cd.Col, c, func() {
			child := p.zobrist.AddStone(key, cd.Row, cd.Col, c)
			v = -p.negamax(ctx, s, child, c.Opponent(), depth-1, max(1, width/2), -beta, -alpha)
		})
		if v > best {
			best, bestRow, bestCol = v, cd.Row, cd.Col
		}
		alpha = max(alpha, v)
		if alpha >= beta {
			break
		}
	}
	if ctx.Err() != nil {
		return best
	}

	e := TableEntry{score: best, depth: uint8(depth), flag: TTExact}
	if best <= alphaOrig {
		e.flag = TTUpper
	} else if best >= beta {
		e.flag = TTLower
	}
	if bestRow <= math.MaxUint8 && bestCol <= math.MaxUint8 {
		e.row, e.col = uint8(bestRow), uint8(bestCol)
	}
	p.tt.store(key, e)
	return best
}

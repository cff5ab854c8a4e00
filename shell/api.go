package shell

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/ai/player"
	"github.com/domino14/gomoku/ai/turnplayer"
	"github.com/domino14/gomoku/automatic"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/scorer"
)

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func (c CmdOptions) Has(key string) bool {
	_, ok := c[key]
	return ok
}

func (sc *ShellController) settings() (turnplayer.Settings, error) {
	return turnplayer.SettingsFromConfig(sc.config)
}

func (sc *ShellController) startGame(b *board.Board, whiteFirst bool) {
	sc.game = game.NewGame(b, sc.config.GetInt(config.ConfigRunLength),
		game.WhiteFirst(whiteFirst),
		game.MaxForfeits(sc.config.GetInt(config.ConfigMaxForfeits)))
}

func (sc *ShellController) whiteFirst(cmd *shellcmd) bool {
	if cmd.options.Has("whitefirst") {
		return cmd.options.Bool("whitefirst")
	}
	return sc.config.GetBool(config.ConfigWhiteFirst)
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	w, err := cmd.options.IntDefault("width", sc.config.GetInt(config.ConfigBoardWidth))
	if err != nil {
		return nil, err
	}
	h, err := cmd.options.IntDefault("height", sc.config.GetInt(config.ConfigBoardHeight))
	if err != nil {
		return nil, err
	}
	holes, err := cmd.options.IntDefault("holes", sc.config.GetInt(config.ConfigHoles))
	if err != nil {
		return nil, err
	}
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("invalid board size %dx%d", w, h)
	}
	b := board.NewBoard(w, h)
	b.CarveHoles(holes)
	sc.startGame(b, sc.whiteFirst(cmd))
	return msg(sc.game.ToDisplayText()), nil
}

// load reads a board file. With -step it reads a saved game instead and
// picks one of its positions (1-based, or "last").
func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <path> [-step n|last]")
	}
	text, err := os.ReadFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	w := sc.config.GetInt(config.ConfigBoardWidth)
	h := sc.config.GetInt(config.ConfigBoardHeight)
	var b *board.Board
	if step := cmd.options.String("step"); step != "" {
		boards, err := game.ParseSaved(string(text), w, h)
		if err != nil {
			return nil, err
		}
		if len(boards) == 0 {
			return nil, errors.New("no positions in saved game")
		}
		n := len(boards)
		if step != "last" {
			if n, err = strconv.Atoi(step); err != nil {
				return nil, err
			}
		}
		if n < 1 || n > len(boards) {
			return nil, fmt.Errorf("step %d out of range 1-%d", n, len(boards))
		}
		b = boards[n-1]
	} else {
		b = board.NewBoard(w, h)
		if err := b.Deserialize(string(text)); err != nil {
			return nil, err
		}
	}
	sc.startGame(b, sc.whiteFirst(cmd))
	log.Debug().Str("path", cmd.args[0]).Msg("loaded-board")
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: save <path>")
	}
	text := sc.game.History().SaveText()
	if cmd.options.String("format") == "board" {
		text = sc.game.Board().Serialize()
	}
	if err := os.WriteFile(cmd.args[0], []byte(text), 0o644); err != nil {
		return nil, err
	}
	return msg("saved to " + cmd.args[0]), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <coords>, e.g. play 8H")
	}
	row, col, err := move.FromBoardGameCoords(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(move.NewPlacement(row, col, 0)); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

// aiplay lets an agent move for the color on turn. The agent defaults to
// the one configured for that color.
func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.Playing() {
		return nil, game.ErrGameOver
	}
	c := sc.game.Onturn()
	name := sc.config.GetString(config.ConfigBlack)
	if c == board.White {
		name = sc.config.GetString(config.ConfigWhite)
	}
	if len(cmd.args) > 0 {
		name = cmd.args[0]
	}
	settings, err := sc.settings()
	if err != nil {
		return nil, err
	}
	sel, err := player.New(name, settings)
	if err != nil {
		return nil, err
	}
	m, err := sel.SelectMove(sc.ctx, sc.game.Board().Copy(), c)
	if err != nil {
		return nil, err
	}
	if m == nil {
		if err := sc.game.Resign(); err != nil {
			return nil, err
		}
		return msg(fmt.Sprintf("%s (%v) resigns.\n%s", sel.Name(), c, sc.game.ToDisplayText())), nil
	}
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%s (%v) plays %s\n%s", sel.Name(), c,
		m.ShortDescription(), sc.game.ToDisplayText())), nil
}

func (sc *ShellController) newScorer() (*scorer.Scorer, turnplayer.Settings, error) {
	settings, err := sc.settings()
	if err != nil {
		return nil, settings, err
	}
	return scorer.New(sc.game.Board().Copy(), sc.game.RunLength(), settings.Weights), settings, nil
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	s, settings, err := sc.newScorer()
	if err != nil {
		return nil, err
	}
	n := settings.LikelyMovesMax
	if len(cmd.args) > 0 {
		if n, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	cands := s.GuessLikelyMoves(sc.game.Onturn(), n, settings.LikelyMovesCutoff)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Likely moves for %v:\n", sc.game.Onturn())
	sb.WriteString("     Move   Weight\n")
	for idx, cand := range cands {
		fmt.Fprintf(&sb, "%3d: %-7s%-.2f\n", idx+1, move.ToBoardGameCoords(cand.Row, cand.Col), cand.Weight)
	}
	return msg(strings.TrimSuffix(sb.String(), "\n")), nil
}

func (sc *ShellController) score(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	s, _, err := sc.newScorer()
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	for _, c := range board.StoneColors {
		reply := s.ScoreForNextMove(c)
		fmt.Fprintf(&sb, "%v: position %.1f, to move %.1f", c, s.ScoreForMoved(c), reply.Score)
		if reply.Ok {
			fmt.Fprintf(&sb, " (best %s)", move.ToBoardGameCoords(reply.Row, reply.Col))
		}
		sb.WriteString("\n")
	}
	return msg(strings.TrimSuffix(sb.String(), "\n")), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if err := sc.game.Undo(); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

// autoplay plays a batch of games on a copy of the config and prints the
// summary.
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	n := sc.config.GetInt(config.ConfigNumGames)
	var err error
	if len(cmd.args) > 0 {
		if n, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	cfg := sc.config.Copy()
	if b := cmd.options.String("black"); b != "" {
		cfg.Set(config.ConfigBlack, b)
	}
	if w := cmd.options.String("white"); w != "" {
		cfg.Set(config.ConfigWhite, w)
	}
	summary, err := automatic.PlayMatches(sc.ctx, cfg, n, threads)
	if err != nil {
		return nil, err
	}
	return summaryResponse(summary)
}

func summaryResponse(s *automatic.MatchSummary) (*Response, error) {
	out, err := s.YAML()
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimSuffix(out, "\n")), nil
}

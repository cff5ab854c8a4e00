// Command fight pits two agents against each other:
//
//	fight [flags] [BLACK_AGENT[:OPTION] [WHITE_AGENT[:OPTION]]]
//
// With --num-games=1 it plays one game, redrawing the board after every
// move. Otherwise it plays a batch and prints a yaml summary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/ai/player"
	"github.com/domino14/gomoku/automatic"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/logging"
)

const clearScreen = "\x1b[3J\x1b[H\x1b[2J"

func main() {
	cfg := &config.Config{}
	args := os.Args[1:]
	if err := cfg.Load(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintf(os.Stderr, "available agents: %s\n", strings.Join(player.Names(), ", "))
		os.Exit(2)
	}
	logging.Setup(os.Stderr, cfg.GetBool(config.ConfigDebug))

	positional := config.Args(args)
	if len(positional) > 0 {
		cfg.Set(config.ConfigBlack, positional[0])
	}
	if len(positional) > 1 {
		cfg.Set(config.ConfigWhite, positional[1])
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	if cfg.GetInt(config.ConfigNumGames) <= 1 {
		err = fightOne(ctx, cfg)
	} else {
		err = fightMany(ctx, cfg)
	}
	if err != nil {
		log.Error().Err(err).Msg("fight-failed")
		os.Exit(1)
	}
}

func fightOne(ctx context.Context, cfg *config.Config) error {
	r, err := automatic.NewGameRunner(cfg)
	if err != nil {
		return err
	}
	if path := cfg.GetString(config.ConfigSavePath); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r.SetSaveWriter(f)
	}

	frames := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for frame := range frames {
			fmt.Print(clearScreen + frame)
		}
	}()
	r.SetDisplayChan(frames)
	fmt.Print(clearScreen + r.Game().ToDisplayText())

	res, err := r.PlayGame(ctx)
	close(frames)
	<-done
	for _, c := range []board.Color{board.Black, board.White} {
		t := r.Timing(c)
		line := fmt.Sprintf("%v %s: %d moves %.0f ms", c, res.Agents[c.Slot()],
			t.Iterations(), t.Mean()*float64(t.Iterations()))
		if t.Iterations() > 0 {
			line += fmt.Sprintf(" %.1f ms/move", t.Mean())
		}
		fmt.Println(line)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Result: %v\n", res.State)
	return nil
}

func fightMany(ctx context.Context, cfg *config.Config) error {
	summary, err := automatic.PlayMatches(ctx, cfg, cfg.GetInt(config.ConfigNumGames),
		cfg.GetInt(config.ConfigThreads))
	if err != nil {
		return err
	}
	out, err := summary.YAML()
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

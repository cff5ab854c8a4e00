package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/logging"
	"github.com/domino14/gomoku/shell"
)

var (
	GitVersion string
)

func main() {
	cfg := &config.Config{}
	args := os.Args[1:]
	if err := cfg.Load(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.Setup(os.Stderr, cfg.GetBool(config.ConfigDebug))
	if GitVersion != "" {
		log.Info().Str("version", GitVersion).Msg("gomoku-shell")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("got quit signal...")
		cancel()
		close(idleConnsClosed)
	}()

	sc := shell.NewShellController(cfg)
	sc.SetContext(ctx)
	if line := strings.TrimSpace(strings.Join(config.Args(args), " ")); line != "" {
		sc.Execute(line)
		sig <- syscall.SIGINT
	} else {
		go sc.Loop(sig)
	}

	<-idleConnsClosed
	log.Info().Msg("shell shutting down")
}

package main

import (
	"context"
	"filler/communication/server"
	"filler/config"
	"filler/engine"
	"filler/experiments"
	"filler/searcher"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	experiment := flag.String("experiment", "", "Run an experiment instead of the server: depth, mcts, pruning or throughput")
	results := flag.String("results", "results", "Directory for experiment results")
	port := flag.String("port", "", "Port to listen on, overrides PORT")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	if *experiment != "" {
		x, err := experiments.ByName(*experiment)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		dir, err := x.Run(*results)
		if err != nil {
			log.Fatal().Err(err).Msgf("%s experiment failed", x.Name)
		}
		log.Info().Msgf("results written to %s", dir)
		return
	}

	if *port != "" {
		cfg.Port = *port
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := searcher.NewMinimax(cfg.SearchOptions()...)
	log.Info().
		Int("depth", m.Depth()).
		Int("goroutines", cfg.SearchGoroutines).
		Dur("delay", cfg.AIDelay).
		Msg("starting filler server")
	if err := server.New(engine.New(m), cfg.AIDelay).Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

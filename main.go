package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wargame/communication"
	"wargame/communication/client"
	"wargame/communication/server"
	"wargame/config"
	"wargame/engine"
	"wargame/experiments"
	"wargame/game"
	"wargame/render"
	"wargame/trace"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches to a subcommand and returns the process exit code.
func run(args []string) int {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cmd := "play"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	cfg, err := config.Parse(cmd, args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return 2
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Error().Err(err).Msg("invalid log level")
		return 2
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Path != "" {
		log.Debug().Msgf("loaded configuration from %s", cfg.Path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "play":
		return play(ctx, cfg)
	case "broker":
		return broker(ctx, cfg)
	case "experiment":
		return experiment(ctx, cfg)
	default:
		log.Error().Msgf("unknown command %q, want play, broker or experiment", cmd)
		return 2
	}
}

func play(ctx context.Context, cfg *config.Config) int {
	opts := cfg.Options()

	var comm communication.Communicator
	if cfg.Broker != "" {
		comm = client.NewClient(cfg.Broker)
		log.Info().Msgf("using broker %s", cfg.Broker)
	}
	agents, err := engine.NewAgents(opts, comm, os.Stdin, os.Stdout)
	if err != nil {
		log.Error().Err(err).Msg("failed to create agents")
		return 2
	}

	e := engine.LocalEngine(opts, agents)
	e.Broker = comm
	e.Out = os.Stdout

	if cfg.TraceDir != "" {
		tw, err := trace.Create(cfg.TraceDir, opts)
		if err != nil {
			log.Error().Err(err).Msg("failed to create trace")
			return 2
		}
		defer tw.Close()
		e.Tracer = tw
		log.Info().Str("session", tw.Session().String()).Msgf("writing trace to %s", tw.Path())
	}

	if cfg.Render {
		if opts.GameType != game.CompVsComp {
			log.Warn().Msg("rendering is only available for auto games")
		} else {
			r, err := render.NewTerminalRenderer()
			if err != nil {
				log.Error().Err(err).Msg("failed to start renderer")
				return 2
			}
			defer r.Close()
			e.Renderer = r
			e.Out = io.Discard
		}
	}

	result, err := e.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("game aborted")
		return 2
	}
	if result.Forfeit {
		return 1
	}
	return 0
}

func broker(ctx context.Context, cfg *config.Config) int {
	var store server.MoveStore = server.NewMemoryStore()
	if cfg.Server.Redis != "" {
		rs, err := server.NewRedisStore(ctx, cfg.Server.Redis)
		if err != nil {
			log.Error().Err(err).Msg("failed to connect to redis")
			return 2
		}
		defer rs.Close()
		store = rs
		log.Info().Msg("storing moves in redis")
	}

	if err := server.NewServer(cfg.Server.Listen, store).Start(ctx); err != nil {
		log.Error().Err(err).Msg("broker stopped")
		return 2
	}
	return 0
}

func experiment(ctx context.Context, cfg *config.Config) int {
	exp, err := experiments.ByName(cfg.Experiment.Name)
	if err != nil {
		log.Error().Err(err).Msg("failed to create experiment")
		return 2
	}

	runner := experiments.NewRunner(cfg.Experiment.Games, cfg.Experiment.OutDir)
	runner.MaxTurns = cfg.MaxTurns
	runner.Dim = cfg.Dim
	if _, err := runner.Run(ctx, exp); err != nil {
		log.Error().Err(err).Msg("experiment failed")
		return 2
	}
	return 0
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/arbiter/bench"
	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/console"
	"github.com/daystram/arbiter/engine"
)

const (
	exitOK  = 0
	exitErr = 1
)

var (
	profile  = flag.Bool("profile", getenvBool("ARBITER_PROFILE", false), "serve pprof endpoint")
	logLevel = flag.String("log.level", getenv("ARBITER_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	mode     = flag.String("mode", getenv("ARBITER_MODE", "console"), "run mode (console, perft, movegen, selfplay)")
	fen      = flag.String("fen", getenv("ARBITER_FEN", ""), "starting position, defaults to the standard setup")
	color    = flag.Bool("color", getenvBool("ARBITER_COLOR", true), "draw coloured boards")

	engineKind     = flag.String("engine", getenv("ARBITER_ENGINE", "local"), "move suggester (local, remote)")
	engineEndpoint = flag.String("engine.endpoint", getenv("ARBITER_ENGINE_ENDPOINT", engine.DefaultEndpoint), "remote engine endpoint")
	engineLevel    = flag.Int("engine.level", getenvInt("ARBITER_ENGINE_LEVEL", int(engine.DefaultLevel)), "remote engine level (1-5)")
	engineTimeout  = flag.Duration("engine.timeout", getenvDuration("ARBITER_ENGINE_TIMEOUT", engine.DefaultTimeout), "remote engine request timeout")
	engineSeed     = flag.Uint64("engine.seed", uint64(getenvInt("ARBITER_ENGINE_SEED", 0)), "local engine seed, 0 for time based")

	consoleAuto = flag.String("console.auto", getenv("ARBITER_CONSOLE_AUTO", "off"), "side played by the engine in console mode (white, black, off)")

	perftDepth    = flag.Int("perft.depth", getenvInt("ARBITER_PERFT_DEPTH", 4), "perft depth")
	perftParallel = flag.Bool("perft.parallel", getenvBool("ARBITER_PERFT_PARALLEL", true), "run perft root moves in parallel")
	perftVerbose  = flag.Bool("perft.verbose", getenvBool("ARBITER_PERFT_VERBOSE", false), "print node count per root move")

	selfplayGames    = flag.Int("selfplay.games", getenvInt("ARBITER_SELFPLAY_GAMES", 1), "number of self-play games")
	selfplayMaxPlies = flag.Int("selfplay.maxplies", getenvInt("ARBITER_SELFPLAY_MAXPLIES", 600), "ply limit per self-play game")
	selfplayDraw     = flag.Bool("selfplay.draw", getenvBool("ARBITER_SELFPLAY_DRAW", false), "draw the board after every move")
)

func main() {
	flag.Parse()

	logger := newLogger(*logLevel)
	if *profile {
		runProfiler(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := realMain(ctx, logger)
	stop()
	if err != nil {
		logger.Error().Err(err).Msg("exiting")
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}

func runProfiler(logger zerolog.Logger) {
	go func() {
		addr := "localhost:6060"
		logger.Info().Msgf("starting pprof endpoint: http://%s/debug/pprof", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(ctx context.Context, logger zerolog.Logger) error {
	startFEN := *fen
	if startFEN == "" {
		startFEN = board.DefaultStartingPositionFEN
	}

	switch *mode {
	case "console":
		s, err := newSuggester(logger)
		if err != nil {
			return err
		}
		auto, err := parseSide(*consoleAuto)
		if err != nil {
			return err
		}
		return console.NewInterface(os.Stdin, os.Stdout,
			console.WithSuggester(s),
			console.WithAuto(auto),
			console.WithColor(*color),
			console.WithLogger(logger),
		).Run(ctx, startFEN)
	case "perft":
		return perft(*perftDepth, startFEN, *perftParallel, *perftVerbose)
	case "movegen":
		return movegen(startFEN, *color)
	case "selfplay":
		s, err := newSuggester(logger)
		if err != nil {
			return err
		}
		return selfplay(ctx, logger, s, startFEN, *selfplayGames, *selfplayMaxPlies, *selfplayDraw)
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
}

func newSuggester(logger zerolog.Logger) (engine.Suggester, error) {
	switch *engineKind {
	case "local":
		seed := *engineSeed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return engine.NewLocal(
			engine.WithSeed(seed),
			engine.WithLocalLogger(logger),
		), nil
	case "remote":
		level := engine.Level(*engineLevel)
		if !level.Valid() {
			return nil, fmt.Errorf("engine level must be between %d and %d", engine.LevelMin, engine.LevelMax)
		}
		return engine.NewRemote(
			engine.WithEndpoint(*engineEndpoint),
			engine.WithLevel(level),
			engine.WithTimeout(*engineTimeout),
			engine.WithLogger(logger),
		), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", *engineKind)
	}
}

var errBadSide = errors.New("side must be white, black or off")

func parseSide(s string) (board.Side, error) {
	switch strings.ToLower(s) {
	case "white":
		return board.SideWhite, nil
	case "black":
		return board.SideBlack, nil
	case "off", "":
		return board.SideUnknown, nil
	default:
		return board.SideUnknown, fmt.Errorf("%w: %q", errBadSide, s)
	}
}

func perft(depth int, fen string, parallel, verbose bool) error {
	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			fmt.Println(s)
		}
	}()
	err := bench.Perft(depth, fen, parallel, verbose, out)
	close(out)
	<-done
	return err
}

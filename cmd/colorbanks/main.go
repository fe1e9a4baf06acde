// Command colorbanks runs the cabinet: one game machine over the configured
// LED chain, buttons and sound lines, or over the terminal simulator.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-colorbanks/internal/bank"
	"github.com/coreman2200/funtimes-colorbanks/internal/clock"
	"github.com/coreman2200/funtimes-colorbanks/internal/config"
	"github.com/coreman2200/funtimes-colorbanks/internal/driver"
	"github.com/coreman2200/funtimes-colorbanks/internal/engine"
	"github.com/coreman2200/funtimes-colorbanks/internal/games"
	"github.com/coreman2200/funtimes-colorbanks/internal/input"
	"github.com/coreman2200/funtimes-colorbanks/internal/led"
	"github.com/coreman2200/funtimes-colorbanks/internal/sound"
)

func main() {
	var (
		configPath = flag.String("config", "colorbanks.yaml", "path to the yaml config")
		driverName = flag.String("driver", "", "override the driver: spi | term | fake")
		game       = flag.String("game", "", "override the game")
		logLevel   = flag.String("log-level", "", "override the log level")
		list       = flag.Bool("list", false, "list the games and exit")
		writeConf  = flag.Bool("write-config", false, "write the effective config and exit")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if *list {
		for _, name := range games.Names() {
			fmt.Println(name)
		}
		return
	}

	// defaults, then file, then environment, then flags
	cfg := loadConfig(*configPath, logger)
	if err := cfg.ApplyEnv(); err != nil {
		logger.Fatal().Err(err).Msg("bad environment override")
	}
	if *driverName != "" {
		cfg.Driver = *driverName
	}
	if *game != "" {
		cfg.Game.Name = *game
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("bad log level")
	}
	logger = logger.Level(lvl)

	if *writeConf {
		if err := config.Save(*configPath, cfg); err != nil {
			logger.Fatal().Err(err).Str("path", *configPath).Msg("config write failed")
		}
		logger.Info().Str("path", *configPath).Msg("wrote config")
		return
	}

	if err := cfg.Check(); err != nil {
		logger.Fatal().Err(err).Msg("bad config")
	}
	lay, err := led.NewLayout(cfg.Chain.Banks, cfg.Chain.Pixels, cfg.Chain.Order, cfg.Chain.Reversed)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad chain layout")
	}

	builder, ok := games.Lookup(cfg.Game.Name)
	if !ok {
		logger.Fatal().Str("game", cfg.Game.Name).Strs("known", games.Names()).Msg("unknown game")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	surf, err := driver.Open(cfg, lay, cancel, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Driver).Msg("driver failed to open")
	}
	console := logger // keeps exit messages visible when term mode silences the run
	if cfg.Driver == "term" {
		logger = zerolog.Nop() // the simulator owns the terminal
	}

	clk := clock.NewWall()
	kit := engine.Kit{
		Panel: bank.NewPanel(surf.Writer, lay, clk),
		Sound: sound.NewTrigger(surf.Board, clk, cfg.Timing.PulseMS),
		In:    input.NewSampler(surf.Port, cfg.Chain.Banks, int32(cfg.Timing.DebounceMS)),
		Clock: clk,
		Rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
		Log:   logger,
	}

	machine := builder(kit, cfg.Game)
	if err := machine.Validate(); err != nil {
		_ = surf.Writer.Halt()
		console.Fatal().Err(err).Str("game", cfg.Game.Name).Msg("machine rejected")
	}
	if err := machine.Start(clk.Now()); err != nil {
		_ = surf.Writer.Halt()
		console.Fatal().Err(err).Str("game", cfg.Game.Name).Msg("machine start failed")
	}

	logger.Info().
		Str("game", cfg.Game.Name).
		Str("driver", cfg.Driver).
		Int("banks", cfg.Chain.Banks).
		Msg("cabinet running")

	engine.NewLoop(machine, kit, cfg.Timing.TickMS).Run(ctx)

	if err := surf.Writer.Halt(); err != nil {
		console.Error().Err(err).Msg("halt failed")
	}
	console.Info().Msg("cabinet halted")
}

// loadConfig layers the file over compiled defaults. A missing file is fine;
// a file that exists but does not parse is not.
func loadConfig(path string, logger zerolog.Logger) *config.Config {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg
	}
	if os.IsNotExist(err) {
		logger.Warn().Str("path", path).Msg("no config file, using defaults")
		return config.Default()
	}
	logger.Fatal().Err(err).Str("path", path).Msg("config load failed")
	return nil
}

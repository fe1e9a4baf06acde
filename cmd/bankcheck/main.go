// Command bankcheck verifies a cabinet's wiring without a game: it walks
// every bank through red, green and blue fills, sweeps one chase per phase
// mapping, pulses each sound line, then watches the buttons and reports what
// it saw.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-colorbanks/internal/bank"
	"github.com/coreman2200/funtimes-colorbanks/internal/clock"
	"github.com/coreman2200/funtimes-colorbanks/internal/config"
	"github.com/coreman2200/funtimes-colorbanks/internal/driver"
	"github.com/coreman2200/funtimes-colorbanks/internal/input"
	"github.com/coreman2200/funtimes-colorbanks/internal/led"
	"github.com/coreman2200/funtimes-colorbanks/internal/sound"
)

func main() {
	var (
		configPath = flag.String("config", "colorbanks.yaml", "path to the yaml config")
		driverName = flag.String("driver", "", "override the driver: spi | term | fake")
		logLevel   = flag.String("log-level", "", "override the log level")
		watch      = flag.Duration("watch", 15*time.Second, "how long to watch the buttons")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	cfg := loadConfig(*configPath, logger)
	if err := cfg.ApplyEnv(); err != nil {
		logger.Fatal().Err(err).Msg("bad environment override")
	}
	if *driverName != "" {
		cfg.Driver = *driverName
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("bad log level")
	}
	logger = logger.Level(lvl)

	if err := cfg.Check(); err != nil {
		logger.Fatal().Err(err).Msg("bad config")
	}
	lay, err := led.NewLayout(cfg.Chain.Banks, cfg.Chain.Pixels, cfg.Chain.Order, cfg.Chain.Reversed)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad chain layout")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	surf, err := driver.Open(cfg, lay, cancel, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Driver).Msg("driver failed to open")
	}
	console := logger
	if cfg.Driver == "term" {
		logger = zerolog.Nop()
	}

	clk := clock.NewWall()
	panel := bank.NewPanel(surf.Writer, lay, clk)
	trigger := sound.NewTrigger(surf.Board, clk, cfg.Timing.PulseMS)
	sampler := input.NewSampler(surf.Port, cfg.Chain.Banks, int32(cfg.Timing.DebounceMS))

	// A canceled context skips the remaining phases; the report still prints.
	walkBanks(ctx, panel, clk, logger)
	runChases(ctx, panel, logger)
	pulseLines(ctx, trigger, clk, logger)
	counts := watchButtons(ctx, sampler, clk, cfg.Timing.TickMS, *watch, logger)

	if err := surf.Writer.Halt(); err != nil {
		console.Error().Err(err).Msg("halt failed")
	}
	report(console, counts)
}

func walkBanks(ctx context.Context, panel *bank.Panel, clk clock.Clock, logger zerolog.Logger) {
	colors := []struct {
		name string
		c    bank.Color
	}{
		{"red", bank.Color{R: 255}},
		{"green", bank.Color{G: 255}},
		{"blue", bank.Color{B: 255}},
	}
	for b := 0; b < panel.Banks() && ctx.Err() == nil; b++ {
		logger.Info().Int("bank", b).Msg("fill walk")
		for _, col := range colors {
			if err := panel.Fill(b, col.c); err != nil {
				logger.Error().Err(err).Int("bank", b).Str("color", col.name).Msg("fill failed")
			}
			clk.Sleep(300 * time.Millisecond)
		}
		if err := panel.Clear(); err != nil {
			logger.Error().Err(err).Msg("clear failed")
		}
	}
}

func runChases(ctx context.Context, panel *bank.Panel, logger zerolog.Logger) {
	phases := []struct {
		name  string
		phase bank.ChasePhase
	}{
		{"in-strip", bank.PhaseInStrip},
		{"across-banks", bank.PhaseAcrossBanks},
		{"global", bank.PhaseGlobal},
	}
	for _, ph := range phases {
		if ctx.Err() != nil {
			return
		}
		logger.Info().Str("phase", ph.name).Msg("chase")
		if err := panel.Chase(1, 19, 2, ph.phase); err != nil {
			logger.Error().Err(err).Str("phase", ph.name).Msg("chase failed")
		}
	}
	if err := panel.Clear(); err != nil {
		logger.Error().Err(err).Msg("clear failed")
	}
}

func pulseLines(ctx context.Context, trigger *sound.Trigger, clk clock.Clock, logger zerolog.Logger) {
	for _, line := range sound.Lines {
		if ctx.Err() != nil {
			return
		}
		logger.Info().Stringer("line", line).Msg("pulse")
		if err := trigger.Fire(line); err != nil {
			logger.Error().Err(err).Stringer("line", line).Msg("pulse failed")
		}
		clk.Sleep(400 * time.Millisecond)
	}
}

func watchButtons(ctx context.Context, sampler *input.Sampler, clk clock.Clock, tickMS int, window time.Duration, logger zerolog.Logger) []int {
	logger.Info().Dur("window", window).Msg("watching buttons, press each one")
	counts := make([]int, sampler.Buttons())
	deadline := time.Now().Add(window)
	for time.Now().Before(deadline) && ctx.Err() == nil {
		for _, ev := range sampler.Poll(clk.Now()) {
			if ev.Kind == input.Pressed {
				counts[ev.Bank]++
				logger.Info().Int("bank", ev.Bank).Msg("press")
			}
		}
		clk.Sleep(time.Duration(tickMS) * time.Millisecond)
	}
	return counts
}

func report(console zerolog.Logger, counts []int) {
	silent := 0
	for b, n := range counts {
		if n == 0 {
			silent++
			console.Warn().Int("bank", b).Msg("no presses seen")
			continue
		}
		console.Info().Int("bank", b).Int("presses", n).Msg("button ok")
	}
	if silent == 0 {
		console.Info().Msg("every button answered")
	}
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

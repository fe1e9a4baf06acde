package driver

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-colorbanks/internal/config"
	"github.com/coreman2200/funtimes-colorbanks/internal/led"
)

func TestOpenFake(t *testing.T) {
	cfg := config.Default()
	cfg.Driver = "fake"
	cfg.Chain.Brightness = 0xFF // skip the limiter so the fake is reachable
	lay, err := led.NewLayout(cfg.Chain.Banks, cfg.Chain.Pixels, nil, nil)
	require.NoError(t, err)

	s, err := Open(cfg, lay, func() {}, zerolog.Nop())
	require.NoError(t, err)

	fake, ok := s.Writer.(*led.Fake)
	require.True(t, ok, "fake driver should write to a led.Fake")

	frame := make([]byte, lay.Total()*3)
	require.NoError(t, s.Writer.Write(frame))
	require.Len(t, fake.Frames, 1)

	require.False(t, s.Port.Pressed(0))
	require.NoError(t, s.Board.Set(0, false))
}

func TestOpenFakeAppliesBrightnessCap(t *testing.T) {
	cfg := config.Default()
	cfg.Driver = "fake"
	cfg.Chain.Brightness = 128
	lay, err := led.NewLayout(cfg.Chain.Banks, cfg.Chain.Pixels, nil, nil)
	require.NoError(t, err)

	s, err := Open(cfg, lay, func() {}, zerolog.Nop())
	require.NoError(t, err)

	_, bare := s.Writer.(*led.Fake)
	require.False(t, bare, "capped writer should be wrapped")
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Driver = "parallel"
	lay, err := led.NewLayout(2, 2, nil, nil)
	require.NoError(t, err)

	_, err = Open(cfg, lay, func() {}, zerolog.Nop())
	require.Error(t, err)
}

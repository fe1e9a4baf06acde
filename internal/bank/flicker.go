package bank

import (
	"math/rand"

	"github.com/coreman2200/funtimes-colorbanks/internal/clock"
)

// Fire flicker tuning. Brightness wanders inside a narrow band so the banks
// glow like embers instead of strobing.
const (
	flickerMin    = 0.10
	flickerMax    = 0.42
	flickerStart  = 0.18
	flickerEase   = 0.25
	jitterSpan    = 12 // per channel, plus or minus
	retargetMinMS = 70
	retargetMaxMS = 160
)

// ember is the base flame color before brightness and jitter.
var ember = Color{R: 255, G: 96, B: 12}

// FlickerScript is the fire idle effect: each bank's brightness eases
// exponentially toward a target that is re-picked at a randomized interval.
// Unlike blink and chase it never finishes; call Step once per tick, stop
// calling it to stop the effect.
type FlickerScript struct {
	p     *Panel
	r     *rand.Rand
	banks []int
	cur   []float64
	tgt   []float64
	at    []clock.Millis // next retarget deadline per bank

	started bool
}

// NewFlicker prepares the fire effect on the given banks; nil means all.
func (p *Panel) NewFlicker(r *rand.Rand, banks []int) *FlickerScript {
	if banks == nil {
		banks = make([]int, p.Banks())
		for i := range banks {
			banks[i] = i
		}
	}
	f := &FlickerScript{
		p:     p,
		r:     r,
		banks: banks,
		cur:   make([]float64, len(banks)),
		tgt:   make([]float64, len(banks)),
		at:    make([]clock.Millis, len(banks)),
	}
	for i := range f.cur {
		f.cur[i] = flickerStart
		f.tgt[i] = flickerStart
	}
	return f
}

// Step eases each bank toward its brightness target, re-picks expired
// targets, and commits one frame. It never blocks.
func (f *FlickerScript) Step(now clock.Millis) error {
	for i, b := range f.banks {
		if !f.started || clock.Diff(now, f.at[i]) >= 0 {
			f.tgt[i] = flickerMin + f.r.Float64()*(flickerMax-flickerMin)
			f.at[i] = now + clock.Millis(retargetMinMS+f.r.Intn(retargetMaxMS-retargetMinMS+1))
		}
		f.cur[i] += (f.tgt[i] - f.cur[i]) * flickerEase
		f.p.setBank(b, f.color(i))
	}
	f.started = true
	return f.p.flush()
}

func (f *FlickerScript) color(i int) Color {
	return Color{
		R: jitter(f.r, float64(ember.R)*f.cur[i]),
		G: jitter(f.r, float64(ember.G)*f.cur[i]),
		B: jitter(f.r, float64(ember.B)*f.cur[i]),
	}
}

func jitter(r *rand.Rand, v float64) uint8 {
	v += float64(r.Intn(2*jitterSpan+1) - jitterSpan)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

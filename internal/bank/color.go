// Package bank models the cabinet's button/LED-strip banks: color math,
// a frame-buffered panel over the LED chain, and the animation scripts the
// games drive it with.
package bank

// Color is an 8-bit-per-channel RGB value. Operations return new values,
// nothing mutates in place. Struct equality is the exact three-tuple
// comparison the win checks rely on.
type Color struct {
	R, G, B uint8
}

// Black is the all-off color.
var Black = Color{}

// Wheel maps a position on the 256-step color wheel to RGB, sweeping
// red to green to blue and back to red. Positions wrap by parameter type.
func Wheel(pos uint8) Color {
	switch {
	case pos < 85:
		return Color{R: 255 - pos*3, G: pos * 3}
	case pos < 170:
		pos -= 85
		return Color{G: 255 - pos*3, B: pos * 3}
	default:
		pos -= 170
		return Color{R: pos * 3, B: 255 - pos*3}
	}
}

// StepToward moves c toward target by at most step per channel, landing
// exactly on the target without overshoot.
func StepToward(c, target Color, step uint8) Color {
	return Color{
		R: stepChannel(c.R, target.R, step),
		G: stepChannel(c.G, target.G, step),
		B: stepChannel(c.B, target.B, step),
	}
}

func stepChannel(v, t, step uint8) uint8 {
	switch {
	case v < t:
		if int(v)+int(step) >= int(t) {
			return t
		}
		return v + step
	case v > t:
		if int(v)-int(step) <= int(t) {
			return t
		}
		return v - step
	}
	return v
}

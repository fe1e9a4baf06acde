// Package led carries RGB frames to the pixel hardware. A frame is a flat
// byte slice, 3 bytes per pixel, with banks concatenated in chain order as
// described by a Layout.
package led

// Writer is an LED frame sink with write-then-latch semantics: a Write call
// commits the whole frame before returning.
type Writer interface {
	// Write pushes a full RGB frame. len(rgb) must be 3 times the chain's
	// pixel count.
	Write(rgb []byte) error
	// Halt blanks the output and releases the device.
	Halt() error
}

// Limit wraps w so every channel is scaled by max/255 on the way out. Game
// code works in the full 0-255 space; the cap protects the supply budget of
// long chains. max of 255 returns w unchanged.
func Limit(w Writer, max uint8) Writer {
	if max == 0xFF {
		return w
	}
	return &limiter{w: w, max: uint16(max)}
}

type limiter struct {
	w   Writer
	max uint16
	buf []byte
}

func (l *limiter) Write(rgb []byte) error {
	if cap(l.buf) < len(rgb) {
		l.buf = make([]byte, len(rgb))
	}
	l.buf = l.buf[:len(rgb)]
	for i, v := range rgb {
		l.buf[i] = byte(uint16(v) * l.max / 0xFF)
	}
	return l.w.Write(l.buf)
}

func (l *limiter) Halt() error { return l.w.Halt() }

package led

// Fake records every frame it receives. It backs tests and the headless
// driver mode.
type Fake struct {
	Frames [][]byte
	Halted bool
}

func (f *Fake) Write(rgb []byte) error {
	frame := make([]byte, len(rgb))
	copy(frame, rgb)
	f.Frames = append(f.Frames, frame)
	return nil
}

func (f *Fake) Halt() error {
	f.Halted = true
	return nil
}

// Last returns the most recent frame, or nil before the first write.
func (f *Fake) Last() []byte {
	if len(f.Frames) == 0 {
		return nil
	}
	return f.Frames[len(f.Frames)-1]
}

package led

import "fmt"

// Layout maps logical (bank, pixel) coordinates onto the physical chain.
// Banks may be wired to the chain in any order and individual banks may be
// wired tip-first, so their pixel order is reversed.
type Layout struct {
	banks    int
	pixels   int
	slot     []int // slot[bank] = chain position of that bank
	reversed []bool
}

// NewLayout builds a layout for banks strips of pixels LEDs each. chainOrder
// lists bank indices in the order they appear on the chain; nil means
// identity. reversedBanks lists banks wired tip-first.
func NewLayout(banks, pixels int, chainOrder, reversedBanks []int) (*Layout, error) {
	if banks <= 0 || pixels <= 0 {
		return nil, fmt.Errorf("layout: need positive dimensions, got %dx%d", banks, pixels)
	}
	l := &Layout{
		banks:    banks,
		pixels:   pixels,
		slot:     make([]int, banks),
		reversed: make([]bool, banks),
	}
	if chainOrder == nil {
		for b := range l.slot {
			l.slot[b] = b
		}
	} else {
		if len(chainOrder) != banks {
			return nil, fmt.Errorf("layout: chain order lists %d banks, want %d", len(chainOrder), banks)
		}
		seen := make([]bool, banks)
		for pos, b := range chainOrder {
			if b < 0 || b >= banks || seen[b] {
				return nil, fmt.Errorf("layout: chain order is not a permutation of 0..%d", banks-1)
			}
			seen[b] = true
			l.slot[b] = pos
		}
	}
	for _, b := range reversedBanks {
		if b < 0 || b >= banks {
			return nil, fmt.Errorf("layout: reversed bank %d out of range", b)
		}
		l.reversed[b] = true
	}
	return l, nil
}

func (l *Layout) Banks() int  { return l.banks }
func (l *Layout) Pixels() int { return l.pixels }

// Total is the chain's pixel count.
func (l *Layout) Total() int { return l.banks * l.pixels }

// Index returns the chain position of a pixel.
func (l *Layout) Index(bank, pixel int) int {
	p := pixel
	if l.reversed[bank] {
		p = l.pixels - 1 - pixel
	}
	return l.slot[bank]*l.pixels + p
}

// Offset returns the byte offset of a pixel inside an RGB frame.
func (l *Layout) Offset(bank, pixel int) int { return l.Index(bank, pixel) * 3 }

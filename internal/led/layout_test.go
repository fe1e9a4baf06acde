package led

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutIdentity(t *testing.T) {
	l, err := NewLayout(10, 12, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 120, l.Total())
	assert.Equal(t, 0, l.Index(0, 0))
	assert.Equal(t, 11, l.Index(0, 11))
	assert.Equal(t, 3*12+5, l.Index(3, 5))
	assert.Equal(t, (3*12+5)*3, l.Offset(3, 5))
}

func TestLayoutChainOrder(t *testing.T) {
	// bank 2 is wired first, then 0, then 1
	l, err := NewLayout(3, 4, []int{2, 0, 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, l.Index(2, 0))
	assert.Equal(t, 4, l.Index(0, 0))
	assert.Equal(t, 8+3, l.Index(1, 3))
}

func TestLayoutReversedBank(t *testing.T) {
	l, err := NewLayout(2, 4, nil, []int{1})
	require.NoError(t, err)
	assert.Equal(t, 1, l.Index(0, 1))
	assert.Equal(t, 4+3, l.Index(1, 0))
	assert.Equal(t, 4+0, l.Index(1, 3))
}

func TestLayoutRejectsBadInput(t *testing.T) {
	cases := []struct {
		name     string
		banks    int
		order    []int
		reversed []int
	}{
		{"short order", 3, []int{0, 1}, nil},
		{"repeat in order", 3, []int{0, 0, 1}, nil},
		{"out of range order", 3, []int{0, 1, 5}, nil},
		{"out of range reversed", 3, nil, []int{7}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewLayout(c.banks, 4, c.order, c.reversed)
			assert.Error(t, err)
		})
	}
}

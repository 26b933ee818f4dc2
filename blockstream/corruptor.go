package blockstream

import (
	"math/rand"
	"time"
)

// Corruptor emulates a noisy channel by overwriting the first n bytes of
// every block it sees with random bytes.
type Corruptor struct {
	rnd *rand.Rand
	n   int
}

// NewCorruptor returns a corruptor drawing from src. A nil src is seeded
// from the clock so every run corrupts differently.
func NewCorruptor(src rand.Source, n int) *Corruptor {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	if n < 0 {
		n = 0
	}
	return &Corruptor{
		rnd: rand.New(src),
		n:   n,
	}
}

// Corrupt overwrites block[:n] in place. The block length never changes.
func (c *Corruptor) Corrupt(block []byte) {
	n := c.n
	if n > len(block) {
		n = len(block)
	}
	for i := 0; i < n; i++ {
		block[i] = byte(c.rnd.Intn(256))
	}
}

// Width is the length of the overwritten prefix.
func (c *Corruptor) Width() int {
	return c.n
}

package itbit

import "sync/atomic"

type (
	// Nonce hands out strictly increasing values. Safe for concurrent use.
	Nonce struct {
		n int64
	}
)

func NewNonce(start int64) *Nonce {
	return &Nonce{n: start}
}

// Next returns the current value and advances the counter.
func (n *Nonce) Next() int64 {
	return atomic.AddInt64(&n.n, 1) - 1
}

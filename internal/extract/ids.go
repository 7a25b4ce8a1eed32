package extract

import "sync/atomic"

// IDSource hands out output identifiers. Implementations must never return
// the same value twice.
type IDSource interface {
	Next() uint64
}

// Sequence yields 1, 2, 3, ... and is safe for concurrent use.
type Sequence struct {
	last atomic.Uint64
}

func (s *Sequence) Next() uint64 {
	return s.last.Add(1)
}

// Last returns the most recently issued identifier, or 0 if none.
func (s *Sequence) Last() uint64 {
	return s.last.Load()
}

package gesture

import "sync/atomic"

// Slot is a process-wide holder for the active engine. Readers on input
// goroutines load it without locking; the owner swaps it on reload.
type Slot struct {
	p atomic.Pointer[Engine]
}

func (s *Slot) Load() *Engine { return s.p.Load() }

func (s *Slot) Store(e *Engine) { s.p.Store(e) }

// Clear empties the slot and returns what it held.
func (s *Slot) Clear() *Engine { return s.p.Swap(nil) }

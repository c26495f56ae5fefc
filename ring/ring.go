// File: ring/ring.go
// License: Apache-2.0
//
// Lock-free fixed-capacity ring buffer with atomic read/write cursors
// and per-slot publish flags. See doc.go for the cursor geometry and
// the publish protocol.

package ring

import (
	"sync/atomic"

	"github.com/chbm/anellus/api"
	"github.com/chbm/anellus/backoff"
	"github.com/chbm/anellus/control"
)

// Slot publish states. A slot is claimed through a cursor CAS; the flag
// only orders the payload hand-off between the claiming producer and
// the claiming consumer.
const (
	slotFree uint32 = 0
	slotLive uint32 = 1
)

type slot[T any] struct {
	state atomic.Uint32
	val   T
}

// ringState is the single shared entity behind every duplicated handle.
// Cursors always hold values in [0, capacity); capacity is the logical
// size plus two spare slots so empty and full stay distinguishable.
type ringState[T any] struct {
	read     atomic.Uint64
	_        [64]byte // Padding for hot/cold separation
	write    atomic.Uint64
	_        [64]byte // Padding
	capacity uint64
	slots    []slot[T]
	pace     api.Backoff
	stats    *control.Metrics
}

// Handle is a lightweight reference to one shared ring. Copying a
// Handle (or calling Duplicate) hands out co-ownership of the same
// state without cloning the storage; all mutable state lives behind the
// pointer.
type Handle[T any] struct {
	state *ringState[T]
}

// Ensure compile-time interface compliance.
var _ api.Ring[any] = Handle[any]{}

// Option customizes a ring at construction time.
type Option[T any] func(*ringState[T])

// WithBackoff sets the pacing policy for internal retry loops.
// The default is backoff.Yield.
func WithBackoff[T any](b api.Backoff) Option[T] {
	return func(s *ringState[T]) {
		if b != nil {
			s.pace = b
		}
	}
}

// WithMetrics attaches operation counters to the ring.
func WithMetrics[T any](m *control.Metrics) Option[T] {
	return func(s *ringState[T]) {
		s.stats = m
	}
}

// New allocates a ring that holds up to logical elements and returns
// the initial handle. Panics if logical is not positive; capacity is
// fixed for the life of the ring.
func New[T any](logical int, opts ...Option[T]) Handle[T] {
	if logical < 1 {
		panic("ring: logical capacity must be positive")
	}
	capacity := uint64(logical) + 2
	s := &ringState[T]{
		capacity: capacity,
		slots:    make([]slot[T], capacity),
		pace:     backoff.Default(),
	}
	// read=0, write=1 encodes the empty ring: (read+1)%capacity == write.
	s.write.Store(1)
	for _, opt := range opts {
		opt(s)
	}
	return Handle[T]{state: s}
}

// Duplicate returns a second handle to the same ring. The copy is a
// pure reference duplication; the runtime reclaims the shared state
// once the last handle is dropped.
func (h Handle[T]) Duplicate() Handle[T] {
	return Handle[T]{state: h.state}
}

// Enqueue deposits v into the ring. Returns api.ErrFull immediately
// when no slot is free; lost races against other producers are retried
// internally under the configured backoff.
func (h Handle[T]) Enqueue(v T) error {
	s := h.state
	for attempt := 0; ; attempt++ {
		r := s.read.Load()
		w := s.write.Load()
		next := (w + 1) % s.capacity
		if next == r {
			if s.stats != nil {
				s.stats.Full.Add(1)
			}
			return api.ErrFull
		}
		if s.write.CompareAndSwap(w, next) {
			// Reservation won: slot w is exclusively ours. A consumer
			// one lap behind may still be copying it out, so wait for
			// the free flag before overwriting.
			sl := &s.slots[w]
			for spin := 0; sl.state.Load() != slotFree; spin++ {
				s.pace.Wait(spin)
			}
			sl.val = v
			sl.state.Store(slotLive)
			if s.stats != nil {
				s.stats.Enqueued.Add(1)
			}
			return nil
		}
		if s.stats != nil {
			s.stats.Retries.Add(1)
		}
		s.pace.Wait(attempt)
	}
}

// Dequeue retrieves the oldest value. Returns api.ErrEmpty immediately
// when nothing is available.
func (h Handle[T]) Dequeue() (T, error) {
	s := h.state
	var zero T
	for attempt := 0; ; attempt++ {
		r := s.read.Load()
		w := s.write.Load()
		next := (r + 1) % s.capacity
		if next == w {
			if s.stats != nil {
				s.stats.Empty.Add(1)
			}
			return zero, api.ErrEmpty
		}
		if s.read.CompareAndSwap(r, next) {
			// Reservation confirmed before touching the payload. The
			// producer that claimed this slot may not have published
			// yet, so wait for the live flag before reading.
			sl := &s.slots[next]
			for spin := 0; sl.state.Load() != slotLive; spin++ {
				s.pace.Wait(spin)
			}
			v := sl.val
			sl.val = zero // drop the reference for the collector
			sl.state.Store(slotFree)
			if s.stats != nil {
				s.stats.Dequeued.Add(1)
			}
			return v, nil
		}
		if s.stats != nil {
			s.stats.Retries.Add(1)
		}
		s.pace.Wait(attempt)
	}
}

// Len returns an advisory snapshot of the live element count. Under
// concurrent traffic it is stale by the time it returns.
func (h Handle[T]) Len() int {
	s := h.state
	r := s.read.Load()
	w := s.write.Load()
	return int((w + s.capacity - r - 1) % s.capacity)
}

// Cap returns the logical capacity the ring was created with.
func (h Handle[T]) Cap() int {
	return int(h.state.capacity - 2)
}

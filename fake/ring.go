// File: fake/ring.go
// License: Apache-2.0
//
// Scripted api.Ring used to test collaborators without a real ring.

package fake

import (
	"sync"

	"github.com/chbm/anellus/api"
)

// Ring replays a fixed script of dequeue results and records every
// enqueued value. Safe for concurrent use.
type Ring[T any] struct {
	mu       sync.Mutex
	script   []api.Result[T]
	next     int
	accepted []T
	capacity int
}

var _ api.Ring[any] = (*Ring[any])(nil)

// NewRing builds a fake whose Dequeue returns the script entries in
// order, then api.ErrEmpty forever.
func NewRing[T any](script ...api.Result[T]) *Ring[T] {
	return &Ring[T]{script: script, capacity: len(script)}
}

// Enqueue records the value and always succeeds.
func (r *Ring[T]) Enqueue(item T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted = append(r.accepted, item)
	return nil
}

// Dequeue replays the next scripted result.
func (r *Ring[T]) Dequeue() (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.next >= len(r.script) {
		var zero T
		return zero, api.ErrEmpty
	}
	res := r.script[r.next]
	r.next++
	return res.Value, res.Err
}

// Len returns the number of scripted results not yet replayed.
func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.script) - r.next
}

// Cap returns the script length.
func (r *Ring[T]) Cap() int {
	return r.capacity
}

// Accepted returns a copy of everything enqueued so far.
func (r *Ring[T]) Accepted() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.accepted))
	copy(out, r.accepted)
	return out
}

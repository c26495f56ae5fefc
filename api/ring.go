// Package api
// License: Apache-2.0
//
// Lock-free ring buffer contract for cross-thread producer/consumer transfer.

package api

// Ring is the bounded MPMC ring buffer contract. Implementations never
// block: a full ring rejects Enqueue with ErrFull, an empty ring rejects
// Dequeue with ErrEmpty, and the caller decides whether to retry.
type Ring[T any] interface {
	// Enqueue deposits an item; returns ErrFull when no slot is free.
	Enqueue(item T) error
	// Dequeue retrieves the oldest item; returns ErrEmpty when nothing is available.
	Dequeue() (T, error)
	// Len returns an advisory snapshot of the number of live items.
	Len() int
	// Cap returns the fixed logical capacity.
	Cap() int
}

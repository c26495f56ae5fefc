// File: ring/doc.go
// License: Apache-2.0
//
// Package ring implements a fixed-capacity lock-free MPMC ring buffer
// shared across goroutines through cheap duplicable handles.
//
// The store holds logical capacity + 2 slots so that two cursors can
// distinguish full from empty without an element counter:
//
//	| .. | .. | .. | .. | .. | .. |
//	  ^r        ^w                    filled region is (r, w)
//
//	             ^w   ^r              wrapped; empty when (r+1)%cap == w,
//	                                  full when (w+1)%cap == r
//
// Producers CAS the write cursor to reserve a slot, then write the
// payload and flip the slot's publish flag. Consumers CAS the read
// cursor first and only then wait for the flag before copying the value
// out, so a reservation can never observe a half-written payload in
// either direction. Cursor CAS uses Go's sequentially consistent
// atomics; failed attempts retry under a configurable backoff policy.
//
// Both operations are non-blocking toward the caller: a full ring
// returns api.ErrFull and an empty ring returns api.ErrEmpty
// immediately, leaving the retry decision to the caller.
package ring

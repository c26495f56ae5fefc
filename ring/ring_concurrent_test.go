// File: ring/ring_concurrent_test.go
// License: Apache-2.0
//
// Concurrent contract tests: counting, per-producer ordering, and
// randomized single-threaded invariants.

package ring

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/chbm/anellus/api"
)

// TestConcurrentCounting runs producer/consumer matrices and checks no
// value is lost or duplicated.
func TestConcurrentCounting(t *testing.T) {
	cases := []struct{ producers, consumers int }{
		{1, 1}, {4, 1}, {10, 2}, {10, 5}, {2, 10},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("%dp_%dc", tc.producers, tc.consumers), func(t *testing.T) {
			t.Parallel()
			runMatrix(t, tc.producers, tc.consumers, 500)
		})
	}
}

// runMatrix pushes stock values per producer through a shared ring and
// checks the pooled output, guarded by a watchdog against livelock.
func runMatrix(t *testing.T, producers, consumers, stock int) {
	t.Helper()
	h := New[uint64](producers + consumers + 32)

	var prodWG sync.WaitGroup
	for p := 0; p < producers; p++ {
		prodWG.Add(1)
		go func(id uint64, r Handle[uint64]) {
			defer prodWG.Done()
			for i := uint64(1); i <= uint64(stock); {
				if err := r.Enqueue(id<<32 | i); err != nil {
					runtime.Gosched()
					continue
				}
				i++
			}
		}(uint64(p), h.Duplicate())
	}

	type stream struct {
		values []uint64
	}
	outputs := make(chan stream, consumers)
	for c := 0; c < consumers; c++ {
		go func(r Handle[uint64]) {
			var s stream
			for {
				v, err := r.Dequeue()
				if err != nil {
					runtime.Gosched()
					continue
				}
				if v == 0 {
					outputs <- s
					return
				}
				s.values = append(s.values, v)
			}
		}(h.Duplicate())
	}

	prodWG.Wait()
	for c := 0; c < consumers; c++ {
		for {
			if err := h.Enqueue(0); err == nil {
				break
			}
			runtime.Gosched()
		}
	}

	seen := make(map[uint64]struct{}, producers*stock)
	total := 0
	watchdog := time.After(60 * time.Second)
	for c := 0; c < consumers; c++ {
		select {
		case s := <-outputs:
			last := make([]uint64, producers)
			for _, v := range s.values {
				if _, dup := seen[v]; dup {
					t.Fatalf("value %#x delivered twice", v)
				}
				seen[v] = struct{}{}
				p, counter := int(v>>32), v&0xffffffff
				if counter <= last[p] {
					t.Fatalf("producer %d order violation: %d after %d", p, counter, last[p])
				}
				last[p] = counter
				total++
			}
		case <-watchdog:
			t.Fatal("matrix run hung: consumers never drained their pill")
		}
	}
	if total != producers*stock {
		t.Fatalf("expected %d values, saw %d", producers*stock, total)
	}
}

// TestStressMatrix is the scaled-up liveness scenario. Skipped in short
// mode; the full 1000x1000 matrix moves 100000 values.
func TestStressMatrix(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 1000x1000 stress matrix in short mode")
	}
	runMatrix(t, 1000, 1000, 100)
}

// TestConcurrentFullContract checks ErrFull surfaces under contention
// instead of blocking the producer.
func TestConcurrentFullContract(t *testing.T) {
	h := New[int](4)
	for i := 0; i < 4; i++ {
		if err := h.Enqueue(i); err != nil {
			t.Fatalf("fill failed: %v", err)
		}
	}
	done := make(chan error, 8)
	for g := 0; g < 8; g++ {
		go func(r Handle[int]) {
			done <- r.Enqueue(99)
		}(h.Duplicate())
	}
	for g := 0; g < 8; g++ {
		if err := <-done; !errors.Is(err, api.ErrFull) {
			t.Fatalf("expected ErrFull, got %v", err)
		}
	}
}

// TestRingPropertyBased performs randomized operations against a model
// counter to check Len never drifts.
func TestRingPropertyBased(t *testing.T) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for seed := 0; seed < 10; seed++ {
		h := New[int](64)
		size := 0
		for i := 0; i < 5000; i++ {
			if rng.Intn(2) == 0 {
				if h.Enqueue(rng.Intn(100000)) == nil {
					size++
				}
			} else {
				if _, err := h.Dequeue(); err == nil {
					size--
				}
			}
			if size != h.Len() {
				t.Fatalf("invariant failed: model %d, ring %d", size, h.Len())
			}
			if h.Len() < 0 || h.Len() > 64 {
				t.Fatalf("ring length out of bounds: %d", h.Len())
			}
		}
	}
}

// File: backoff/backoff.go
// License: Apache-2.0
//
// Swappable pacing policies for the ring's internal retry loops. The
// ring's Full/Empty contract is unaffected by the chosen policy; backoff
// applies only to lost CAS races and waits on in-flight slot publishes.

package backoff

import (
	"runtime"
	"time"

	"github.com/chbm/anellus/api"
)

// Compile-time contract checks.
var (
	_ api.Backoff = None{}
	_ api.Backoff = Yield{}
	_ api.Backoff = Exponential{}
)

// None spins without yielding. Lowest latency, highest CPU burn under
// contention.
type None struct{}

// Wait does nothing.
func (None) Wait(int) {}

// Yield hands the processor to the scheduler between attempts.
type Yield struct{}

// Wait yields the current goroutine.
func (Yield) Wait(int) {
	runtime.Gosched()
}

// Exponential sleeps with a doubling delay, capped at Max. Zero fields
// fall back to 1µs base and 1ms cap.
type Exponential struct {
	Base time.Duration
	Max  time.Duration
}

// Wait sleeps for min(Base<<attempt, Max).
func (e Exponential) Wait(attempt int) {
	base := e.Base
	if base <= 0 {
		base = time.Microsecond
	}
	max := e.Max
	if max <= 0 {
		max = time.Millisecond
	}
	d := max
	if attempt < 20 {
		d = base << uint(attempt)
		if d > max {
			d = max
		}
	}
	time.Sleep(d)
}

// Default is the policy rings use when none is configured.
func Default() api.Backoff {
	return Yield{}
}

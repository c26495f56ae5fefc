// Package api
// License: Apache-2.0
//
// Retry pacing contract for lock-free operations.

package api

// Backoff paces the retry loop of a lock-free operation after a lost
// cursor race or an unpublished slot. It never changes the operation's
// outcome, only how aggressively the loop spins. attempt counts failed
// tries since the operation started, beginning at zero.
type Backoff interface {
	Wait(attempt int)
}

// File: harness/verify.go
// License: Apache-2.0
//
// Stream verification: aggregate counts, duplicate detection, and
// per-producer order within each consumer's observed subsequence.

package harness

import (
	"github.com/chbm/anellus/api"
)

// Verify checks the streams drained by each consumer against the
// configured matrix. It reports the first failure found as a structured
// *api.Error carrying the offending producer/consumer/counter context.
//
// Order is checked per consumer stream: within one consumer's output,
// every producer's counters must be strictly increasing. Cross-producer
// interleaving carries no guarantee and is not checked.
func Verify(streams [][]uint64, producers, stock int) error {
	counts := make([]int, producers)
	seen := make(map[uint64]struct{}, producers*stock)
	for ci, stream := range streams {
		last := make([]int, producers)
		for _, v := range stream {
			p, counter := Split(v)
			if p < 0 || p >= producers {
				return api.NewError(api.ErrCodeCountMismatch, "value from unknown producer").
					WithContext("consumer", ci).
					WithContext("producer", p)
			}
			if _, dup := seen[v]; dup {
				return api.NewError(api.ErrCodeDuplicateValue, "value delivered twice").
					WithContext("consumer", ci).
					WithContext("producer", p).
					WithContext("counter", counter)
			}
			seen[v] = struct{}{}
			if counter <= last[p] {
				return api.NewError(api.ErrCodeOrderViolation, "per-producer order violated").
					WithContext("consumer", ci).
					WithContext("producer", p).
					WithContext("previous", last[p]).
					WithContext("got", counter)
			}
			last[p] = counter
			counts[p]++
		}
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	if total != producers*stock {
		return api.NewError(api.ErrCodeCountMismatch, "delivered total does not match produced total").
			WithContext("want", producers*stock).
			WithContext("got", total)
	}
	for p, c := range counts {
		if c != stock {
			return api.NewError(api.ErrCodeCountMismatch, "producer stock not fully delivered").
				WithContext("producer", p).
				WithContext("want", stock).
				WithContext("got", c)
		}
	}
	return nil
}

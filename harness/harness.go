// File: harness/harness.go
// License: Apache-2.0
//
// Package harness drives N producer and M consumer goroutines over one
// shared ring and verifies the transfer: no loss, no duplication, and
// per-producer submission order preserved in every consumer's stream.
//
// Producers encode values as producer<<32|counter with counters starting
// at 1; the zero value is reserved as the poison pill the driver pushes
// once per consumer after all producers have joined.
package harness

import (
	"runtime"
	"sync"
	"time"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/chbm/anellus/affinity"
	"github.com/chbm/anellus/api"
	"github.com/chbm/anellus/backoff"
	"github.com/chbm/anellus/control"
	"github.com/chbm/anellus/ring"
)

// PoisonPill tells a consumer that no more data will arrive.
const PoisonPill uint64 = 0

// Config describes one harness run. Zero fields fall back to defaults.
type Config struct {
	Producers int           // producer goroutines, default 1
	Consumers int           // consumer goroutines, default 1
	Stock     int           // values each producer pushes, default 100
	Logical   int           // ring capacity; default leaves headroom for the pills
	Backoff   api.Backoff   // retry pacing for workers and the ring
	Pin       bool          // pin workers to CPUs where the platform allows
	Timeout   time.Duration // per-consumer drain deadline, default 30s
	Logger    *zap.Logger   // run summary sink, default no-op
	Metrics   *control.Metrics
}

func (c Config) withDefaults() Config {
	if c.Producers < 1 {
		c.Producers = 1
	}
	if c.Consumers < 1 {
		c.Consumers = 1
	}
	if c.Stock < 1 {
		c.Stock = 100
	}
	if c.Logical < 1 {
		// Enough capacity that the pill loop cannot wedge against
		// consumers that already exited.
		c.Logical = c.Producers + c.Consumers + 32
	}
	if c.Backoff == nil {
		c.Backoff = backoff.Default()
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// ConfigFromStore builds a Config from a control.ConfigStore using
// harness.* keys, falling back to defaults for missing entries.
func ConfigFromStore(cs *control.ConfigStore) Config {
	cfg := Config{
		Producers: cs.GetInt("harness.producers", 4),
		Consumers: cs.GetInt("harness.consumers", 2),
		Stock:     cs.GetInt("harness.stock", 100),
		Logical:   cs.GetInt("harness.logical", 0),
		Pin:       cs.GetBool("harness.pin", false),
	}
	switch cs.GetString("harness.backoff", "yield") {
	case "none":
		cfg.Backoff = backoff.None{}
	case "exponential":
		cfg.Backoff = backoff.Exponential{}
	default:
		cfg.Backoff = backoff.Yield{}
	}
	return cfg
}

// Report summarizes a completed run.
type Report struct {
	Total       int
	PerProducer []int
	Elapsed     time.Duration
}

// Encode packs a producer id and a 1-based counter into a wire value.
func Encode(producer, counter int) uint64 {
	return uint64(producer)<<32 | uint64(uint32(counter))
}

// Split recovers the producer id and counter from an encoded value.
func Split(v uint64) (producer, counter int) {
	return int(v >> 32), int(uint32(v))
}

// Run executes the configured matrix over a fresh ring and verifies the
// outcome. The returned Report is valid even when verification fails.
func Run(cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()
	h := ring.New[uint64](cfg.Logical,
		ring.WithBackoff[uint64](cfg.Backoff),
		ring.WithMetrics[uint64](cfg.Metrics))

	start := time.Now()

	var producers sync.WaitGroup
	for id := 0; id < cfg.Producers; id++ {
		producers.Add(1)
		go func(id int, r ring.Handle[uint64]) {
			defer producers.Done()
			if cfg.Pin {
				lockAndPin(id)
			}
			produce(r, id, cfg.Stock, cfg.Backoff)
		}(id, h.Duplicate())
	}

	results := make(chan api.Result[*queue.Queue], cfg.Consumers)
	for id := 0; id < cfg.Consumers; id++ {
		go func(id int, r ring.Handle[uint64]) {
			if cfg.Pin {
				lockAndPin(cfg.Producers + id)
			}
			results <- Drain(r, cfg.Backoff, cfg.Timeout)
		}(id, h.Duplicate())
	}

	producers.Wait()
	for i := 0; i < cfg.Consumers; i++ {
		for spin := 0; ; spin++ {
			if err := h.Enqueue(PoisonPill); err == nil {
				break
			}
			cfg.Backoff.Wait(spin)
		}
	}

	streams := make([][]uint64, 0, cfg.Consumers)
	for i := 0; i < cfg.Consumers; i++ {
		res := <-results
		if res.Err != nil {
			return nil, res.Err
		}
		streams = append(streams, flatten(res.Value))
	}

	rep := &Report{
		PerProducer: make([]int, cfg.Producers),
		Elapsed:     time.Since(start),
	}
	for _, stream := range streams {
		rep.Total += len(stream)
		for _, v := range stream {
			if p, _ := Split(v); p >= 0 && p < cfg.Producers {
				rep.PerProducer[p]++
			}
		}
	}

	if err := Verify(streams, cfg.Producers, cfg.Stock); err != nil {
		cfg.Logger.Error("harness verification failed",
			zap.Int("producers", cfg.Producers),
			zap.Int("consumers", cfg.Consumers),
			zap.Error(err))
		return rep, err
	}
	cfg.Logger.Info("harness run complete",
		zap.Int("producers", cfg.Producers),
		zap.Int("consumers", cfg.Consumers),
		zap.Int("total", rep.Total),
		zap.Duration("elapsed", rep.Elapsed))
	return rep, nil
}

// produce pushes stock encoded values, spinning on a full ring.
func produce(r ring.Handle[uint64], id, stock int, pace api.Backoff) {
	spin := 0
	for counter := 1; counter <= stock; {
		if err := r.Enqueue(Encode(id, counter)); err != nil {
			pace.Wait(spin)
			spin++
			continue
		}
		spin = 0
		counter++
	}
}

// Drain empties a ring into a FIFO until the poison pill arrives.
// Accepts any api.Ring so scripted fakes can exercise the verifier.
// A consumer that sees nothing before the deadline reports ErrCodeStalled.
func Drain(r api.Ring[uint64], pace api.Backoff, timeout time.Duration) api.Result[*queue.Queue] {
	if pace == nil {
		pace = backoff.Default()
	}
	q := queue.New()
	deadline := time.Now().Add(timeout)
	spin := 0
	for {
		v, err := r.Dequeue()
		if err != nil {
			if time.Now().After(deadline) {
				return api.Fail[*queue.Queue](
					api.NewError(api.ErrCodeStalled, "consumer starved before poison pill").
						WithContext("timeout", timeout.String()))
			}
			pace.Wait(spin)
			spin++
			continue
		}
		spin = 0
		if v == PoisonPill {
			return api.Ok(q)
		}
		q.Add(v)
	}
}

func flatten(q *queue.Queue) []uint64 {
	out := make([]uint64, 0, q.Length())
	for q.Length() > 0 {
		out = append(out, q.Remove().(uint64))
	}
	return out
}

// lockAndPin binds the calling goroutine to an OS thread and the thread
// to a CPU. Pinning is best effort; unsupported platforms run unpinned.
func lockAndPin(worker int) {
	runtime.LockOSThread()
	_ = affinity.Pin(worker % runtime.NumCPU())
}

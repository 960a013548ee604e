// Package sim provides the simulated network conditions applied to every data
// service call: a random latency and a random failure gate.
package sim

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Defaults applied when a Random is built with zero values.
const (
	DefaultMinLatency  = 200 * time.Millisecond
	DefaultMaxLatency  = 800 * time.Millisecond
	DefaultFailureRate = 0.15
)

// Random draws latency uniformly from [Min, Max) and fails with probability
// Rate. It is safe for concurrent use.
type Random struct {
	Min  time.Duration
	Max  time.Duration
	Rate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a Random using the default bounds and failure rate.
func NewRandom(seed int64) *Random {
	return &Random{
		Min:  DefaultMinLatency,
		Max:  DefaultMaxLatency,
		Rate: DefaultFailureRate,
		rng:  rand.New(rand.NewSource(seed)), //nolint:gosec // simulation only
	}
}

// NewRandomWith returns a Random using the given bounds and failure rate.
// A max below min collapses to min.
func NewRandomWith(seed int64, minLatency, maxLatency time.Duration, rate float64) *Random {
	r := NewRandom(seed)
	r.Min, r.Max, r.Rate = minLatency, maxLatency, rate
	if r.Max < r.Min {
		r.Max = r.Min
	}
	return r
}

func (r *Random) float() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // simulation only
	}
	return r.rng.Float64()
}

// Latency returns the delay to apply before the next operation.
func (r *Random) Latency() time.Duration {
	span := r.Max - r.Min
	if span <= 0 {
		return r.Min
	}
	return r.Min + time.Duration(r.float()*float64(span))
}

// ShouldFail reports whether the next operation should fail.
func (r *Random) ShouldFail() bool {
	if r.Rate <= 0 {
		return false
	}
	return r.float() < r.Rate
}

// Static always waits Wait and fails when Fail is set. Useful in tests.
type Static struct {
	Wait time.Duration
	Fail bool
}

// Latency returns the configured wait.
func (s Static) Latency() time.Duration { return s.Wait }

// ShouldFail returns the configured outcome.
func (s Static) ShouldFail() bool { return s.Fail }

// Instant never waits and never fails.
var Instant = Static{}

// Delay waits for d or until ctx is done, whichever comes first.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

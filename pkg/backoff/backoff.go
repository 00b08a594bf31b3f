package backoff

import (
	"math"
	"math/rand/v2"
	"time"
)

// Strategy calculates retry delays. Attempt starts at 1 for the first retry.
type Strategy interface {
	NextInterval(attempt int) time.Duration
}

// Exponential grows the delay as Initial * Multiplier^(attempt-1), optionally
// randomised by JitterFactor and capped at MaxInterval.
type Exponential struct {
	Initial      time.Duration
	MaxInterval  time.Duration // zero means uncapped
	Multiplier   float64       // zero means 2
	JitterFactor float64       // zero keeps the schedule deterministic
}

func (e Exponential) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	initial := e.Initial
	if initial <= 0 {
		initial = time.Second
	}

	multiplier := e.Multiplier
	if multiplier == 0 {
		multiplier = 2
	}

	interval := float64(initial) * math.Pow(multiplier, float64(attempt-1))

	if e.JitterFactor > 0 {
		interval *= 1 + (rand.Float64()*2-1)*e.JitterFactor
	}

	if e.MaxInterval > 0 && interval > float64(e.MaxInterval) {
		interval = float64(e.MaxInterval)
	}
	if interval > math.MaxInt64 {
		interval = math.MaxInt64
	}

	return time.Duration(interval)
}

// Fixed returns the same delay for every attempt.
type Fixed struct {
	Interval time.Duration
}

func (f Fixed) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return f.Interval
}

// Policy bounds a Strategy by attempt count so retry loops always terminate.
type Policy struct {
	Strategy    Strategy
	MaxAttempts int
}

// DefaultPolicy doubles from one second and gives up after five retries.
func DefaultPolicy() Policy {
	return Policy{
		Strategy:    Exponential{Initial: time.Second, Multiplier: 2},
		MaxAttempts: 5,
	}
}

// NewPolicy returns the base * 2^(attempt-1) schedule capped at maxAttempts.
func NewPolicy(base time.Duration, maxAttempts int) Policy {
	return Policy{
		Strategy:    Exponential{Initial: base, Multiplier: 2},
		MaxAttempts: maxAttempts,
	}
}

// Delay returns the wait before the given retry attempt and whether that
// attempt is still allowed.
func (p Policy) Delay(attempt int) (time.Duration, bool) {
	if attempt <= 0 || attempt > p.MaxAttempts {
		return 0, false
	}
	s := p.Strategy
	if s == nil {
		s = Exponential{}
	}
	return s.NextInterval(attempt), true
}

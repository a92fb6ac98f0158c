package resilience

import "time"

// Policy bounds retries and the circuit breaker around an external call.
type Policy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64

	BreakerEnabled      bool
	BreakerMinRequests  uint32
	BreakerFailureRatio float64
	BreakerOpenTimeout  time.Duration
	BreakerHalfOpenMax  uint32
}

// DefaultPolicy: max 3 attempts with exponential backoff, breaker on.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     800 * time.Millisecond,
		Multiplier:     2.0,

		BreakerEnabled:      true,
		BreakerMinRequests:  5,
		BreakerFailureRatio: 0.6,
		BreakerOpenTimeout:  30 * time.Second,
		BreakerHalfOpenMax:  1,
	}
}

func (p Policy) normalize() Policy {
	def := DefaultPolicy()
	out := p
	if out.MaxAttempts <= 0 {
		out.MaxAttempts = def.MaxAttempts
	}
	if out.InitialBackoff <= 0 {
		out.InitialBackoff = def.InitialBackoff
	}
	if out.MaxBackoff < out.InitialBackoff {
		out.MaxBackoff = out.InitialBackoff
	}
	if out.Multiplier < 1.0 {
		out.Multiplier = def.Multiplier
	}
	if out.BreakerMinRequests == 0 {
		out.BreakerMinRequests = def.BreakerMinRequests
	}
	if out.BreakerFailureRatio <= 0 || out.BreakerFailureRatio > 1 {
		out.BreakerFailureRatio = def.BreakerFailureRatio
	}
	if out.BreakerOpenTimeout <= 0 {
		out.BreakerOpenTimeout = def.BreakerOpenTimeout
	}
	if out.BreakerHalfOpenMax == 0 {
		out.BreakerHalfOpenMax = def.BreakerHalfOpenMax
	}
	return out
}

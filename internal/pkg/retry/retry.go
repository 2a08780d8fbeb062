package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/mvargas/cafe-orders/internal/config"
)

// Do runs fn until it succeeds or the attempt budget is spent, backing
// off exponentially with jitter between attempts. Returns the last
// error, or ctx.Err() when the context ends the wait.
func Do(ctx context.Context, policy config.Retry, fn func() error) error {
	delay := policy.Base
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var err error
	for attempt := 0; attempt < policy.Attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		wait := delay
		if policy.JitterFactor > 0 {
			jitter := 1 + policy.JitterFactor*(2*r.Float64()-1)
			wait = time.Duration(float64(wait) * jitter)
		}
		if policy.Max > 0 && wait > policy.Max {
			wait = policy.Max
		}

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}

		delay *= 2
		if policy.Max > 0 && delay > policy.Max {
			delay = policy.Max
		}
	}
	return err
}

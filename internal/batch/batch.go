// Package batch provides a rate-limited sequential batch runner for
// operations that model calls against throttled external services.
package batch

import (
	"context"

	"golang.org/x/time/rate"
)

// Runner paces a batch of items through a token-bucket limiter. Items are
// processed strictly one at a time so observable ordering is preserved.
type Runner struct {
	limiter *rate.Limiter
}

// NewRunner creates a runner allowing rps items per second with the given
// burst. A burst of 1 gives a fixed inter-item delay of 1/rps seconds.
func NewRunner(rps float64, burst int) *Runner {
	if burst < 1 {
		burst = 1
	}
	return &Runner{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// DefaultRunner returns a runner with conservative pacing, matching the
// historical half-second inter-item delay of the LinkedIn sync loop.
func DefaultRunner() *Runner {
	return NewRunner(2.0, 1)
}

// Run invokes fn for each index in [0, total), waiting on the limiter
// before every item. It stops early and returns the context error if the
// context is cancelled; item errors are fn's own business.
func (r *Runner) Run(ctx context.Context, total int, fn func(ctx context.Context, i int)) error {
	for i := 0; i < total; i++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}
		fn(ctx, i)
	}
	return nil
}

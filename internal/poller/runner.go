// internal/poller/runner.go
package poller

import "context"

// Run performs one poll and returns its result, honoring ctx.
// No overlap. No retries. On cancellation the in-flight request is
// abandoned; the transport timeout bounds it.
func (p *Poller) Run(ctx context.Context) PollResult {
	if err := ctx.Err(); err != nil {
		return PollResult{At: p.now(), Err: err}
	}

	out := make(chan PollResult, 1)
	go func() { out <- p.PollOnce() }()

	select {
	case <-ctx.Done():
		return PollResult{At: p.now(), Err: ctx.Err()}
	case res := <-out:
		return res
	}
}

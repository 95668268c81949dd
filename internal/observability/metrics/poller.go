package metrics

import (
	"context"
	"time"
)

type PollJob = func(ctx context.Context) error

// InstrumentPoll wraps a poll job so every run lands in the poller duration
// histogram under the given name.
func InstrumentPoll(name string, job PollJob) PollJob {
	return func(ctx context.Context) error {
		start := time.Now()
		err := job(ctx)

		outcome := Success
		if err != nil {
			outcome = Error
		}
		pollerDurationHistogram.WithLabelValues(name, outcome.String()).Observe(time.Since(start).Seconds())
		return err
	}
}

package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Poller runs a job on a fixed interval until stopped. The first run happens
// immediately so gauges are populated right after start-up.
type Poller struct {
	name     string
	interval time.Duration
	job      func(ctx context.Context) error

	quit     chan struct{}
	stopOnce sync.Once
}

func New(name string, interval time.Duration, job func(ctx context.Context) error) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		job:      job,
		quit:     make(chan struct{}),
	}
}

// Start blocks until ctx is done or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	logger := log.Ctx(ctx).With().Str("poller", p.name).Logger()
	ctx = logger.WithContext(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", p.interval).Msg("Starting poller")
	p.run(ctx)

	for {
		select {
		case <-ticker.C:
			p.run(ctx)
		case <-ctx.Done():
			logger.Info().Msg("Poller stopped due to context cancellation")
			return
		case <-p.quit:
			logger.Info().Msg("Poller stopped")
			return
		}
	}
}

func (p *Poller) run(ctx context.Context) {
	if err := p.job(ctx); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Poll failed")
	}
}

// Stop is safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
	})
}

package services

import (
	"context"
	"fmt"

	"github.com/NightRunnerEB/Genome-sub000/internal/observability/metrics"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/NightRunnerEB/Genome-sub000/internal/utils/poller"
	"github.com/rs/zerolog/log"
)

// StartStatsPoller refreshes the tournament gauges until ctx is done.
func (s *Service) StartStatsPoller(ctx context.Context) {
	statsPoller := poller.New(
		"tournament_stats",
		s.cfg.Poller.StatsPollingInterval,
		metrics.InstrumentPoll("tournament_stats", s.updateTournamentStats),
	)
	go statsPoller.Start(ctx)
}

func (s *Service) updateTournamentStats(ctx context.Context) error {
	counts, err := s.db.CountTournamentsByStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to count tournaments: %w", err)
	}

	// statuses without tournaments are reset as well
	for _, status := range types.AllTournamentStatuses() {
		metrics.RecordTournamentsByStatus(status.String(), counts[status])
	}

	log.Ctx(ctx).Debug().
		Int64("new", counts[types.StatusNew]).
		Int64("started", counts[types.StatusStarted]).
		Int64("finished", counts[types.StatusFinished]).
		Int64("canceled", counts[types.StatusCanceled]).
		Msg("Updated tournament stats")
	return nil
}

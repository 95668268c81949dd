package services

import (
	"context"
	"sync"
	"time"

	"github.com/NightRunnerEB/Genome-sub000/internal/config"
	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/ledger"
	"github.com/NightRunnerEB/Genome-sub000/internal/observability/metrics"
	"github.com/NightRunnerEB/Genome-sub000/internal/observability/tracing"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"
)

type Service struct {
	cfg       *config.Config
	db        db.DbInterface
	publisher EventPublisher
	now       func() time.Time
	// operations are applied one at a time
	mu sync.Mutex
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	publisher EventPublisher,
) *Service {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Service{
		cfg:       cfg,
		db:        db,
		publisher: publisher,
		now:       time.Now,
	}
}

// operation is the working state of one submitted action: a txn overlay, the
// ledger writing into it and the events to publish once it commits.
type operation struct {
	txn    *db.Txn
	ledger *ledger.Ledger
	events []*types.Event
}

func (op *operation) emit(event *types.Event) {
	op.events = append(op.events, event)
}

// execute runs f against a fresh txn and commits its writes atomically. Any
// error from f discards every write.
func (s *Service) execute(
	ctx context.Context, action string, caller solana.PublicKey,
	f func(ctx context.Context, op *operation) error,
) error {
	ctx = tracing.InjectTraceID(ctx)
	logger := log.Ctx(ctx).With().
		Str("op", action).
		Stringer("caller", caller).
		Logger()
	ctx = logger.WithContext(ctx)

	events, err := s.commit(ctx, action, f)
	if err != nil {
		if e, ok := types.AsError(err); ok {
			logger.Debug().Err(err).Str("code", e.Code).Str("kind", e.Kind.String()).Msg("Operation rejected")
		} else {
			logger.Error().Err(err).Msg("Operation failed")
		}
		return err
	}

	s.publishEvents(ctx, events)
	return nil
}

func (s *Service) commit(
	ctx context.Context, action string,
	f func(ctx context.Context, op *operation) error,
) ([]*types.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	startTime := time.Now()
	txn := db.NewTxn(s.db)
	op := &operation{txn: txn, ledger: ledger.New(txn)}

	err := f(ctx, op)
	if err == nil {
		err = txn.Commit(ctx)
	}
	metrics.RecordOperation(time.Since(startTime), action, types.CodeOf(err), err != nil)
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Int("writes", txn.ChangeSet().Len()).
		Int("events", len(op.events)).
		Msg("Operation committed")
	return op.events, nil
}

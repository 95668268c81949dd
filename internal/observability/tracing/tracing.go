package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type traceIDKey struct{}

// InjectTraceID tags ctx and its logger with a trace id. A ctx that already
// carries one is returned unchanged, so nested operations share the id of
// the command that started them.
func InjectTraceID(ctx context.Context) context.Context {
	if TraceID(ctx) != "" {
		return ctx
	}

	id := uuid.NewString()
	logger := log.Ctx(ctx).With().Str("traceId", id).Logger()
	return logger.WithContext(context.WithValue(ctx, traceIDKey{}, id))
}

// TraceID returns the id injected by InjectTraceID, or "".
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

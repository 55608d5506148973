package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type runKey struct{}

// run is the per-invocation state carried in a context.
type run struct {
	id     string
	logger *zap.Logger
}

// StartRun starts a billing run: it assigns a fresh run id, tags base with it
// and stores both in the returned context.
func StartRun(ctx context.Context, base *zap.Logger) (context.Context, *zap.Logger) {
	id := uuid.NewString()
	l := base.With(zap.String("run_id", id))
	return context.WithValue(ctx, runKey{}, run{id: id, logger: l}), l
}

// ContextWithLogger swaps the run's logger and keeps its run id.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	r, _ := ctx.Value(runKey{}).(run)
	r.logger = logger
	return context.WithValue(ctx, runKey{}, r)
}

// FromContext returns the run's logger, or zap.NewNop() outside a run.
func FromContext(ctx context.Context) *zap.Logger {
	if r, ok := ctx.Value(runKey{}).(run); ok && r.logger != nil {
		return r.logger
	}
	return zap.NewNop()
}

// RunID returns the id assigned by StartRun, empty outside a run.
func RunID(ctx context.Context) string {
	r, _ := ctx.Value(runKey{}).(run)
	return r.id
}

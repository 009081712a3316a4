package telemetry

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"jobpilot/backend/internal/telemetry/domain"
)

// emitTimeout bounds a single async emit.
const emitTimeout = 5 * time.Second

var inflight sync.WaitGroup

// EmitAsync emits event in a goroutine detached from the request context so request
// cancellation does not abort it. Failures are logged at warn level.
// emitter and event may be nil; EmitAsync then returns without starting a goroutine.
func EmitAsync(logger *zap.Logger, emitter EventEmitter, event *domain.Event) {
	if emitter == nil || event == nil {
		return
	}
	inflight.Add(1)
	go func() {
		defer inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()
		if err := emitter.Emit(ctx, event); err != nil && logger != nil {
			logger.Warn("telemetry emit failed", zap.String("event_type", event.Type), zap.Error(err))
		}
	}()
}

// Drain blocks until every emit started by EmitAsync has returned or ctx is done.
// Call it after the servers stop and before the telemetry providers shut down.
func Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

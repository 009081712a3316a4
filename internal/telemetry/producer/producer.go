// Package producer publishes business events to Kafka.
package producer

import (
	"context"

	"jobpilot/backend/internal/telemetry/domain"
)

// Producer emits events to a broker. Callers use it best-effort.
type Producer interface {
	Emit(ctx context.Context, event *domain.Event) error
	// Close flushes and releases the writer. Safe to call more than once.
	Close() error
}

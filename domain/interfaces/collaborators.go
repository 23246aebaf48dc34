package interfaces

import (
	"context"
	"time"

	"beatledger/domain/entities"

	"github.com/google/uuid"
)

// TransactionSource is implemented by each upstream transaction system
// (track sales, sync proposals, custom sync requests, subscription billing).
// The engine only reads; it never writes back to a source.
type TransactionSource interface {
	// Name identifies the source in logs and watermarks
	Name() string

	// ListEventsSince returns raw transactions created at or after the
	// given time, oldest first
	ListEventsSince(ctx context.Context, since time.Time) ([]*entities.RawTransaction, error)
}

// ProducerDirectory resolves producer display information for report labeling
type ProducerDirectory interface {
	GetProducerDisplayInfo(ctx context.Context, id uuid.UUID) (*ProducerDisplayInfo, error)
}

// ProducerDisplayInfo is the directory's labeling payload
type ProducerDisplayInfo struct {
	Name  string
	Email string
}

// DocumentExporter renders a breakdown into an opaque artifact (the engine
// has no dependency on the artifact's format)
type DocumentExporter interface {
	Export(ctx context.Context, breakdown *entities.RevenueBreakdown) ([]byte, error)
}

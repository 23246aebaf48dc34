package interfaces

import (
	"context"
	"time"

	"beatledger/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueEventRepository defines the interface for revenue event data access
type RevenueEventRepository interface {
	// Create persists a normalized revenue event
	Create(ctx context.Context, event *entities.RevenueEvent) error

	// GetByID retrieves an event by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*entities.RevenueEvent, error)

	// ListSince returns all non-abandoned events that occurred at or after
	// the given time, optionally filtered by producer
	ListSince(ctx context.Context, since time.Time, producerID *uuid.UUID) ([]*entities.RevenueEvent, error)

	// ListPending returns all pending events, optionally filtered by producer
	ListPending(ctx context.Context, producerID *uuid.UUID) ([]*entities.RevenueEvent, error)

	// MarkCompleted flips a pending event to completed with its settlement time
	MarkCompleted(ctx context.Context, id uuid.UUID, settledAt time.Time) error

	// Abandon removes a pending event from projections without deleting history
	Abandon(ctx context.Context, id uuid.UUID) error

	// SumSubscriptionRevenue returns the total completed subscription
	// revenue settled within the given month. This is the membership pool.
	SumSubscriptionRevenue(ctx context.Context, month entities.Month) (decimal.Decimal, error)
}

// CompensationSettingsRepository defines the interface for settings versions
type CompensationSettingsRepository interface {
	// GetCurrent returns the latest settings version, or nil when none exist
	GetCurrent(ctx context.Context) (*entities.CompensationSettings, error)

	// Create inserts a new settings version
	Create(ctx context.Context, settings *entities.CompensationSettings) error
}

// ProducerSalesRepository defines the interface for closed-month sales history
type ProducerSalesRepository interface {
	// Upsert records a producer's sales total for a month
	Upsert(ctx context.Context, sales *entities.ProducerMonthlySales) error

	// GetSnapshots returns every producer with a sales row in either the
	// given month or the previous month, with both totals paired per
	// producer (missing months count as zero)
	GetSnapshots(ctx context.Context, month entities.Month) ([]*entities.ProducerSalesSnapshot, error)
}

// DistributionRecordRepository defines the interface for executed distributions
type DistributionRecordRepository interface {
	// ExistsForMonth reports whether any distribution record exists for the month
	ExistsForMonth(ctx context.Context, month entities.Month) (bool, error)

	// CreateBatch inserts all records of one distribution run
	CreateBatch(ctx context.Context, records []*entities.DistributionRecord) error

	// GetByMonth returns all records executed for a month
	GetByMonth(ctx context.Context, month entities.Month) ([]*entities.DistributionRecord, error)

	// GetByProducer returns a producer's distribution history, newest first
	GetByProducer(ctx context.Context, producerID uuid.UUID, limit int) ([]*entities.DistributionRecord, error)
}

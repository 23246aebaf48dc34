package interfaces

import (
	"context"

	"beatledger/domain/entities"

	"github.com/google/uuid"
)

// RevenueReportService assembles the unified revenue ledger view
type RevenueReportService interface {
	// GetRevenueBreakdown returns source summaries, the monthly series and
	// pending payment projections for the timeframe, optionally scoped to
	// one producer. It is read-only and safe to call concurrently.
	GetRevenueBreakdown(ctx context.Context, producerID *uuid.UUID, timeframe entities.Timeframe) (*entities.RevenueBreakdown, error)

	// ExportBreakdown renders a breakdown through the document exporter
	// collaborator and returns the opaque artifact
	ExportBreakdown(ctx context.Context, producerID *uuid.UUID, timeframe entities.Timeframe) ([]byte, error)
}

// CompensationSettingsService guards the versioned rate configuration
type CompensationSettingsService interface {
	// Get returns the current settings, falling back to defaults when no
	// version has been written yet
	Get(ctx context.Context) (*entities.CompensationSettings, error)

	// Update validates and writes a new settings version on behalf of the
	// actor. Invalid settings or an unauthorized actor leave the prior
	// settings in effect.
	Update(ctx context.Context, actorID uuid.UUID, settings *entities.CompensationSettings) error
}

// DistributionService computes and executes monthly membership distributions
type DistributionService interface {
	// Preview calculates the distribution for a month without writing
	// anything. Callable any number of times.
	Preview(ctx context.Context, month entities.Month) ([]*entities.DistributionLine, error)

	// Execute applies the calculated distribution as ledger postings,
	// exactly once per month. A second call for the same month fails with
	// entities.ErrDistributionAlreadyExecuted and writes nothing.
	Execute(ctx context.Context, month entities.Month) ([]*entities.DistributionRecord, error)
}

// Authorizer is the capability check injected into mutating administrative
// paths. Identities are never hardcoded in compensation logic.
type Authorizer interface {
	// CanManageCompensation reports whether the actor may change
	// compensation settings
	CanManageCompensation(ctx context.Context, actorID uuid.UUID) (bool, error)
}

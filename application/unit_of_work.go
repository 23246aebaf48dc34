package application

import (
	"context"

	"beatledger/domain/interfaces"
)

// UnitOfWork represents one database transaction scope. All repositories
// obtained from an instance share the same transaction, so a distribution
// run's postings commit or roll back as a single unit.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction. Safe to call after Commit.
	Rollback() error

	// RevenueEventRepository returns the revenue event repository bound to
	// this transaction
	RevenueEventRepository() interfaces.RevenueEventRepository

	// CompensationSettingsRepository returns the settings repository bound
	// to this transaction
	CompensationSettingsRepository() interfaces.CompensationSettingsRepository

	// ProducerSalesRepository returns the sales history repository bound to
	// this transaction
	ProducerSalesRepository() interfaces.ProducerSalesRepository

	// DistributionRecordRepository returns the distribution record
	// repository bound to this transaction
	DistributionRecordRepository() interfaces.DistributionRecordRepository
}

// UnitOfWorkFactory creates unit of work instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

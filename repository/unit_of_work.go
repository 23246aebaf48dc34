package repository

import (
	"context"
	"fmt"

	"beatledger/application"
	"beatledger/database"
	"beatledger/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the application.UnitOfWork interface
type unitOfWork struct {
	db  *database.DB
	tx  pgx.Tx
	ctx context.Context

	eventRepo        interfaces.RevenueEventRepository
	settingsRepo     interfaces.CompensationSettingsRepository
	salesRepo        interfaces.ProducerSalesRepository
	distributionRepo interfaces.DistributionRecordRepository
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db}
}

// Create creates a new unit of work
func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{db: f.db}
}

// Begin starts a new transaction and binds all repositories to it
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.eventRepo = NewRevenueEventRepositoryWithTx(tx)
	u.settingsRepo = NewCompensationSettingsRepositoryWithTx(tx)
	u.salesRepo = NewProducerSalesRepositoryWithTx(tx)
	u.distributionRepo = NewDistributionRecordRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction. Calling it after Commit is a no-op.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// RevenueEventRepository returns the revenue event repository for this unit of work
func (u *unitOfWork) RevenueEventRepository() interfaces.RevenueEventRepository {
	return u.eventRepo
}

// CompensationSettingsRepository returns the settings repository for this unit of work
func (u *unitOfWork) CompensationSettingsRepository() interfaces.CompensationSettingsRepository {
	return u.settingsRepo
}

// ProducerSalesRepository returns the sales history repository for this unit of work
func (u *unitOfWork) ProducerSalesRepository() interfaces.ProducerSalesRepository {
	return u.salesRepo
}

// DistributionRecordRepository returns the distribution record repository for this unit of work
func (u *unitOfWork) DistributionRecordRepository() interfaces.DistributionRecordRepository {
	return u.distributionRepo
}

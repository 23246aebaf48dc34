package application

import (
	"context"
	"fmt"
	"time"

	"beatledger/domain/entities"
	"beatledger/domain/interfaces"
	"beatledger/domain/services"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// distributionService implements the DistributionService interface. The
// calculation itself is pure (services.CalculateDistribution); this layer
// owns pool derivation and the exactly-once execution guarantee.
type distributionService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewDistributionService creates a new distribution service
func NewDistributionService(uowFactory UnitOfWorkFactory) interfaces.DistributionService {
	return &distributionService{
		uowFactory: uowFactory,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// loadInputs reads everything the calculator needs for a month within the
// given transaction scope: current settings, the pooled subscription revenue
// and the paired sales snapshots.
func (s *distributionService) loadInputs(ctx context.Context, uow UnitOfWork, month entities.Month) (
	*entities.CompensationSettings,
	[]*entities.ProducerSalesSnapshot,
	decimal.Decimal,
	error,
) {
	settings, err := uow.CompensationSettingsRepository().GetCurrent(ctx)
	if err != nil {
		return nil, nil, decimal.Zero, fmt.Errorf("failed to load compensation settings: %w", err)
	}
	if settings == nil {
		settings = entities.DefaultCompensationSettings()
	}

	pool, err := uow.RevenueEventRepository().SumSubscriptionRevenue(ctx, month)
	if err != nil {
		return nil, nil, decimal.Zero, fmt.Errorf("failed to derive membership pool for %s: %w", month, err)
	}

	snapshots, err := uow.ProducerSalesRepository().GetSnapshots(ctx, month)
	if err != nil {
		return nil, nil, decimal.Zero, fmt.Errorf("failed to load sales snapshots for %s: %w", month, err)
	}

	return settings, snapshots, pool, nil
}

// Preview calculates the distribution for a month without writing anything
func (s *distributionService) Preview(ctx context.Context, month entities.Month) ([]*entities.DistributionLine, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = uow.Rollback() }()

	settings, snapshots, pool, err := s.loadInputs(ctx, uow, month)
	if err != nil {
		return nil, err
	}

	return services.CalculateDistribution(settings, snapshots, pool), nil
}

// Execute applies the calculated distribution as ledger postings, exactly
// once per month. The existence check and every posting run inside one
// transaction; the unique (producer, month) constraint backstops concurrent
// runs, so the loser fails with ErrDistributionAlreadyExecuted instead of
// duplicating rows.
func (s *distributionService) Execute(ctx context.Context, month entities.Month) ([]*entities.DistributionRecord, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = uow.Rollback() }()

	exists, err := uow.DistributionRecordRepository().ExistsForMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing distribution for %s: %w", month, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", entities.ErrDistributionAlreadyExecuted, month)
	}

	settings, snapshots, pool, err := s.loadInputs(ctx, uow, month)
	if err != nil {
		return nil, err
	}

	lines := services.CalculateDistribution(settings, snapshots, pool)
	if len(lines) == 0 {
		// No subscribers yet; a valid empty result, not a fault
		log.Infof("distribution for %s: empty pool, nothing to post", month)
		return []*entities.DistributionRecord{}, nil
	}

	executedAt := s.now()
	records := make([]*entities.DistributionRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, &entities.DistributionRecord{
			ProducerID:      line.ProducerID,
			Month:           month,
			MembershipShare: line.MembershipShare,
			GrowthBonus:     line.GrowthBonus,
			TotalEarnings:   line.TotalEarnings,
			ExecutedAt:      executedAt,
		})
	}

	if err := uow.DistributionRecordRepository().CreateBatch(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to post distribution for %s: %w", month, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit distribution for %s: %w", month, err)
	}

	log.WithFields(log.Fields{
		"month":     month.String(),
		"producers": len(records),
		"pool":      pool.String(),
	}).Info("membership distribution executed")

	return records, nil
}

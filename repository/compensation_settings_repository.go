package repository

import (
	"context"
	"fmt"

	"beatledger/database"
	"beatledger/domain/entities"
	"beatledger/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// CompensationSettingsRepository implements the CompensationSettingsRepository interface.
// Settings are versioned: every write inserts a new row and the latest row wins.
type CompensationSettingsRepository struct {
	q Queryable
}

// NewCompensationSettingsRepository creates a new compensation settings repository
func NewCompensationSettingsRepository(db *database.DB) *CompensationSettingsRepository {
	return &CompensationSettingsRepository{q: db.Pool}
}

// NewCompensationSettingsRepositoryWithTx creates a new settings repository bound to a transaction
func NewCompensationSettingsRepositoryWithTx(tx Queryable) interfaces.CompensationSettingsRepository {
	return &CompensationSettingsRepository{q: tx}
}

// GetCurrent returns the latest settings version, or nil when none exist
func (r *CompensationSettingsRepository) GetCurrent(ctx context.Context) (*entities.CompensationSettings, error) {
	query := `
		SELECT id, standard_rate, exclusive_rate, sync_fee_rate, custom_sync_rate,
		       no_sales_bucket_rate, growth_bonus_rate, no_sale_bonus_rate,
		       holding_period_days, minimum_withdrawal, processing_fee_pct, created_at
		FROM compensation_settings
		ORDER BY id DESC
		LIMIT 1
	`

	var settings entities.CompensationSettings
	err := r.q.QueryRow(ctx, query).Scan(
		&settings.ID,
		&settings.StandardRate,
		&settings.ExclusiveRate,
		&settings.SyncFeeRate,
		&settings.CustomSyncRate,
		&settings.NoSalesBucketRate,
		&settings.GrowthBonusRate,
		&settings.NoSaleBonusRate,
		&settings.HoldingPeriodDays,
		&settings.MinimumWithdrawal,
		&settings.ProcessingFeePct,
		&settings.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current compensation settings: %w", err)
	}

	return &settings, nil
}

// Create inserts a new settings version
func (r *CompensationSettingsRepository) Create(ctx context.Context, settings *entities.CompensationSettings) error {
	query := `
		INSERT INTO compensation_settings
		(standard_rate, exclusive_rate, sync_fee_rate, custom_sync_rate,
		 no_sales_bucket_rate, growth_bonus_rate, no_sale_bonus_rate,
		 holding_period_days, minimum_withdrawal, processing_fee_pct)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		settings.StandardRate,
		settings.ExclusiveRate,
		settings.SyncFeeRate,
		settings.CustomSyncRate,
		settings.NoSalesBucketRate,
		settings.GrowthBonusRate,
		settings.NoSaleBonusRate,
		settings.HoldingPeriodDays,
		settings.MinimumWithdrawal,
		settings.ProcessingFeePct,
	).Scan(&settings.ID, &settings.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create compensation settings version: %w", err)
	}

	return nil
}

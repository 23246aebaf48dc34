package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CompensationSettings is the versioned rate/threshold configuration consumed
// by the membership distribution calculator. Writes insert a new version;
// already-executed distributions are never recalculated against new settings.
type CompensationSettings struct {
	ID                int64           `db:"id"`
	StandardRate      decimal.Decimal `db:"standard_rate"`
	ExclusiveRate     decimal.Decimal `db:"exclusive_rate"`
	SyncFeeRate       decimal.Decimal `db:"sync_fee_rate"`
	CustomSyncRate    decimal.Decimal `db:"custom_sync_rate"`
	NoSalesBucketRate decimal.Decimal `db:"no_sales_bucket_rate"`
	GrowthBonusRate   decimal.Decimal `db:"growth_bonus_rate"`
	NoSaleBonusRate   decimal.Decimal `db:"no_sale_bonus_rate"`
	HoldingPeriodDays int             `db:"holding_period_days"`
	MinimumWithdrawal decimal.Decimal `db:"minimum_withdrawal"`
	ProcessingFeePct  decimal.Decimal `db:"processing_fee_pct"`
	CreatedAt         time.Time       `db:"created_at"`
}

// DefaultCompensationSettings returns the settings used before an
// administrator has configured any
func DefaultCompensationSettings() *CompensationSettings {
	return &CompensationSettings{
		StandardRate:      decimal.NewFromInt(50),
		ExclusiveRate:     decimal.NewFromInt(70),
		SyncFeeRate:       decimal.NewFromInt(60),
		CustomSyncRate:    decimal.NewFromInt(60),
		NoSalesBucketRate: decimal.NewFromInt(2),
		GrowthBonusRate:   decimal.NewFromInt(5),
		NoSaleBonusRate:   decimal.NewFromInt(1),
		HoldingPeriodDays: 30,
		MinimumWithdrawal: decimal.NewFromInt(50),
		ProcessingFeePct:  decimal.NewFromInt(3),
	}
}

var (
	rateFloor = decimal.Zero
	rateCeil  = decimal.NewFromInt(100)
)

// Validate checks every rate field is within [0,100] and every monetary/day
// field is non-negative. The first violation is reported with its field name.
func (cs *CompensationSettings) Validate() error {
	rates := []struct {
		name  string
		value decimal.Decimal
	}{
		{"standard_rate", cs.StandardRate},
		{"exclusive_rate", cs.ExclusiveRate},
		{"sync_fee_rate", cs.SyncFeeRate},
		{"custom_sync_rate", cs.CustomSyncRate},
		{"no_sales_bucket_rate", cs.NoSalesBucketRate},
		{"growth_bonus_rate", cs.GrowthBonusRate},
		{"no_sale_bonus_rate", cs.NoSaleBonusRate},
		{"processing_fee_pct", cs.ProcessingFeePct},
	}

	for _, r := range rates {
		if r.value.LessThan(rateFloor) || r.value.GreaterThan(rateCeil) {
			return fmt.Errorf("%w: %s must be between 0 and 100, got %s",
				ErrInvalidCompensationSettings, r.name, r.value)
		}
	}

	if cs.HoldingPeriodDays < 0 {
		return fmt.Errorf("%w: holding_period_days must be non-negative, got %d",
			ErrInvalidCompensationSettings, cs.HoldingPeriodDays)
	}
	if cs.MinimumWithdrawal.IsNegative() {
		return fmt.Errorf("%w: minimum_withdrawal must be non-negative, got %s",
			ErrInvalidCompensationSettings, cs.MinimumWithdrawal)
	}

	return nil
}

package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DistributionRecord is one executed ledger posting of a producer's monthly
// membership earnings. At most one record exists per (producer, month);
// records are immutable, corrections require a compensating record.
type DistributionRecord struct {
	ID              int64           `db:"id"`
	ProducerID      uuid.UUID       `db:"producer_id"`
	Month           Month           `db:"month"`
	MembershipShare decimal.Decimal `db:"membership_share"`
	GrowthBonus     decimal.Decimal `db:"growth_bonus"`
	TotalEarnings   decimal.Decimal `db:"total_earnings"`
	ExecutedAt      time.Time       `db:"executed_at"`
}

// DistributionLine is one row of a calculated (not yet executed) monthly
// distribution. The calculator is pure, so lines can be previewed freely.
type DistributionLine struct {
	ProducerID         uuid.UUID
	MonthlySales       decimal.Decimal
	PreviousMonthSales decimal.Decimal
	GrowthPct          float64
	MembershipShare    decimal.Decimal
	GrowthBonus        decimal.Decimal
	TotalEarnings      decimal.Decimal
}

// IsNewSeller returns true for a producer that went from zero to positive
// sales; GrowthPct carries the +Inf sentinel in that case
func (l *DistributionLine) IsNewSeller() bool {
	return math.IsInf(l.GrowthPct, 1)
}

package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Timeframe selects the trailing window for revenue reporting
type Timeframe string

const (
	TimeframeMonth   Timeframe = "month"
	TimeframeQuarter Timeframe = "quarter"
	TimeframeYear    Timeframe = "year"
	TimeframeAllTime Timeframe = "all_time"
)

// Months returns the number of trailing calendar months covered by the
// timeframe, or 0 for an unbounded window
func (tf Timeframe) Months() int {
	switch tf {
	case TimeframeMonth:
		return 1
	case TimeframeQuarter:
		return 3
	case TimeframeYear:
		return 12
	default:
		return 0
	}
}

// BucketCount returns the length of the monthly series rendered for the
// timeframe: 6 buckets for the short views, 12 for year and all-time
func (tf Timeframe) BucketCount() int {
	switch tf {
	case TimeframeMonth, TimeframeQuarter:
		return 6
	default:
		return 12
	}
}

// SourceSummary is a derived per-source aggregate, recomputed on every
// aggregation request and never persisted
type SourceSummary struct {
	Source            RevenueSource
	Amount            decimal.Decimal
	Count             int
	PercentageOfTotal float64
	Status            EventStatus
}

// MonthlyBucket is one entry of the trailing monthly revenue series
type MonthlyBucket struct {
	Month  Month
	Amount decimal.Decimal
}

// PendingPayment describes one accepted-but-unpaid obligation together with
// its projected settlement date
type PendingPayment struct {
	EventID            uuid.UUID
	Source             RevenueSource
	Amount             decimal.Decimal
	ProducerID         *uuid.UUID
	ProducerName       string
	ExpectedSettlement time.Time
}

// RevenueBreakdown is the full reporting payload for one breakdown request
type RevenueBreakdown struct {
	SourceSummaries []*SourceSummary
	MonthlySeries   []MonthlyBucket
	TotalRevenue    decimal.Decimal
	PendingTotal    decimal.Decimal
	PendingPayments []*PendingPayment
}

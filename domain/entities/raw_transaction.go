package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawTransaction is the source-agnostic view of one upstream transaction as
// exposed by a transaction source collaborator. The normalizer is the only
// consumer; everything downstream depends on RevenueEvent.
type RawTransaction struct {
	// SourceID is the transaction's identifier in the originating system.
	// It becomes the event's SourceRef, which deduplicates replayed polls,
	// and labels failure reports.
	SourceID string

	Kind RevenueSource

	// Amount candidates in precedence order: the most recently agreed
	// figure wins. FinalAmount > NegotiatedAmount > QuotedAmount.
	FinalAmount      *decimal.Decimal
	NegotiatedAmount *decimal.Decimal
	QuotedAmount     *decimal.Decimal

	Completed  bool
	OccurredAt time.Time
	ProducerID *uuid.UUID

	// PaymentTermsCode is the raw terms code from the source system, e.g.
	// "net30" or "immediate". Only meaningful for pending transactions.
	PaymentTermsCode *string
	AcceptedAt       *time.Time
}

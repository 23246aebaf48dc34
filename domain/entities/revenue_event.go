package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueSource identifies the business process a revenue event originated from
type RevenueSource string

// All revenue sources consolidated by the engine
const (
	SourceTrackSale           RevenueSource = "track_sale"
	SourceSyncProposal        RevenueSource = "sync_proposal"
	SourceCustomSync          RevenueSource = "custom_sync"
	SourceSubscriptionSetup   RevenueSource = "subscription_setup"
	SourceSubscriptionMonthly RevenueSource = "subscription_monthly"
)

// IsSubscription returns true for the recurring-platform-fee sources that
// feed the membership distribution pool
func (s RevenueSource) IsSubscription() bool {
	return s == SourceSubscriptionSetup || s == SourceSubscriptionMonthly
}

// DisplayName returns a human-readable label for report output
func (s RevenueSource) DisplayName() string {
	switch s {
	case SourceTrackSale:
		return "Track sales"
	case SourceSyncProposal:
		return "Sync proposals"
	case SourceCustomSync:
		return "Custom sync requests"
	case SourceSubscriptionSetup:
		return "Subscription setup fees"
	case SourceSubscriptionMonthly:
		return "Monthly subscriptions"
	default:
		return string(s)
	}
}

// EventStatus represents the settlement state of a revenue event
type EventStatus string

const (
	StatusCompleted EventStatus = "completed"
	StatusPending   EventStatus = "pending"
	StatusAbandoned EventStatus = "abandoned"
)

// PaymentTerms represents the contractual settlement terms of a pending event
type PaymentTerms string

const (
	TermsImmediate PaymentTerms = "immediate"
	TermsNet30     PaymentTerms = "net_30"
	TermsNet60     PaymentTerms = "net_60"
	TermsNet90     PaymentTerms = "net_90"
)

// NetDays returns the number of days after acceptance until payment is due
func (pt PaymentTerms) NetDays() int {
	switch pt {
	case TermsNet30:
		return 30
	case TermsNet60:
		return 60
	case TermsNet90:
		return 90
	default:
		return 0
	}
}

// IsValid returns true if the payment terms value is one of the known codes
func (pt PaymentTerms) IsValid() bool {
	switch pt {
	case TermsImmediate, TermsNet30, TermsNet60, TermsNet90:
		return true
	}
	return false
}

// RevenueEvent is the normalized representation of one monetary transaction,
// regardless of originating business process.
//
// For a Completed event OccurredAt is the settlement date. For a Pending event
// OccurredAt is only used for display ordering; its projected settlement date
// is derived from AcceptedAt and PaymentTerms, never stored here.
//
// SourceRef is the originating system's transaction identifier. Together with
// Source it makes ingestion idempotent: sources replay their poll boundary,
// so the same transaction may be collected more than once.
type RevenueEvent struct {
	ID           uuid.UUID       `db:"id"`
	Source       RevenueSource   `db:"source"`
	SourceRef    string          `db:"source_ref"`
	Amount       decimal.Decimal `db:"amount"`
	OccurredAt   time.Time       `db:"occurred_at"`
	Status       EventStatus     `db:"status"`
	ProducerID   *uuid.UUID      `db:"producer_id"`
	PaymentTerms *PaymentTerms   `db:"payment_terms"`
	AcceptedAt   *time.Time      `db:"accepted_at"`
	CreatedAt    time.Time       `db:"created_at"`
}

// IsPending returns true if the event is accepted but not yet settled
func (e *RevenueEvent) IsPending() bool {
	return e.Status == StatusPending
}

// IsCompleted returns true if the event has settled
func (e *RevenueEvent) IsCompleted() bool {
	return e.Status == StatusCompleted
}

// Validate checks the structural invariants of the event
func (e *RevenueEvent) Validate() error {
	if e.Amount.IsNegative() {
		return fmt.Errorf("event %s: amount must be non-negative, got %s", e.ID, e.Amount)
	}

	if e.Status == StatusPending {
		if e.PaymentTerms == nil {
			return errors.New("pending event requires payment terms")
		}
		if !e.PaymentTerms.IsValid() {
			return fmt.Errorf("pending event has unknown payment terms %q", *e.PaymentTerms)
		}
		if e.AcceptedAt == nil {
			return errors.New("pending event requires an acceptance timestamp")
		}
	}

	return nil
}

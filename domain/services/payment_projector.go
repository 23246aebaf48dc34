package services

import (
	"time"

	"beatledger/domain/entities"
)

// ProjectSettlementDate computes the expected settlement date of a pending
// obligation. Immediate terms settle at acceptance; Net terms settle N days
// after acceptance. A missing acceptance timestamp falls back to now so a
// gap in upstream data never blocks reporting.
//
// The function is pure: the same (acceptedAt, terms) pair always yields the
// same date, which the monthly bucketer relies on.
func ProjectSettlementDate(acceptedAt *time.Time, terms entities.PaymentTerms, now time.Time) time.Time {
	base := now.UTC()
	if acceptedAt != nil {
		base = acceptedAt.UTC()
	}

	if terms == entities.TermsImmediate {
		return base
	}
	return base.AddDate(0, 0, terms.NetDays())
}

// ProjectEventSettlement projects the settlement date of a pending revenue
// event. Completed events settle at OccurredAt.
func ProjectEventSettlement(event *entities.RevenueEvent, now time.Time) time.Time {
	if event.IsCompleted() || event.PaymentTerms == nil {
		return event.OccurredAt
	}
	return ProjectSettlementDate(event.AcceptedAt, *event.PaymentTerms, now)
}

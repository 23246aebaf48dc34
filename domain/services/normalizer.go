package services

import (
	"fmt"
	"strings"
	"time"

	"beatledger/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ResolveAmount applies the amount precedence shared by every consumer of raw
// transactions: the most recently agreed figure wins, so final beats
// negotiated beats originally quoted. Returns false when no amount is present.
func ResolveAmount(raw *entities.RawTransaction) (decimal.Decimal, bool) {
	switch {
	case raw.FinalAmount != nil:
		return *raw.FinalAmount, true
	case raw.NegotiatedAmount != nil:
		return *raw.NegotiatedAmount, true
	case raw.QuotedAmount != nil:
		return *raw.QuotedAmount, true
	default:
		return decimal.Zero, false
	}
}

// parsePaymentTerms maps source-system terms codes onto the canonical enum
func parsePaymentTerms(code string) (entities.PaymentTerms, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(code), "-", "_"))
	switch normalized {
	case "immediate", "due_on_receipt":
		return entities.TermsImmediate, true
	case "net30", "net_30":
		return entities.TermsNet30, true
	case "net60", "net_60":
		return entities.TermsNet60, true
	case "net90", "net_90":
		return entities.TermsNet90, true
	default:
		return "", false
	}
}

// Normalize maps one raw transaction into exactly one revenue event.
// An unresolvable amount fails with entities.ErrMalformedRevenueEvent.
func Normalize(raw *entities.RawTransaction) (*entities.RevenueEvent, error) {
	amount, ok := ResolveAmount(raw)
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s (%s) has no resolvable amount",
			entities.ErrMalformedRevenueEvent, raw.SourceID, raw.Kind)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: transaction %s (%s) has negative amount %s",
			entities.ErrMalformedRevenueEvent, raw.SourceID, raw.Kind, amount)
	}

	event := &entities.RevenueEvent{
		ID:         uuid.New(),
		Source:     raw.Kind,
		SourceRef:  raw.SourceID,
		Amount:     amount,
		OccurredAt: raw.OccurredAt.UTC(),
		ProducerID: raw.ProducerID,
	}

	if raw.Completed {
		event.Status = entities.StatusCompleted
		return event, nil
	}

	event.Status = entities.StatusPending

	// A pending event needs terms to project its settlement date. Unknown
	// codes are malformed; a missing code defaults to immediately due so a
	// sloppy source cannot block reporting.
	terms := entities.TermsImmediate
	if raw.PaymentTermsCode != nil {
		parsed, ok := parsePaymentTerms(*raw.PaymentTermsCode)
		if !ok {
			return nil, fmt.Errorf("%w: transaction %s (%s) has unknown payment terms %q",
				entities.ErrMalformedRevenueEvent, raw.SourceID, raw.Kind, *raw.PaymentTermsCode)
		}
		terms = parsed
	}
	event.PaymentTerms = &terms

	acceptedAt := raw.AcceptedAt
	if acceptedAt == nil {
		// Treat as accepted now rather than failing
		now := time.Now().UTC()
		acceptedAt = &now
	}
	event.AcceptedAt = acceptedAt

	return event, nil
}

// NormalizeBatch normalizes a batch of raw transactions. Malformed
// transactions are logged, counted and skipped; they never abort the batch.
func NormalizeBatch(raws []*entities.RawTransaction) ([]*entities.RevenueEvent, int) {
	events := make([]*entities.RevenueEvent, 0, len(raws))
	skipped := 0

	for _, raw := range raws {
		event, err := Normalize(raw)
		if err != nil {
			log.WithFields(log.Fields{
				"source_id": raw.SourceID,
				"kind":      raw.Kind,
			}).Warnf("skipping malformed transaction: %v", err)
			skipped++
			continue
		}
		events = append(events, event)
	}

	return events, skipped
}

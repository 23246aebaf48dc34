package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"beatledger/domain/entities"
	"beatledger/domain/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// revenueReportService implements the RevenueReportService interface
type revenueReportService struct {
	eventRepo interfaces.RevenueEventRepository
	directory interfaces.ProducerDirectory
	exporter  interfaces.DocumentExporter
	now       func() time.Time
}

// NewRevenueReportService creates a new revenue report service. The directory
// and exporter collaborators are optional; without them pending payments are
// unlabeled and ExportBreakdown is unavailable.
func NewRevenueReportService(
	eventRepo interfaces.RevenueEventRepository,
	directory interfaces.ProducerDirectory,
	exporter interfaces.DocumentExporter,
) interfaces.RevenueReportService {
	return &revenueReportService{
		eventRepo: eventRepo,
		directory: directory,
		exporter:  exporter,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// sourceStatusKey groups summaries by (source, status)
type sourceStatusKey struct {
	source entities.RevenueSource
	status entities.EventStatus
}

// AggregateBySources folds events into per-source summaries, completed and
// pending reported separately but sharing one combined denominator so the
// percentages sum to 100 across the full set. Zero total revenue yields zero
// percentages, never a division error.
func AggregateBySources(events []*entities.RevenueEvent) []*entities.SourceSummary {
	groups := make(map[sourceStatusKey]*entities.SourceSummary)
	total := decimal.Zero

	for _, event := range events {
		if event.Status == entities.StatusAbandoned {
			continue
		}

		key := sourceStatusKey{source: event.Source, status: event.Status}
		summary, ok := groups[key]
		if !ok {
			summary = &entities.SourceSummary{
				Source: event.Source,
				Amount: decimal.Zero,
				Status: event.Status,
			}
			groups[key] = summary
		}

		summary.Amount = summary.Amount.Add(event.Amount)
		summary.Count++
		total = total.Add(event.Amount)
	}

	summaries := make([]*entities.SourceSummary, 0, len(groups))
	for _, summary := range groups {
		if total.IsPositive() {
			pct, _ := summary.Amount.Div(total).Mul(decimal.NewFromInt(100)).Float64()
			summary.PercentageOfTotal = pct
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].Amount.Equal(summaries[j].Amount) {
			return summaries[i].Amount.GreaterThan(summaries[j].Amount)
		}
		// Stable order for equal amounts
		return summaries[i].Source < summaries[j].Source
	})

	return summaries
}

// BuildMonthlySeries folds events into exactly n trailing calendar months
// ending at the month containing now. Months without events appear with a
// zero amount; there are never gaps. Completed events bucket by settlement
// date, pending events by projected settlement date: the series shows when
// cash lands, not when obligations were created.
func BuildMonthlySeries(events []*entities.RevenueEvent, n int, now time.Time) []entities.MonthlyBucket {
	months := entities.SeriesEndingAt(entities.MonthOf(now), n)

	buckets := make([]entities.MonthlyBucket, n)
	index := make(map[entities.Month]int, n)
	for i, m := range months {
		buckets[i] = entities.MonthlyBucket{Month: m, Amount: decimal.Zero}
		index[m] = i
	}

	for _, event := range events {
		if event.Status == entities.StatusAbandoned {
			continue
		}

		settles := ProjectEventSettlement(event, now)
		if i, ok := index[entities.MonthOf(settles)]; ok {
			buckets[i].Amount = buckets[i].Amount.Add(event.Amount)
		}
	}

	return buckets
}

// GetRevenueBreakdown returns the unified ledger view for the timeframe
func (s *revenueReportService) GetRevenueBreakdown(ctx context.Context, producerID *uuid.UUID, timeframe entities.Timeframe) (*entities.RevenueBreakdown, error) {
	now := s.now()

	since := time.Time{}
	if months := timeframe.Months(); months > 0 {
		since = entities.MonthOf(now.AddDate(0, -(months - 1), 0)).Time()
	}

	events, err := s.eventRepo.ListSince(ctx, since, producerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue events: %w", err)
	}

	breakdown := &entities.RevenueBreakdown{
		SourceSummaries: AggregateBySources(events),
		MonthlySeries:   BuildMonthlySeries(events, timeframe.BucketCount(), now),
		TotalRevenue:    decimal.Zero,
		PendingTotal:    decimal.Zero,
	}

	for _, event := range events {
		switch event.Status {
		case entities.StatusCompleted:
			breakdown.TotalRevenue = breakdown.TotalRevenue.Add(event.Amount)
		case entities.StatusPending:
			breakdown.TotalRevenue = breakdown.TotalRevenue.Add(event.Amount)
			breakdown.PendingTotal = breakdown.PendingTotal.Add(event.Amount)

			pending := &entities.PendingPayment{
				EventID:            event.ID,
				Source:             event.Source,
				Amount:             event.Amount,
				ProducerID:         event.ProducerID,
				ExpectedSettlement: ProjectEventSettlement(event, now),
			}
			s.labelPendingPayment(ctx, pending)
			breakdown.PendingPayments = append(breakdown.PendingPayments, pending)
		}
	}

	sort.Slice(breakdown.PendingPayments, func(i, j int) bool {
		return breakdown.PendingPayments[i].ExpectedSettlement.Before(breakdown.PendingPayments[j].ExpectedSettlement)
	})

	return breakdown, nil
}

// labelPendingPayment resolves the producer display name when a directory is
// configured. Labeling is best effort; a directory failure never fails the report.
func (s *revenueReportService) labelPendingPayment(ctx context.Context, pending *entities.PendingPayment) {
	if s.directory == nil || pending.ProducerID == nil {
		return
	}

	info, err := s.directory.GetProducerDisplayInfo(ctx, *pending.ProducerID)
	if err != nil {
		log.WithField("producer_id", *pending.ProducerID).
			Warnf("failed to resolve producer display info: %v", err)
		return
	}
	if info != nil {
		pending.ProducerName = info.Name
	}
}

// ExportBreakdown renders a breakdown through the document exporter
func (s *revenueReportService) ExportBreakdown(ctx context.Context, producerID *uuid.UUID, timeframe entities.Timeframe) ([]byte, error) {
	if s.exporter == nil {
		return nil, fmt.Errorf("no document exporter configured")
	}

	breakdown, err := s.GetRevenueBreakdown(ctx, producerID, timeframe)
	if err != nil {
		return nil, err
	}

	artifact, err := s.exporter.Export(ctx, breakdown)
	if err != nil {
		return nil, fmt.Errorf("failed to export breakdown: %w", err)
	}
	return artifact, nil
}

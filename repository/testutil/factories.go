package testutil

import (
	"time"

	"beatledger/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTestSale creates a completed track sale event
func CreateTestSale(producerID uuid.UUID, amount int64, occurred time.Time) *entities.RevenueEvent {
	return &entities.RevenueEvent{
		ID:         uuid.New(),
		Source:     entities.SourceTrackSale,
		Amount:     decimal.NewFromInt(amount),
		OccurredAt: occurred,
		Status:     entities.StatusCompleted,
		ProducerID: &producerID,
	}
}

// CreateTestPendingProposal creates a pending sync proposal on the given terms
func CreateTestPendingProposal(producerID uuid.UUID, amount int64, accepted time.Time, terms entities.PaymentTerms) *entities.RevenueEvent {
	return &entities.RevenueEvent{
		ID:           uuid.New(),
		Source:       entities.SourceSyncProposal,
		Amount:       decimal.NewFromInt(amount),
		OccurredAt:   accepted,
		Status:       entities.StatusPending,
		ProducerID:   &producerID,
		PaymentTerms: &terms,
		AcceptedAt:   &accepted,
	}
}

// CreateTestSubscription creates a completed subscription revenue event
func CreateTestSubscription(source entities.RevenueSource, amount int64, occurred time.Time) *entities.RevenueEvent {
	return &entities.RevenueEvent{
		ID:         uuid.New(),
		Source:     source,
		Amount:     decimal.NewFromInt(amount),
		OccurredAt: occurred,
		Status:     entities.StatusCompleted,
	}
}

// CreateTestMonthlySales creates a sales history row for one producer month
func CreateTestMonthlySales(producerID uuid.UUID, month entities.Month, sales int64) *entities.ProducerMonthlySales {
	return &entities.ProducerMonthlySales{
		ProducerID:  producerID,
		Month:       month,
		SalesAmount: decimal.NewFromInt(sales),
	}
}

// CreateTestDistributionRecord creates a distribution posting for one producer month
func CreateTestDistributionRecord(producerID uuid.UUID, month entities.Month, total int64) *entities.DistributionRecord {
	amount := decimal.NewFromInt(total)
	return &entities.DistributionRecord{
		ProducerID:      producerID,
		Month:           month,
		MembershipShare: amount,
		GrowthBonus:     decimal.Zero,
		TotalEarnings:   amount,
		ExecutedAt:      time.Now().UTC(),
	}
}

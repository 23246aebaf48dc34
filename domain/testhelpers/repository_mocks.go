package testhelpers

import (
	"context"
	"time"

	"beatledger/domain/entities"
	"beatledger/domain/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockRevenueEventRepository is a mock implementation of RevenueEventRepository
type MockRevenueEventRepository struct {
	mock.Mock
}

func (m *MockRevenueEventRepository) Create(ctx context.Context, event *entities.RevenueEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRevenueEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.RevenueEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RevenueEvent), args.Error(1)
}

func (m *MockRevenueEventRepository) ListSince(ctx context.Context, since time.Time, producerID *uuid.UUID) ([]*entities.RevenueEvent, error) {
	args := m.Called(ctx, since, producerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RevenueEvent), args.Error(1)
}

func (m *MockRevenueEventRepository) ListPending(ctx context.Context, producerID *uuid.UUID) ([]*entities.RevenueEvent, error) {
	args := m.Called(ctx, producerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RevenueEvent), args.Error(1)
}

func (m *MockRevenueEventRepository) MarkCompleted(ctx context.Context, id uuid.UUID, settledAt time.Time) error {
	args := m.Called(ctx, id, settledAt)
	return args.Error(0)
}

func (m *MockRevenueEventRepository) Abandon(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRevenueEventRepository) SumSubscriptionRevenue(ctx context.Context, month entities.Month) (decimal.Decimal, error) {
	args := m.Called(ctx, month)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockCompensationSettingsRepository is a mock implementation of CompensationSettingsRepository
type MockCompensationSettingsRepository struct {
	mock.Mock
}

func (m *MockCompensationSettingsRepository) GetCurrent(ctx context.Context) (*entities.CompensationSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CompensationSettings), args.Error(1)
}

func (m *MockCompensationSettingsRepository) Create(ctx context.Context, settings *entities.CompensationSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockProducerSalesRepository is a mock implementation of ProducerSalesRepository
type MockProducerSalesRepository struct {
	mock.Mock
}

func (m *MockProducerSalesRepository) Upsert(ctx context.Context, sales *entities.ProducerMonthlySales) error {
	args := m.Called(ctx, sales)
	return args.Error(0)
}

func (m *MockProducerSalesRepository) GetSnapshots(ctx context.Context, month entities.Month) ([]*entities.ProducerSalesSnapshot, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProducerSalesSnapshot), args.Error(1)
}

// MockDistributionRecordRepository is a mock implementation of DistributionRecordRepository
type MockDistributionRecordRepository struct {
	mock.Mock
}

func (m *MockDistributionRecordRepository) ExistsForMonth(ctx context.Context, month entities.Month) (bool, error) {
	args := m.Called(ctx, month)
	return args.Bool(0), args.Error(1)
}

func (m *MockDistributionRecordRepository) CreateBatch(ctx context.Context, records []*entities.DistributionRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockDistributionRecordRepository) GetByMonth(ctx context.Context, month entities.Month) ([]*entities.DistributionRecord, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DistributionRecord), args.Error(1)
}

func (m *MockDistributionRecordRepository) GetByProducer(ctx context.Context, producerID uuid.UUID, limit int) ([]*entities.DistributionRecord, error) {
	args := m.Called(ctx, producerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DistributionRecord), args.Error(1)
}

// MockAuthorizer is a mock implementation of Authorizer
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) CanManageCompensation(ctx context.Context, actorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, actorID)
	return args.Bool(0), args.Error(1)
}

// MockProducerDirectory is a mock implementation of ProducerDirectory
type MockProducerDirectory struct {
	mock.Mock
}

func (m *MockProducerDirectory) GetProducerDisplayInfo(ctx context.Context, id uuid.UUID) (*interfaces.ProducerDisplayInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.ProducerDisplayInfo), args.Error(1)
}

// MockDocumentExporter is a mock implementation of DocumentExporter
type MockDocumentExporter struct {
	mock.Mock
}

func (m *MockDocumentExporter) Export(ctx context.Context, breakdown *entities.RevenueBreakdown) ([]byte, error) {
	args := m.Called(ctx, breakdown)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockTransactionSource is a mock implementation of TransactionSource
type MockTransactionSource struct {
	mock.Mock
}

func (m *MockTransactionSource) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockTransactionSource) ListEventsSince(ctx context.Context, since time.Time) ([]*entities.RawTransaction, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RawTransaction), args.Error(1)
}

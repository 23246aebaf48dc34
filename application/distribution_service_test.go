package application

import (
	"context"
	"testing"
	"time"

	"beatledger/domain/entities"
	"beatledger/domain/interfaces"
	"beatledger/domain/testhelpers"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeUnitOfWork binds the repository mocks into a single transaction scope
// and records the commit/rollback outcome
type fakeUnitOfWork struct {
	events        *testhelpers.MockRevenueEventRepository
	settings      *testhelpers.MockCompensationSettingsRepository
	sales         *testhelpers.MockProducerSalesRepository
	distributions *testhelpers.MockDistributionRecordRepository

	begun      bool
	committed  bool
	rolledBack bool
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		events:        new(testhelpers.MockRevenueEventRepository),
		settings:      new(testhelpers.MockCompensationSettingsRepository),
		sales:         new(testhelpers.MockProducerSalesRepository),
		distributions: new(testhelpers.MockDistributionRecordRepository),
	}
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { f.begun = true; return nil }

func (f *fakeUnitOfWork) Commit() error { f.committed = true; return nil }

func (f *fakeUnitOfWork) Rollback() error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

func (f *fakeUnitOfWork) RevenueEventRepository() interfaces.RevenueEventRepository {
	return f.events
}

func (f *fakeUnitOfWork) CompensationSettingsRepository() interfaces.CompensationSettingsRepository {
	return f.settings
}

func (f *fakeUnitOfWork) ProducerSalesRepository() interfaces.ProducerSalesRepository {
	return f.sales
}

func (f *fakeUnitOfWork) DistributionRecordRepository() interfaces.DistributionRecordRepository {
	return f.distributions
}

type fakeUnitOfWorkFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUnitOfWorkFactory) Create() UnitOfWork { return f.uow }

func testMonth() entities.Month {
	return entities.MonthOf(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
}

func snapshots() []*entities.ProducerSalesSnapshot {
	return []*entities.ProducerSalesSnapshot{
		{
			ProducerID:         uuid.New(),
			MonthlySales:       decimal.NewFromInt(600),
			PreviousMonthSales: decimal.NewFromInt(600),
		},
		{
			ProducerID:         uuid.New(),
			MonthlySales:       decimal.NewFromInt(400),
			PreviousMonthSales: decimal.NewFromInt(400),
		},
	}
}

func TestDistributionService_Execute(t *testing.T) {
	month := testMonth()

	t.Run("posts one record per producer and commits", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		uow.distributions.On("ExistsForMonth", mock.Anything, month).Return(false, nil)
		uow.settings.On("GetCurrent", mock.Anything).Return(nil, nil)
		uow.events.On("SumSubscriptionRevenue", mock.Anything, month).
			Return(decimal.NewFromInt(1000), nil)
		uow.sales.On("GetSnapshots", mock.Anything, month).Return(snapshots(), nil)
		uow.distributions.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

		service := NewDistributionService(&fakeUnitOfWorkFactory{uow: uow})
		records, err := service.Execute(context.Background(), month)

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.True(t, uow.committed)
		assert.False(t, uow.rolledBack)

		total := decimal.Zero
		for _, record := range records {
			assert.True(t, month.Equal(record.Month))
			assert.False(t, record.ExecutedAt.IsZero())
			total = total.Add(record.TotalEarnings)
		}
		assert.True(t, total.LessThanOrEqual(decimal.NewFromInt(1000)))
		uow.distributions.AssertExpectations(t)
	})

	t.Run("second run for the same month fails without writing", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		uow.distributions.On("ExistsForMonth", mock.Anything, month).Return(true, nil)

		service := NewDistributionService(&fakeUnitOfWorkFactory{uow: uow})
		records, err := service.Execute(context.Background(), month)

		assert.ErrorIs(t, err, entities.ErrDistributionAlreadyExecuted)
		assert.Nil(t, records)
		assert.False(t, uow.committed)
		assert.True(t, uow.rolledBack)
		uow.distributions.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("no sales history is a valid empty run", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		uow.distributions.On("ExistsForMonth", mock.Anything, month).Return(false, nil)
		uow.settings.On("GetCurrent", mock.Anything).Return(nil, nil)
		uow.events.On("SumSubscriptionRevenue", mock.Anything, month).
			Return(decimal.NewFromInt(1000), nil)
		uow.sales.On("GetSnapshots", mock.Anything, month).
			Return([]*entities.ProducerSalesSnapshot{}, nil)

		service := NewDistributionService(&fakeUnitOfWorkFactory{uow: uow})
		records, err := service.Execute(context.Background(), month)

		require.NoError(t, err)
		assert.Empty(t, records)
		uow.distributions.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("stored settings drive the calculation", func(t *testing.T) {
		stored := entities.DefaultCompensationSettings()
		stored.GrowthBonusRate = decimal.Zero
		stored.NoSaleBonusRate = decimal.Zero
		stored.NoSalesBucketRate = decimal.Zero

		uow := newFakeUnitOfWork()
		uow.distributions.On("ExistsForMonth", mock.Anything, month).Return(false, nil)
		uow.settings.On("GetCurrent", mock.Anything).Return(stored, nil)
		uow.events.On("SumSubscriptionRevenue", mock.Anything, month).
			Return(decimal.NewFromInt(500), nil)
		uow.sales.On("GetSnapshots", mock.Anything, month).Return(snapshots(), nil)
		uow.distributions.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

		service := NewDistributionService(&fakeUnitOfWorkFactory{uow: uow})
		records, err := service.Execute(context.Background(), month)

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "300", records[0].TotalEarnings.String())
		assert.Equal(t, "200", records[1].TotalEarnings.String())
	})
}

func TestDistributionService_Preview(t *testing.T) {
	month := testMonth()

	uow := newFakeUnitOfWork()
	uow.settings.On("GetCurrent", mock.Anything).Return(nil, nil)
	uow.events.On("SumSubscriptionRevenue", mock.Anything, month).
		Return(decimal.NewFromInt(1000), nil)
	uow.sales.On("GetSnapshots", mock.Anything, month).Return(snapshots(), nil)

	service := NewDistributionService(&fakeUnitOfWorkFactory{uow: uow})
	lines, err := service.Preview(context.Background(), month)

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, uow.rolledBack, "preview must never commit")
	assert.False(t, uow.committed)
	uow.distributions.AssertNotCalled(t, "ExistsForMonth", mock.Anything, mock.Anything)
	uow.distributions.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

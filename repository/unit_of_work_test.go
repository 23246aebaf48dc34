package repository

import (
	"context"
	"testing"
	"time"

	"beatledger/application"
	"beatledger/domain/entities"
	"beatledger/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_Transactionality(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB)
	ctx := context.Background()

	month := entities.MonthOf(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	t.Run("rollback discards writes", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		record := testutil.CreateTestDistributionRecord(uuid.New(), month, 100)
		require.NoError(t, uow.DistributionRecordRepository().CreateBatch(ctx, []*entities.DistributionRecord{record}))
		require.NoError(t, uow.Rollback())

		exists, err := NewDistributionRecordRepository(testDB.DB).ExistsForMonth(ctx, month)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("commit makes writes visible", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		record := testutil.CreateTestDistributionRecord(uuid.New(), month, 100)
		require.NoError(t, uow.DistributionRecordRepository().CreateBatch(ctx, []*entities.DistributionRecord{record}))
		require.NoError(t, uow.Commit())

		exists, err := NewDistributionRecordRepository(testDB.DB).ExistsForMonth(ctx, month)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("rollback after commit is a no-op", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.Commit())
		assert.NoError(t, uow.Rollback())
	})

	t.Run("double begin rejected", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer func() { _ = uow.Rollback() }()

		assert.Error(t, uow.Begin(ctx))
	})
}

func TestDistributionService_ExactlyOncePerMonth(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	factory := NewUnitOfWorkFactory(testDB.DB)

	month := entities.MonthOf(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	// Seed the pool and two producers' sales history
	eventRepo := NewRevenueEventRepository(testDB.DB)
	require.NoError(t, eventRepo.Create(ctx, testutil.CreateTestSubscription(
		entities.SourceSubscriptionMonthly, 1000, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))))

	salesRepo := NewProducerSalesRepository(testDB.DB)
	require.NoError(t, salesRepo.Upsert(ctx, testutil.CreateTestMonthlySales(uuid.New(), month, 600)))
	require.NoError(t, salesRepo.Upsert(ctx, testutil.CreateTestMonthlySales(uuid.New(), month, 400)))

	service := application.NewDistributionService(factory)

	records, err := service.Execute(ctx, month)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// A second run for the same month must fail and write nothing
	again, err := service.Execute(ctx, month)
	assert.ErrorIs(t, err, entities.ErrDistributionAlreadyExecuted)
	assert.Nil(t, again)

	stored, err := NewDistributionRecordRepository(testDB.DB).GetByMonth(ctx, month)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	// A different month is still distributable. With no March pool or sales
	// the producers carry over as idle and earn nothing.
	preview, err := service.Preview(ctx, month.Next())
	require.NoError(t, err)
	require.Len(t, preview, 2)
	for _, line := range preview {
		assert.True(t, line.TotalEarnings.IsZero())
	}
}

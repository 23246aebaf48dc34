package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"beatledger/domain/entities"
	"beatledger/domain/interfaces"
	"beatledger/domain/testhelpers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func rawSale(sourceID string, amount int64, occurred time.Time) *entities.RawTransaction {
	value := decimal.NewFromInt(amount)
	return &entities.RawTransaction{
		SourceID:    sourceID,
		Kind:        entities.SourceTrackSale,
		FinalAmount: &value,
		Completed:   true,
		OccurredAt:  occurred,
	}
}

func TestCollector_CollectOnce(t *testing.T) {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("persists normalized events and advances the watermark", func(t *testing.T) {
		uow := newFakeUnitOfWork()

		// The boundary transaction comes back on the next pass; the ledger
		// accepts it once and reports the replay as a duplicate.
		boundary := func(e *entities.RevenueEvent) bool { return e.SourceRef == "tx-2" }
		uow.events.On("Create", mock.Anything, mock.MatchedBy(boundary)).Return(nil).Once()
		uow.events.On("Create", mock.Anything, mock.MatchedBy(boundary)).
			Return(entities.ErrDuplicateRevenueEvent).Once()
		uow.events.On("Create", mock.Anything, mock.Anything).Return(nil)

		source := new(testhelpers.MockTransactionSource)
		source.On("Name").Return("marketplace")
		source.On("ListEventsSince", mock.Anything, time.Time{}).
			Return([]*entities.RawTransaction{
				rawSale("tx-1", 100, base),
				rawSale("tx-2", 40, base.Add(48*time.Hour)),
			}, nil).Once()

		collector := NewCollector(
			&fakeUnitOfWorkFactory{uow: uow},
			[]interfaces.TransactionSource{source},
			time.Minute,
			nil,
		)

		collector.CollectOnce(context.Background())

		assert.True(t, uow.committed)
		uow.events.AssertNumberOfCalls(t, "Create", 2)
		assert.Equal(t, base.Add(48*time.Hour), collector.watermarks["marketplace"])

		// The next pass resumes from the advanced watermark. The boundary is
		// inclusive, so tx-2 is listed again alongside the genuinely new tx-3.
		source.On("ListEventsSince", mock.Anything, base.Add(48*time.Hour)).
			Return([]*entities.RawTransaction{
				rawSale("tx-2", 40, base.Add(48*time.Hour)),
				rawSale("tx-3", 25, base.Add(72*time.Hour)),
			}, nil).Once()

		collector.CollectOnce(context.Background())

		assert.Equal(t, base.Add(72*time.Hour), collector.watermarks["marketplace"])
		uow.events.AssertNumberOfCalls(t, "Create", 4)
		source.AssertExpectations(t)
		// tx-2 was stored exactly once; the second attempt hit the duplicate path
		uow.events.AssertExpectations(t)
	})

	t.Run("replayed boundary transaction is stored exactly once", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		uow.events.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		uow.events.On("Create", mock.Anything, mock.Anything).
			Return(entities.ErrDuplicateRevenueEvent)

		// One transaction, listed on every pass because the poll boundary
		// is inclusive of the watermark.
		source := new(testhelpers.MockTransactionSource)
		source.On("Name").Return("marketplace")
		source.On("ListEventsSince", mock.Anything, mock.Anything).
			Return([]*entities.RawTransaction{rawSale("tx-1", 100, base)}, nil)

		collector := NewCollector(
			&fakeUnitOfWorkFactory{uow: uow},
			[]interfaces.TransactionSource{source},
			time.Minute,
			nil,
		)

		for i := 0; i < 3; i++ {
			collector.CollectOnce(context.Background())
		}

		uow.events.AssertNumberOfCalls(t, "Create", 3)
		assert.True(t, uow.committed)
		assert.Equal(t, base, collector.watermarks["marketplace"])
	})

	t.Run("malformed transactions are skipped, good ones stored", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		uow.events.On("Create", mock.Anything, mock.Anything).Return(nil)

		malformed := &entities.RawTransaction{
			SourceID:   "tx-bad",
			Kind:       entities.SourceTrackSale,
			Completed:  true,
			OccurredAt: base,
		}

		source := new(testhelpers.MockTransactionSource)
		source.On("Name").Return("marketplace")
		source.On("ListEventsSince", mock.Anything, mock.Anything).
			Return([]*entities.RawTransaction{rawSale("tx-1", 100, base), malformed}, nil)

		collector := NewCollector(
			&fakeUnitOfWorkFactory{uow: uow},
			[]interfaces.TransactionSource{source},
			time.Minute,
			nil,
		)

		collector.CollectOnce(context.Background())
		uow.events.AssertNumberOfCalls(t, "Create", 1)
		assert.True(t, uow.committed)
	})

	t.Run("one failing source does not block the others", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		uow.events.On("Create", mock.Anything, mock.Anything).Return(nil)

		broken := new(testhelpers.MockTransactionSource)
		broken.On("Name").Return("broken")
		broken.On("ListEventsSince", mock.Anything, mock.Anything).
			Return(nil, errors.New("source unavailable"))

		healthy := new(testhelpers.MockTransactionSource)
		healthy.On("Name").Return("healthy")
		healthy.On("ListEventsSince", mock.Anything, mock.Anything).
			Return([]*entities.RawTransaction{rawSale("tx-1", 100, base)}, nil)

		collector := NewCollector(
			&fakeUnitOfWorkFactory{uow: uow},
			[]interfaces.TransactionSource{broken, healthy},
			time.Minute,
			nil,
		)

		collector.CollectOnce(context.Background())
		uow.events.AssertNumberOfCalls(t, "Create", 1)
		assert.True(t, collector.watermarks["broken"].IsZero())
	})

	t.Run("empty pass leaves the watermark untouched", func(t *testing.T) {
		uow := newFakeUnitOfWork()

		source := new(testhelpers.MockTransactionSource)
		source.On("Name").Return("quiet")
		source.On("ListEventsSince", mock.Anything, mock.Anything).
			Return([]*entities.RawTransaction{}, nil)

		collector := NewCollector(
			&fakeUnitOfWorkFactory{uow: uow},
			[]interfaces.TransactionSource{source},
			time.Minute,
			nil,
		)

		collector.CollectOnce(context.Background())
		assert.False(t, uow.begun)
		assert.True(t, collector.watermarks["quiet"].IsZero())
	})
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beatledger/database"
	"beatledger/domain/entities"
	"beatledger/domain/interfaces"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the postgres error code for a unique index conflict. It
// backs both the single-distribution-per-month guarantee and revenue event
// deduplication by source reference.
const uniqueViolation = "23505"

// DistributionRecordRepository implements the DistributionRecordRepository interface
type DistributionRecordRepository struct {
	q Queryable
}

// NewDistributionRecordRepository creates a new distribution record repository
func NewDistributionRecordRepository(db *database.DB) *DistributionRecordRepository {
	return &DistributionRecordRepository{q: db.Pool}
}

// NewDistributionRecordRepositoryWithTx creates a new distribution record repository bound to a transaction
func NewDistributionRecordRepositoryWithTx(tx Queryable) interfaces.DistributionRecordRepository {
	return &DistributionRecordRepository{q: tx}
}

// ExistsForMonth reports whether any distribution record exists for the month
func (r *DistributionRecordRepository) ExistsForMonth(ctx context.Context, month entities.Month) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM distribution_records WHERE month = $1)`

	var exists bool
	if err := r.q.QueryRow(ctx, query, month.Time()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check distribution records for %s: %w", month, err)
	}
	return exists, nil
}

// CreateBatch inserts all records of one distribution run. A concurrent run
// that beat this one to the unique index surfaces as
// entities.ErrDistributionAlreadyExecuted.
func (r *DistributionRecordRepository) CreateBatch(ctx context.Context, records []*entities.DistributionRecord) error {
	query := `
		INSERT INTO distribution_records
		(producer_id, month, membership_share, growth_bonus, total_earnings, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	for _, record := range records {
		err := r.q.QueryRow(ctx, query,
			record.ProducerID,
			record.Month.Time(),
			record.MembershipShare,
			record.GrowthBonus,
			record.TotalEarnings,
			record.ExecutedAt,
		).Scan(&record.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("%w: %s", entities.ErrDistributionAlreadyExecuted, record.Month)
			}
			return fmt.Errorf("failed to create distribution record for producer %s month %s: %w",
				record.ProducerID, record.Month, err)
		}
	}

	return nil
}

// GetByMonth returns all records executed for a month
func (r *DistributionRecordRepository) GetByMonth(ctx context.Context, month entities.Month) ([]*entities.DistributionRecord, error) {
	query := `
		SELECT id, producer_id, month, membership_share, growth_bonus, total_earnings, executed_at
		FROM distribution_records
		WHERE month = $1
		ORDER BY total_earnings DESC, producer_id
	`

	rows, err := r.q.Query(ctx, query, month.Time())
	if err != nil {
		return nil, fmt.Errorf("failed to get distribution records for %s: %w", month, err)
	}
	defer rows.Close()

	return collectDistributionRecords(rows)
}

// GetByProducer returns a producer's distribution history, newest first
func (r *DistributionRecordRepository) GetByProducer(ctx context.Context, producerID uuid.UUID, limit int) ([]*entities.DistributionRecord, error) {
	query := `
		SELECT id, producer_id, month, membership_share, growth_bonus, total_earnings, executed_at
		FROM distribution_records
		WHERE producer_id = $1
		ORDER BY month DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, producerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get distribution records for producer %s: %w", producerID, err)
	}
	defer rows.Close()

	return collectDistributionRecords(rows)
}

func collectDistributionRecords(rows pgx.Rows) ([]*entities.DistributionRecord, error) {
	var records []*entities.DistributionRecord
	for rows.Next() {
		var record entities.DistributionRecord
		var monthTime time.Time
		err := rows.Scan(
			&record.ID,
			&record.ProducerID,
			&monthTime,
			&record.MembershipShare,
			&record.GrowthBonus,
			&record.TotalEarnings,
			&record.ExecutedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan distribution record: %w", err)
		}
		record.Month = entities.MonthOf(monthTime)
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read distribution records: %w", err)
	}
	return records, nil
}

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
	"github.com/shopspring/decimal"
)

// RevenueEventRepository implements the RevenueEventRepository interface
type RevenueEventRepository struct {
	q Queryable
}

// NewRevenueEventRepository creates a new revenue event repository
func NewRevenueEventRepository(db *database.DB) *RevenueEventRepository {
	return &RevenueEventRepository{q: db.Pool}
}

// NewRevenueEventRepositoryWithTx creates a new revenue event repository bound to a transaction
func NewRevenueEventRepositoryWithTx(tx Queryable) interfaces.RevenueEventRepository {
	return &RevenueEventRepository{q: tx}
}

const revenueEventColumns = `id, source, source_ref, amount, occurred_at, status, producer_id, payment_terms, accepted_at, created_at`

// scanRevenueEvent scans one row into an event
func scanRevenueEvent(row pgx.Row) (*entities.RevenueEvent, error) {
	var event entities.RevenueEvent
	var sourceRef *string
	var terms *string

	err := row.Scan(
		&event.ID,
		&event.Source,
		&sourceRef,
		&event.Amount,
		&event.OccurredAt,
		&event.Status,
		&event.ProducerID,
		&terms,
		&event.AcceptedAt,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if sourceRef != nil {
		event.SourceRef = *sourceRef
	}
	if terms != nil {
		pt := entities.PaymentTerms(*terms)
		event.PaymentTerms = &pt
	}

	return &event, nil
}

// Create persists a normalized revenue event. Re-ingesting a transaction the
// ledger already holds returns entities.ErrDuplicateRevenueEvent.
func (r *RevenueEventRepository) Create(ctx context.Context, event *entities.RevenueEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid event: %w", err)
	}

	query := `
		INSERT INTO revenue_events (id, source, source_ref, amount, occurred_at, status, producer_id, payment_terms, accepted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	var sourceRef *string
	if event.SourceRef != "" {
		sourceRef = &event.SourceRef
	}

	var terms *string
	if event.PaymentTerms != nil {
		s := string(*event.PaymentTerms)
		terms = &s
	}

	err := r.q.QueryRow(ctx, query,
		event.ID,
		event.Source,
		sourceRef,
		event.Amount,
		event.OccurredAt,
		event.Status,
		event.ProducerID,
		terms,
		event.AcceptedAt,
	).Scan(&event.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("transaction %s from %s: %w", event.SourceRef, event.Source, entities.ErrDuplicateRevenueEvent)
		}
		return fmt.Errorf("failed to create revenue event %s: %w", event.ID, err)
	}

	return nil
}

// GetByID retrieves an event by its ID
func (r *RevenueEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.RevenueEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM revenue_events WHERE id = $1`, revenueEventColumns)

	event, err := scanRevenueEvent(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue event %s: %w", id, err)
	}
	return event, nil
}

// ListSince returns all non-abandoned events occurring at or after since,
// optionally scoped to one producer. A zero since returns everything.
func (r *RevenueEventRepository) ListSince(ctx context.Context, since time.Time, producerID *uuid.UUID) ([]*entities.RevenueEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM revenue_events
		WHERE status != 'abandoned'
		  AND occurred_at >= $1
		  AND ($2::uuid IS NULL OR producer_id = $2)
		ORDER BY occurred_at DESC
	`, revenueEventColumns)

	rows, err := r.q.Query(ctx, query, since, producerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue events since %s: %w", since.Format(time.RFC3339), err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListPending returns all pending events, optionally scoped to one producer
func (r *RevenueEventRepository) ListPending(ctx context.Context, producerID *uuid.UUID) ([]*entities.RevenueEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM revenue_events
		WHERE status = 'pending'
		  AND ($1::uuid IS NULL OR producer_id = $1)
		ORDER BY accepted_at
	`, revenueEventColumns)

	rows, err := r.q.Query(ctx, query, producerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending revenue events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]*entities.RevenueEvent, error) {
	var events []*entities.RevenueEvent
	for rows.Next() {
		event, err := scanRevenueEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan revenue event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read revenue events: %w", err)
	}
	return events, nil
}

// MarkCompleted flips a pending event to completed and assigns its settlement time
func (r *RevenueEventRepository) MarkCompleted(ctx context.Context, id uuid.UUID, settledAt time.Time) error {
	query := `
		UPDATE revenue_events
		SET status = 'completed', occurred_at = $2
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := r.q.Exec(ctx, query, id, settledAt)
	if err != nil {
		return fmt.Errorf("failed to mark event %s completed: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s is not pending", id)
	}
	return nil
}

// Abandon removes a pending event from projections while keeping its history
func (r *RevenueEventRepository) Abandon(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE revenue_events
		SET status = 'abandoned'
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to abandon event %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s is not pending", id)
	}
	return nil
}

// SumSubscriptionRevenue returns the total completed subscription revenue
// settled within the month. This is the membership pool for distribution.
func (r *RevenueEventRepository) SumSubscriptionRevenue(ctx context.Context, month entities.Month) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM revenue_events
		WHERE status = 'completed'
		  AND source IN ('subscription_setup', 'subscription_monthly')
		  AND occurred_at >= $1
		  AND occurred_at < $2
	`

	var total decimal.Decimal
	err := r.q.QueryRow(ctx, query, month.Time(), month.Next().Time()).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum subscription revenue for %s: %w", month, err)
	}
	return total, nil
}

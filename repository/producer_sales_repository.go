package repository

import (
	"context"
	"fmt"

	"beatledger/database"
	"beatledger/domain/entities"
	"beatledger/domain/interfaces"
)

// ProducerSalesRepository implements the ProducerSalesRepository interface
type ProducerSalesRepository struct {
	q Queryable
}

// NewProducerSalesRepository creates a new producer sales repository
func NewProducerSalesRepository(db *database.DB) *ProducerSalesRepository {
	return &ProducerSalesRepository{q: db.Pool}
}

// NewProducerSalesRepositoryWithTx creates a new producer sales repository bound to a transaction
func NewProducerSalesRepositoryWithTx(tx Queryable) interfaces.ProducerSalesRepository {
	return &ProducerSalesRepository{q: tx}
}

// Upsert records a producer's sales total for a month
func (r *ProducerSalesRepository) Upsert(ctx context.Context, sales *entities.ProducerMonthlySales) error {
	query := `
		INSERT INTO producer_monthly_sales (producer_id, month, sales_amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (producer_id, month) DO UPDATE SET sales_amount = EXCLUDED.sales_amount
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		sales.ProducerID,
		sales.Month.Time(),
		sales.SalesAmount,
	).Scan(&sales.ID, &sales.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert sales for producer %s month %s: %w",
			sales.ProducerID, sales.Month, err)
	}

	return nil
}

// GetSnapshots pairs each producer's sales for the month with the previous
// month's baseline. A producer appearing in only one of the two months gets a
// zero for the missing one.
func (r *ProducerSalesRepository) GetSnapshots(ctx context.Context, month entities.Month) ([]*entities.ProducerSalesSnapshot, error) {
	query := `
		SELECT producer_id,
		       COALESCE(SUM(sales_amount) FILTER (WHERE month = $1), 0) AS monthly_sales,
		       COALESCE(SUM(sales_amount) FILTER (WHERE month = $2), 0) AS previous_month_sales
		FROM producer_monthly_sales
		WHERE month IN ($1, $2)
		GROUP BY producer_id
		ORDER BY producer_id
	`

	rows, err := r.q.Query(ctx, query, month.Time(), month.Prev().Time())
	if err != nil {
		return nil, fmt.Errorf("failed to get sales snapshots for %s: %w", month, err)
	}
	defer rows.Close()

	var snapshots []*entities.ProducerSalesSnapshot
	for rows.Next() {
		var snap entities.ProducerSalesSnapshot
		if err := rows.Scan(&snap.ProducerID, &snap.MonthlySales, &snap.PreviousMonthSales); err != nil {
			return nil, fmt.Errorf("failed to scan sales snapshot: %w", err)
		}
		snapshots = append(snapshots, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sales snapshots: %w", err)
	}

	return snapshots, nil
}

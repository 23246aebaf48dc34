package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProducerMonthlySales is one producer's closed-month sales total, append-only
// once the month closes. It is the growth baseline for distribution.
type ProducerMonthlySales struct {
	ID          int64           `db:"id"`
	ProducerID  uuid.UUID       `db:"producer_id"`
	Month       Month           `db:"month"`
	SalesAmount decimal.Decimal `db:"sales_amount"`
	CreatedAt   time.Time       `db:"created_at"`
}

// ProducerSalesSnapshot pairs a producer's sales for the distribution month
// with the previous month's baseline. This is the calculator's input row.
type ProducerSalesSnapshot struct {
	ProducerID         uuid.UUID
	MonthlySales       decimal.Decimal
	PreviousMonthSales decimal.Decimal
}

// HasSales returns true if the producer sold anything in the distribution month
func (s *ProducerSalesSnapshot) HasSales() bool {
	return s.MonthlySales.IsPositive()
}

// IsIdleBothMonths returns true if the producer had zero sales in both the
// distribution month and the previous month
func (s *ProducerSalesSnapshot) IsIdleBothMonths() bool {
	return s.MonthlySales.IsZero() && s.PreviousMonthSales.IsZero()
}

package services

import (
	"math"
	"testing"

	"beatledger/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	producerA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	producerB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	producerC = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func snapshot(id uuid.UUID, current, previous int64) *entities.ProducerSalesSnapshot {
	return &entities.ProducerSalesSnapshot{
		ProducerID:         id,
		MonthlySales:       decimal.NewFromInt(current),
		PreviousMonthSales: decimal.NewFromInt(previous),
	}
}

func TestGrowthPercentage(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		previous int64
		expected float64
	}{
		{
			name:     "doubling sales is 100 percent growth",
			current:  100,
			previous: 50,
			expected: 100,
		},
		{
			name:     "halving sales is negative 50 percent",
			current:  50,
			previous: 100,
			expected: -50,
		},
		{
			name:     "flat sales is zero growth",
			current:  75,
			previous: 75,
			expected: 0,
		},
		{
			name:     "zero both months is zero growth not an error",
			current:  0,
			previous: 0,
			expected: 0,
		},
		{
			name:     "dropping to zero is negative 100 percent",
			current:  0,
			previous: 80,
			expected: -100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := growthPercentage(decimal.NewFromInt(tt.current), decimal.NewFromInt(tt.previous))
			assert.InDelta(t, tt.expected, got, 0.0001)
		})
	}
}

func TestGrowthPercentage_NewSellerSentinel(t *testing.T) {
	got := growthPercentage(decimal.NewFromInt(100), decimal.Zero)
	assert.True(t, math.IsInf(got, 1), "zero to positive sales should report the +Inf sentinel")
}

func TestCalculateDistribution_EmptyHistory(t *testing.T) {
	lines := CalculateDistribution(
		entities.DefaultCompensationSettings(),
		nil,
		decimal.NewFromInt(1000),
	)
	assert.Empty(t, lines)
}

func TestCalculateDistribution_ProportionalShares(t *testing.T) {
	// No zero-sales producers, no growth: shares follow sales proportions
	// exactly and the carve-out is never taken
	lines := CalculateDistribution(
		entities.DefaultCompensationSettings(),
		[]*entities.ProducerSalesSnapshot{
			snapshot(producerA, 600, 600),
			snapshot(producerB, 400, 400),
		},
		decimal.NewFromInt(1000),
	)

	require.Len(t, lines, 2)
	assert.Equal(t, producerA, lines[0].ProducerID)
	assert.Equal(t, "600", lines[0].TotalEarnings.String())
	assert.Equal(t, producerB, lines[1].ProducerID)
	assert.Equal(t, "400", lines[1].TotalEarnings.String())
	assert.True(t, lines[0].GrowthBonus.IsZero())
	assert.True(t, lines[1].GrowthBonus.IsZero())
}

func TestCalculateDistribution_CarveOutAndPoolCap(t *testing.T) {
	// One idle producer and one growing producer. The idle producer splits the
	// 2% carve-out plus a 1% idle bonus; the grower takes the remaining 98%
	// plus a 5% growth bonus. The raw total exceeds the pool, so every line is
	// scaled back until the pool is exhausted exactly.
	lines := CalculateDistribution(
		entities.DefaultCompensationSettings(),
		[]*entities.ProducerSalesSnapshot{
			snapshot(producerA, 0, 0),
			snapshot(producerB, 100, 50),
		},
		decimal.NewFromInt(1000),
	)

	require.Len(t, lines, 2)

	grower := lines[0]
	idle := lines[1]
	assert.Equal(t, producerB, grower.ProducerID)
	assert.Equal(t, producerA, idle.ProducerID)

	assert.Equal(t, "980.75", grower.TotalEarnings.String())
	assert.Equal(t, "19.25", idle.TotalEarnings.String())
	assert.InDelta(t, 100.0, grower.GrowthPct, 0.0001)

	total := grower.TotalEarnings.Add(idle.TotalEarnings)
	assert.Equal(t, "1000", total.String(), "pool must be exhausted exactly when the cap applies")
}

func TestCalculateDistribution_GrowthBonusScalesWithinPool(t *testing.T) {
	// A single producer with growth: the base share is the whole pool, so the
	// bonus forces proportional scaling and the payout equals the pool
	lines := CalculateDistribution(
		entities.DefaultCompensationSettings(),
		[]*entities.ProducerSalesSnapshot{
			snapshot(producerA, 100, 50),
		},
		decimal.NewFromInt(1000),
	)

	require.Len(t, lines, 1)
	assert.Equal(t, "1000", lines[0].TotalEarnings.String())
	assert.True(t, lines[0].GrowthBonus.IsPositive())
}

func TestCalculateDistribution_NewSellerEarnsGrowthBonus(t *testing.T) {
	lines := CalculateDistribution(
		entities.DefaultCompensationSettings(),
		[]*entities.ProducerSalesSnapshot{
			snapshot(producerA, 200, 0),
			snapshot(producerB, 200, 200),
		},
		decimal.NewFromInt(500),
	)

	require.Len(t, lines, 2)

	var newSeller, flat *entities.DistributionLine
	for _, line := range lines {
		switch line.ProducerID {
		case producerA:
			newSeller = line
		case producerB:
			flat = line
		}
	}
	require.NotNil(t, newSeller)
	require.NotNil(t, flat)

	assert.True(t, newSeller.IsNewSeller())
	assert.True(t, newSeller.GrowthBonus.IsPositive())
	assert.False(t, flat.IsNewSeller())
	assert.True(t, flat.GrowthBonus.IsZero())
}

func TestCalculateDistribution_IdleProducersNeverGetGrowthBonus(t *testing.T) {
	// An idle producer gets the no-sale retention bonus, never the growth
	// bonus; a producer who had sales last month but none this month gets
	// neither
	lines := CalculateDistribution(
		entities.DefaultCompensationSettings(),
		[]*entities.ProducerSalesSnapshot{
			snapshot(producerA, 0, 0),
			snapshot(producerB, 0, 300),
			snapshot(producerC, 500, 500),
		},
		decimal.NewFromInt(1000),
	)

	require.Len(t, lines, 3)

	byID := make(map[uuid.UUID]*entities.DistributionLine)
	for _, line := range lines {
		byID[line.ProducerID] = line
	}

	// 2% carve-out split equally: $10 each. Only the both-months-idle
	// producer earns the 1% retention bonus on top; that dime pushes the raw
	// total past the pool, so the seller's share is scaled back to cover it.
	assert.Equal(t, "10.1", byID[producerA].TotalEarnings.String())
	assert.Equal(t, "10", byID[producerB].TotalEarnings.String())
	assert.Equal(t, "979.9", byID[producerC].TotalEarnings.String())
	assert.InDelta(t, -100.0, byID[producerB].GrowthPct, 0.0001)
}

func TestCalculateDistribution_ZeroPool(t *testing.T) {
	lines := CalculateDistribution(
		entities.DefaultCompensationSettings(),
		[]*entities.ProducerSalesSnapshot{
			snapshot(producerA, 100, 0),
			snapshot(producerB, 0, 0),
		},
		decimal.Zero,
	)

	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, line.TotalEarnings.IsZero())
	}
}

func TestCalculateDistribution_NeverExceedsPool(t *testing.T) {
	pool := decimal.NewFromInt(1000)
	scenarios := []struct {
		name      string
		snapshots []*entities.ProducerSalesSnapshot
	}{
		{
			name: "all growing",
			snapshots: []*entities.ProducerSalesSnapshot{
				snapshot(producerA, 300, 100),
				snapshot(producerB, 500, 200),
				snapshot(producerC, 200, 50),
			},
		},
		{
			name: "all idle",
			snapshots: []*entities.ProducerSalesSnapshot{
				snapshot(producerA, 0, 0),
				snapshot(producerB, 0, 0),
			},
		},
		{
			name: "mixed with uneven thirds",
			snapshots: []*entities.ProducerSalesSnapshot{
				snapshot(producerA, 1, 0),
				snapshot(producerB, 1, 1),
				snapshot(producerC, 1, 2),
			},
		},
	}

	for _, tt := range scenarios {
		t.Run(tt.name, func(t *testing.T) {
			lines := CalculateDistribution(entities.DefaultCompensationSettings(), tt.snapshots, pool)

			total := decimal.Zero
			for _, line := range lines {
				assert.False(t, line.TotalEarnings.IsNegative())
				assert.Equal(t, line.TotalEarnings.String(), line.MembershipShare.Add(line.GrowthBonus).String())
				total = total.Add(line.TotalEarnings)
			}
			assert.True(t, total.LessThanOrEqual(pool),
				"total payout %s must not exceed pool %s", total, pool)
		})
	}
}

func TestCalculateDistribution_Ordering(t *testing.T) {
	lines := CalculateDistribution(
		entities.DefaultCompensationSettings(),
		[]*entities.ProducerSalesSnapshot{
			snapshot(producerC, 100, 100),
			snapshot(producerA, 700, 700),
			snapshot(producerB, 200, 200),
		},
		decimal.NewFromInt(1000),
	)

	require.Len(t, lines, 3)
	assert.Equal(t, producerA, lines[0].ProducerID)
	assert.Equal(t, producerB, lines[1].ProducerID)
	assert.Equal(t, producerC, lines[2].ProducerID)
}

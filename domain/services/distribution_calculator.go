package services

import (
	"math"
	"sort"

	"beatledger/domain/entities"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// growthPercentage computes month-over-month sales growth. A producer going
// from zero to positive sales reports the +Inf sentinel; zero sales both
// months is 0% growth, never a division error.
func growthPercentage(current, previous decimal.Decimal) float64 {
	if previous.IsPositive() {
		pct, _ := current.Sub(previous).Div(previous).Mul(oneHundred).Float64()
		return pct
	}
	if current.IsPositive() {
		return math.Inf(1)
	}
	return 0
}

// CalculateDistribution computes each producer's share of the pooled
// membership bucket for a month. It is pure: callable any number of times for
// preview without side effects.
//
// Allocation rules:
//   - Producers with zero sales split a carve-out of noSalesBucketRate% of the
//     pool equally. The carve-out is only taken when such producers exist.
//   - Producers with positive sales split the remaining pool in proportion to
//     their share of total positive sales.
//   - Positive month-over-month growth earns growthBonusRate% of the base
//     share. Producers idle in both months instead earn noSaleBonusRate% of
//     their no-sales share; never both bonuses.
//   - The pool is a hard cap: when bonuses push the raw total above it, every
//     line is scaled proportionally so the total equals the pool. Amounts are
//     rounded to cents and any rounding remainder lands on the largest-share
//     line, so nothing is silently dropped.
//
// An empty sales history returns an empty result: no subscribers yet is not a
// computation fault.
func CalculateDistribution(
	settings *entities.CompensationSettings,
	snapshots []*entities.ProducerSalesSnapshot,
	pool decimal.Decimal,
) []*entities.DistributionLine {
	lines := make([]*entities.DistributionLine, 0, len(snapshots))
	if len(snapshots) == 0 {
		return lines
	}

	var zeroSalesCount int64
	totalPositiveSales := decimal.Zero
	for _, snap := range snapshots {
		if snap.HasSales() {
			totalPositiveSales = totalPositiveSales.Add(snap.MonthlySales)
		} else {
			zeroSalesCount++
		}
	}

	carveOut := decimal.Zero
	if zeroSalesCount > 0 {
		carveOut = pool.Mul(settings.NoSalesBucketRate).Div(oneHundred)
	}
	remainingPool := pool.Sub(carveOut)

	rawTotal := decimal.Zero
	for _, snap := range snapshots {
		line := &entities.DistributionLine{
			ProducerID:         snap.ProducerID,
			MonthlySales:       snap.MonthlySales,
			PreviousMonthSales: snap.PreviousMonthSales,
			GrowthPct:          growthPercentage(snap.MonthlySales, snap.PreviousMonthSales),
			GrowthBonus:        decimal.Zero,
		}

		if snap.HasSales() {
			if totalPositiveSales.IsPositive() {
				line.MembershipShare = remainingPool.Mul(snap.MonthlySales).Div(totalPositiveSales)
			}
			if line.GrowthPct > 0 {
				line.GrowthBonus = line.MembershipShare.Mul(settings.GrowthBonusRate).Div(oneHundred)
			}
		} else {
			// Equal split of the carve-out among all zero-sales producers
			line.MembershipShare = carveOut.Div(decimal.NewFromInt(zeroSalesCount))
			if snap.IsIdleBothMonths() {
				line.GrowthBonus = line.MembershipShare.Mul(settings.NoSaleBonusRate).Div(oneHundred)
			}
		}

		line.TotalEarnings = line.MembershipShare.Add(line.GrowthBonus)
		rawTotal = rawTotal.Add(line.TotalEarnings)
		lines = append(lines, line)
	}

	// Enforce the pool cap before rounding
	capped := false
	if rawTotal.GreaterThan(pool) && rawTotal.IsPositive() {
		scale := pool.Div(rawTotal)
		for _, line := range lines {
			line.MembershipShare = line.MembershipShare.Mul(scale)
			line.GrowthBonus = line.GrowthBonus.Mul(scale)
			line.TotalEarnings = line.MembershipShare.Add(line.GrowthBonus)
		}
		capped = true
	}

	roundedTotal := decimal.Zero
	for _, line := range lines {
		line.MembershipShare = line.MembershipShare.Round(2)
		line.GrowthBonus = line.GrowthBonus.Round(2)
		line.TotalEarnings = line.MembershipShare.Add(line.GrowthBonus)
		roundedTotal = roundedTotal.Add(line.TotalEarnings)
	}

	// Absorb the rounding remainder into the largest-share line: when the cap
	// was applied the pool must be exhausted exactly, and rounding must never
	// push the total above the pool.
	var remainder decimal.Decimal
	if capped {
		remainder = pool.Sub(roundedTotal)
	} else if roundedTotal.GreaterThan(pool) {
		remainder = pool.Sub(roundedTotal)
	}
	if !remainder.IsZero() {
		largest := largestShareLine(lines)
		largest.MembershipShare = largest.MembershipShare.Add(remainder)
		largest.TotalEarnings = largest.MembershipShare.Add(largest.GrowthBonus)
	}

	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].TotalEarnings.Equal(lines[j].TotalEarnings) {
			return lines[i].TotalEarnings.GreaterThan(lines[j].TotalEarnings)
		}
		return lines[i].ProducerID.String() < lines[j].ProducerID.String()
	})

	return lines
}

// largestShareLine picks the line with the biggest membership share, breaking
// ties on lowest producer ID so remainder absorption is deterministic
func largestShareLine(lines []*entities.DistributionLine) *entities.DistributionLine {
	largest := lines[0]
	for _, line := range lines[1:] {
		if line.MembershipShare.GreaterThan(largest.MembershipShare) {
			largest = line
			continue
		}
		if line.MembershipShare.Equal(largest.MembershipShare) &&
			line.ProducerID.String() < largest.ProducerID.String() {
			largest = line
		}
	}
	return largest
}

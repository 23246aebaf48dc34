package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthOf(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		expected string
	}{
		{
			name:     "mid-month instant normalizes to first of month",
			instant:  time.Date(2026, 3, 17, 14, 30, 0, 0, time.UTC),
			expected: "2026-03",
		},
		{
			name:     "non-UTC instant converted before truncation",
			instant:  time.Date(2026, 2, 1, 3, 0, 0, 0, time.FixedZone("behind", -5*3600)),
			expected: "2026-02",
		},
		{
			name:     "last instant of month stays in month",
			instant:  time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC),
			expected: "2026-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthOf(tt.instant).String())
		})
	}
}

func TestParseMonth(t *testing.T) {
	month, err := ParseMonth("2026-07")
	require.NoError(t, err)
	assert.Equal(t, "2026-07", month.String())
	assert.Equal(t, "Jul 2026", month.Label())

	_, err = ParseMonth("July 2026")
	assert.Error(t, err)

	_, err = ParseMonth("2026-13")
	assert.Error(t, err)
}

func TestMonth_PrevNext(t *testing.T) {
	jan := MonthOf(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "2025-12", jan.Prev().String())
	assert.Equal(t, "2026-02", jan.Next().String())
	assert.True(t, jan.Prev().Before(jan))
	assert.True(t, jan.Next().Prev().Equal(jan))
}

func TestMonth_Contains(t *testing.T) {
	march := MonthOf(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	assert.True(t, march.Contains(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, march.Contains(time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, march.Contains(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, march.Contains(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))
}

func TestSeriesEndingAt(t *testing.T) {
	end := MonthOf(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))

	series := SeriesEndingAt(end, 4)
	require.Len(t, series, 4)
	assert.Equal(t, "2025-11", series[0].String())
	assert.Equal(t, "2025-12", series[1].String())
	assert.Equal(t, "2026-01", series[2].String())
	assert.Equal(t, "2026-02", series[3].String())
}

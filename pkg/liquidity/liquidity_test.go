package liquidity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testSchedule() []Entry {
	return []Entry{
		{Delay: 60, Available: 1000},
		{Delay: 3600, Available: 2000},
		{Delay: 86400, Available: 5000},
	}
}

func TestEstimateDelay(t *testing.T) {
	tests := []struct {
		name     string
		schedule []Entry
		amount   uint64
		expected uint64
	}{
		{"zero_amount_empty_schedule", nil, 0, MinDelay},
		{"zero_amount", testSchedule(), 0, MinDelay},
		{"first_bucket_suffices", testSchedule(), 500, 60},
		{"needs_two_buckets", testSchedule(), 1500, 3600},
		{"exact_first_bucket", testSchedule(), 1000, 60},
		{"needs_all_buckets", testSchedule(), 7000, 86400},
		{"exceeds_total_liquidity", testSchedule(), 100000, 86400},
		{"empty_schedule", nil, 42, MinDelay},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, EstimateDelay(tt.schedule, tt.amount))
		})
	}
}

// The estimate must not depend on the storage order of the schedule.
func TestEstimateDelayUnsortedSchedule(t *testing.T) {
	shuffled := []Entry{
		{Delay: 86400, Available: 5000},
		{Delay: 60, Available: 1000},
		{Delay: 3600, Available: 2000},
	}
	require.Equal(t, uint64(86400), EstimateDelay(shuffled, 7000))
	require.Equal(t, uint64(86400), EstimateDelay(shuffled, 100000))
}

func TestEstimateDelayFloor(t *testing.T) {
	require.Equal(t, uint64(120), EstimateDelayFloor(nil, 0, 120))
	require.Equal(t, uint64(120), EstimateDelayFloor(testSchedule(), 500, 120))
	require.Equal(t, uint64(3600), EstimateDelayFloor(testSchedule(), 1500, 120))
}

func TestTotalAvailable(t *testing.T) {
	require.Equal(t, uint64(8000), TotalAvailable(testSchedule()))
	require.Zero(t, TotalAvailable(nil))
}

func TestFormatDelay(t *testing.T) {
	tests := []struct {
		seconds  uint64
		expected string
	}{
		{0, "0 seconds"},
		{1, "1 second"},
		{59, "59 seconds"},
		{60, "1 minute"},
		{300, "5 minutes"},
		{3600, "1 hour"},
		{3900, "1 hour 5 minutes"},
		{7200, "2 hours"},
		{86400, "1 day"},
		{90000, "1 day 1 hour"},
		{180000, "2 days 2 hours"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, FormatDelay(tt.seconds), "seconds %d", tt.seconds)
	}
}

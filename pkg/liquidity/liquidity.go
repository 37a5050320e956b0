// Package liquidity estimates how long a withdrawal of a given amount will
// be delayed, based on the availability schedule published by the deposits
// canister.
package liquidity

import "fmt"

// MinDelay is the minimum processing latency in seconds. Every estimate is
// floored at this value, including estimates for a zero amount.
const MinDelay = uint64(60)

// Entry is one step of the availability schedule: Available additional base
// units of liquidity become unlocked after Delay seconds. The schedule is not
// assumed to be sorted.
type Entry struct {
	Delay     uint64 `json:"delay"`
	Available uint64 `json:"available"`
}

// EstimateDelay returns the worst-case delay in seconds to unlock amount base
// units, walking every schedule entry at most once and stopping as soon as
// the requested amount is covered.
//
// When the requested amount exceeds the total liquidity of the schedule the
// result is the largest delay present, which is a lower bound rather than a
// guarantee. Callers that need a hard answer should compare TotalAvailable
// against the amount first.
func EstimateDelay(schedule []Entry, amount uint64) uint64 {
	return EstimateDelayFloor(schedule, amount, MinDelay)
}

// EstimateDelayFloor is EstimateDelay with a caller-chosen floor delay.
func EstimateDelayFloor(schedule []Entry, amount, floor uint64) uint64 {
	remaining := amount
	maxDelay := floor
	for _, entry := range schedule {
		if remaining == 0 {
			return maxDelay
		}
		if entry.Delay > maxDelay {
			maxDelay = entry.Delay
		}
		if entry.Available >= remaining {
			remaining = 0
		} else {
			remaining -= entry.Available
		}
	}
	return maxDelay
}

// TotalAvailable sums the liquidity of all schedule entries.
func TotalAvailable(schedule []Entry) uint64 {
	var total uint64
	for _, entry := range schedule {
		total += entry.Available
	}
	return total
}

// FormatDelay renders a delay in seconds as a short human readable duration,
// e.g. "1 hour 5 minutes".
func FormatDelay(seconds uint64) string {
	if seconds < 60 {
		return plural(seconds, "second")
	}
	if seconds < 3600 {
		return plural(seconds/60, "minute")
	}
	if seconds < 86400 {
		s := plural(seconds/3600, "hour")
		if m := (seconds % 3600) / 60; m > 0 {
			s += " " + plural(m, "minute")
		}
		return s
	}
	s := plural(seconds/86400, "day")
	if h := (seconds % 86400) / 3600; h > 0 {
		s += " " + plural(h, "hour")
	}
	return s
}

func plural(n uint64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

package utils

import "time"

// Processor amounts arrive in minor units (cents); stored amounts are
// decimal major units.
func MinorToAmount(minor int64) float64 {
	return float64(minor) / 100
}

func AmountToMinor(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

// Processor timestamps arrive as epoch seconds; they go through
// milliseconds before becoming a calendar timestamp.
func FromEpochSeconds(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(sec * 1000)
}

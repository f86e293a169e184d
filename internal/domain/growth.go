package domain

import "math"

// GrowthRate is the percentage change from previous to recent, rounded to
// two decimals. An empty previous period counts as 100% growth.
func GrowthRate(recent, previous int) float64 {
	if previous <= 0 {
		return 100
	}
	rate := float64(recent-previous) / float64(previous) * 100
	return math.Round(rate*100) / 100
}

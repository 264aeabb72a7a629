package recommendation

import "math"

// KRWPerUSD is the fixed, versioned conversion rate used for the USD total.
// Exchange-rate volatility is explicitly out of scope: the rate is a
// documented constant, not a live FX lookup.  Update RateVersion whenever
// the rate changes.
const (
	KRWPerUSD   = 1350.0
	RateVersion = "2024-06-fixed"
)

// roundHalfUp rounds to the nearest whole number with halves rounding up.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// aggregatePrices computes the exact KRW sum over all emitted items and its
// deterministic USD equivalent.  KRW amounts are integral (no fractional
// won); USD is rounded half-up to the nearest whole dollar.
func aggregatePrices(items []RecommendedItem) (totalKRW, totalUSD int64) {
	for i := range items {
		totalKRW += items[i].PriceKRW
	}
	totalUSD = roundHalfUp(float64(totalKRW) / KRWPerUSD)
	return totalKRW, totalUSD
}

// Package recommendation implements the treatment recommendation pipeline:
// exclusion filtering, multi-criteria scoring, tier classification, ranking
// with deterministic tie-breaks, soft-conflict resolution, price
// aggregation, and output assembly.
//
// The pipeline is a pure function of (survey input, catalog snapshot,
// climate context): it performs no I/O, holds no state between calls, and
// is safe to run concurrently over a shared snapshot.
package recommendation

import (
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/climate"
)

// ScoredCandidate pairs a surviving catalog entry with its computed score
// and the per-vocabulary match counts used for tie-breaking and
// explainability.
type ScoredCandidate struct {
	Entry *catalog.Entry

	Score float64

	// Matched tag counts against the survey, kept for diagnostics.
	MatchedConcerns int
	MatchedGoals    int
	MatchedAreas    int
}

// RecommendedItem is a single emitted recommendation.  Immutable once
// produced by the ranker.
type RecommendedItem struct {
	Key      catalog.TreatmentID `json:"key"`
	Tier     int                 `json:"tier"`
	Score    float64             `json:"score"`
	PriceKRW int64               `json:"priceKRW"`

	// photosensitive is carried for the climate advisor but not exposed
	// in the response body.
	photosensitive bool
}

// Output is the complete recommendation payload: ranked items across all
// four tiers in tier order, aggregate prices, and climate warnings.
type Output struct {
	Recommendations []RecommendedItem `json:"recommendations"`
	TotalPriceKRW   int64             `json:"totalPriceKRW"`
	TotalPriceUSD   int64             `json:"totalPriceUSD"`
	Warnings        []climate.Warning `json:"warnings"`
}

// HasPhotosensitive reports whether any emitted item is a photosensitive
// treatment.
func (o *Output) HasPhotosensitive() bool {
	for i := range o.Recommendations {
		if o.Recommendations[i].photosensitive {
			return true
		}
	}
	return false
}

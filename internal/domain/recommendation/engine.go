package recommendation

import (
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/climate"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

// Engine runs the recommendation pipeline.  It is stateless and safe for
// concurrent use; the catalog snapshot is an explicit argument on every
// call, never engine state.
type Engine struct{}

// NewEngine constructs an Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Recommend executes the full pipeline over a normalized survey input and
// an immutable catalog snapshot:
//
//	exclusion filter → scoring → tier classification → ranking/dedup
//	→ price aggregation → climate advisory → assembly
//
// The result is deterministic: identical (snapshot, input, climateCtx)
// always produces identical output, including ordering.  Either a complete
// Output is returned or an error; there is no partial success.
func (e *Engine) Recommend(snapshot *catalog.Snapshot, in *survey.Input, climateCtx climate.Context) (*Output, error) {
	if snapshot == nil {
		return nil, apperrors.New(apperrors.ErrCodeCatalogUnavailable, "catalog snapshot is nil")
	}
	if in == nil {
		return nil, apperrors.Validation("survey input is nil")
	}

	safe := excludeUnsafe(snapshot.Entries(), in)
	scored := scoreAll(safe, in)

	buckets, err := classifyTiers(scored)
	if err != nil {
		return nil, err
	}

	items := rankAndDedup(buckets)
	totalKRW, totalUSD := aggregatePrices(items)

	out := &Output{
		Recommendations: items,
		TotalPriceKRW:   totalKRW,
		TotalPriceUSD:   totalUSD,
		Warnings:        []climate.Warning{},
	}

	if w, ok := climate.Advise(climateCtx, out.HasPhotosensitive()); ok {
		out.Warnings = append(out.Warnings, w)
	}

	return out, nil
}

package recommendation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/climate"
	"github.com/CodingBot000/miracle3day-sub008/internal/testutil"
	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

func TestRecommendPregnancyExcludesRetinoid(t *testing.T) {
	engine := NewEngine()
	snap := testutil.AcneCatalog(t)
	in := testutil.NormalizedSurvey(t,
		[]string{"acne"}, []string{"clearSkin"}, []string{"face"},
		"mid", "efficacy", nil, []string{"pregnancy"})

	out, err := engine.Recommend(snap, in, climate.DefaultContext())
	require.NoError(t, err)

	for _, item := range out.Recommendations {
		assert.NotEqual(t, catalog.TreatmentID("retinoid_program"), item.Key,
			"contraindicated entry must never surface, regardless of match score")
	}
}

func TestRecommendDeterminism(t *testing.T) {
	engine := NewEngine()
	snap := testutil.AcneCatalog(t)
	in := testutil.NormalizedSurvey(t,
		[]string{"acne", "pores"}, []string{"clearSkin"}, []string{"face"},
		"mid", "balanced", nil, nil)

	first, err := engine.Recommend(snap, in, climate.DefaultContext())
	require.NoError(t, err)
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := engine.Recommend(snap, in, climate.DefaultContext())
		require.NoError(t, err)
		againJSON, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, string(firstJSON), string(againJSON))
	}
}

func TestRecommendInvariants(t *testing.T) {
	engine := NewEngine()
	snap := testutil.AcneCatalog(t)
	in := testutil.NormalizedSurvey(t,
		[]string{"acne", "wrinkles", "redness"}, []string{"clearSkin", "antiAging"},
		[]string{"face"}, "mid", "balanced", nil, nil)

	out, err := engine.Recommend(snap, in, climate.DefaultContext())
	require.NoError(t, err)
	require.NotEmpty(t, out.Recommendations)

	var sum int64
	seen := map[catalog.TreatmentID]struct{}{}
	for _, item := range out.Recommendations {
		sum += item.PriceKRW
		_, dup := seen[item.Key]
		require.False(t, dup, "duplicate key %s", item.Key)
		seen[item.Key] = struct{}{}
		assert.GreaterOrEqual(t, item.Tier, catalog.TierMin)
		assert.LessOrEqual(t, item.Tier, catalog.TierMax)
		assert.GreaterOrEqual(t, item.Score, 0.0)
	}
	assert.Equal(t, sum, out.TotalPriceKRW)
	assert.Equal(t, roundHalfUp(float64(sum)/KRWPerUSD), out.TotalPriceUSD)
}

func TestRecommendEmptyArraysStillSucceed(t *testing.T) {
	engine := NewEngine()
	snap := testutil.AcneCatalog(t)
	in := testutil.NormalizedSurvey(t,
		nil, nil, nil, "mid", "balanced", nil, nil)

	out, err := engine.Recommend(snap, in, climate.DefaultContext())
	require.NoError(t, err)
	require.NotEmpty(t, out.Recommendations)

	// Everything scores the baseline; no match counts, no adjustments.
	for _, item := range out.Recommendations {
		assert.Equal(t, Baseline, item.Score)
	}
}

func TestRecommendSoftConflictKeepsHigherRanked(t *testing.T) {
	engine := NewEngine()
	snap := testutil.AcneCatalog(t)
	// acne+pores favors chemical_peel over aqua_peel; the conflict drops
	// the lower-scoring member.
	in := testutil.NormalizedSurvey(t,
		[]string{"acne", "pores"}, []string{"clearSkin"}, []string{"face"},
		"mid", "efficacy", nil, nil)

	out, err := engine.Recommend(snap, in, climate.DefaultContext())
	require.NoError(t, err)

	keys := map[catalog.TreatmentID]struct{}{}
	for _, item := range out.Recommendations {
		keys[item.Key] = struct{}{}
	}
	assert.Contains(t, keys, catalog.TreatmentID("chemical_peel"))
	assert.NotContains(t, keys, catalog.TreatmentID("aqua_peel"))
}

func TestRecommendClimateWarning(t *testing.T) {
	engine := NewEngine()
	snap := testutil.AcneCatalog(t)
	in := testutil.NormalizedSurvey(t,
		[]string{"acne"}, []string{"clearSkin"}, []string{"face"},
		"mid", "efficacy", nil, nil)

	out, err := engine.Recommend(snap, in, climate.Context{UVIndex: 11})
	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	assert.True(t, out.Warnings[0].Show)
	assert.Equal(t, climate.SeverityCritical, out.Warnings[0].Severity)
	assert.Equal(t, 5, out.Warnings[0].UVRiskLevel)
}

func TestRecommendNoWarningWithoutPhotosensitive(t *testing.T) {
	engine := NewEngine()
	snap := testutil.NewSnapshot(t,
		testutil.NewEntry("ldm_care", 4, 80000,
			testutil.WithTags([]string{"redness"}, []string{"hydration"}, []string{"face"})),
	)
	in := testutil.NormalizedSurvey(t,
		[]string{"redness"}, []string{"hydration"}, []string{"face"},
		"low", "cost", nil, nil)

	out, err := engine.Recommend(snap, in, climate.Context{UVIndex: 11})
	require.NoError(t, err)
	assert.NotNil(t, out.Warnings)
	assert.Empty(t, out.Warnings)
}

func TestRecommendNilArguments(t *testing.T) {
	engine := NewEngine()
	snap := testutil.AcneCatalog(t)
	in := testutil.NormalizedSurvey(t, nil, nil, nil, "mid", "balanced", nil, nil)

	_, err := engine.Recommend(nil, in, climate.DefaultContext())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCatalogUnavailable))

	_, err = engine.Recommend(snap, nil, climate.DefaultContext())
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestRecommendMalformedTierSurfacesCatalogError(t *testing.T) {
	engine := NewEngine()
	snap, err := catalog.NewSnapshot([]catalog.Entry{
		{Key: "broken", Tier: 9, BasePriceKRW: 100},
	})
	require.NoError(t, err)
	in := testutil.NormalizedSurvey(t, nil, nil, nil, "mid", "balanced", nil, nil)

	_, err = engine.Recommend(snap, in, climate.DefaultContext())
	require.Error(t, err)
	assert.True(t, apperrors.IsCatalog(err))
}

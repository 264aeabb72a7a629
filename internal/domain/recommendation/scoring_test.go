package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
	"github.com/CodingBot000/miracle3day-sub008/internal/testutil"
)

func TestScoreEntryZeroMatchIsBaseline(t *testing.T) {
	e := testutil.NewEntry("unrelated", 4, 5000000,
		testutil.WithTags([]string{"sagging"}, []string{"lifting"}, []string{"neck"}))
	in := testutil.NormalizedSurvey(t,
		[]string{"acne"}, []string{"clearSkin"}, []string{"face"},
		"low", "cost", nil, nil)

	c := scoreEntry(&e, in, weightsFor(in.Priority))

	// No tag match means no budget or priority adjustment either: a
	// wildly over-budget entry still scores exactly the baseline.
	assert.Equal(t, Baseline, c.Score)
	assert.Zero(t, c.MatchedConcerns)
	assert.Zero(t, c.MatchedGoals)
	assert.Zero(t, c.MatchedAreas)
}

func TestScoreEntryWeightedMatches(t *testing.T) {
	e := testutil.NewEntry("laser", 1, 250000,
		testutil.WithTags(
			[]string{"acne", "acneScars"},
			[]string{"clearSkin", "scarRevision"},
			[]string{"face"}))
	in := testutil.NormalizedSurvey(t,
		[]string{"acne", "acneScars"}, []string{"clearSkin", "scarRevision"}, []string{"face"},
		"low", "efficacy", nil, nil)

	c := scoreEntry(&e, in, weightsFor(in.Priority))
	require.Equal(t, 2, c.MatchedConcerns)
	require.Equal(t, 2, c.MatchedGoals)
	require.Equal(t, 1, c.MatchedAreas)

	ws := WeightTableV1[survey.PriorityEfficacy]
	// Price 250k is band 0 against a "low" budget: in-band bonus applies,
	// plus the efficacy boost for two goal matches.
	want := Baseline + ws.Concern*2 + ws.Goal*2 + ws.Area*1 +
		budgetFitBonus*ws.Budget + efficacyBoostGoals
	assert.InDelta(t, want, c.Score, 1e-9)
}

func TestBudgetFit(t *testing.T) {
	ws := WeightSet{Budget: 1.0}
	tests := []struct {
		name     string
		priceKRW int64
		band     survey.BudgetRange
		want     float64
	}{
		{"in band", 150000, survey.BudgetLow, budgetFitBonus},
		{"below band", 150000, survey.BudgetHigh, budgetFitCheapBonus},
		{"one band over", 500000, survey.BudgetLow, 0},
		{"two bands over", 1500000, survey.BudgetLow, budgetFitOverPenalty},
		{"unknown band treated as mid", 500000, survey.BudgetRange("whatever"), budgetFitBonus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testutil.NewEntry("x", 1, tt.priceKRW)
			assert.InDelta(t, tt.want, budgetFit(&e, tt.band, ws), 1e-9)
		})
	}
}

func TestPriorityBoost(t *testing.T) {
	zeroDowntime := testutil.NewEntry("a", 1, 100000)
	shortDowntime := testutil.NewEntry("b", 1, 100000, testutil.WithDowntime(2))
	longDowntime := testutil.NewEntry("c", 1, 100000, testutil.WithDowntime(7))
	expensive := testutil.NewEntry("d", 3, 2000000)

	assert.Equal(t, downtimeBoostZeroDays, priorityBoost(&zeroDowntime, survey.PriorityDowntime, 0))
	assert.Equal(t, downtimeBoostShort, priorityBoost(&shortDowntime, survey.PriorityDowntime, 0))
	assert.Zero(t, priorityBoost(&longDowntime, survey.PriorityDowntime, 0))

	assert.Equal(t, costBoostLowBand, priorityBoost(&zeroDowntime, survey.PriorityCost, 0))
	assert.Zero(t, priorityBoost(&expensive, survey.PriorityCost, 0))

	assert.Equal(t, efficacyBoostGoals, priorityBoost(&zeroDowntime, survey.PriorityEfficacy, 2))
	assert.Zero(t, priorityBoost(&zeroDowntime, survey.PriorityEfficacy, 1))

	assert.Zero(t, priorityBoost(&zeroDowntime, survey.PriorityBalanced, 5))
}

func TestWeightsForUnknownPriorityFallsBack(t *testing.T) {
	assert.Equal(t, WeightTableV1[survey.PriorityBalanced], weightsFor(survey.Priority("nope")))
}

func TestScoreNeverNegative(t *testing.T) {
	// A single area match with the cost weight set and a deep over-budget
	// penalty: the clamp keeps the score at zero or above.
	e := testutil.NewEntry("lux", 3, 5000000,
		testutil.WithTags(nil, nil, []string{"face"}))
	in := testutil.NormalizedSurvey(t,
		nil, nil, []string{"face"}, "low", "cost", nil, nil)

	c := scoreEntry(&e, in, weightsFor(in.Priority))
	assert.GreaterOrEqual(t, c.Score, 0.0)
}

func TestScoreAllPreservesOrder(t *testing.T) {
	snap := testutil.AcneCatalog(t)
	in := testutil.NormalizedSurvey(t,
		[]string{"acne"}, []string{"clearSkin"}, []string{"face"},
		"mid", "balanced", nil, nil)

	safe := excludeUnsafe(snap.Entries(), in)
	scored := scoreAll(safe, in)
	require.Equal(t, len(safe), len(scored))
	for i := range safe {
		assert.Equal(t, safe[i].Key, scored[i].Entry.Key)
	}
}

package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/testutil"
)

func keysOf(entries []*catalog.Entry) []string {
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, string(e.Key))
	}
	return keys
}

func TestExcludeUnsafeContraindications(t *testing.T) {
	snap := testutil.AcneCatalog(t)
	in := testutil.NormalizedSurvey(t,
		[]string{"acne"}, []string{"clearSkin"}, []string{"face"},
		"mid", "efficacy", nil, []string{"pregnancy"})

	safe := excludeUnsafe(snap.Entries(), in)
	keys := keysOf(safe)

	assert.NotContains(t, keys, "retinoid_program")
	assert.NotContains(t, keys, "chemical_peel")
	assert.NotContains(t, keys, "skin_botox")
	assert.Contains(t, keys, "aqua_peel")
	assert.Contains(t, keys, "ldm_care")
}

func TestExcludeUnsafePastTreatments(t *testing.T) {
	snap := testutil.NewSnapshot(t,
		testutil.NewEntry("one_shot", 3, 900000),
		testutil.NewEntry("repeatable", 1, 90000, testutil.WithMaintenance()),
	)
	in := testutil.NormalizedSurvey(t,
		nil, nil, nil, "mid", "balanced",
		[]string{"one_shot", "repeatable"}, nil)

	safe := excludeUnsafe(snap.Entries(), in)
	keys := keysOf(safe)

	// A received treatment stays recommendable only under the maintenance
	// flag.
	assert.NotContains(t, keys, "one_shot")
	assert.Contains(t, keys, "repeatable")
}

func TestExcludeUnsafeKeepsSoftConflicts(t *testing.T) {
	snap := testutil.AcneCatalog(t)
	in := testutil.NormalizedSurvey(t,
		[]string{"acne", "pores"}, []string{"clearSkin"}, []string{"face"},
		"mid", "efficacy", nil, nil)

	safe := excludeUnsafe(snap.Entries(), in)
	keys := keysOf(safe)

	// Conflict resolution is deferred: both members survive this stage.
	assert.Contains(t, keys, "chemical_peel")
	assert.Contains(t, keys, "aqua_peel")
}

func TestExcludeUnsafePreservesOrder(t *testing.T) {
	snap := testutil.AcneCatalog(t)
	in := testutil.NormalizedSurvey(t,
		nil, nil, nil, "mid", "balanced", nil, nil)

	safe := excludeUnsafe(snap.Entries(), in)
	require.Equal(t, snap.Len(), len(safe))
	for i, e := range snap.Entries() {
		assert.Equal(t, e.Key, safe[i].Key)
	}
}

package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/testutil"
	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

func candidate(key string, tier int, score float64, price int64, downtime int, conflicts ...string) ScoredCandidate {
	e := testutil.NewEntry(key, tier, price,
		testutil.WithDowntime(downtime),
		testutil.WithConflicts(conflicts...))
	return ScoredCandidate{Entry: &e, Score: score}
}

func itemKeys(items []RecommendedItem) []string {
	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, string(it.Key))
	}
	return keys
}

func TestClassifyTiers(t *testing.T) {
	buckets, err := classifyTiers([]ScoredCandidate{
		candidate("a", 1, 10, 100, 0),
		candidate("b", 4, 5, 100, 0),
		candidate("c", 1, 7, 100, 0),
	})
	require.NoError(t, err)
	assert.Len(t, buckets[0], 2)
	assert.Empty(t, buckets[1])
	assert.Empty(t, buckets[2])
	assert.Len(t, buckets[3], 1)
}

func TestClassifyTiersRejectsMalformedTier(t *testing.T) {
	_, err := classifyTiers([]ScoredCandidate{candidate("bad", 0, 1, 100, 0)})
	require.Error(t, err)
	assert.True(t, apperrors.IsCatalog(err))
}

func TestSortTierTieBreakChain(t *testing.T) {
	tests := []struct {
		name  string
		cands []ScoredCandidate
		want  []string
	}{
		{
			name: "score descending",
			cands: []ScoredCandidate{
				candidate("low", 1, 5, 100, 0),
				candidate("high", 1, 10, 100, 0),
			},
			want: []string{"high", "low"},
		},
		{
			name: "equal score, fewer downtime days first",
			cands: []ScoredCandidate{
				candidate("week", 1, 8, 100, 7),
				candidate("short", 1, 8, 100, 3),
			},
			want: []string{"short", "week"},
		},
		{
			name: "equal score and downtime, cheaper first",
			cands: []ScoredCandidate{
				candidate("pricey", 1, 8, 200, 1),
				candidate("cheap", 1, 8, 100, 1),
			},
			want: []string{"cheap", "pricey"},
		},
		{
			name: "full tie, lexicographic key",
			cands: []ScoredCandidate{
				candidate("zeta", 1, 8, 100, 1),
				candidate("alpha", 1, 8, 100, 1),
			},
			want: []string{"alpha", "zeta"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sortTier(tt.cands)
			got := make([]string, len(tt.cands))
			for i, c := range tt.cands {
				got[i] = string(c.Entry.Key)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRankAndDedupResolvesConflictsByRank(t *testing.T) {
	var buckets [tierCount][]ScoredCandidate
	buckets[0] = []ScoredCandidate{
		candidate("winner", 1, 12, 100, 0, "loser"),
		candidate("loser", 1, 8, 100, 0),
		candidate("bystander", 1, 6, 100, 0),
	}

	items := rankAndDedup(buckets)
	keys := itemKeys(items)
	assert.Equal(t, []string{"winner", "bystander"}, keys)
}

func TestRankAndDedupCrossTierConflict(t *testing.T) {
	var buckets [tierCount][]ScoredCandidate
	// Tier 1 position 1 vs tier 3 position 0: the tier-3 candidate is
	// higher ranked within its own tier and survives.
	buckets[0] = []ScoredCandidate{
		candidate("t1_first", 1, 12, 100, 0),
		candidate("t1_second", 1, 8, 100, 0, "t3_first"),
	}
	buckets[2] = []ScoredCandidate{
		candidate("t3_first", 3, 4, 100, 0),
	}

	items := rankAndDedup(buckets)
	keys := itemKeys(items)
	assert.Contains(t, keys, "t3_first")
	assert.NotContains(t, keys, "t1_second")
}

func TestRankAndDedupConflictDirectionIrrelevant(t *testing.T) {
	// Only the lower-ranked member declares the conflict; it is still the
	// one dropped.
	var buckets [tierCount][]ScoredCandidate
	buckets[0] = []ScoredCandidate{
		candidate("silent_winner", 1, 12, 100, 0),
		candidate("declaring_loser", 1, 8, 100, 0, "silent_winner"),
	}

	items := rankAndDedup(buckets)
	assert.Equal(t, []string{"silent_winner"}, itemKeys(items))
}

func TestRankAndDedupCapPerTier(t *testing.T) {
	var buckets [tierCount][]ScoredCandidate
	for i := 0; i < maxPerTier+3; i++ {
		key := string(rune('a' + i))
		buckets[0] = append(buckets[0], candidate(key, 1, float64(20-i), 100, 0))
	}

	items := rankAndDedup(buckets)
	assert.Len(t, items, maxPerTier)
	// Highest scores survive the cap.
	assert.Equal(t, "a", string(items[0].Key))
}

func TestRankAndDedupTierOrderAndUniqueness(t *testing.T) {
	var buckets [tierCount][]ScoredCandidate
	buckets[3] = []ScoredCandidate{candidate("other", 4, 1, 100, 0)}
	buckets[0] = []ScoredCandidate{candidate("core", 1, 1, 100, 0)}
	buckets[1] = []ScoredCandidate{candidate("aging", 2, 1, 100, 0)}

	items := rankAndDedup(buckets)
	require.Equal(t, []string{"core", "aging", "other"}, itemKeys(items))

	seen := map[catalog.TreatmentID]struct{}{}
	for _, it := range items {
		_, dup := seen[it.Key]
		require.False(t, dup, "duplicate key %s", it.Key)
		seen[it.Key] = struct{}{}
		assert.GreaterOrEqual(t, it.Tier, catalog.TierMin)
		assert.LessOrEqual(t, it.Tier, catalog.TierMax)
	}
}

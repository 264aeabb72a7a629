package recommendation

import (
	"sort"

	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
)

// maxPerTier caps how many items each tier may contribute to the response.
// Items beyond the cap are dropped whole, never truncated mid-object.
const maxPerTier = 5

// sortTier orders one tier's candidates by score descending with the fixed
// deterministic tie-break chain: fewer downtime days, then lower price,
// then lexicographic key.  Identical input must always produce identical
// order, so every comparison level is total.
func sortTier(candidates []ScoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Entry.DowntimeDays != b.Entry.DowntimeDays {
			return a.Entry.DowntimeDays < b.Entry.DowntimeDays
		}
		if a.Entry.BasePriceKRW != b.Entry.BasePriceKRW {
			return a.Entry.BasePriceKRW < b.Entry.BasePriceKRW
		}
		return a.Entry.Key < b.Entry.Key
	})
}

// rankedRef locates one sorted candidate for cross-tier conflict
// resolution: pos is its index within its tier's sorted order.
type rankedRef struct {
	tier int // 0-based bucket index
	pos  int
	cand ScoredCandidate
}

// outranks reports whether a should survive a conflict against b.  The
// higher-ranked member keeps its place: first by position within its own
// tier's sorted order, then by lower tier number.  Positions within a tier
// are unique, so the comparison is total for any conflicting pair.
func (a rankedRef) outranks(b rankedRef) bool {
	if a.pos != b.pos {
		return a.pos < b.pos
	}
	return a.tier < b.tier
}

// resolveConflicts performs the deferred soft-conflict resolution across
// all tiers.  When two present candidates declare a conflict (in either
// direction), the lower-ranked one is dropped and the resulting gap closes.
// Resolution visits candidates in rank order so that a dropped candidate
// can never evict anything.
func resolveConflicts(buckets *[tierCount][]ScoredCandidate) {
	refs := make([]rankedRef, 0)
	for t := range buckets {
		for p, c := range buckets[t] {
			refs = append(refs, rankedRef{tier: t, pos: p, cand: c})
		}
	}
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].outranks(refs[j]) })

	kept := make([]rankedRef, 0, len(refs))
	dropped := make(map[catalog.TreatmentID]struct{})
	for _, r := range refs {
		conflicting := false
		for _, k := range kept {
			if r.cand.Entry.ConflictsWithKey(k.cand.Entry.Key) ||
				k.cand.Entry.ConflictsWithKey(r.cand.Entry.Key) {
				conflicting = true
				break
			}
		}
		if conflicting {
			dropped[r.cand.Entry.Key] = struct{}{}
			continue
		}
		kept = append(kept, r)
	}

	if len(dropped) == 0 {
		return
	}
	for t := range buckets {
		filtered := buckets[t][:0]
		for _, c := range buckets[t] {
			if _, gone := dropped[c.Entry.Key]; !gone {
				filtered = append(filtered, c)
			}
		}
		buckets[t] = filtered
	}
}

// rankAndDedup runs the full ranking stage over classified buckets:
// per-tier deterministic sort, cross-tier soft-conflict resolution, then
// the per-tier cap.  The returned items are in final presentation order
// (tier 1→4, rank order within each tier) and unique by key.
func rankAndDedup(buckets [tierCount][]ScoredCandidate) []RecommendedItem {
	for t := range buckets {
		sortTier(buckets[t])
	}

	resolveConflicts(&buckets)

	items := make([]RecommendedItem, 0)
	for t := range buckets {
		bucket := buckets[t]
		if len(bucket) > maxPerTier {
			bucket = bucket[:maxPerTier]
		}
		for _, c := range bucket {
			items = append(items, RecommendedItem{
				Key:            c.Entry.Key,
				Tier:           c.Entry.Tier,
				Score:          c.Score,
				PriceKRW:       c.Entry.BasePriceKRW,
				photosensitive: c.Entry.Photosensitive,
			})
		}
	}
	return items
}

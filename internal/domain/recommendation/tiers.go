package recommendation

import (
	"fmt"

	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

// tierCount is the fixed number of presentation buckets.
const tierCount = catalog.TierMax - catalog.TierMin + 1

// classifyTiers distributes scored candidates into the four ordered tier
// buckets read directly from catalog metadata.  A tier outside {1..4} is a
// catalog-authoring bug, reported as an internal catalog error rather than
// a user-facing failure.  Empty buckets are valid and contribute nothing.
func classifyTiers(candidates []ScoredCandidate) ([tierCount][]ScoredCandidate, error) {
	var buckets [tierCount][]ScoredCandidate
	for _, c := range candidates {
		t := c.Entry.Tier
		if t < catalog.TierMin || t > catalog.TierMax {
			return buckets, apperrors.Catalog(
				fmt.Sprintf("entry %q has invalid tier %d", c.Entry.Key, t))
		}
		buckets[t-catalog.TierMin] = append(buckets[t-catalog.TierMin], c)
	}
	return buckets, nil
}

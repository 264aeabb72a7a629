package recommendation

import (
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
)

// excludeUnsafe applies the hard safety/history exclusions, in order:
//
//  1. entries whose contraindications intersect the declared medical
//     conditions are dropped;
//  2. entries already received are dropped unless their Maintenance flag
//     marks them repeatable.
//
// Soft ConflictsWith pairs are NOT resolved here: conflict resolution needs
// every member's score, so it is deferred to the ranker.  Entry order is
// preserved from the snapshot.
func excludeUnsafe(entries []catalog.Entry, in *survey.Input) []*catalog.Entry {
	out := make([]*catalog.Entry, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.ContraindicatedBy(in.Conditions) {
			continue
		}
		if in.HasPast(string(e.Key)) && !e.Maintenance {
			continue
		}
		out = append(out, e)
	}
	return out
}

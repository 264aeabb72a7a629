package recommendation

import (
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
)

// countConcernMatches returns |entry.Tags.Concerns ∩ input.Concerns|.
func countConcernMatches(e *catalog.Entry, in *survey.Input) int {
	n := 0
	for _, t := range e.Tags.Concerns {
		if _, ok := in.Concerns[t]; ok {
			n++
		}
	}
	return n
}

func countGoalMatches(e *catalog.Entry, in *survey.Input) int {
	n := 0
	for _, t := range e.Tags.Goals {
		if _, ok := in.Goals[t]; ok {
			n++
		}
	}
	return n
}

func countAreaMatches(e *catalog.Entry, in *survey.Input) int {
	n := 0
	for _, t := range e.Tags.Areas {
		if _, ok := in.Areas[t]; ok {
			n++
		}
	}
	return n
}

// scoreEntry computes a single entry's relevance score:
//
//	score = Baseline + wC·|concerns∩| + wG·|goals∩| + wA·|areas∩|
//	        + budgetFit + priorityBoost
//
// clamped at zero.  An entry matching no tag at all scores exactly Baseline:
// budget and priority adjustments only differentiate entries that are
// relevant to the survey in the first place.
func scoreEntry(e *catalog.Entry, in *survey.Input, ws WeightSet) ScoredCandidate {
	nC := countConcernMatches(e, in)
	nG := countGoalMatches(e, in)
	nA := countAreaMatches(e, in)

	score := Baseline
	if nC+nG+nA > 0 {
		score += ws.Concern*float64(nC) + ws.Goal*float64(nG) + ws.Area*float64(nA)
		score += budgetFit(e, in.Budget, ws)
		score += priorityBoost(e, in.Priority, nG)
	}
	if score < 0 {
		score = 0
	}

	return ScoredCandidate{
		Entry:           e,
		Score:           score,
		MatchedConcerns: nC,
		MatchedGoals:    nG,
		MatchedAreas:    nA,
	}
}

// scoreAll computes scores for every surviving entry, preserving input
// order.  Scores are computed independently per entry so that deferred
// conflict resolution can compare them later.
func scoreAll(entries []*catalog.Entry, in *survey.Input) []ScoredCandidate {
	ws := weightsFor(in.Priority)
	out := make([]ScoredCandidate, 0, len(entries))
	for _, e := range entries {
		out = append(out, scoreEntry(e, in, ws))
	}
	return out
}

package recommendation

import (
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
)

// WeightTableVersion identifies the scoring configuration in effect.  Bump
// it whenever any constant in this file changes so that logged scores stay
// attributable to the table that produced them.
const WeightTableVersion = "v1"

// Baseline is the priority-independent score assigned to every candidate.
// An entry matching no survey tag scores exactly Baseline and may still
// surface in tier 4 ("other").
const Baseline = 5.0

// WeightSet holds the active multipliers for one priority.
type WeightSet struct {
	// Concern, Goal, Area weight the respective tag-intersection counts.
	Concern float64
	Goal    float64
	Area    float64

	// Budget scales the budget-fit adjustment.
	Budget float64
}

// WeightTableV1 maps each canonical priority to its weight set.  The table
// is immutable configuration: loaded once, never recomputed per call.
var WeightTableV1 = map[survey.Priority]WeightSet{
	survey.PriorityEfficacy: {Concern: 3.0, Goal: 4.0, Area: 2.0, Budget: 0.5},
	survey.PriorityCost:     {Concern: 2.0, Goal: 2.0, Area: 1.5, Budget: 2.0},
	survey.PriorityDowntime: {Concern: 2.5, Goal: 2.5, Area: 2.0, Budget: 1.0},
	survey.PriorityBalanced: {Concern: 2.5, Goal: 2.5, Area: 2.5, Budget: 1.0},
}

// weightsFor resolves the active weight set.  Unknown priorities degrade to
// the balanced set; priority is a soft signal and never rejects a request.
func weightsFor(p survey.Priority) WeightSet {
	if ws, ok := WeightTableV1[p]; ok {
		return ws
	}
	return WeightTableV1[survey.PriorityBalanced]
}

// Budget band boundaries in KRW.  An entry's band is the first boundary its
// base price falls under.
const (
	budgetLowMaxKRW  = 300_000
	budgetMidMaxKRW  = 1_000_000
	budgetHighMaxKRW = 3_000_000
)

// budgetBandIndex orders bands for distance comparison: low 0, mid 1,
// high 2, premium 3.  Unknown user bands resolve to mid.
func budgetBandIndex(b survey.BudgetRange) int {
	switch b {
	case survey.BudgetLow:
		return 0
	case survey.BudgetMid:
		return 1
	case survey.BudgetHigh:
		return 2
	case survey.BudgetPremium:
		return 3
	default:
		return 1
	}
}

// entryBandIndex buckets an entry's base price into the same band scale.
func entryBandIndex(priceKRW int64) int {
	switch {
	case priceKRW < budgetLowMaxKRW:
		return 0
	case priceKRW < budgetMidMaxKRW:
		return 1
	case priceKRW < budgetHighMaxKRW:
		return 2
	default:
		return 3
	}
}

// Budget-fit adjustments before the Budget weight is applied.
const (
	budgetFitBonus       = 3.0  // entry inside the user's declared band
	budgetFitCheapBonus  = 1.0  // entry below the declared band
	budgetFitOverPenalty = -2.0 // entry more than one band above
)

// budgetFit returns the bounded bonus/penalty for an entry against the
// user's declared band.  Budget is a soft signal: a penalty never excludes
// an entry, and one band of overshoot is tolerated at zero adjustment so a
// single expensive "hero" treatment can still surface.
func budgetFit(e *catalog.Entry, userBand survey.BudgetRange, ws WeightSet) float64 {
	delta := entryBandIndex(e.BasePriceKRW) - budgetBandIndex(userBand)
	switch {
	case delta == 0:
		return budgetFitBonus * ws.Budget
	case delta < 0:
		return budgetFitCheapBonus * ws.Budget
	case delta == 1:
		return 0
	default:
		return budgetFitOverPenalty * ws.Budget
	}
}

// Priority boost constants.
const (
	downtimeBoostZeroDays = 2.0
	downtimeBoostShort    = 1.0
	downtimeShortMaxDays  = 2
	costBoostLowBand      = 2.0
	efficacyBoostGoals    = 2.0
	efficacyBoostMinGoals = 2
)

// priorityBoost returns the bounded additive bonus an entry earns under the
// selected priority, on top of the reweighted tag matches.
func priorityBoost(e *catalog.Entry, p survey.Priority, matchedGoals int) float64 {
	switch p {
	case survey.PriorityDowntime:
		if e.DowntimeDays == 0 {
			return downtimeBoostZeroDays
		}
		if e.DowntimeDays <= downtimeShortMaxDays {
			return downtimeBoostShort
		}
	case survey.PriorityCost:
		if entryBandIndex(e.BasePriceKRW) == 0 {
			return costBoostLowBand
		}
	case survey.PriorityEfficacy:
		if matchedGoals >= efficacyBoostMinGoals {
			return efficacyBoostGoals
		}
	}
	return 0
}

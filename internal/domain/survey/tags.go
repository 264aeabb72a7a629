// Package survey defines the survey input aggregate and its normalization
// rules.  The survey is the sole user-supplied input to the recommendation
// pipeline; it is immutable for the duration of a call.
package survey

// ConcernTag identifies a skin concern selected in the survey
// (e.g., "acne", "pigmentation").
type ConcernTag string

// GoalTag identifies a treatment goal (e.g., "clearSkin", "lifting").
type GoalTag string

// AreaTag identifies a treatment area (e.g., "face", "neck").
type AreaTag string

// ConditionTag identifies a declared medical condition used for
// contraindication checks (e.g., "pregnancy").
type ConditionTag string

// BudgetRange is the discrete price band the user selected.  It is a soft
// scoring signal, never a hard filter.
type BudgetRange string

// Priority selects which weight set the scoring engine uses.
type Priority string

// Canonical budget bands, ordered from cheapest to most expensive.
const (
	BudgetLow     BudgetRange = "low"
	BudgetMid     BudgetRange = "mid"
	BudgetHigh    BudgetRange = "high"
	BudgetPremium BudgetRange = "premium"
)

// Canonical priorities.
const (
	PriorityEfficacy Priority = "efficacy"
	PriorityCost     Priority = "cost"
	PriorityDowntime Priority = "downtime"
	PriorityBalanced Priority = "balanced"
)

// Closed vocabularies for the current survey version.  Unknown tags are
// retained through normalization (they score nothing) so that a catalog
// shipped ahead of the service vocabulary keeps working.
var (
	KnownConcerns = map[ConcernTag]struct{}{
		"acne": {}, "acneScars": {}, "pigmentation": {}, "redness": {},
		"wrinkles": {}, "sagging": {}, "pores": {}, "dryness": {},
		"dullness": {}, "darkCircles": {}, "unevenTexture": {},
	}

	KnownGoals = map[GoalTag]struct{}{
		"clearSkin": {}, "brightening": {}, "antiAging": {}, "lifting": {},
		"hydration": {}, "slimming": {}, "contouring": {}, "scarRevision": {},
		"toneUp": {},
	}

	KnownAreas = map[AreaTag]struct{}{
		"face": {}, "forehead": {}, "eyes": {}, "cheeks": {}, "jawline": {},
		"chin": {}, "neck": {}, "nose": {},
	}

	KnownConditions = map[ConditionTag]struct{}{
		"pregnancy": {}, "breastfeeding": {}, "diabetes": {}, "keloid": {},
		"activeInfection": {}, "autoimmune": {}, "anticoagulants": {},
		"photosensitivityDisorder": {},
	}
)

// knownBudgets and knownPriorities gate fallback behaviour in the scoring
// engine: unknown ids degrade to the balanced/mid defaults rather than
// rejecting the request.
var (
	knownBudgets = map[BudgetRange]struct{}{
		BudgetLow: {}, BudgetMid: {}, BudgetHigh: {}, BudgetPremium: {},
	}
	knownPriorities = map[Priority]struct{}{
		PriorityEfficacy: {}, PriorityCost: {}, PriorityDowntime: {}, PriorityBalanced: {},
	}
)

// IsKnownBudget reports whether b is a canonical budget band.
func IsKnownBudget(b BudgetRange) bool {
	_, ok := knownBudgets[b]
	return ok
}

// IsKnownPriority reports whether p is a canonical priority.
func IsKnownPriority(p Priority) bool {
	_, ok := knownPriorities[p]
	return ok
}

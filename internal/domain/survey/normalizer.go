package survey

import (
	"sort"

	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

// RawInput mirrors the JSON request body.  Pointer slices distinguish a key
// that is absent from one that holds an empty array: every one of the seven
// fields must be present, but array fields may be empty.
type RawInput struct {
	SkinConcerns      *[]string `json:"skinConcerns"`
	TreatmentGoals    *[]string `json:"treatmentGoals"`
	TreatmentAreas    *[]string `json:"treatmentAreas"`
	BudgetRangeID     *string   `json:"budgetRangeId"`
	PriorityID        *string   `json:"priorityId"`
	PastTreatments    *[]string `json:"pastTreatments"`
	MedicalConditions *[]string `json:"medicalConditions"`
}

// Input is the canonical, deduplicated survey shape consumed by the
// recommendation pipeline.  Sets are modelled as struct{} maps; unknown tag
// values are retained (they contribute no score downstream).
type Input struct {
	Concerns       map[ConcernTag]struct{}
	Goals          map[GoalTag]struct{}
	Areas          map[AreaTag]struct{}
	Budget         BudgetRange
	Priority       Priority
	PastTreatments map[string]struct{}
	Conditions     map[ConditionTag]struct{}
}

// requiredFieldOrder fixes the order in which missing-field errors are
// reported.  The first absent field wins.
var requiredFieldOrder = []string{
	"skinConcerns",
	"treatmentGoals",
	"treatmentAreas",
	"budgetRangeId",
	"priorityId",
	"pastTreatments",
	"medicalConditions",
}

// Normalize validates raw and converts it into the canonical Input.
// It fails with a field-specific validation error when any required key is
// absent, checked in requiredFieldOrder.  It has no side effects.
func Normalize(raw *RawInput) (*Input, error) {
	if raw == nil {
		return nil, apperrors.Validation("Invalid input data")
	}

	present := map[string]bool{
		"skinConcerns":      raw.SkinConcerns != nil,
		"treatmentGoals":    raw.TreatmentGoals != nil,
		"treatmentAreas":    raw.TreatmentAreas != nil,
		"budgetRangeId":     raw.BudgetRangeID != nil,
		"priorityId":        raw.PriorityID != nil,
		"pastTreatments":    raw.PastTreatments != nil,
		"medicalConditions": raw.MedicalConditions != nil,
	}
	for _, field := range requiredFieldOrder {
		if !present[field] {
			return nil, apperrors.MissingField(field)
		}
	}

	in := &Input{
		Concerns:       make(map[ConcernTag]struct{}, len(*raw.SkinConcerns)),
		Goals:          make(map[GoalTag]struct{}, len(*raw.TreatmentGoals)),
		Areas:          make(map[AreaTag]struct{}, len(*raw.TreatmentAreas)),
		Budget:         BudgetRange(*raw.BudgetRangeID),
		Priority:       Priority(*raw.PriorityID),
		PastTreatments: make(map[string]struct{}, len(*raw.PastTreatments)),
		Conditions:     make(map[ConditionTag]struct{}, len(*raw.MedicalConditions)),
	}

	for _, c := range *raw.SkinConcerns {
		in.Concerns[ConcernTag(c)] = struct{}{}
	}
	for _, g := range *raw.TreatmentGoals {
		in.Goals[GoalTag(g)] = struct{}{}
	}
	for _, a := range *raw.TreatmentAreas {
		in.Areas[AreaTag(a)] = struct{}{}
	}
	for _, t := range *raw.PastTreatments {
		in.PastTreatments[t] = struct{}{}
	}
	for _, m := range *raw.MedicalConditions {
		in.Conditions[ConditionTag(m)] = struct{}{}
	}

	return in, nil
}

// HasPast reports whether the user already received the given treatment.
func (in *Input) HasPast(key string) bool {
	_, ok := in.PastTreatments[key]
	return ok
}

// HasCondition reports whether the user declared the given condition.
func (in *Input) HasCondition(tag ConditionTag) bool {
	_, ok := in.Conditions[tag]
	return ok
}

// UnknownTags lists every survey value outside the closed vocabularies,
// sorted and prefixed with its field name.  Unknown values pass
// normalization (they score nothing); callers surface them as diagnostics.
func (in *Input) UnknownTags() []string {
	var out []string
	for t := range in.Concerns {
		if _, ok := KnownConcerns[t]; !ok {
			out = append(out, "skinConcerns:"+string(t))
		}
	}
	for t := range in.Goals {
		if _, ok := KnownGoals[t]; !ok {
			out = append(out, "treatmentGoals:"+string(t))
		}
	}
	for t := range in.Areas {
		if _, ok := KnownAreas[t]; !ok {
			out = append(out, "treatmentAreas:"+string(t))
		}
	}
	for t := range in.Conditions {
		if _, ok := KnownConditions[t]; !ok {
			out = append(out, "medicalConditions:"+string(t))
		}
	}
	if !IsKnownBudget(in.Budget) {
		out = append(out, "budgetRangeId:"+string(in.Budget))
	}
	if !IsKnownPriority(in.Priority) {
		out = append(out, "priorityId:"+string(in.Priority))
	}
	sort.Strings(out)
	return out
}

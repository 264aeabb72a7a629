// Package testutil provides shared catalog fixtures for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
)

// EntryOption mutates a fixture entry.
type EntryOption func(*catalog.Entry)

// WithTags sets the matchable vocabularies.
func WithTags(concerns []string, goals []string, areas []string) EntryOption {
	return func(e *catalog.Entry) {
		for _, c := range concerns {
			e.Tags.Concerns = append(e.Tags.Concerns, survey.ConcernTag(c))
		}
		for _, g := range goals {
			e.Tags.Goals = append(e.Tags.Goals, survey.GoalTag(g))
		}
		for _, a := range areas {
			e.Tags.Areas = append(e.Tags.Areas, survey.AreaTag(a))
		}
	}
}

// WithContraindications sets the hard-exclusion conditions.
func WithContraindications(conditions ...string) EntryOption {
	return func(e *catalog.Entry) {
		for _, c := range conditions {
			e.Contraindications = append(e.Contraindications, survey.ConditionTag(c))
		}
	}
}

// WithConflicts declares soft conflicts with other keys.
func WithConflicts(keys ...string) EntryOption {
	return func(e *catalog.Entry) {
		for _, k := range keys {
			e.ConflictsWith = append(e.ConflictsWith, catalog.TreatmentID(k))
		}
	}
}

// WithDowntime sets downtime days.
func WithDowntime(days int) EntryOption {
	return func(e *catalog.Entry) { e.DowntimeDays = days }
}

// WithPhotosensitive marks the entry photosensitive.
func WithPhotosensitive() EntryOption {
	return func(e *catalog.Entry) { e.Photosensitive = true }
}

// WithMaintenance marks the entry as a repeatable maintenance treatment.
func WithMaintenance() EntryOption {
	return func(e *catalog.Entry) { e.Maintenance = true }
}

// NewEntry builds a catalog entry with sane defaults.
func NewEntry(key string, tier int, priceKRW int64, opts ...EntryOption) catalog.Entry {
	e := catalog.Entry{
		Key:          catalog.TreatmentID(key),
		Name:         key,
		Tier:         tier,
		BasePriceKRW: priceKRW,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// NewSnapshot builds a snapshot from entries, failing the test on error.
func NewSnapshot(t *testing.T, entries ...catalog.Entry) *catalog.Snapshot {
	t.Helper()
	snap, err := catalog.NewSnapshot(entries)
	require.NoError(t, err)
	return snap
}

// AcneCatalog returns a small realistic snapshot used across pipeline
// tests: one retinoid entry contraindicated by pregnancy, a photosensitive
// laser, a conflict pair, and a tier-4 baseline entry.
func AcneCatalog(t *testing.T) *catalog.Snapshot {
	t.Helper()
	return NewSnapshot(t,
		NewEntry("retinoid_program", 1, 150000,
			WithTags([]string{"acne", "acneScars"}, []string{"clearSkin"}, []string{"face"}),
			WithContraindications("pregnancy", "breastfeeding"),
			WithPhotosensitive(),
			WithMaintenance()),
		NewEntry("chemical_peel", 1, 120000,
			WithTags([]string{"acne", "pores"}, []string{"clearSkin"}, []string{"face"}),
			WithContraindications("pregnancy"),
			WithConflicts("aqua_peel"),
			WithPhotosensitive(),
			WithDowntime(2),
			WithMaintenance()),
		NewEntry("aqua_peel", 1, 90000,
			WithTags([]string{"pores"}, []string{"clearSkin"}, []string{"face", "nose"}),
			WithConflicts("chemical_peel"),
			WithMaintenance()),
		NewEntry("skin_botox", 2, 220000,
			WithTags([]string{"wrinkles"}, []string{"antiAging"}, []string{"face", "forehead"}),
			WithContraindications("pregnancy")),
		NewEntry("ldm_care", 4, 80000,
			WithTags([]string{"redness"}, []string{"hydration"}, []string{"face"}),
			WithMaintenance()),
	)
}

// Survey builds a normalized-input-ready raw survey with all seven fields
// present.
func Survey(concerns, goals, areas []string, budget, priority string, past, conditions []string) *survey.RawInput {
	return &survey.RawInput{
		SkinConcerns:      &concerns,
		TreatmentGoals:    &goals,
		TreatmentAreas:    &areas,
		BudgetRangeID:     &budget,
		PriorityID:        &priority,
		PastTreatments:    &past,
		MedicalConditions: &conditions,
	}
}

// NormalizedSurvey normalizes a fixture survey, failing the test on error.
func NormalizedSurvey(t *testing.T, concerns, goals, areas []string, budget, priority string, past, conditions []string) *survey.Input {
	t.Helper()
	in, err := survey.Normalize(Survey(concerns, goals, areas, budget, priority, past, conditions))
	require.NoError(t, err)
	return in
}

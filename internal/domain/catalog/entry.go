// Package catalog models the treatment catalog: the read-only lookup table
// of treatments the recommendation pipeline scores and ranks.  The catalog
// is always passed into the pipeline as an immutable snapshot; there is no
// module-level catalog state.
package catalog

import (
	"fmt"

	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

// TreatmentID uniquely identifies a catalog entry.
type TreatmentID string

// Tier bounds: every entry belongs to exactly one of four presentation
// buckets (1 core dermatology, 2 anti-aging, 3 facial contouring, 4 other).
const (
	TierMin = 1
	TierMax = 4
)

// Tags groups the matchable vocabularies of an entry.
type Tags struct {
	Concerns []survey.ConcernTag `yaml:"concerns" json:"concerns"`
	Goals    []survey.GoalTag    `yaml:"goals" json:"goals"`
	Areas    []survey.AreaTag    `yaml:"areas" json:"areas"`
}

// Entry is a single treatment in the catalog.  Entries are read-only for
// the duration of a recommendation call.
type Entry struct {
	Key          TreatmentID `yaml:"key" json:"key"`
	Name         string      `yaml:"name" json:"name"`
	Tags         Tags        `yaml:"tags" json:"tags"`
	Tier         int         `yaml:"tier" json:"tier"`
	BasePriceKRW int64       `yaml:"basePriceKRW" json:"basePriceKRW"`

	// Contraindications hard-exclude the entry when any declared medical
	// condition intersects.
	Contraindications []survey.ConditionTag `yaml:"contraindications" json:"contraindications"`

	// ConflictsWith lists treatments that are redundant or mutually
	// exclusive with this one.  Conflicts are soft: resolved by rank after
	// scoring, not by outright exclusion.
	ConflictsWith []TreatmentID `yaml:"conflictsWith" json:"conflictsWith"`

	Photosensitive bool `yaml:"photosensitive" json:"photosensitive"`
	DowntimeDays   int  `yaml:"downtimeDays" json:"downtimeDays"`

	// Maintenance marks a repeatable treatment that stays recommendable
	// even when it appears in the user's past treatments.
	Maintenance bool `yaml:"maintenance" json:"maintenance"`
}

// ContraindicatedBy reports whether any of the user's declared conditions
// appears in the entry's contraindication list.
func (e *Entry) ContraindicatedBy(conditions map[survey.ConditionTag]struct{}) bool {
	for _, c := range e.Contraindications {
		if _, ok := conditions[c]; ok {
			return true
		}
	}
	return false
}

// ConflictsWithKey reports whether the entry declares a conflict with key.
func (e *Entry) ConflictsWithKey(key TreatmentID) bool {
	for _, k := range e.ConflictsWith {
		if k == key {
			return true
		}
	}
	return false
}

// validate checks the entry's own invariants.  Tier validity is re-checked
// by the tier classifier at recommendation time; validating here as well
// lets catalog authoring tools fail fast.
func (e *Entry) validate() error {
	if e.Key == "" {
		return apperrors.Catalog("catalog entry with empty key")
	}
	if e.Tier < TierMin || e.Tier > TierMax {
		return apperrors.Catalog(fmt.Sprintf("entry %q has tier %d outside [%d, %d]", e.Key, e.Tier, TierMin, TierMax))
	}
	if e.BasePriceKRW < 0 {
		return apperrors.Catalog(fmt.Sprintf("entry %q has negative base price %d", e.Key, e.BasePriceKRW))
	}
	if e.DowntimeDays < 0 {
		return apperrors.Catalog(fmt.Sprintf("entry %q has negative downtime %d", e.Key, e.DowntimeDays))
	}
	for _, k := range e.ConflictsWith {
		if k == e.Key {
			return apperrors.Catalog(fmt.Sprintf("entry %q conflicts with itself", e.Key))
		}
	}
	return nil
}

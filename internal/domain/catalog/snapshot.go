package catalog

import (
	"context"
	"fmt"

	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

// Snapshot is an immutable, ordered view of the catalog taken before a
// recommendation call.  Concurrent calls may share one snapshot freely.
//
// Order is preserved from the source (table order or file order) so that
// pipeline output is deterministic for a fixed snapshot.
type Snapshot struct {
	entries []Entry
	byKey   map[TreatmentID]int
}

// NewSnapshot builds a Snapshot from entries, rejecting duplicate keys.
// The slice is copied; callers may reuse their backing array.
func NewSnapshot(entries []Entry) (*Snapshot, error) {
	s := &Snapshot{
		entries: make([]Entry, len(entries)),
		byKey:   make(map[TreatmentID]int, len(entries)),
	}
	copy(s.entries, entries)
	for i := range s.entries {
		key := s.entries[i].Key
		if _, dup := s.byKey[key]; dup {
			return nil, apperrors.New(apperrors.ErrCodeCatalogDuplicate,
				fmt.Sprintf("duplicate catalog key %q", key))
		}
		s.byKey[key] = i
	}
	return s, nil
}

// Len returns the number of entries in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Entries returns the snapshot's entries in source order.  The returned
// slice is shared; callers must not mutate it.
func (s *Snapshot) Entries() []Entry {
	return s.entries
}

// Lookup returns the entry for key, if present.
func (s *Snapshot) Lookup(key TreatmentID) (*Entry, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return nil, false
	}
	return &s.entries[i], true
}

// Validate runs full integrity checks over every entry: per-entry
// invariants plus dangling conflict references.  Used by catalog authoring
// tools; the pipeline itself only re-checks tiers.
func (s *Snapshot) Validate() error {
	if len(s.entries) == 0 {
		return apperrors.New(apperrors.ErrCodeCatalogEmpty, "catalog snapshot is empty")
	}
	for i := range s.entries {
		e := &s.entries[i]
		if err := e.validate(); err != nil {
			return err
		}
		for _, k := range e.ConflictsWith {
			if _, ok := s.byKey[k]; !ok {
				return apperrors.Catalog(
					fmt.Sprintf("entry %q conflicts with unknown key %q", e.Key, k))
			}
		}
	}
	return nil
}

// Repository is the port through which the application layer obtains
// catalog snapshots.  Implementations: postgres repository, file source.
type Repository interface {
	// LoadSnapshot reads the full catalog and returns it as an immutable
	// snapshot.  The load happens before the pipeline runs; the pipeline
	// itself performs no I/O.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}

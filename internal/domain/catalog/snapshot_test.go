package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

func entry(key string, tier int, price int64) Entry {
	return Entry{Key: TreatmentID(key), Name: key, Tier: tier, BasePriceKRW: price}
}

func TestNewSnapshotPreservesOrder(t *testing.T) {
	snap, err := NewSnapshot([]Entry{
		entry("b", 1, 100),
		entry("a", 2, 200),
		entry("c", 4, 300),
	})
	require.NoError(t, err)
	require.Equal(t, 3, snap.Len())

	keys := make([]TreatmentID, 0, snap.Len())
	for _, e := range snap.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []TreatmentID{"b", "a", "c"}, keys)
}

func TestNewSnapshotRejectsDuplicates(t *testing.T) {
	_, err := NewSnapshot([]Entry{
		entry("dup", 1, 100),
		entry("dup", 2, 200),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCatalogDuplicate))
}

func TestLookup(t *testing.T) {
	snap, err := NewSnapshot([]Entry{entry("a", 1, 100)})
	require.NoError(t, err)

	e, ok := snap.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, TreatmentID("a"), e.Key)

	_, ok = snap.Lookup("missing")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		code    apperrors.ErrorCode
	}{
		{
			name:    "empty catalog",
			entries: nil,
			code:    apperrors.ErrCodeCatalogEmpty,
		},
		{
			name:    "tier out of range",
			entries: []Entry{entry("a", 5, 100)},
			code:    apperrors.ErrCodeCatalogMalformed,
		},
		{
			name:    "negative price",
			entries: []Entry{entry("a", 1, -1)},
			code:    apperrors.ErrCodeCatalogMalformed,
		},
		{
			name: "dangling conflict",
			entries: []Entry{{
				Key: "a", Tier: 1, BasePriceKRW: 100,
				ConflictsWith: []TreatmentID{"ghost"},
			}},
			code: apperrors.ErrCodeCatalogMalformed,
		},
		{
			name: "self conflict",
			entries: []Entry{{
				Key: "a", Tier: 1, BasePriceKRW: 100,
				ConflictsWith: []TreatmentID{"a"},
			}},
			code: apperrors.ErrCodeCatalogMalformed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := NewSnapshot(tt.entries)
			require.NoError(t, err)
			err = snap.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, tt.code))
		})
	}
}

func TestValidateOK(t *testing.T) {
	snap, err := NewSnapshot([]Entry{
		{Key: "a", Tier: 1, BasePriceKRW: 100, ConflictsWith: []TreatmentID{"b"}},
		{Key: "b", Tier: 1, BasePriceKRW: 200},
	})
	require.NoError(t, err)
	assert.NoError(t, snap.Validate())
}

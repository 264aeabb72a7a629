package postgres

import (
	"context"

	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/logging"
	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

// catalogQuery orders by key so snapshots are deterministic regardless of
// physical row order.
const catalogQuery = `
SELECT key, name, tier, base_price_krw,
       concerns, goals, areas,
       contraindications, conflicts_with,
       photosensitive, downtime_days, maintenance
FROM catalog_entries
ORDER BY key`

// CatalogRepository loads treatment catalog snapshots from PostgreSQL.
// It implements catalog.Repository.
type CatalogRepository struct {
	db     *Pool
	logger logging.Logger
}

// NewCatalogRepository constructs a CatalogRepository.
func NewCatalogRepository(db *Pool, logger logging.Logger) *CatalogRepository {
	return &CatalogRepository{db: db, logger: logger}
}

// LoadSnapshot reads every catalog entry and returns an immutable snapshot.
func (r *CatalogRepository) LoadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	rows, err := r.db.pool.Query(ctx, catalogQuery)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to query catalog entries")
	}
	defer rows.Close()

	var entries []catalog.Entry
	for rows.Next() {
		var (
			e                 catalog.Entry
			concerns          []string
			goals             []string
			areas             []string
			contraindications []string
			conflicts         []string
		)
		if err := rows.Scan(
			&e.Key, &e.Name, &e.Tier, &e.BasePriceKRW,
			&concerns, &goals, &areas,
			&contraindications, &conflicts,
			&e.Photosensitive, &e.DowntimeDays, &e.Maintenance,
		); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to scan catalog entry")
		}
		e.Tags = catalog.Tags{
			Concerns: toConcerns(concerns),
			Goals:    toGoals(goals),
			Areas:    toAreas(areas),
		}
		e.Contraindications = toConditions(contraindications)
		e.ConflictsWith = toTreatmentIDs(conflicts)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to read catalog entries")
	}

	snap, err := catalog.NewSnapshot(entries)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("catalog snapshot loaded", logging.Int("entries", snap.Len()))
	return snap, nil
}

func toConcerns(in []string) []survey.ConcernTag {
	out := make([]survey.ConcernTag, len(in))
	for i, s := range in {
		out[i] = survey.ConcernTag(s)
	}
	return out
}

func toGoals(in []string) []survey.GoalTag {
	out := make([]survey.GoalTag, len(in))
	for i, s := range in {
		out[i] = survey.GoalTag(s)
	}
	return out
}

func toAreas(in []string) []survey.AreaTag {
	out := make([]survey.AreaTag, len(in))
	for i, s := range in {
		out[i] = survey.AreaTag(s)
	}
	return out
}

func toConditions(in []string) []survey.ConditionTag {
	out := make([]survey.ConditionTag, len(in))
	for i, s := range in {
		out[i] = survey.ConditionTag(s)
	}
	return out
}

func toTreatmentIDs(in []string) []catalog.TreatmentID {
	out := make([]catalog.TreatmentID, len(in))
	for i, s := range in {
		out[i] = catalog.TreatmentID(s)
	}
	return out
}

// Package recommendation (application layer) orchestrates a recommendation
// call: survey normalization, catalog snapshot acquisition (repository plus
// optional cache), pipeline execution, metrics, and analytics publishing.
// Domain logic lives in internal/domain; methods here are intentionally
// thin.
package recommendation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/climate"
	domainrec "github.com/CodingBot000/miracle3day-sub008/internal/domain/recommendation"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/logging"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

// snapshotCacheKey is the cache slot holding the serialized catalog entries.
const snapshotCacheKey = "catalog:snapshot"

// SnapshotCache is the subset of the redis cache contract the service
// needs.  A nil cache disables caching; a cache failure degrades to a
// direct repository load and never fails the request.
type SnapshotCache interface {
	// GetOrSet returns the cached value at key, or runs loader once across
	// concurrent callers and caches its result.
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration,
		loader func(ctx context.Context) (interface{}, error)) error

	// Delete drops the given keys, used to evict a corrupt snapshot.
	Delete(ctx context.Context, keys ...string) error
}

// Service wires the recommendation pipeline to its collaborators.
type Service struct {
	repo      catalog.Repository
	cache     SnapshotCache
	cacheTTL  time.Duration
	engine    *domainrec.Engine
	publisher domainrec.EventPublisher
	climate   climate.Context
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithCache enables catalog snapshot caching with the given TTL.
func WithCache(c SnapshotCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithPublisher enables analytics event publishing.
func WithPublisher(p domainrec.EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithDefaultClimate overrides the built-in default climate context.
func WithDefaultClimate(c climate.Context) Option {
	return func(s *Service) { s.climate = c }
}

// WithMetrics enables catalog and event instrumentation.
func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs a Service.  repo and logger are required; cache and
// publisher are optional.
func NewService(repo catalog.Repository, logger logging.Logger, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		engine:  domainrec.NewEngine(),
		climate: climate.DefaultContext(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend runs one full recommendation call.  climateOverride, when
// non-nil, replaces the configured default climate context for this call
// only.  Either a complete output is returned or an error, never partial
// results.
func (s *Service) Recommend(ctx context.Context, raw *survey.RawInput, climateOverride *climate.Context) (*domainrec.Output, error) {
	started := time.Now()

	in, err := survey.Normalize(raw)
	if err != nil {
		return nil, err
	}
	if unknown := in.UnknownTags(); len(unknown) > 0 {
		s.logger.Debug("survey contains tags outside the known vocabulary",
			logging.Any("tags", unknown))
	}

	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	climateCtx := s.climate
	if climateOverride != nil {
		climateCtx = *climateOverride
	}

	out, err := s.compute(snapshot, in, climateCtx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("recommendation computed",
		logging.Int("catalog_size", snapshot.Len()),
		logging.Int("items", len(out.Recommendations)),
		logging.Int64("total_krw", out.TotalPriceKRW),
		logging.Duration("elapsed", time.Since(started)))

	s.publish(ctx, in, out)

	return out, nil
}

// compute runs the pure pipeline with a recovery boundary: a panic anywhere
// inside the pipeline is converted into a computation error so the caller
// sees a clean 500 instead of a crashed connection.
func (s *Service) compute(snapshot *catalog.Snapshot, in *survey.Input, climateCtx climate.Context) (out *domainrec.Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("recommendation pipeline panic",
				logging.Any("panic", r))
			out = nil
			err = apperrors.New(apperrors.ErrCodeComputationFailed,
				fmt.Sprintf("pipeline panic: %v", r))
		}
	}()
	return s.engine.Recommend(snapshot, in, climateCtx)
}

// loadSnapshot obtains the catalog snapshot, serving from cache when one is
// configured.  The cache's singleflight loader collapses concurrent misses
// into a single repository read.  Cache errors are logged and degrade to a
// direct repository load; only a repository failure fails the call.
func (s *Service) loadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	if s.cache == nil {
		return s.loadFromRepo(ctx)
	}

	loaderRan := false
	var entries []catalog.Entry
	err := s.cache.GetOrSet(ctx, snapshotCacheKey, &entries, s.cacheTTL,
		func(ctx context.Context) (interface{}, error) {
			loaderRan = true
			snap, err := s.repo.LoadSnapshot(ctx)
			if err != nil {
				return nil, apperrors.Wrap(err, apperrors.ErrCodeCatalogUnavailable,
					"failed to load catalog snapshot")
			}
			return snap.Entries(), nil
		})
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeCatalogUnavailable) {
			return nil, err
		}
		s.metrics.ObserveCatalogCache("error")
		s.logger.Warn("catalog cache unavailable, loading directly", logging.Err(err))
		return s.loadFromRepo(ctx)
	}

	snap, buildErr := catalog.NewSnapshot(entries)
	if buildErr != nil {
		s.metrics.ObserveCatalogCache("error")
		s.logger.Warn("cached catalog snapshot invalid, dropping cache entry",
			logging.Err(buildErr))
		if derr := s.cache.Delete(ctx, snapshotCacheKey); derr != nil {
			s.logger.Warn("failed to drop invalid cache entry", logging.Err(derr))
		}
		return s.loadFromRepo(ctx)
	}

	if loaderRan {
		s.metrics.ObserveCatalogCache("miss")
	} else {
		s.metrics.ObserveCatalogCache("hit")
	}
	s.metrics.SetCatalogEntries(snap.Len())
	return snap, nil
}

// loadFromRepo reads the snapshot straight from the repository.
func (s *Service) loadFromRepo(ctx context.Context) (*catalog.Snapshot, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCatalogUnavailable,
			"failed to load catalog snapshot")
	}
	s.metrics.SetCatalogEntries(snap.Len())
	return snap, nil
}

// publish emits the analytics event when a publisher is configured.
// Publishing is best-effort: failures are logged, never surfaced.
func (s *Service) publish(ctx context.Context, in *survey.Input, out *domainrec.Output) {
	if s.publisher == nil {
		return
	}
	ev := domainrec.ComputedEvent{
		EventID:       uuid.NewString(),
		Priority:      in.Priority,
		Budget:        in.Budget,
		ItemCount:     len(out.Recommendations),
		TotalPriceKRW: out.TotalPriceKRW,
		TotalPriceUSD: out.TotalPriceUSD,
		WarningCount:  len(out.Warnings),
		ComputedAt:    time.Now().UTC(),
	}
	if err := s.publisher.PublishComputed(ctx, ev); err != nil {
		s.metrics.ObserveEventPublish("error")
		s.logger.Warn("failed to publish recommendation event", logging.Err(err))
		return
	}
	s.metrics.ObserveEventPublish("ok")
}

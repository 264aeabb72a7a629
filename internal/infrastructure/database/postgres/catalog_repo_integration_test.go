//go:build integration

// Package postgres_test provides integration tests for the PostgreSQL
// catalog store.  Tests require Docker and are gated behind the
// "integration" build tag.
package postgres_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/CodingBot000/miracle3day-sub008/internal/config"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/database/postgres"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/logging"
)

// startPostgres launches a PostgreSQL 16 container, applies the schema
// migrations, and returns a database configuration pointing at it.
func startPostgres(t *testing.T) config.DatabaseConfig {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "miracle_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	migrationPath, err := filepath.Abs(filepath.Join("..", "..", "..", "..", "migrations"))
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Host:          host,
		Port:          port.Int(),
		User:          "test",
		Password:      "test",
		DBName:        "miracle_test",
		SSLMode:       "disable",
		MigrationPath: migrationPath,
	}

	require.NoError(t, postgres.Migrate(cfg, logging.NewNopLogger()))
	return cfg
}

// rawConn opens a plain pgx pool for seeding rows outside the repository.
func rawConn(t *testing.T, cfg config.DatabaseConfig) *pgxpool.Pool {
	t.Helper()
	pool, err := pgxpool.New(context.Background(), postgres.BuildDSN(cfg))
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedEntry(t *testing.T, pool *pgxpool.Pool, key, name string, tier int, price int64,
	concerns, goals, areas, contraindications, conflicts []string,
	photosensitive bool, downtimeDays int, maintenance bool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO catalog_entries
			(key, name, tier, base_price_krw, concerns, goals, areas,
			 contraindications, conflicts_with, photosensitive, downtime_days, maintenance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		key, name, tier, price, concerns, goals, areas,
		contraindications, conflicts, photosensitive, downtimeDays, maintenance)
	require.NoError(t, err)
}

func TestCatalogRepository_LoadSnapshot(t *testing.T) {
	cfg := startPostgres(t)
	ctx := context.Background()
	raw := rawConn(t, cfg)

	seedEntry(t, raw, "ipl_toning", "IPL Toning", 2, 180000,
		[]string{"pigmentation", "redness"}, []string{"brightening"}, []string{"full_face"},
		[]string{"pregnancy"}, []string{"pico_toning"},
		true, 1, false)
	seedEntry(t, raw, "aqua_peel", "Aqua Peel", 1, 90000,
		[]string{"pores"}, []string{"texture_improvement"}, []string{"full_face"},
		[]string{}, []string{"chemical_peel"},
		false, 0, true)

	pool, err := postgres.NewPool(ctx, cfg, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := postgres.NewCatalogRepository(pool, logging.NewNopLogger())
	snap, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, snap.Len())

	// Snapshot iteration follows key order, not insert order.
	entries := snap.Entries()
	assert.Equal(t, catalog.TreatmentID("aqua_peel"), entries[0].Key)
	assert.Equal(t, catalog.TreatmentID("ipl_toning"), entries[1].Key)

	ipl, ok := snap.Lookup("ipl_toning")
	require.True(t, ok)
	assert.Equal(t, "IPL Toning", ipl.Name)
	assert.Equal(t, 2, ipl.Tier)
	assert.Equal(t, int64(180000), ipl.BasePriceKRW)
	assert.Equal(t, []survey.ConcernTag{"pigmentation", "redness"}, ipl.Tags.Concerns)
	assert.Equal(t, []survey.GoalTag{"brightening"}, ipl.Tags.Goals)
	assert.Equal(t, []survey.AreaTag{"full_face"}, ipl.Tags.Areas)
	assert.Equal(t, []survey.ConditionTag{"pregnancy"}, ipl.Contraindications)
	assert.Equal(t, []catalog.TreatmentID{"pico_toning"}, ipl.ConflictsWith)
	assert.True(t, ipl.Photosensitive)
	assert.Equal(t, 1, ipl.DowntimeDays)
	assert.False(t, ipl.Maintenance)

	aqua, ok := snap.Lookup("aqua_peel")
	require.True(t, ok)
	assert.Empty(t, aqua.Contraindications)
	assert.True(t, aqua.Maintenance)
}

func TestCatalogRepository_LoadSnapshot_Empty(t *testing.T) {
	cfg := startPostgres(t)
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := postgres.NewCatalogRepository(pool, logging.NewNopLogger())
	snap, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
}

func TestCatalogRepository_LoadSnapshot_LargeCatalog(t *testing.T) {
	cfg := startPostgres(t)
	ctx := context.Background()
	raw := rawConn(t, cfg)

	for i := 0; i < 50; i++ {
		seedEntry(t, raw, fmt.Sprintf("treatment_%03d", i), fmt.Sprintf("Treatment %03d", i),
			1+i%4, int64(50000+i*1000),
			[]string{"acne"}, []string{"skin_health"}, []string{"full_face"},
			[]string{}, []string{}, false, 0, false)
	}

	pool, err := postgres.NewPool(ctx, cfg, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := postgres.NewCatalogRepository(pool, logging.NewNopLogger())
	snap, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 50, snap.Len())

	entries := snap.Entries()
	for i := 1; i < len(entries); i++ {
		assert.Less(t, string(entries[i-1].Key), string(entries[i].Key))
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	cfg := startPostgres(t)

	// startPostgres already ran the migrations once.
	require.NoError(t, postgres.Migrate(cfg, logging.NewNopLogger()))
}

func TestPool_Ping(t *testing.T) {
	cfg := startPostgres(t)
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	assert.NoError(t, pool.Ping(ctx))
}

package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/CodingBot000/miracle3day-sub008/internal/config"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/logging"
	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

// Migrate applies all pending schema migrations from cfg.MigrationPath.
// A database already at the latest version is not an error.
func Migrate(cfg config.DatabaseConfig, logger logging.Logger) error {
	dsn := BuildDSN(cfg)
	// golang-migrate selects its pgx/v5 driver via the URL scheme.
	dsn = "pgx5" + dsn[len("postgres"):]

	m, err := migrate.New(fmt.Sprintf("file://%s", cfg.MigrationPath), dsn)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to initialise migrator")
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("schema up to date")
			return nil
		}
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "migration failed")
	}

	version, dirty, _ := m.Version()
	logger.Info("schema migrated",
		logging.Int64("version", int64(version)),
		logging.Bool("dirty", dirty))
	return nil
}

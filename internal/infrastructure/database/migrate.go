package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"hospital-management/config"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate brings the schema up to the latest embedded migration.
// Running it against an up-to-date database is a no-op.
//
// The migration driver holds one connection for its whole lifetime, so it
// runs on its own single-connection pool that is closed before returning.
// The application pool is never touched.
func Migrate(cfg config.DBConfig, log *logrus.Logger) error {
	sqlDB, err := sql.Open("pgx", DSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		sqlDB.Close()
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	driver, err := migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	if err != nil {
		sqlDB.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		driver.Close()
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	m.Log = &migrateLogger{log: log}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.WithFields(logrus.Fields{
				"source_error":   srcErr,
				"database_error": dbErr,
			}).Warn("Failed to close migrator")
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.WithField("version", version).Info("Database migrations applied")
	return nil
}

// migrateLogger routes golang-migrate output through logrus.
type migrateLogger struct {
	log *logrus.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.log.WithField("component", "migrate").Infof(strings.TrimSuffix(format, "\n"), v...)
}

// Verbose enables per-migration output at debug level.
func (l *migrateLogger) Verbose() bool {
	return l.log.IsLevelEnabled(logrus.DebugLevel)
}

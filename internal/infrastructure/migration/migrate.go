package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator applies schema migrations using golang-migrate. Every mutating
// command takes the shared advisory lock first, so concurrent server
// instances racing at startup serialize instead of corrupting the schema
// version table.
type Migrator struct {
	db      *sql.DB
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// New creates a Migrator over an open Postgres connection pool
func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{
		db:      db,
		migrate: m,
		logger:  logger,
	}, nil
}

// withLock runs fn while holding the migration advisory lock
func (m *Migrator) withLock(ctx context.Context, fn func() error) error {
	lock, err := acquireLock(ctx, m.db, m.logger)
	if err != nil {
		return err
	}
	defer lock.Release(ctx)

	return fn()
}

// Up applies all pending migrations
func (m *Migrator) Up(ctx context.Context) error {
	return m.withLock(ctx, func() error {
		m.logger.Info("Running migrations up")

		err := m.migrate.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("No migrations to apply")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}

		version, dirty, err := m.migrate.Version()
		if err != nil {
			return fmt.Errorf("failed to get migration version: %w", err)
		}

		m.logger.Info("Migrations completed",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
		return nil
	})
}

// Down rolls back all migrations
func (m *Migrator) Down(ctx context.Context) error {
	return m.withLock(ctx, func() error {
		m.logger.Info("Running migrations down")

		err := m.migrate.Down()
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("No migrations to roll back")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}

		m.logger.Info("All migrations rolled back")
		return nil
	})
}

// Steps applies n migrations (positive = up, negative = down)
func (m *Migrator) Steps(ctx context.Context, n int) error {
	return m.withLock(ctx, func() error {
		m.logger.Info("Running migration steps", zap.Int("steps", n))

		err := m.migrate.Steps(n)
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("No migrations to apply")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migration steps failed: %w", err)
		}

		version, dirty, err := m.migrate.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("failed to get migration version: %w", err)
		}

		m.logger.Info("Migration steps completed",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
		return nil
	})
}

// GoTo migrates to a specific version
func (m *Migrator) GoTo(ctx context.Context, version uint) error {
	return m.withLock(ctx, func() error {
		m.logger.Info("Migrating to version", zap.Uint("target_version", version))

		err := m.migrate.Migrate(version)
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("Already at target version")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migration to version %d failed: %w", version, err)
		}

		m.logger.Info("Migration to version completed", zap.Uint("version", version))
		return nil
	})
}

// Version returns the current migration version
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Force sets the migration version without running migrations. This exists
// for repairing a dirty schema version table.
func (m *Migrator) Force(ctx context.Context, version int) error {
	return m.withLock(ctx, func() error {
		m.logger.Warn("Forcing migration version", zap.Int("version", version))

		if err := m.migrate.Force(version); err != nil {
			return fmt.Errorf("failed to force version %d: %w", version, err)
		}

		m.logger.Info("Migration version forced", zap.Int("version", version))
		return nil
	})
}

// Drop drops every object in the database. Destroys all data.
func (m *Migrator) Drop(ctx context.Context) error {
	return m.withLock(ctx, func() error {
		m.logger.Warn("Dropping database, all data will be lost")

		if err := m.migrate.Drop(); err != nil {
			return fmt.Errorf("failed to drop database: %w", err)
		}

		m.logger.Info("Database dropped")
		return nil
	})
}

// Close releases the migrator's source and database handles
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	return nil
}

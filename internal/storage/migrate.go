package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/config"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/sqlconfig"
)

//go:embed migrations
var migrationsFS embed.FS

// MigrationResult reports the schema version before and after a migration run.
type MigrationResult struct {
	PreMigrationVersion  uint
	PostMigrationVersion uint
}

// CreateStore creates the application database when it does not exist yet and
// brings its schema up to date. It is safe to call repeatedly.
func CreateStore(ctx context.Context, env *config.Config) (*MigrationResult, error) {
	dialect, err := sqlconfig.Lookup(env.Dialect)
	if err != nil {
		return nil, err
	}

	if err := createDatabase(ctx, env, dialect); err != nil {
		return nil, err
	}

	return Migrate(env)
}

func createDatabase(ctx context.Context, env *config.Config, dialect sqlconfig.Dialect) error {
	if dialect.Name() == sqlconfig.NameSQLite {
		dir := filepath.Dir(env.SQLitePath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create sqlite directory %s: %w", dir, err)
		}
		return nil
	}

	db, err := openDB(env, dialect, false)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return &ConnectionError{Err: err}
	}

	name := env.DatabaseName()
	if dialect.Name() == sqlconfig.NamePostgres {
		var exists int
		err := db.QueryRowContext(ctx, "SELECT 1 FROM pg_database WHERE datname = $1", name).Scan(&exists)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return classifyError(dialect, err)
		}
	}

	if _, err := db.ExecContext(ctx, dialect.CreateDatabaseSQL(name)); err != nil {
		return classifyError(dialect, fmt.Errorf("create database %s: %w", name, err))
	}

	logrus.WithFields(logrus.Fields{
		"dialect":  dialect.Name(),
		"database": name,
	}).Info("storage.createDatabase.ensured")
	return nil
}

// Migrate applies the embedded migrations for the configured dialect on a
// dedicated connection that is closed before returning.
func Migrate(env *config.Config) (*MigrationResult, error) {
	dialect, err := sqlconfig.Lookup(env.Dialect)
	if err != nil {
		return nil, err
	}

	db, err := openDB(env, dialect, true)
	if err != nil {
		return nil, err
	}

	driver, err := migrationDriver(db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, classifyError(dialect, fmt.Errorf("migration driver: %w", err))
	}

	source, err := iofs.New(migrationsFS, "migrations/"+dialect.Name())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dialect.Name(), driver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate.NewWithInstance: %w", err)
	}
	defer m.Close()

	result := &MigrationResult{}
	preMigrationVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("m.Version.preMigrationVersion: %w", err)
	}
	result.PreMigrationVersion = preMigrationVersion

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("m.Up: %w", err)
	}

	postMigrationVersion, _, err := m.Version()
	if err != nil {
		return nil, fmt.Errorf("m.Version.postMigrationVersion: %w", err)
	}
	result.PostMigrationVersion = postMigrationVersion

	return result, nil
}

func migrationDriver(db *sql.DB, dialect sqlconfig.Dialect) (database.Driver, error) {
	switch dialect.Name() {
	case sqlconfig.NamePostgres:
		return migratepostgres.WithInstance(db, &migratepostgres.Config{})
	case sqlconfig.NameSQLite:
		return migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		return migratemysql.WithInstance(db, &migratemysql.Config{})
	}
}

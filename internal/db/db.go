package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vytor/sense/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type DB struct {
	*sql.DB
	Driver  string
	Builder squirrel.StatementBuilderType
	log     *logger.Logger
}

// Builder returns a statement builder with the placeholder format driver expects.
func Builder(driver string) squirrel.StatementBuilderType {
	if driver == DriverPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// Open connects to the database and applies pending migrations. For sqlite3
// dsn is a file path or URI; for postgres it is a lib/pq connection string.
func Open(driver, dsn string) (*DB, error) {
	log := logger.Default().WithPrefix("db")

	var (
		sqlDB *sql.DB
		err   error
	)
	switch driver {
	case DriverSQLite:
		log.Info("opening sqlite database: %s", dsn)
		sqlDB, err = sql.Open(DriverSQLite, sqliteDSN(dsn))
		if err == nil {
			sqlDB.SetMaxOpenConns(1) // SQLite best practice for single writer
		}
	case DriverPostgres:
		log.Info("opening postgres database")
		sqlDB, err = sql.Open(DriverPostgres, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}

	db := &DB{DB: sqlDB, Driver: driver, Builder: Builder(driver), log: log}

	log.Debug("applying migrations")
	if err := Migrate(context.Background(), sqlDB, driver); err != nil {
		log.Error("failed to apply migrations: %v", err)
		_ = sqlDB.Close()
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

func sqliteDSN(path string) string {
	const params = "_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL"
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return path + "?" + params
}

// Migrate applies every embedded migration that is not yet recorded in
// schema_migrations, in file name order.
func Migrate(ctx context.Context, sqlDB *sql.DB, driver string) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	sb := Builder(driver)

	if _, err := sqlDB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return err
	}

	versions, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(versions)

	for _, path := range versions {
		version := strings.TrimPrefix(path, "migrations/")
		applied, err := isMigrationApplied(ctx, sqlDB, sb, version)
		if err != nil {
			return err
		}
		if applied {
			log.Debug("migration %s already applied, skipping", version)
			continue
		}
		sqlBytes, err := migrationsFS.ReadFile(path)
		if err != nil {
			return err
		}
		log.Info("applying migration: %s", version)
		if _, err := sqlDB.ExecContext(ctx, string(sqlBytes)); err != nil {
			log.Error("migration %s failed: %v", version, err)
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
		if _, err := sb.Insert("schema_migrations").Columns("version").Values(version).RunWith(sqlDB).ExecContext(ctx); err != nil {
			return err
		}
		log.Info("migration %s applied successfully", version)
	}
	return nil
}

func isMigrationApplied(ctx context.Context, sqlDB *sql.DB, sb squirrel.StatementBuilderType, version string) (bool, error) {
	var v string
	err := sb.Select("version").
		From("schema_migrations").
		Where(squirrel.Eq{"version": version}).
		RunWith(sqlDB).
		QueryRowContext(ctx).
		Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

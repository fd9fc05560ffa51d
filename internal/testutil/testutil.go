package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/vytor/sense/internal/db"
	"github.com/vytor/sense/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// It is limited to one connection so every query sees the same database.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open(db.DriverSQLite, ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB, db.DriverSQLite), "failed to apply migrations")
	return sqlDB
}

// Builder is the statement builder matching NewTestDB.
func Builder() squirrel.StatementBuilderType {
	return db.Builder(db.DriverSQLite)
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Puzzle returns a complete puzzle for date.
func Puzzle(date string) models.Puzzle {
	return models.Puzzle{
		Date:     date,
		Answer:   "cinnamon",
		Category: models.CategorySmell,
		Synonyms: []string{"spice", "canela"},
		Hints:    []string{"It is warm and woody.", "It comes from bark.", "It tops apple pie."},
		Fact:     "Cinnamon is harvested from the inner bark of trees.",
	}
}

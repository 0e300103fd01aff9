// filepath: internal/repository/repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/the-momentum/open-wearables-sub001/internal/config"
	"github.com/the-momentum/open-wearables-sub001/internal/db/migrations"
)

// Repository is the sqlite-backed storage layer.
type Repository struct {
	DB      *sql.DB
	Builder squirrel.StatementBuilderType // SQL query builder
}

// NewRepository opens the sqlite database configured in cfg.
func NewRepository(cfg *config.Config) (*Repository, error) {
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", cfg.Database.Path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set pragmas: %w", err)
	}

	return &Repository{
		DB:      db,
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Close closes the underlying database connection.
func (s *Repository) Close() error {
	return s.DB.Close()
}

// MigrateUp brings the schema to the latest version using the embedded
// migration files.
func (s *Repository) MigrateUp() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.Up(s.DB, ".")
}

// MigrateDown rolls the schema back by one version.
func (s *Repository) MigrateDown() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.Down(s.DB, ".")
}

// MigrationStatus prints the migration status for the current database.
func (s *Repository) MigrationStatus() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.Status(s.DB, ".")
}

// Package database implements the persistent store: a single-writer
// SQLite database accessed through sqlx, per-table repositories, and
// push-on-change live queries built on a table-level change broker.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/example/studytrack/pkg/apperrors"
)

// DefaultPath is used when no database path is configured.
const DefaultPath = "data/studytrack.db"

// Store owns the database connection, the change broker and the
// per-table repositories.
type Store struct {
	db     *sqlx.DB
	broker *Broker
	logger *zap.Logger

	Projects ProjectRepository
	Units    UnitRepository
	Problems ProblemRepository
	Logs     LogRepository
}

// Connect opens (creating if necessary) the database at path and runs
// schema initialization and migration. Pass ":memory:" for an ephemeral
// store in tests. A nil logger is replaced with a no-op logger.
func Connect(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		path = DefaultPath
	}

	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{
		db:     db,
		broker: NewBroker(),
		logger: logger,
	}

	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the raw handle for read queries.
func (s *Store) DB() *sqlx.DB { return s.db }

// Broker exposes the change broker so composed views can subscribe
// directly when they need raw change signals.
func (s *Store) Broker() *Broker { return s.broker }

// WithTx runs fn inside a transaction. On commit the broker is notified
// for the changed tables; on any error the transaction is rolled back
// and nothing is published, so readers never observe a partial write.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error, changed ...Table) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.Storage("begin transaction", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage("commit transaction", err)
	}

	s.broker.Notify(changed...)
	return nil
}

// initializeSchema creates the v2 schema, migrating a v1 database
// (units without a project scope) if one is found. If the migration
// itself fails, all tables are dropped and recreated; this loses data
// but guarantees the application starts with a usable schema.
func (s *Store) initializeSchema() error {
	legacy, err := s.hasLegacyUnitsTable()
	if err != nil {
		return err
	}

	if legacy {
		s.logger.Info("legacy single-project schema detected, migrating")
		if err := s.migrateLegacyUnits(); err != nil {
			s.logger.Warn("schema migration failed, dropping all tables and starting fresh",
				zap.Error(err))
			if err := s.dropAllTables(); err != nil {
				return err
			}
		}
	}

	return s.createTables()
}

func (s *Store) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS units (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL DEFAULT 0,
			name TEXT NOT NULL,
			problem_count INTEGER NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS problems (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			unit_id INTEGER NOT NULL,
			problem_index INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0,
			wrong_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS activity_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date INTEGER NOT NULL,
			problem_id INTEGER NOT NULL,
			is_correct INTEGER NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// hasLegacyUnitsTable reports whether a v1 units table (no project_id
// column) exists.
func (s *Store) hasLegacyUnitsTable() (bool, error) {
	var count int
	err := s.db.Get(&count,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'units'")
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if count == 0 {
		return false, nil
	}

	type columnInfo struct {
		CID       int     `db:"cid"`
		Name      string  `db:"name"`
		Type      string  `db:"type"`
		NotNull   int     `db:"notnull"`
		Default   *string `db:"dflt_value"`
		PK        int     `db:"pk"`
	}
	var columns []columnInfo
	if err := s.db.Select(&columns, "PRAGMA table_info(units)"); err != nil {
		return false, fmt.Errorf("failed to inspect units table: %w", err)
	}
	for _, c := range columns {
		if c.Name == "project_id" {
			return false, nil
		}
	}
	return true, nil
}

// migrateLegacyUnits rebuilds the units table with a project_id column
// and backfills a default project (id 0) owning every pre-existing unit.
func (s *Store) migrateLegacyUnits() error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE units_new (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL DEFAULT 0,
			name TEXT NOT NULL,
			problem_count INTEGER NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0
		)`,
		`INSERT INTO units_new (id, project_id, name, problem_count, sort_order)
			SELECT id, 0, name, problem_count, 0 FROM units`,
		`DROP TABLE units`,
		`ALTER TABLE units_new RENAME TO units`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migration statement failed: %w", err)
		}
	}

	var migrated int
	if err := tx.Get(&migrated, "SELECT COUNT(*) FROM units"); err != nil {
		return err
	}
	if migrated > 0 {
		_, err = tx.Exec(
			"INSERT INTO projects (id, name, is_active, created_at) VALUES (0, 'Default', 1, ?)",
			time.Now().UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to backfill default project: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) dropAllTables() error {
	for _, table := range []string{"activity_logs", "problems", "units", "units_new", "projects"} {
		if _, err := s.db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}

// internal/db/db.go
//
// Database helpers for the optional SQLite word corpus.
// Responsibilities:
//   - Opening SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded goose migrations from assets/migrations.
//
// Games and history never touch the database; it only stores corpus words.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/assets"
)

// Open opens (and creates if missing) a SQLite database file.
//
//   - Ensures parent directory exists for relative paths (e.g. ./data/words.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
func Open(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Migrate applies every pending migration embedded in assets.Migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(assets.Migrations)
	goose.SetLogger(gooseLogger{log.Logger.With().Str("component", "migrate").Logger()})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, assets.MigrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// OpenAndMigrate is Open followed by Migrate; the handle is closed on failure.
func OpenAndMigrate(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// gooseLogger routes goose output through zerolog.
type gooseLogger struct{ l zerolog.Logger }

func (g gooseLogger) Printf(format string, v ...interface{}) { g.l.Debug().Msgf(format, v...) }

func (g gooseLogger) Fatalf(format string, v ...interface{}) { g.l.Fatal().Msgf(format, v...) }

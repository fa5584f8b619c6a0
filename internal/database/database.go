package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// gooseLogger routes goose output through the application logger.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) { log.Debugf(format, v...) }
func (gooseLogger) Fatalf(format string, v ...any) { log.Fatalf(format, v...) }

// InitDB opens the database and migrates it to the latest schema. With an
// empty primaryURL a local SQLite file (or ":memory:") is used, otherwise the
// remote Turso database. The returned teardown closes the connection.
func InitDB(dbPath, primaryURL, authToken, migrationsDir string) (*sql.DB, func(), error) {
	db, err := open(dbPath, primaryURL, authToken)
	if err != nil {
		return nil, nil, err
	}
	teardown := func() {
		if err := db.Close(); err != nil {
			log.Debug("Database already closed", "error", err)
		}
	}

	if err := migrate(db, migrationsDir); err != nil {
		teardown()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("Database initialized successfully", "migrations", migrationsDir)
	return db, teardown, nil
}

func open(dbPath, primaryURL, authToken string) (*sql.DB, error) {
	if primaryURL == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		dsn := "file:" + dbPath + "?_foreign_keys=on&_busy_timeout=5000"
		if dbPath == ":memory:" {
			dsn = "file::memory:?_foreign_keys=on"
		}
		db, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open local database: %w", err)
		}
		// SQLite allows one writer; an in-memory database also lives on a
		// single connection.
		db.SetMaxOpenConns(1)
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to local database: %w", err)
		}
		return db, nil
	}

	log.Info("Initializing Turso database", "url", primaryURL)
	db, err := sql.Open("libsql", primaryURL+"?authToken="+authToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", primaryURL, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		log.Warn("Could not enable foreign keys on remote database", "error", err)
	}
	return db, nil
}

func migrate(db *sql.DB, migrationsDir string) error {
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db, migrationsDir)
}

package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const memoryPath = ":memory:"

// InitDB opens the database and brings the schema up to date.
// With an empty primaryURL it opens a local SQLite file (or an in-memory database
// for ":memory:"); otherwise it connects to the remote Turso primary.
// The returned teardown closes the connection.
func InitDB(dbPath string, primaryURL string, authToken string) (*sql.DB, func(), error) {
	var (
		db  *sql.DB
		err error
	)
	if primaryURL == "" {
		log.Info("Initializing local SQLite database", "path", dbPath)
		db, err = openLocal(dbPath)
	} else {
		log.Info("Initializing Turso database", "url", primaryURL)
		db, err = openRemote(primaryURL, authToken)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	log.Info("Database initialized successfully")
	return db, teardown, nil
}

func openLocal(dbPath string) (*sql.DB, error) {
	dsn := "file:" + dbPath + "?_foreign_keys=on&_busy_timeout=5000"
	if dbPath == memoryPath {
		dsn = "file::memory:?_foreign_keys=on"
	} else {
		dsn += "&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	if dbPath == memoryPath {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to local database: %w", err)
	}
	return db, nil
}

func openRemote(primaryURL, authToken string) (*sql.DB, error) {
	db, err := sql.Open("libsql", primaryURL+"?authToken="+authToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", primaryURL, err)
	}
	// Foreign key support is not enabled by default in SQLite
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		log.Warn("Could not enable foreign keys on remote database", "error", err)
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}
	return nil
}

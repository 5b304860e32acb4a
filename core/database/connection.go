package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// GlobalDB holds the singleton application database connection.
var GlobalDB *sql.DB

// NewDatabase opens the application SQLite database. The returned handle is
// also stored in GlobalDB for the wiring code in cmd.
func NewDatabase(uri string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open database (%s): %w", uri, err)
	}

	// SQLite with WAL: one writer connection avoids SQLITE_BUSY races
	// between admin edits and a concurrently firing tick.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database (%s): %w", uri, err)
	}

	GlobalDB = db
	return db, nil
}

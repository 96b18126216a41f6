package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/pharmatrack/stock-service/config"
)

// Connect opens the SQLite record store. SQLite allows one writer at a time,
// so MaxOpenConns defaults to 1.
func Connect(cfg config.SqliteConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	maxConns := cfg.MaxOpenConns
	if maxConns <= 0 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

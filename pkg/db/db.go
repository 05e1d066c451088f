package db

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations.sql
var migrationsSQL string

// Open opens the SQLite database at path and runs the migrations.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Ensure single connection to avoid separate in-memory DBs per connection.
	conn.SetMaxOpenConns(1)
	if err := InitDB(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return conn, nil
}

// InitDB runs migrations on the given DB connection using the embedded SQL.
func InitDB(db *sql.DB) error {
	stmts := strings.Split(migrationsSQL, ";")
	for _, s := range stmts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

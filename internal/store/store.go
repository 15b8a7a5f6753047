package store

import (
	"database/sql"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Store provides access to all local storage repositories.
type Store struct {
	db      *sql.DB
	history *QueryHistoryStore
}

// NewDB opens the local DuckDB database. Use ":memory:" in tests.
func NewDB(path string) (*sql.DB, error) {
	if path == ":memory:" {
		path = ""
	}
	return sql.Open("duckdb", path)
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		history: NewQueryHistoryStore(db),
	}
}

func (s *Store) History() *QueryHistoryStore {
	return s.history
}

func (s *Store) Close() error {
	return s.db.Close()
}

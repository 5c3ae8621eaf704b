// Package store persists room records: the short shareable code a creator
// hands out so others can pick the same roomId. The signaling path never
// reads this; membership itself is ephemeral.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	if path == "" {
		path = "file:huddle.db?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	log.Info().Str("module", "store").Str("path", path).Msg("database initialized")
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			room_id VARCHAR(9) NOT NULL,
			created_by VARCHAR(255) NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS unique_room_id ON rooms(room_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rooms_created_by ON rooms(created_by)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}
	return nil
}

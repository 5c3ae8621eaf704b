package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/leshko/huddle/internal/domain"
)

var ErrRoomNotFound = errors.New("room not found")

// RoomRecord is a persisted room: the shareable code plus ownership meta.
type RoomRecord struct {
	ID        int64     `json:"-"`
	Name      string    `json:"name"`
	RoomID    string    `json:"roomId"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateRoom stores a new room under a generated 9-char code and returns it.
// Retries on the (unlikely) code collision.
func (s *Store) CreateRoom(name, createdBy string) (*RoomRecord, error) {
	slug := slugify(name)
	for {
		code := domain.NewRoomCode()
		_, err := s.db.Exec(
			"INSERT INTO rooms (name, room_id, created_by) VALUES (?, ?, ?)",
			slug, code, createdBy,
		)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE") {
				continue
			}
			return nil, fmt.Errorf("create room: %w", err)
		}
		return s.GetRoomByCode(code)
	}
}

// GetRoomByCode looks a room up by its shareable code.
func (s *Store) GetRoomByCode(code string) (*RoomRecord, error) {
	var r RoomRecord
	var createdAt string

	err := s.db.QueryRow(
		"SELECT id, name, room_id, created_by, created_at FROM rooms WHERE room_id = ?",
		code,
	).Scan(&r.ID, &r.Name, &r.RoomID, &r.CreatedBy, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	r.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
	return &r, nil
}

// ListRoomsByCreator returns one page of a creator's rooms plus the total count.
func (s *Store) ListRoomsByCreator(createdBy string, page, limit int) ([]*RoomRecord, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	rows, err := s.db.Query(
		"SELECT id, name, room_id, created_by, created_at FROM rooms WHERE created_by = ? ORDER BY created_at LIMIT ? OFFSET ?",
		createdBy, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var out []*RoomRecord
	for rows.Next() {
		var r RoomRecord
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Name, &r.RoomID, &r.CreatedBy, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("scan room: %w", err)
		}
		r.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list rooms: %w", err)
	}

	var total int
	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM rooms WHERE created_by = ?", createdBy,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count rooms: %w", err)
	}

	return out, total, nil
}

// slugify lowercases and strips the display name down to [a-z0-9-].
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

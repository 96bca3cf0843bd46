// Package storage persists session snapshots in SQLite.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tatianab/absurd-path/internal/models"

	_ "modernc.org/sqlite"
)

// Store keeps one snapshot per session id.
type Store struct {
	db *sql.DB
}

// SessionInfo describes a stored session.
type SessionInfo struct {
	ID        string
	Current   string
	UpdatedAt time.Time
}

// Open opens the database at path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSnapshot inserts or replaces the snapshot for id.
func (s *Store) SaveSnapshot(ctx context.Context, id string, snap models.Snapshot) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("save snapshot: store is not configured")
	}
	if id == "" {
		return fmt.Errorf("save snapshot: session id is empty")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("save snapshot: marshal: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (session_id, current_node, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		   current_node = excluded.current_node,
		   data = excluded.data,
		   updated_at = excluded.updated_at`,
		id, snap.Current, string(data), now, now)
	if err != nil {
		return fmt.Errorf("save snapshot: upsert: %w", err)
	}
	return nil
}

// LoadSnapshot returns the snapshot for id. ok is false when none is stored.
func (s *Store) LoadSnapshot(ctx context.Context, id string) (models.Snapshot, bool, error) {
	if s == nil || s.db == nil {
		return models.Snapshot{}, false, fmt.Errorf("load snapshot: store is not configured")
	}
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE session_id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Snapshot{}, false, nil
	}
	if err != nil {
		return models.Snapshot{}, false, fmt.Errorf("load snapshot: select: %w", err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return models.Snapshot{}, false, fmt.Errorf("load snapshot: decode: %w", err)
	}
	return snap, true, nil
}

// DeleteSnapshot removes the snapshot for id and reports whether one existed.
func (s *Store) DeleteSnapshot(ctx context.Context, id string) (bool, error) {
	if s == nil || s.db == nil {
		return false, fmt.Errorf("delete snapshot: store is not configured")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE session_id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete snapshot: rows affected: %w", err)
	}
	return n > 0, nil
}

// ListSessions returns every stored session, most recently updated first.
func (s *Store) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("list sessions: store is not configured")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, current_node, updated_at FROM snapshots ORDER BY updated_at DESC, session_id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: query: %w", err)
	}
	defer rows.Close()

	sessions := []SessionInfo{}
	for rows.Next() {
		var info SessionInfo
		var updatedAt string
		if err := rows.Scan(&info.ID, &info.Current, &updatedAt); err != nil {
			return nil, fmt.Errorf("list sessions: scan: %w", err)
		}
		info.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("list sessions: parse updated_at: %w", err)
		}
		sessions = append(sessions, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

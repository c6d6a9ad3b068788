package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/qninhdt/eclipse-rpg/server/internal/game"
)

var (
	// ErrNotFound is returned when no save exists for an id
	ErrNotFound = game.ErrNoSession
	// ErrCorruptSave is returned when a stored state no longer decodes. The row is removed.
	ErrCorruptSave = game.ErrCorruptSave
)

// DB wraps database operations
type DB struct {
	conn *sql.DB
	mu   sync.RWMutex
}

// NewDB opens the database and runs migrations
func NewDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		level INTEGER NOT NULL DEFAULT 1,
		state_json TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_saves_owner ON saves(owner);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// SaveSession upserts a session's state
func (db *DB) SaveSession(ctx context.Context, id, owner string, state *game.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	name, level := "", 1
	if state.Character != nil {
		name, level = state.Character.Name, state.Character.Level
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	now := time.Now().UTC()
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO saves (id, owner, name, level, state_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			level = excluded.level,
			state_json = excluded.state_json,
			updated_at = excluded.updated_at
	`, id, owner, name, level, string(data), now, now)
	return err
}

// LoadSession returns the owner and decoded state of a save
func (db *DB) LoadSession(ctx context.Context, id string) (string, *game.State, error) {
	db.mu.RLock()
	var owner, stateJSON string
	err := db.conn.QueryRowContext(ctx, `
		SELECT owner, state_json FROM saves WHERE id = ?
	`, id).Scan(&owner, &stateJSON)
	db.mu.RUnlock()

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, ErrNotFound
	}
	if err != nil {
		return "", nil, err
	}

	state, err := game.DecodeState([]byte(stateJSON))
	if err != nil {
		if delErr := db.DeleteSession(ctx, id); delErr != nil {
			return "", nil, fmt.Errorf("failed to drop corrupt save: %w", delErr)
		}
		return "", nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	return owner, state, nil
}

// DeleteSession removes a save
func (db *DB) DeleteSession(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.ExecContext(ctx, "DELETE FROM saves WHERE id = ?", id)
	return err
}

// ListSessions returns a player's saves, most recently played first
func (db *DB) ListSessions(ctx context.Context, owner string) ([]game.SaveSummary, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, owner, name, level, created_at, updated_at
		FROM saves WHERE owner = ? ORDER BY updated_at DESC
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	saves := make([]game.SaveSummary, 0)
	for rows.Next() {
		var s game.SaveSummary
		if err := rows.Scan(&s.ID, &s.Owner, &s.Name, &s.Level, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		saves = append(saves, s)
	}
	return saves, rows.Err()
}

package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// adminFlagKey is the single persisted key representing the admin
// session: the string "true" when logged in, absent otherwise.
const adminFlagKey = "admin_session"

// FlagStore persists the admin session flag across restarts. The flag
// has no expiry; it is cleared only by an explicit logout.
type FlagStore interface {
	Get(ctx context.Context) (bool, error)
	Set(ctx context.Context) error
	Clear(ctx context.Context) error
}

// SettingsFlagStore stores the flag in the settings table.
type SettingsFlagStore struct {
	db *sql.DB
}

// NewSettingsFlagStore wraps an open database.
func NewSettingsFlagStore(db *sql.DB) *SettingsFlagStore {
	return &SettingsFlagStore{db: db}
}

func (s *SettingsFlagStore) Get(ctx context.Context) (bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, adminFlagKey,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading admin flag: %w", err)
	}
	return value == "true", nil
}

func (s *SettingsFlagStore) Set(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, 'true')
		 ON CONFLICT(key) DO UPDATE SET value = 'true'`, adminFlagKey,
	)
	if err != nil {
		return fmt.Errorf("storing admin flag: %w", err)
	}
	return nil
}

func (s *SettingsFlagStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM settings WHERE key = ?`, adminFlagKey,
	)
	if err != nil {
		return fmt.Errorf("clearing admin flag: %w", err)
	}
	return nil
}

// MemoryFlagStore is an in-memory FlagStore for tests and for the
// remote variant when no local database is configured.
type MemoryFlagStore struct {
	mu  sync.Mutex
	set bool
}

func NewMemoryFlagStore() *MemoryFlagStore {
	return &MemoryFlagStore{}
}

func (s *MemoryFlagStore) Get(context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set, nil
}

func (s *MemoryFlagStore) Set(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = true
	return nil
}

func (s *MemoryFlagStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = false
	return nil
}

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/starford/folio/internal/theme"
)

// GetPref returns the stored value, or "" when the key was never set.
func (db *DB) GetPref(visitor, key string) (string, error) {
	var v string
	err := db.conn.QueryRow(`SELECT value FROM prefs WHERE visitor = ? AND key = ?`, visitor, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("db: get pref: %w", err)
	}
	return v, nil
}

// SetPref upserts a preference.
func (db *DB) SetPref(visitor, key, value string) error {
	_, err := db.conn.Exec(`
		INSERT INTO prefs (visitor, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(visitor, key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at
	`, visitor, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("db: set pref: %w", err)
	}
	return nil
}

// Prefs returns a theme.PreferenceStore scoped to visitor.
func (db *DB) Prefs(visitor string) theme.PreferenceStore {
	return visitorPrefs{db: db, visitor: visitor}
}

type visitorPrefs struct {
	db      *DB
	visitor string
}

func (p visitorPrefs) Load(key string) (string, error) { return p.db.GetPref(p.visitor, key) }

func (p visitorPrefs) Save(key, value string) error { return p.db.SetPref(p.visitor, key, value) }

package db

import (
	"fmt"

	"github.com/starford/folio/internal/models"
)

// InsertMessage stores a contact form submission.
func (db *DB) InsertMessage(m models.Message) error {
	_, err := db.conn.Exec(`
		INSERT INTO messages (id, name, email, subject, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.ID, m.Name, m.Email, m.Subject, m.Body, m.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("db: insert message: %w", err)
	}
	return nil
}

// ListMessages returns messages newest first with the total count.
func (db *DB) ListMessages(limit, offset int) ([]models.Message, int, error) {
	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM messages`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db: count messages: %w", err)
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Query(`
		SELECT id, name, email, subject, body, created_at
		FROM messages
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db: list messages: %w", err)
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("db: scan message: %w", err)
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

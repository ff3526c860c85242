package store

import (
	"fmt"
	"time"
)

// MaxHistory caps the stored conversation at the most recent entries.
// Older rows are evicted oldest-first when the cap is exceeded.
const MaxHistory = 30

// Entry is one stored conversation turn.
type Entry struct {
	ID        int64
	Role      string // "user", "assistant" or "system"
	Content   string
	CreatedAt int64
}

// AppendConversation inserts the given turns in order and evicts the oldest
// rows beyond MaxHistory, all in one transaction.
func (db *DB) AppendConversation(entries ...Entry) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}

	now := time.Now().UnixMilli()
	for _, e := range entries {
		if _, err := tx.Exec(
			"INSERT INTO conversation (role, content, created_at) VALUES (?, ?, ?)",
			e.Role, e.Content, now,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert turn: %w", err)
		}
	}

	if _, err := tx.Exec(`
		DELETE FROM conversation WHERE id NOT IN (
			SELECT id FROM conversation ORDER BY id DESC LIMIT ?
		)
	`, MaxHistory); err != nil {
		tx.Rollback()
		return fmt.Errorf("evict old turns: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// Conversation returns all stored turns in insertion order.
func (db *DB) Conversation() ([]Entry, error) {
	rows, err := db.Query("SELECT id, role, content, created_at FROM conversation ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query conversation: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Role, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ConversationLength returns the number of stored turns.
func (db *DB) ConversationLength() (int, error) {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM conversation").Scan(&n)
	return n, err
}

// ClearConversation deletes all stored turns.
func (db *DB) ClearConversation() error {
	if _, err := db.Exec("DELETE FROM conversation"); err != nil {
		return fmt.Errorf("clear conversation: %w", err)
	}
	return nil
}

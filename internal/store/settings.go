package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Well-known settings keys. The names are part of the contract with the UI
// layer, which reads the same rows for its settings form.
const (
	KeyHunger      = "hunger"
	KeyCleanliness = "cleanliness"
	KeyHappiness   = "happiness"
	KeyLastUpdate  = "lastUpdate"
	KeyLastFeed    = "lastFeed"
	KeyLastClean   = "lastClean"
	KeyLastPlay    = "lastPlay"
	KeyIsDead      = "isDead"
	KeyDeathCause  = "deathCause"
	KeyAPIKey      = "chatgpt_api_key"
	KeyDuckName    = "duck_name"
	KeyLanguage    = "language"
)

// GetString returns the value for key, or def when the key is unset.
func (db *DB) GetString(key, def string) (string, error) {
	var v string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if err == sql.ErrNoRows {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("get setting %q: %w", key, err)
	}
	return v, nil
}

// SetString writes the value for key, replacing any previous value.
func (db *DB) SetString(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// GetFloat returns the value for key as a float64, or def when unset or
// unparseable.
func (db *DB) GetFloat(key string, def float64) (float64, error) {
	s, err := db.GetString(key, "")
	if err != nil || s == "" {
		return def, err
	}
	v, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return def, nil
	}
	return v, nil
}

// SetFloat writes a float64 value for key.
func (db *DB) SetFloat(key string, value float64) error {
	return db.SetString(key, strconv.FormatFloat(value, 'g', -1, 64))
}

// GetInt returns the value for key as an int64, or def when unset or
// unparseable. Timestamps are stored this way, as milliseconds since epoch.
func (db *DB) GetInt(key string, def int64) (int64, error) {
	s, err := db.GetString(key, "")
	if err != nil || s == "" {
		return def, err
	}
	v, perr := strconv.ParseInt(s, 10, 64)
	if perr != nil {
		return def, nil
	}
	return v, nil
}

// SetInt writes an int64 value for key.
func (db *DB) SetInt(key string, value int64) error {
	return db.SetString(key, strconv.FormatInt(value, 10))
}

// GetBool returns the value for key as a bool, or def when unset.
func (db *DB) GetBool(key string, def bool) (bool, error) {
	s, err := db.GetString(key, "")
	if err != nil || s == "" {
		return def, err
	}
	return s == "true" || s == "1", nil
}

// SetBool writes a bool value for key.
func (db *DB) SetBool(key string, value bool) error {
	return db.SetString(key, strconv.FormatBool(value))
}

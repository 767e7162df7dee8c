package repositories

import (
	"database/sql"
	"fmt"

	"github.com/enunanota/enunanota/internal/auth"
)

// CredentialRepository implements [auth.Store] over the credentials table.
type CredentialRepository struct {
	db *sql.DB
}

var _ auth.Store = (*CredentialRepository)(nil)

// NewCredentialRepository creates a new [CredentialRepository] with the given database connection.
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Get returns the value stored under key, or "" when the key is absent.
func (r *CredentialRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query credential %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (r *CredentialRepository) Set(key, value string) error {
	query := `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to store credential %s: %w", key, err)
	}
	return nil
}

// SetMany stores all pairs in one transaction.
func (r *CredentialRepository) SetMany(values map[string]string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	for key, value := range values {
		if _, err := tx.Exec(query, key, value); err != nil {
			return fmt.Errorf("failed to store credential %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit credential write: %w", err)
	}
	return nil
}

// Remove deletes key; removing an absent key is not an error.
func (r *CredentialRepository) Remove(key string) error {
	if _, err := r.db.Exec("DELETE FROM credentials WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove credential %s: %w", key, err)
	}
	return nil
}

// Clear deletes all given keys in one transaction.
func (r *CredentialRepository) Clear(keys ...string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, key := range keys {
		if _, err := tx.Exec("DELETE FROM credentials WHERE key = ?", key); err != nil {
			return fmt.Errorf("failed to remove credential %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit credential clear: %w", err)
	}
	return nil
}

// Package syncserver is the hosted side of multi-device sync: one row
// per user holding the whole serialized document. Writes are
// last-write-wins by whole-document overwrite; two devices pushing
// inside the same debounce window will silently keep only the later
// one. That limitation is accepted, not hidden.
package syncserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrUserExists         = errors.New("syncserver: username already taken")
	ErrInvalidCredentials = errors.New("syncserver: invalid username or password")
)

const sqliteTimeLayout = time.RFC3339Nano

// UserRepository stores user accounts and their synced documents in
// SQLite, keyed by normalized username.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) (*UserRepository, error) {
	if db == nil {
		return nil, errors.New("syncserver: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &UserRepository{db: db}, nil
}

func OpenSQLite(path string) (*UserRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewUserRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) Close() error {
	return r.db.Close()
}

// normalizeUsername folds the account key the way the original
// backend did: trimmed and lowercased.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Register creates an account with an empty document.
func (r *UserRepository) Register(ctx context.Context, username, password string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, password, data, updated_at)
		VALUES (?, ?, '{}', ?)`,
		normalizeUsername(username), password, time.Now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Authenticate checks credentials and returns the stored document.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) ([]byte, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT password, data FROM users WHERE username = ?`,
		normalizeUsername(username),
	)
	var stored, data string
	if err := row.Scan(&stored, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if stored != password {
		return nil, ErrInvalidCredentials
	}
	return []byte(data), nil
}

// PutData overwrites the user's whole document after an auth check.
func (r *UserRepository) PutData(ctx context.Context, username, password string, data []byte) error {
	if _, err := r.Authenticate(ctx, username, password); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET data = ?, updated_at = ? WHERE username = ?`,
		string(data), time.Now().UTC().Format(sqliteTimeLayout), normalizeUsername(username),
	)
	if err != nil {
		return fmt.Errorf("update user data: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

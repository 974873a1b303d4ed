package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wiki_system/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of Credentials interface at compile time.
var _ Credentials = (*UserSQLite)(nil)

const (
	insertUserSQL        = `INSERT INTO users (username, password_hash) VALUES (?, ?)`
	selectUserByCredsSQL = `SELECT username, password_hash FROM users WHERE username = ? AND password_hash = ?`
)

// Create inserts a new user. The primary key on username is the only
// uniqueness check; a violation is reported as models.ErrDuplicateUser.
func (r *UserSQLite) Create(ctx context.Context, username, passwordHash string) error {
	if _, err := r.db.ExecContext(ctx, insertUserSQL, username, passwordHash); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user %q: %w", username, models.ErrDuplicateUser)
		}
		return fmt.Errorf("insert user %q: %w", username, err)
	}
	return nil
}

// GetByCredentials returns the user whose username and digest both match.
// Returns (nil, nil) if nothing matches.
func (r *UserSQLite) GetByCredentials(ctx context.Context, username, passwordHash string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByCredsSQL, username, passwordHash).Scan(&u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

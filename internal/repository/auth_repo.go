package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"solar_cleaner/internal/models"
)

// ErrUserExists is returned when the username is already registered.
var ErrUserExists = errors.New("user already exists")

// UserSQLite stores dashboard operators.
type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite { return &UserSQLite{db: db} }

var _ Authorization = (*UserSQLite)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, password_hash) VALUES (?, ?)`
	userByNameSQL = `SELECT id, username, password_hash FROM users WHERE username = ?`
)

// Create registers an operator and returns the new row id.
func (r *UserSQLite) Create(ctx context.Context, username, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUserExists
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user %q id: %w", username, err)
	}
	return int(id), nil
}

// GetByUsername returns ErrNotFound for unknown usernames.
func (r *UserSQLite) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, userByNameSQL, username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNotFound
	case err != nil:
		return models.User{}, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// isUniqueViolation matches SQLite's "UNIQUE constraint failed" error text.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// filepath: internal/repository/user_repo.go
package repository

import (
	"database/sql"
	"errors"

	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/shared"
)

// GetUserByUsername retrieves a single user by username.
func (s *Repository) GetUserByUsername(username string) (*models.User, error) {
	query := "SELECT id, username, password_hash, is_admin FROM users WHERE username = ?"

	var user models.User
	err := s.DB.QueryRow(query, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user record.
func (s *Repository) CreateUser(user *models.User) (*models.User, error) {
	res, err := s.DB.Exec(
		"INSERT INTO users (username, password_hash, is_admin) VALUES (?, ?, ?)",
		user.Username, user.PasswordHash, user.IsAdmin,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// UpdateUserPassword replaces the stored password hash for a user.
func (s *Repository) UpdateUserPassword(username, passwordHash string) error {
	res, err := s.DB.Exec("UPDATE users SET password_hash = ? WHERE username = ?", passwordHash, username)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrUserNotFound
	}
	return nil
}

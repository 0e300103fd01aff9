// filepath: internal/services/user_service.go
package services

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/the-momentum/open-wearables-sub001/internal/config"
	"github.com/the-momentum/open-wearables-sub001/internal/logging"
	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/repository"
	"github.com/the-momentum/open-wearables-sub001/internal/shared"
)

var _ UserService = (*userService)(nil)

// userService handles business logic for user management.
type userService struct {
	Repo *repository.Repository
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository) *userService {
	return &userService{Repo: repo}
}

// GetUserByUsername retrieves a user by their username.
func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	return s.Repo.GetUserByUsername(username)
}

// InitializeAdminUser ensures the 'admin' user exists on startup and handles password resets.
func (s *userService) InitializeAdminUser(cfg *config.Config) error {
	_, err := s.Repo.GetUserByUsername("admin")
	if errors.Is(err, shared.ErrUserNotFound) {
		return s.createAdminUser(cfg.AdminPassword)
	}
	if err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	if cfg.ResetAdminPassword {
		return s.resetAdminPassword(cfg.AdminPassword)
	}

	return nil
}

// createAdminUser creates the initial 'admin' user.
func (s *userService) createAdminUser(password string) error {
	if password == "" {
		password = generateRandomPassword(10)
		logging.Log.Infof("No admin password provided. Generated a random password for 'admin': %s", password)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if _, err := s.Repo.CreateUser(user); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logging.Log.Info("Admin user created successfully.")
	return nil
}

// resetAdminPassword updates the admin's password based on startup flags.
func (s *userService) resetAdminPassword(password string) error {
	if password == "" {
		return fmt.Errorf("cannot reset admin password: --reset_pw is true but no --password or OW_PASSWORD was provided")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if err := s.Repo.UpdateUserPassword("admin", string(hash)); err != nil {
		return fmt.Errorf("failed to reset admin password: %w", err)
	}
	logging.Log.Info("Admin password has been reset.")
	return nil
}

// generateRandomPassword creates a cryptographically secure random password.
func generateRandomPassword(length int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		logging.Log.Fatalf("Failed to generate random password: %v", err)
	}
	for i := range b {
		b[i] = chars[int(b[i])%len(chars)]
	}
	return string(b)
}

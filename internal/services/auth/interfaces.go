// filepath: internal/services/auth/interfaces.go
package auth

import "github.com/the-momentum/open-wearables-sub001/internal/models"

// TokenService defines the contract for JWT operations.
type TokenService interface {
	GenerateToken(user *models.User) (accessToken string, err error)
	ValidateAccessToken(tokenString string) (*models.User, error)
}

// filepath: internal/services/auth/tokenservice.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/the-momentum/open-wearables-sub001/internal/config"
	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/services"
)

// accessClaims defines the custom claims for the short-lived access token.
type accessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

var _ TokenService = (*tokenService)(nil)

type tokenService struct {
	cfg     *config.Config
	userSvc services.UserService
}

// NewTokenService creates a new instance of the tokenService.
func NewTokenService(cfg *config.Config, userSvc services.UserService) TokenService {
	return &tokenService{cfg: cfg, userSvc: userSvc}
}

// GenerateToken creates and signs a new access token for the user.
func (s *tokenService) GenerateToken(user *models.User) (string, error) {
	expiry := time.Now().Add(time.Minute * time.Duration(s.cfg.JWT.AccessDurationMin))
	claims := &accessClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			Issuer:    "open-wearables",
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken checks an access token (stateless).
// It verifies the signature and expiry, then returns the associated user.
func (s *tokenService) ValidateAccessToken(tokenString string) (*models.User, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, err // Handles expired tokens as well
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}

	user, err := s.userSvc.GetUserByUsername(claims.Username)
	if err != nil {
		return nil, errors.New("user not found for token")
	}
	return user, nil
}

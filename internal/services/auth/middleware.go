// filepath: internal/services/auth/middleware.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/the-momentum/open-wearables-sub001/internal/logging"
	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/services"
)

// writeError sends a JSON error response.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Middleware provides authentication and authorization middleware.
type Middleware struct {
	User  services.UserService
	Token TokenService
}

// NewMiddleware creates a new instance of Middleware.
func NewMiddleware(user services.UserService, token TokenService) *Middleware {
	return &Middleware{
		User:  user,
		Token: token,
	}
}

// AuthMiddleware checks for a valid JWT Bearer token OR Basic Auth.
func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			// Tell the client we accept both
			w.Header().Set("WWW-Authenticate", `Basic realm="restricted", Bearer realm="restricted"`)
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		var user *models.User
		var err error

		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			user, err = m.Token.ValidateAccessToken(tokenString)
			if err != nil {
				logging.Log.Warnf("AuthMiddleware: Invalid Bearer token: %v", err)
				if strings.Contains(err.Error(), "expired") {
					writeError(w, http.StatusUnauthorized, "Token expired")
				} else {
					writeError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}
		} else if strings.HasPrefix(authHeader, "Basic ") {
			username, password, ok := r.BasicAuth()
			if !ok {
				writeError(w, http.StatusUnauthorized, "Invalid Basic Auth header")
				return
			}
			user, err = m.validateBasicAuth(username, password)
			if err != nil {
				logging.Log.Warnf("AuthMiddleware: Invalid Basic Auth: %v", err)
				writeError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
		} else {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		ctx := context.WithValue(r.Context(), "user", user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validateBasicAuth checks username/password against the database.
func (m *Middleware) validateBasicAuth(username, password string) (*models.User, error) {
	user, err := m.User.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("user '%s' not found", username)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("password comparison failed for user '%s'", username)
	}
	return user, nil
}

// AdminMiddleware requires that the authenticated user is an admin.
func (m *Middleware) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value("user").(*models.User)
		if !ok {
			logging.Log.Warnf("AdminMiddleware: No user found in context for %s", r.URL.Path)
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		if !user.IsAdmin {
			logging.Log.Warnf("AdminMiddleware: Access DENIED for user '%s' on %s", user.Username, r.URL.Path)
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

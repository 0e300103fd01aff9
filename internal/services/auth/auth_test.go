// filepath: internal/services/auth/auth_test.go
package auth_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/the-momentum/open-wearables-sub001/internal/config"
	"github.com/the-momentum/open-wearables-sub001/internal/repository"
	"github.com/the-momentum/open-wearables-sub001/internal/services"
	"github.com/the-momentum/open-wearables-sub001/internal/services/auth"
)

// setupTestDB creates a temporary database with a known user.
func setupTestDB(t *testing.T) (*repository.Repository, *config.Config) {
	t.Helper()

	cfg := &config.Config{
		Database:  config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test_auth.db")},
		JWT:       config.JWTConfig{AccessDurationMin: 15},
		JWTSecret: "test-secret",
	}
	repo, err := repository.NewRepository(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := repo.MigrateUp(); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	_, err = repo.DB.Exec(
		"INSERT INTO users (username, password_hash, is_admin) VALUES (?, ?, 0)",
		"testuser", string(passwordHash),
	)
	if err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}

	t.Cleanup(func() { repo.Close() })
	return repo, cfg
}

func TestAuthMiddleware(t *testing.T) {
	repo, cfg := setupTestDB(t)

	userService := services.NewUserService(repo)
	tokenService := auth.NewTokenService(cfg, userService)
	authMiddleware := auth.NewMiddleware(userService, tokenService)

	r := mux.NewRouter()
	protectedHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Handle("/protected", authMiddleware.AuthMiddleware(protectedHandler))
	r.Handle("/admin", authMiddleware.AuthMiddleware(authMiddleware.AdminMiddleware(protectedHandler)))

	ts := httptest.NewServer(r)
	defer ts.Close()

	tests := []struct {
		name           string
		path           string
		username       string
		password       string
		expectedStatus int
	}{
		{"No Auth", "/protected", "", "", http.StatusUnauthorized},
		{"Bad Password", "/protected", "testuser", "wrongpassword", http.StatusUnauthorized},
		{"Correct Auth", "/protected", "testuser", "password", http.StatusOK},
		{"Non-Admin On Admin Route", "/admin", "testuser", "password", http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", ts.URL+tc.path, nil)
			if tc.username != "" && tc.password != "" {
				req.SetBasicAuth(tc.username, tc.password)
			}

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, resp.StatusCode)
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	repo, cfg := setupTestDB(t)

	userService := services.NewUserService(repo)
	tokenService := auth.NewTokenService(cfg, userService)

	user, err := userService.GetUserByUsername("testuser")
	if err != nil {
		t.Fatalf("Failed to load test user: %v", err)
	}

	token, err := tokenService.GenerateToken(user)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	validated, err := tokenService.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if validated.Username != "testuser" {
		t.Errorf("Expected username 'testuser', got '%s'", validated.Username)
	}

	if _, err := tokenService.ValidateAccessToken(token + "tampered"); err == nil {
		t.Error("Expected tampered token to be rejected")
	}
}

func TestBearerTokenAuth(t *testing.T) {
	repo, cfg := setupTestDB(t)

	userService := services.NewUserService(repo)
	tokenService := auth.NewTokenService(cfg, userService)
	authMiddleware := auth.NewMiddleware(userService, tokenService)

	protected := authMiddleware.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	ts := httptest.NewServer(protected)
	defer ts.Close()

	user, err := userService.GetUserByUsername("testuser")
	if err != nil {
		t.Fatalf("Failed to load test user: %v", err)
	}
	token, err := tokenService.GenerateToken(user)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	req, _ := http.NewRequest("GET", ts.URL, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

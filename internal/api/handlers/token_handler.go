// filepath: internal/api/handlers/token_handler.go
package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/the-momentum/open-wearables-sub001/internal/logging"
)

// tokenResponse is the JSON body returned on successful token generation.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// @Summary Get a JWT access token
// @Description Authenticate using Basic Auth to receive a short-lived access token.
// @Tags Auth
// @Produce  json
// @Success 200 {object} tokenResponse
// @Failure 401 {object} ErrorResponse "Authentication failed"
// @Failure 500 {object} ErrorResponse "Token generation failed"
// @Security BasicAuth
// @Router /token [post]
func (h *Handlers) GetToken(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication failed: Missing Basic Auth")
		return
	}

	user, err := h.User.GetUserByUsername(username)
	if err != nil {
		// Avoid revealing if user exists
		respondWithError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		respondWithError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	accessToken, err := h.Token.GenerateToken(user)
	if err != nil {
		logging.Log.Errorf("Token generation failed for %s: %v", username, err)
		respondWithError(w, http.StatusInternalServerError, "Could not generate token")
		return
	}

	respondWithJSON(w, http.StatusOK, tokenResponse{AccessToken: accessToken})
}

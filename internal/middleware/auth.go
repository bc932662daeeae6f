// Package middleware adds additional functionality of log, authentication around request-response cycle
package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/harshitrajsinha/city-weather-go/internal/models"
	"github.com/harshitrajsinha/city-weather-go/internal/response"
)

// AuthMiddleware adds authentication middlware to verify protected requests
func AuthMiddleware(next http.Handler, secretAuthKey string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// Get token from authorization header
		authToken := strings.TrimSpace(r.Header.Get("Authorization"))
		if authToken == "" {
			log.Println("[WARN] missing authorization header in request")
			response.SendErrorResponseToClient(w, response.StatusUnauthorizedCode, nil)
			return
		}

		authToken = strings.TrimSpace(strings.TrimPrefix(authToken, "Bearer "))
		if authToken == "" || !models.ValidateJWTString(authToken) {
			log.Println("[WARN] invalid bearer token for authorization")
			response.SendErrorResponseToClient(w, response.StatusAuthTokenInvalidCode, nil)
			return
		}

		// verify token
		if _, err := models.VerifyAccessToken(authToken, secretAuthKey); err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				log.Println("[WARN] authorization token has expired")
				response.SendErrorResponseToClient(w, response.StatusAuthTokenExpiredCode, nil)
				return
			}

			log.Println("[WARN] error while verifying auth token, ", err)
			response.SendErrorResponseToClient(w, response.StatusAuthTokenInvalidCode, nil)
			return
		}

		next.ServeHTTP(w, r)

	})
}

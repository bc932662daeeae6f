// Package models defines structures and functions that are used across the application
package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "city-weather-go"

// CustomClaims defines structure of JWT payload
type CustomClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// CreateAccessToken signs an HS256 token for the given subject that expires after ttl
func CreateAccessToken(subject string, secretAuthKey string, ttl time.Duration) (string, error) {

	if secretAuthKey == "" {
		return "", errors.New("secret auth key is not configured")
	}

	now := time.Now().UTC()
	claims := &CustomClaims{
		Scope: "favorite:write",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   subject,
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secretAuthKey))
	if err != nil {
		return "", fmt.Errorf("error generating access token, %w", err)
	}

	return signed, nil
}

// VerifyAccessToken parses and verifies a token from an API request and returns its claims
func VerifyAccessToken(token string, secretAuthKey string) (*CustomClaims, error) {

	var parsedClaims CustomClaims
	parsedToken, err := jwt.ParseWithClaims(token, &parsedClaims, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, fmt.Errorf("unexpected signing method, %v", token.Header["alg"])
		}
		return []byte(secretAuthKey), nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		return nil, err
	}

	if !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	return &parsedClaims, nil
}

// ValidateJWTString validates if given string/token is of JWT form
func ValidateJWTString(token string) bool {

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}

	for _, p := range parts {
		if _, err := base64.RawURLEncoding.DecodeString(p); err != nil {
			return false
		}
	}

	return true
}

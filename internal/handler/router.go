// Package handler implements the business logic for API routes
package handler

import (
	"net/http"

	"github.com/harshitrajsinha/city-weather-go/internal/middleware"
)

// NewRouter wires the API routes; favorite writes need a bearer token when secretAuthKey is set
func NewRouter(h *WeatherHandler, secretAuthKey string) http.Handler {

	mux := http.NewServeMux()

	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc("/api/v1/weather", h.HandleCurrentWeather)

	var favorite http.Handler = http.HandlerFunc(h.HandleFavorite)
	if secretAuthKey != "" {
		favorite = guardWrites(favorite, secretAuthKey)
	}
	mux.Handle("/api/v1/favorite", favorite)

	return middleware.LogMiddleware(mux)
}

// guardWrites sends every method except GET through the auth middleware
func guardWrites(next http.Handler, secretAuthKey string) http.Handler {
	protected := middleware.AuthMiddleware(next, secretAuthKey)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	})
}

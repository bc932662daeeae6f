// Package handler implements the business logic for API routes
package handler

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/harshitrajsinha/city-weather-go/internal/middleware"
	"github.com/harshitrajsinha/city-weather-go/internal/models"
	"github.com/harshitrajsinha/city-weather-go/internal/preferences"
	"github.com/harshitrajsinha/city-weather-go/internal/response"
	"github.com/harshitrajsinha/city-weather-go/internal/store"
)

const (
	providerTimeout = 15 * time.Second
	maxBodyBytes    = 1 << 12
)

var validate = validator.New()

// HealthChecker reports whether local storage is usable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// weatherQuery holds query parameters of the weather route
type weatherQuery struct {
	City string `validate:"required"`
}

// WeatherHandler encapsulates all dependencies required for the weather and favorite routes
type WeatherHandler struct {
	reporter  store.WeatherReporter
	favorites *preferences.FavoriteCityStore
	health    HealthChecker
}

// NewWeatherHandler is the constructor used for dependency injection to weather handler
func NewWeatherHandler(reporter store.WeatherReporter, favorites *preferences.FavoriteCityStore, health HealthChecker) *WeatherHandler {
	return &WeatherHandler{
		reporter:  reporter,
		favorites: favorites,
		health:    health,
	}
}

// HandleHealth reports service and storage health
func (h *WeatherHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		response.SendErrorResponseToClient(w, response.StatusMethodNotAllowedCode, nil)
		return
	}

	if h.health != nil {
		if err := h.health.HealthCheck(r.Context()); err != nil {
			log.Printf("[ERROR] health check failed, %v", err)
			response.SendErrorResponseToClient(w, response.StatusInternalServerErrorCode, map[string]string{"database": "unavailable"})
			return
		}
	}

	response.SendResponseToClient(w, http.StatusOK, "service is healthy", nil)
}

// HandleCurrentWeather returns the current weather of the city query parameter
func (h *WeatherHandler) HandleCurrentWeather(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		response.SendErrorResponseToClient(w, response.StatusMethodNotAllowedCode, nil)
		return
	}

	query := weatherQuery{City: strings.TrimSpace(r.URL.Query().Get("city"))}
	if err := validate.Struct(query); err != nil {
		response.SendFetchErrorToClient(w, store.ErrInvalidInput)
		return
	}

	record, err := h.fetch(r, query.City)
	if err != nil {
		response.SendFetchErrorToClient(w, err)
		return
	}

	response.SendResponseToClient(w, http.StatusOK, "current weather fetched", models.WeatherPayload{
		Record: record,
		Detail: record.Detail(),
	})
}

// HandleFavorite reads, replaces or clears the favorite city
func (h *WeatherHandler) HandleFavorite(w http.ResponseWriter, r *http.Request) {

	switch r.Method {
	case http.MethodGet:
		city, ok := h.favorites.Get()
		if !ok {
			response.SendErrorResponseToClient(w, response.StatusFavoriteNotSetCode, nil)
			return
		}
		response.SendResponseToClient(w, http.StatusOK, "favorite city fetched", models.FavoritePayload{City: city})

	case http.MethodPut:
		h.saveFavorite(w, r)

	case http.MethodDelete:
		h.favorites.Clear()
		response.SendResponseToClient(w, http.StatusOK, "favorite city cleared", nil)

	default:
		response.SendErrorResponseToClient(w, response.StatusMethodNotAllowedCode, nil)
	}
}

// saveFavorite only stores cities the provider accepts
func (h *WeatherHandler) saveFavorite(w http.ResponseWriter, r *http.Request) {

	var payload models.FavoritePayload

	// parse request payload
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		log.Printf("[WARN] %s error decoding favorite payload, %v", middleware.RequestID(r.Context()), err)
		response.SendErrorResponseToClient(w, response.StatusBadRequestCode, map[string]string{"body": "expected {\"city\": \"...\"}"})
		return
	}

	payload.City = strings.TrimSpace(payload.City)
	if err := validate.Struct(payload); err != nil {
		response.SendFetchErrorToClient(w, store.ErrInvalidInput)
		return
	}

	if _, err := h.fetch(r, payload.City); err != nil {
		response.SendFetchErrorToClient(w, err)
		return
	}

	h.favorites.Save(payload.City)
	response.SendResponseToClient(w, http.StatusOK, "favorite city saved", payload)
}

func (h *WeatherHandler) fetch(r *http.Request, city string) (models.WeatherRecord, error) {

	ctx, cancel := context.WithTimeout(r.Context(), providerTimeout)
	defer cancel()

	record, err := h.reporter.GetCurrentWeatherReport(ctx, city)
	if err != nil {
		log.Printf("[WARN] %s weather lookup for %q failed, %v", middleware.RequestID(r.Context()), city, err)
	}
	return record, err
}

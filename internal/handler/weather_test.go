package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harshitrajsinha/city-weather-go/internal/database"
	"github.com/harshitrajsinha/city-weather-go/internal/models"
	"github.com/harshitrajsinha/city-weather-go/internal/preferences"
	"github.com/harshitrajsinha/city-weather-go/internal/store"
)

// stubReporter knows a fixed set of cities
type stubReporter struct {
	err error
}

func (s stubReporter) GetCurrentWeatherReport(_ context.Context, city string) (models.WeatherRecord, error) {
	if s.err != nil {
		return models.WeatherRecord{}, s.err
	}
	if city == "Atlantis" {
		return models.WeatherRecord{}, &store.FetchError{Kind: store.KindNotFound, StatusCode: 404}
	}
	country := "GB"
	return models.WeatherRecord{
		CityName:     city,
		Country:      &country,
		TemperatureC: 20,
		FeelsLikeC:   19,
		Description:  "clear sky",
		HumidityPct:  65,
		PressureHPa:  1013,
		WindSpeedMs:  5.5,
	}, nil
}

type envelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func newTestRouter(t *testing.T, reporter store.WeatherReporter, secret string) (http.Handler, *preferences.FavoriteCityStore) {
	t.Helper()

	dbClient, err := database.InitDB(filepath.Join(t.TempDir(), "handler.db"))
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { _ = dbClient.Close() })

	favorites := preferences.NewFavoriteCityStore(dbClient)
	return NewRouter(NewWeatherHandler(reporter, favorites, dbClient), secret), favorites
}

func do(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not json: %v, body: %s", err, rec.Body.String())
	}
	return rec, env
}

func TestHandleCurrentWeather_Success(t *testing.T) {
	router, _ := newTestRouter(t, stubReporter{}, "")

	rec, env := do(t, router, http.MethodGet, "/api/v1/weather?city=London", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}

	var payload models.WeatherPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Record.CityName != "London" || payload.Detail.Description != "Clear Sky" {
		t.Errorf("unexpected payload %+v", payload)
	}
	if payload.Detail.Location != "London, GB" || payload.Detail.Humidity != "Humidity: 65%" {
		t.Errorf("unexpected detail %+v", payload.Detail)
	}
}

func TestHandleCurrentWeather_Errors(t *testing.T) {
	tests := []struct {
		name     string
		reporter stubReporter
		target   string
		status   int
		code     string
		message  string
	}{
		{"blank city", stubReporter{}, "/api/v1/weather?city=%20%20", 400, "BAD_REQUEST", "Please enter a valid city name"},
		{"missing city", stubReporter{}, "/api/v1/weather", 400, "BAD_REQUEST", "Please enter a valid city name"},
		{"not found", stubReporter{}, "/api/v1/weather?city=Atlantis", 404, "CITY_NOT_FOUND", "City not found. Please check the spelling."},
		{"unauthorized", stubReporter{err: store.ErrUnauthorized}, "/api/v1/weather?city=Paris", 502, "PROVIDER_UNAUTHORIZED", "API key is invalid. Please check your configuration."},
		{"server error", stubReporter{err: &store.FetchError{Kind: store.KindServerError, StatusCode: 500}}, "/api/v1/weather?city=Paris", 502, "PROVIDER_ERROR", "Server error (Code: 500). Please try again later."},
		{"decoding", stubReporter{err: store.ErrDecoding}, "/api/v1/weather?city=Paris", 502, "PROVIDER_BAD_RESPONSE", "Unable to process server response."},
		{"unreachable", stubReporter{err: store.ErrUnreachable}, "/api/v1/weather?city=Paris", 503, "PROVIDER_UNREACHABLE", "No internet connection. Please check your network."},
		{"foreign error", stubReporter{err: errors.New("boom")}, "/api/v1/weather?city=Paris", 500, "INTERNAL_SERVER_ERROR", "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t, tt.reporter, "")

			rec, env := do(t, router, http.MethodGet, tt.target, "", nil)
			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rec.Code)
			}
			if env.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, env.Code)
			}
			if env.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, env.Message)
			}
		})
	}
}

func TestHandleCurrentWeather_MethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t, stubReporter{}, "")

	rec, env := do(t, router, http.MethodPost, "/api/v1/weather?city=London", "", nil)
	if rec.Code != http.StatusMethodNotAllowed || env.Code != "METHOD_NOT_ALLOWED" {
		t.Fatalf("expected 405 METHOD_NOT_ALLOWED, got %d %s", rec.Code, env.Code)
	}
}

func TestHandleFavorite_Lifecycle(t *testing.T) {
	router, favorites := newTestRouter(t, stubReporter{}, "")

	rec, env := do(t, router, http.MethodGet, "/api/v1/favorite", "", nil)
	if rec.Code != http.StatusNotFound || env.Code != "FAVORITE_NOT_SET" {
		t.Fatalf("expected FAVORITE_NOT_SET, got %d %s", rec.Code, env.Code)
	}

	rec, _ = do(t, router, http.MethodPut, "/api/v1/favorite", `{"city":" Tokyo "}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on save, got %d", rec.Code)
	}
	if city, ok := favorites.Get(); !ok || city != "Tokyo" {
		t.Fatalf("expected Tokyo stored, got %q", city)
	}

	rec, env = do(t, router, http.MethodGet, "/api/v1/favorite", "", nil)
	var payload models.FavoritePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil || payload.City != "Tokyo" {
		t.Fatalf("expected Tokyo from GET, got %s (%v)", env.Data, err)
	}

	rec, _ = do(t, router, http.MethodDelete, "/api/v1/favorite", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", rec.Code)
	}
	if _, ok := favorites.Get(); ok {
		t.Fatal("expected favorite to be cleared")
	}
}

func TestHandleFavorite_RejectsUnvalidatedCity(t *testing.T) {
	router, favorites := newTestRouter(t, stubReporter{}, "")

	rec, env := do(t, router, http.MethodPut, "/api/v1/favorite", `{"city":"Atlantis"}`, nil)
	if rec.Code != http.StatusNotFound || env.Code != "CITY_NOT_FOUND" {
		t.Fatalf("expected CITY_NOT_FOUND, got %d %s", rec.Code, env.Code)
	}

	rec, env = do(t, router, http.MethodPut, "/api/v1/favorite", `{"city":"   "}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank city, got %d %s", rec.Code, env.Code)
	}

	rec, _ = do(t, router, http.MethodPut, "/api/v1/favorite", `not json`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}

	if _, ok := favorites.Get(); ok {
		t.Fatal("nothing should have been stored")
	}
}

func TestHandleFavorite_WritesNeedToken(t *testing.T) {
	const secret = "test-secret"
	router, _ := newTestRouter(t, stubReporter{}, secret)

	rec, env := do(t, router, http.MethodPut, "/api/v1/favorite", `{"city":"Oslo"}`, nil)
	if rec.Code != http.StatusUnauthorized || env.Code != "UNAUTHORIZED" {
		t.Fatalf("expected 401 without token, got %d %s", rec.Code, env.Code)
	}

	rec, env = do(t, router, http.MethodPut, "/api/v1/favorite", `{"city":"Oslo"}`, map[string]string{"Authorization": "Bearer not-a-jwt"})
	if rec.Code != http.StatusUnauthorized || env.Code != "INVALID_AUTH_TOKEN" {
		t.Fatalf("expected INVALID_AUTH_TOKEN, got %d %s", rec.Code, env.Code)
	}

	expired, err := models.CreateAccessToken("tester", secret, -time.Minute)
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}
	rec, env = do(t, router, http.MethodPut, "/api/v1/favorite", `{"city":"Oslo"}`, map[string]string{"Authorization": "Bearer " + expired})
	if rec.Code != http.StatusUnauthorized || env.Code != "AUTH_TOKEN_EXPIRED" {
		t.Fatalf("expected AUTH_TOKEN_EXPIRED, got %d %s", rec.Code, env.Code)
	}

	token, err := models.CreateAccessToken("tester", secret, time.Hour)
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}
	rec, _ = do(t, router, http.MethodPut, "/api/v1/favorite", `{"city":"Oslo"}`, map[string]string{"Authorization": "Bearer " + token})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}

	// reads stay open
	rec, _ = do(t, router, http.MethodGet, "/api/v1/favorite", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected open GET, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	router, _ := newTestRouter(t, stubReporter{}, "")

	rec, env := do(t, router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || env.Code != "OK" {
		t.Fatalf("expected healthy, got %d %s", rec.Code, env.Code)
	}
}

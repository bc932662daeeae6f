// Package store fetches the current weather data from the OpenWeather API
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/harshitrajsinha/city-weather-go/internal/models"
)

// DefaultBaseAPIUrl is the OpenWeather current weather endpoint
const DefaultBaseAPIUrl = "https://api.openweathermap.org/data/2.5/weather"

const (
	units              = "metric"
	noDescription      = "N/A"
	maxLoggedBodyBytes = 512
)

var validate = validator.New()

// WeatherStore implements the WeatherReporter interface to define fetch logic
type WeatherStore struct {
	BaseAPIUrl string
	APIKey     string
	HTTPClient *http.Client
}

// NewWeatherStore is constructor for store
func NewWeatherStore(baseAPIUrl string, APIKey string) *WeatherStore {
	return &WeatherStore{
		BaseAPIUrl: baseAPIUrl,
		APIKey:     APIKey,
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				MaxIdleConns:    15,
				IdleConnTimeout: 10 * time.Second,
			},
		},
	}
}

// currentWeatherResponse mirrors the provider payload; pointers tell a missing field from a zero one
type currentWeatherResponse struct {
	Coord *struct {
		Lon *float64 `json:"lon" validate:"required"`
		Lat *float64 `json:"lat" validate:"required"`
	} `json:"coord"`
	Weather []weatherCondition `json:"weather" validate:"required,dive"`
	Main    *mainMetrics       `json:"main" validate:"required"`
	Wind    *struct {
		Speed *float64 `json:"speed" validate:"required,gte=0"`
		Deg   *int     `json:"deg"`
		Gust  *float64 `json:"gust"`
	} `json:"wind"`
	Sys *struct {
		Country *string `json:"country"`
	} `json:"sys"`
	Name *string `json:"name" validate:"required"`
	Cod  *int    `json:"cod" validate:"required"`
}

type weatherCondition struct {
	ID          *int    `json:"id"`
	Main        *string `json:"main"`
	Description *string `json:"description" validate:"required"`
	Icon        *string `json:"icon"`
}

type mainMetrics struct {
	Temp      *float64 `json:"temp" validate:"required"`
	FeelsLike *float64 `json:"feels_like" validate:"required"`
	TempMin   *float64 `json:"temp_min"`
	TempMax   *float64 `json:"temp_max"`
	Pressure  *int     `json:"pressure" validate:"required,gt=0"`
	Humidity  *int     `json:"humidity" validate:"required,min=0,max=100"`
}

// GetCurrentWeatherReport fetches the current weather report for a city
func (w *WeatherStore) GetCurrentWeatherReport(ctx context.Context, city string) (models.WeatherRecord, error) {

	city = strings.TrimSpace(city)
	if city == "" {
		return models.WeatherRecord{}, newFetchError(KindInvalidInput, errors.New("city name is blank"))
	}

	// create request
	req, err := w.newRequest(ctx, city)
	if err != nil {
		return models.WeatherRecord{}, newFetchError(KindUnknown, fmt.Errorf("error creating request to fetch current weather data, %w", err))
	}

	client := w.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	// send request and get response
	resp, err := client.Do(req)
	if err != nil {
		return models.WeatherRecord{}, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.WeatherRecord{}, classifyTransportError(ctx, fmt.Errorf("error reading response of current weather data, %w", err))
	}

	if fetchErr := classifyStatus(resp.StatusCode); fetchErr != nil {
		log.Printf("[WARN] provider answered %d for %q", resp.StatusCode, city)
		return models.WeatherRecord{}, fetchErr
	}

	// parse response data
	record, err := decodeWeatherRecord(body)
	if err != nil {
		log.Printf("[ERROR] error parsing response of current weather data, %v, body: %s", err, truncate(body, maxLoggedBodyBytes))
		return models.WeatherRecord{}, newFetchError(KindDecoding, err)
	}

	return record, nil
}

func (w *WeatherStore) newRequest(ctx context.Context, city string) (*http.Request, error) {

	endpoint, err := url.Parse(w.BaseAPIUrl)
	if err != nil {
		return nil, err
	}

	params := endpoint.Query()
	params.Set("q", city)
	params.Set("appid", w.APIKey)
	params.Set("units", units)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	// set headers
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// classifyStatus returns nil for 2xx and the matching FetchError otherwise
func classifyStatus(code int) *FetchError {
	switch {
	case code >= 200 && code <= 299:
		return nil
	case code == http.StatusUnauthorized:
		return &FetchError{Kind: KindUnauthorized, StatusCode: code}
	case code == http.StatusNotFound:
		return &FetchError{Kind: KindNotFound, StatusCode: code}
	default:
		return &FetchError{Kind: KindServerError, StatusCode: code}
	}
}

func classifyTransportError(ctx context.Context, err error) *FetchError {

	// url.Error repeats the request URL, which carries the api key
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		return newFetchError(KindUnknown, err)
	}
	return newFetchError(KindUnreachable, err)
}

func decodeWeatherRecord(body []byte) (models.WeatherRecord, error) {

	var payload currentWeatherResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.WeatherRecord{}, fmt.Errorf("invalid json, %w", err)
	}

	if err := validate.Struct(payload); err != nil {
		return models.WeatherRecord{}, fmt.Errorf("payload does not match schema, %w", err)
	}

	description := noDescription
	if len(payload.Weather) > 0 {
		description = *payload.Weather[0].Description
	}

	windSpeed := 0.0
	if payload.Wind != nil {
		windSpeed = *payload.Wind.Speed
	}

	var country *string
	if payload.Sys != nil && payload.Sys.Country != nil {
		c := *payload.Sys.Country
		country = &c
	}

	return models.WeatherRecord{
		CityName:     *payload.Name,
		Country:      country,
		TemperatureC: *payload.Main.Temp,
		FeelsLikeC:   *payload.Main.FeelsLike,
		Description:  description,
		HumidityPct:  *payload.Main.Humidity,
		PressureHPa:  *payload.Main.Pressure,
		WindSpeedMs:  windSpeed,
	}, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

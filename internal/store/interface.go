// Package store fetches the current weather data from the OpenWeather API
package store

import (
	"context"

	"github.com/harshitrajsinha/city-weather-go/internal/models"
)

// WeatherReporter declares methods that could be implemented to define logic for fetching data or creating mock
type WeatherReporter interface {
	// GetCurrentWeatherReport returns the record for city or a *FetchError
	GetCurrentWeatherReport(ctx context.Context, city string) (models.WeatherRecord, error)
}

// Package models defines structures and functions that are used across the application
package models

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WeatherRecord is the normalized current weather for one city.
// It is only built from a validated provider response and never mutated afterwards.
type WeatherRecord struct {
	CityName     string  `json:"city_name"`
	Country      *string `json:"country,omitempty"`
	TemperatureC float64 `json:"temperature_c"`
	FeelsLikeC   float64 `json:"feels_like_c"`
	Description  string  `json:"description"`
	HumidityPct  int     `json:"humidity_pct"`
	PressureHPa  int     `json:"pressure_hpa"`
	WindSpeedMs  float64 `json:"wind_speed_ms"`
}

// WeatherDetail holds the display lines of the detail view
type WeatherDetail struct {
	Location    string `json:"location"`
	Temperature string `json:"temperature"`
	FeelsLike   string `json:"feels_like"`
	Description string `json:"description"`
	Humidity    string `json:"humidity"`
	Pressure    string `json:"pressure"`
	WindSpeed   string `json:"wind_speed"`
}

// TemperatureString formats the temperature with one decimal and degree symbol
func (w WeatherRecord) TemperatureString() string {
	return fmt.Sprintf("%.1f°C", w.TemperatureC)
}

// FeelsLikeString formats the feels-like temperature
func (w WeatherRecord) FeelsLikeString() string {
	return fmt.Sprintf("%.1f°C", w.FeelsLikeC)
}

// CapitalizedDescription returns the provider description in title case
func (w WeatherRecord) CapitalizedDescription() string {
	// a Caser keeps state, so one is built per call
	return cases.Title(language.English).String(w.Description)
}

// Location returns "City, CC" when the country is known
func (w WeatherRecord) Location() string {
	if w.Country != nil && *w.Country != "" {
		return fmt.Sprintf("%s, %s", w.CityName, *w.Country)
	}
	return w.CityName
}

// Detail builds the labelled lines shown for a loaded record
func (w WeatherRecord) Detail() WeatherDetail {
	return WeatherDetail{
		Location:    w.Location(),
		Temperature: w.TemperatureString(),
		FeelsLike:   "Feels like " + w.FeelsLikeString(),
		Description: w.CapitalizedDescription(),
		Humidity:    fmt.Sprintf("Humidity: %d%%", w.HumidityPct),
		Pressure:    fmt.Sprintf("Pressure: %d hPa", w.PressureHPa),
		WindSpeed:   fmt.Sprintf("Wind: %.1f m/s", w.WindSpeedMs),
	}
}

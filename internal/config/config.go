// Package config contains the functionality to load environment variables into a golang-based struct for accessibility
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config defines the structure of env vars that will be loaded to the project
type Config struct {
	BaseAPIUrl     string        `envconfig:"BASE_API_URL" default:"https://api.openweathermap.org/data/2.5/weather"`
	APIKey         string        `envconfig:"API_KEY"`
	Port           string        `envconfig:"PORT" default:"8086"`
	DBPath         string        `envconfig:"DB_PATH" default:"./app.db"`
	LogFile        string        `envconfig:"LOG_FILE" default:"logs/app.log"`
	SplashDuration time.Duration `envconfig:"SPLASH_DURATION" default:"2s"`
	SecretAuthKey  string        `envconfig:"SECRET_AUTH_KEY"`
}

// Load loads the env vars to the project in a defined go struct for accessibility
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error loading configuration data, %w", err)
	}

	if cfg.APIKey == "" {
		log.Println("[WARN] API_KEY is not set, the weather provider will reject requests")
	}
	if cfg.SplashDuration < 0 {
		return nil, fmt.Errorf("error loading configuration data, SPLASH_DURATION must not be negative")
	}

	return &cfg, nil
}

// LoadDotEnv loads a .env file into the process environment when one exists
func LoadDotEnv(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		log.Printf("[INFO] no .env file loaded, %v", err)
	}
}

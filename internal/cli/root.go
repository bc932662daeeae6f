// Package cli is the terminal front end: one-shot commands, an interactive prompt and the API server
package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/harshitrajsinha/city-weather-go/internal/config"
	"github.com/harshitrajsinha/city-weather-go/internal/database"
	"github.com/harshitrajsinha/city-weather-go/internal/handler"
	"github.com/harshitrajsinha/city-weather-go/internal/models"
	"github.com/harshitrajsinha/city-weather-go/internal/preferences"
	"github.com/harshitrajsinha/city-weather-go/internal/search"
	"github.com/harshitrajsinha/city-weather-go/internal/store"
	"github.com/spf13/cobra"
)

// Dependencies are the collaborators a command works with
type Dependencies struct {
	Reporter  store.WeatherReporter
	Favorites *preferences.FavoriteCityStore
	Health    handler.HealthChecker
	Close     func() error
}

func (d *Dependencies) release() {
	if d.Close == nil {
		return
	}
	if err := d.Close(); err != nil {
		log.Printf("[WARN] error releasing dependencies, %v", err)
	}
}

// Opener builds the dependencies for a command run
type Opener func(cfg *config.Config) (*Dependencies, error)

// OpenDependencies opens the sqlite database and the provider client described by cfg
func OpenDependencies(cfg *config.Config) (*Dependencies, error) {

	dbClient, err := database.InitDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing local storage, %w", err)
	}

	return &Dependencies{
		Reporter:  store.NewWeatherStore(cfg.BaseAPIUrl, cfg.APIKey),
		Favorites: preferences.NewFavoriteCityStore(dbClient),
		Health:    dbClient,
		Close:     dbClient.Close,
	}, nil
}

// NewRootCommand builds the command tree
func NewRootCommand(cfg *config.Config, open Opener) *cobra.Command {

	root := &cobra.Command{
		Use:           "weather",
		Short:         "Search the current weather of a city and keep a favorite one",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSearchCommand(cfg, open),
		newFavoriteCommand(cfg, open),
		newInteractiveCommand(cfg, open),
		newServeCommand(cfg, open),
		newTokenCommand(cfg),
	)

	return root
}

// withController runs fn with a fresh controller and releases the dependencies afterwards
func withController(cfg *config.Config, open Opener, fn func(c *search.Controller) error) error {

	deps, err := open(cfg)
	if err != nil {
		return err
	}
	defer deps.release()

	return fn(search.NewController(deps.Reporter, deps.Favorites))
}

func renderDetail(w io.Writer, record models.WeatherRecord) {
	detail := record.Detail()
	fmt.Fprintln(w, detail.Location)
	fmt.Fprintf(w, "%s  %s\n", detail.Temperature, detail.Description)
	fmt.Fprintln(w, detail.FeelsLike)
	fmt.Fprintln(w, detail.Humidity)
	fmt.Fprintln(w, detail.Pressure)
	fmt.Fprintln(w, detail.WindSpeed)
}

// renderState prints one state transition for the terminal
func renderState(w io.Writer, state search.State) {
	switch state.Status {
	case search.StatusLoading:
		fmt.Fprintln(w, "Loading...")
	case search.StatusLoaded:
		renderDetail(w, *state.Record)
	case search.StatusError:
		fmt.Fprintf(w, "Error: %s\n", state.Message)
	}
}

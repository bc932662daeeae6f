package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harshitrajsinha/city-weather-go/internal/config"
	"github.com/harshitrajsinha/city-weather-go/internal/search"
	"github.com/spf13/cobra"
)

func newFavoriteCommand(cfg *config.Config, open Opener) *cobra.Command {

	cmd := &cobra.Command{
		Use:   "favorite",
		Short: "Read, set or clear the favorite city",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the favorite city",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withController(cfg, open, func(c *search.Controller) error {
					city, ok := c.FavoriteCity()
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), "No favorite city saved")
						return nil
					}
					fmt.Fprintln(cmd.OutOrStdout(), city)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <city>",
			Short: "Validate a city with the provider and save it as favorite",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withController(cfg, open, func(c *search.Controller) error {
					c.Submit(cmd.Context(), strings.Join(args, " "))
					c.Wait()

					if state := c.State(); state.Status != search.StatusLoaded {
						return errors.New(state.Message)
					}
					c.SaveFavorite()

					city, _ := c.FavoriteCity()
					fmt.Fprintf(cmd.OutOrStdout(), "Saved %s as favorite city\n", city)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget the favorite city",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withController(cfg, open, func(c *search.Controller) error {
					c.ClearFavorite()
					fmt.Fprintln(cmd.OutOrStdout(), "Cleared favorite city")
					return nil
				})
			},
		},
	)

	return cmd
}

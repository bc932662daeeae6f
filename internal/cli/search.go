package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harshitrajsinha/city-weather-go/internal/config"
	"github.com/harshitrajsinha/city-weather-go/internal/search"
	"github.com/spf13/cobra"
)

func newSearchCommand(cfg *config.Config, open Opener) *cobra.Command {

	var save bool

	cmd := &cobra.Command{
		Use:   "search <city>",
		Short: "Show the current weather of a city",
		RunE: func(cmd *cobra.Command, args []string) error {
			city := strings.Join(args, " ")

			return withController(cfg, open, func(c *search.Controller) error {
				out := cmd.OutOrStdout()
				c.Subscribe(func(s search.State) {
					if s.Status == search.StatusLoading {
						renderState(out, s)
					}
				})

				c.Submit(cmd.Context(), city)
				c.Wait()

				state := c.State()
				if state.Status != search.StatusLoaded {
					return errors.New(state.Message)
				}
				renderDetail(out, *state.Record)

				if save && c.SaveFavorite() {
					fmt.Fprintf(out, "Saved %s as favorite city\n", strings.TrimSpace(city))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "save the city as favorite when the search succeeds")

	return cmd
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harshitrajsinha/city-weather-go/internal/config"
	"github.com/harshitrajsinha/city-weather-go/internal/search"
	"github.com/spf13/cobra"
)

const banner = `
  City Weather
  current conditions for any city
`

const interactiveHelp = `type a city to search, or one of:
  :save   save the last found city as favorite
  :clear  forget the favorite city
  :reset  clear the current result
  :fav    show the favorite city
  :quit   leave`

func newInteractiveCommand(cfg *config.Config, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Search cities from a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withController(cfg, open, func(c *search.Controller) error {
				return runInteractive(cmd.Context(), c, cmd.InOrStdin(), cmd.OutOrStdout(), cfg.SplashDuration)
			})
		},
	}
}

func showSplash(ctx context.Context, out io.Writer, d time.Duration) error {
	fmt.Fprint(out, banner)
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func prompt(out io.Writer, c *search.Controller) {
	if city, ok := c.FavoriteCity(); ok {
		fmt.Fprintf(out, "city [%s]> ", city)
		return
	}
	fmt.Fprint(out, "city> ")
}

// runInteractive reads commands from in until :quit or end of input
func runInteractive(ctx context.Context, c *search.Controller, in io.Reader, out io.Writer, splash time.Duration) error {

	if err := showSplash(ctx, out, splash); err != nil {
		return err
	}
	fmt.Fprintln(out, interactiveHelp)

	unsubscribe := c.Subscribe(func(s search.State) {
		renderState(out, s)
	})
	defer unsubscribe()

	scanner := bufio.NewScanner(in)
	for {
		prompt(out, c)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case ":quit", ":q":
			return nil
		case ":save":
			if c.SaveFavorite() {
				city, _ := c.FavoriteCity()
				fmt.Fprintf(out, "Saved %s as favorite city\n", city)
			} else {
				fmt.Fprintln(out, "Search a city first")
			}
		case ":clear":
			c.ClearFavorite()
			fmt.Fprintln(out, "Cleared favorite city")
		case ":reset":
			c.Reset()
		case ":fav":
			if city, ok := c.FavoriteCity(); ok {
				fmt.Fprintln(out, city)
			} else {
				fmt.Fprintln(out, "No favorite city saved")
			}
		case "":
			city, _ := c.FavoriteCity()
			c.Submit(ctx, city)
			c.Wait()
		default:
			c.Submit(ctx, line)
			c.Wait()
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

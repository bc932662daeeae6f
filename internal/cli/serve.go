package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harshitrajsinha/city-weather-go/internal/config"
	"github.com/harshitrajsinha/city-weather-go/internal/handler"
	"github.com/spf13/cobra"
)

func newServeCommand(cfg *config.Config, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the weather and favorite city JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {

			deps, err := open(cfg)
			if err != nil {
				return err
			}
			defer deps.release()

			if cfg.SecretAuthKey == "" {
				log.Println("[WARN] SECRET_AUTH_KEY is not set, favorite writes are not protected")
			}

			weatherHandler := handler.NewWeatherHandler(deps.Reporter, deps.Favorites, deps.Health)
			server := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           handler.NewRouter(weatherHandler, cfg.SecretAuthKey),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, server, cmd.OutOrStdout())
		},
	}
}

// serve runs server until ctx is done, then shuts it down gracefully
func serve(ctx context.Context, server *http.Server, out io.Writer) error {

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("[INFO] server listening on %s", server.Addr)
		fmt.Fprintf(out, "Listening on %s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("error running server, %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[INFO] shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server, %w", err)
	}
	log.Println("[INFO] server stopped")
	return nil
}

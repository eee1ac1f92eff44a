package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurante/api"
	"restaurante/bot"
	"restaurante/db"
	"restaurante/services"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		notifier, err := bot.New(cfg.Telegram)
		if err != nil {
			return err
		}

		addr := cfg.HTTP.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		e := api.BuildServer(services.PoolStore{}, notifier, cfg.Stock.LowThreshold, cfg.HTTP.LogLevel)
		errCh := make(chan error, 1)
		go func() {
			log.Printf("listening on %s", addr)
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Printf("shutting down")
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides HTTP_ADDR)")
}

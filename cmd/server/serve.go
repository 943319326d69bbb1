package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Level-R/invoice-app/internal/db"
	"github.com/Level-R/invoice-app/internal/logger"
	"github.com/Level-R/invoice-app/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("serve")
		dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting server")

		srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.New(dbConn, cfg)}
		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", srv.Addr).Msg("listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-quit:
		}
		log.Info().Msg("shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("error during shutdown")
			return err
		}
		log.Info().Msg("server gracefully stopped")
		return nil
	},
}

package main

import (
	"github.com/Level-R/invoice-app/internal/db"
	"github.com/Level-R/invoice-app/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := db.ConnectAndMigrate(cfg.DatabaseDSN); err != nil {
			return err
		}
		log := logger.WithComponent("migrate")
		log.Info().Msg("migrations completed")
		return nil
	},
}

package main

import (
	"github.com/Level-R/invoice-app/internal/db"
	"github.com/Level-R/invoice-app/internal/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo products when the catalog is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		if err := db.Seed(dbConn); err != nil {
			return err
		}
		log := logger.WithComponent("seed")
		log.Info().Msg("seeding completed")
		return nil
	},
}

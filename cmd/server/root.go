package main

import (
	"fmt"
	"os"

	"github.com/Level-R/invoice-app/internal/config"
	"github.com/Level-R/invoice-app/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// cfg is loaded once in the persistent pre-run and shared by the
// subcommands.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:     "invoice-app",
	Short:   "Invoice & inventory server",
	Long:    "Invoice & inventory server: product stock, invoices, payments and returns\nbacked by a single consistent ledger store.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg = config.Load()
		return logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: "stdout"})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, reconcileCmd)
}

package main

import (
	"fmt"

	"github.com/Level-R/invoice-app/internal/core"
	"github.com/Level-R/invoice-app/internal/db"
	"github.com/Level-R/invoice-app/internal/logger"
	"github.com/spf13/cobra"
)

var reconcileFix bool

// reconcileCmd cross-checks the stored paid/due projections against the
// payment rows. With --fix it rewrites any drifted invoice from the
// authoritative payment sums.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Verify invoice paid/due projections against the payment ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("reconcile")
		dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		rec := core.NewReconciler(dbConn)

		if reconcileFix {
			fixed, err := rec.Repair()
			if err != nil {
				return err
			}
			for _, d := range fixed {
				log.Warn().Msg("repaired: " + d.String())
			}
			log.Info().Int("repaired", len(fixed)).Msg("reconciliation finished")
			return nil
		}

		drifts, err := rec.Check()
		if err != nil {
			return err
		}
		for _, d := range drifts {
			log.Warn().Msg(d.String())
		}
		if len(drifts) > 0 {
			return fmt.Errorf("%d drifted field(s) found; rerun with --fix to repair", len(drifts))
		}
		log.Info().Msg("ledger is consistent")
		return nil
	},
}

func init() {
	reconcileCmd.Flags().BoolVar(&reconcileFix, "fix", false, "rewrite drifted invoices from the payment rows")
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/basel-ax/imagegate/internal/logging"
	"github.com/basel-ax/imagegate/internal/service"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete ledger rows older than the retention window",
	RunE:  runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.LedgerEnabled() {
		return fmt.Errorf("ledger is not configured: set DB_HOST")
	}

	ctx := context.Background()
	db, repo, err := openLedger(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := service.NewRetentionService(repo, cfg.LedgerRetention).Prune(ctx)
	if err != nil {
		return err
	}
	logging.Info("ledger pruned", "deleted", n, "retention", cfg.LedgerRetention)
	return nil
}

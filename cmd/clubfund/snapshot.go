package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clubfund/internal/aggregate"
	"clubfund/internal/config"
	"clubfund/internal/storage/postgres"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export aggregated listings into Postgres for reporting",
		RunE:  runSnapshot,
	}

	cmd.Flags().String("pg-dsn", "", "Postgres DSN")

	return cmd
}

// runSnapshot re-aggregates everything from chain and upserts the result.
// The snapshot tables are a reporting export, never a read path for the
// aggregator.
func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSnapshot(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	aggregator, chainClient, err := newAggregator(ctx, cfg.Config, logger)
	if err != nil {
		return err
	}
	defer chainClient.Close()

	organizations, err := aggregator.Organizations(ctx, aggregate.Page{})
	if err != nil {
		return err
	}
	if err := store.UpsertOrganizations(ctx, organizations.Organizations); err != nil {
		return err
	}

	campaigns, err := aggregator.Campaigns(ctx, aggregate.Page{})
	if err != nil {
		return err
	}
	if err := store.UpsertCampaigns(ctx, campaigns.Campaigns); err != nil {
		return err
	}

	expenses, err := aggregator.Expenses(ctx, aggregate.Page{})
	if err != nil {
		return err
	}
	if err := store.UpsertExpenses(ctx, expenses.Expenses); err != nil {
		return err
	}

	logger.Info("snapshot complete",
		zap.Int("organizations", len(organizations.Organizations)),
		zap.Int("campaigns", len(campaigns.Campaigns)),
		zap.Int("expenses", len(expenses.Expenses)),
	)

	return nil
}

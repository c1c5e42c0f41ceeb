package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clubfund/internal/aggregate"
	"clubfund/internal/model"
	"clubfund/internal/storage"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "list organizations|campaigns|expenses",
		Short:     "List entities from the on-chain ledgers",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"organizations", "campaigns", "expenses"},
		RunE:      runList,
	}

	cmd.Flags().Uint64("start", 0, "start index into the ledger")
	cmd.Flags().Uint64("limit", 0, "page size, 0 means all")
	cmd.Flags().String("out", "", "optional JSONL output path")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
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

	aggregator, chainClient, err := newAggregator(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer chainClient.Close()

	page := aggregate.Page{Start: cfg.Start, Limit: cfg.Limit}

	switch args[0] {
	case "organizations":
		listing, err := aggregator.Organizations(ctx, page)
		if err != nil {
			return err
		}
		return emitListing(logger, cfg.Out, "organizations", listing, listing.Organizations, listing.Total, listing.HasMore)
	case "campaigns":
		listing, err := aggregator.Campaigns(ctx, page)
		if err != nil {
			return err
		}
		return emitListing(logger, cfg.Out, "campaigns", listing, listing.Campaigns, listing.Total, listing.HasMore)
	case "expenses":
		listing, err := aggregator.Expenses(ctx, page)
		if err != nil {
			return err
		}
		return emitListing(logger, cfg.Out, "expenses", listing, listing.Expenses, listing.Total, listing.HasMore)
	default:
		return fmt.Errorf("unknown entity kind: %s", args[0])
	}
}

func emitListing[T model.OrganizationView | model.CampaignView | model.ExpenseView](
	logger *zap.Logger,
	outPath string,
	kind string,
	listing interface{},
	records []T,
	total uint64,
	hasMore bool,
) error {
	if outPath != "" {
		if err := storage.NewJsonlWriter[T](outPath).Append(records); err != nil {
			return err
		}
	}
	logger.Info(kind+" listed",
		zap.Uint64("total", total),
		zap.Int("returned", len(records)),
		zap.Bool("has_more", hasMore),
	)
	return printJSON(listing)
}

func printJSON(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

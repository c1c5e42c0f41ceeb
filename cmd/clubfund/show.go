package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"clubfund/internal/model"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show organization|campaign|expense <address-or-id>",
		Short: "Show one entity with its resolved parents",
		Args:  cobra.ExactArgs(2),
		RunE:  runShow,
	}

	cmd.Flags().String("account", "", "optional account to resolve membership status against an organization")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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

	switch args[0] {
	case "organization":
		if !common.IsHexAddress(args[1]) {
			return fmt.Errorf("not a valid organization address: %q", args[1])
		}
		address := common.HexToAddress(args[1])

		detail, err := aggregator.OrganizationDetail(ctx, address)
		if err != nil {
			return err
		}

		account, _ := cmd.Flags().GetString("account")
		if account != "" {
			if !common.IsHexAddress(account) {
				return fmt.Errorf("not a valid account address: %q", account)
			}
			status, err := aggregator.MembershipStatus(ctx, address, common.HexToAddress(account))
			if err != nil {
				return err
			}
			return printJSON(struct {
				model.OrganizationDetailView
				Viewer model.MembershipStatus `json:"viewer"`
			}{detail, status})
		}
		return printJSON(detail)
	case "campaign":
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		detail, err := aggregator.CampaignDetail(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(detail)
	case "expense":
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		detail, err := aggregator.ExpenseDetail(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(detail)
	default:
		return fmt.Errorf("unknown entity kind: %s", args[0])
	}
}

func parseID(input string) (uint64, error) {
	id, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a valid id: %q", input)
	}
	return id, nil
}

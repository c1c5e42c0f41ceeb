package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"clubfund/internal/aggregate"
	"clubfund/internal/chain"
	"clubfund/internal/config"
	"clubfund/internal/contracts"
)

func main() {
	root := &cobra.Command{
		Use:          "clubfund",
		Short:        "Clubfund on-chain viewer and transaction builder",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("rpc", config.DefaultRPCURL, "chain RPC URL")
	root.PersistentFlags().String("registry", config.DefaultRegistry, "organization registry address")
	root.PersistentFlags().String("funding-pool", config.DefaultFundingPool, "funding pool address")
	root.PersistentFlags().String("expense-ledger", config.DefaultExpenseLedger, "expense ledger address")
	root.PersistentFlags().Uint64("logs-from-block", 0, "lower bound for event-log queries")
	root.PersistentFlags().Int64("rate", 1800, "fixed native-token fiat rate for display")
	root.PersistentFlags().String("ipfs-gateway", "https://ipfs.io/ipfs/", "HTTP gateway for ipfs:// receipt URIs")
	root.PersistentFlags().Int("workers", 4, "bounded concurrency for listing reads (1 = sequential)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newListCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newTxCmd())
	root.AddCommand(newSnapshotCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	return config.Load(cfgFile, cmd.Flags())
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func contractConfig(cfg config.Config) (contracts.Config, error) {
	registry, err := parseContractAddress("registry", cfg.Registry)
	if err != nil {
		return contracts.Config{}, err
	}
	fundingPool, err := parseContractAddress("funding pool", cfg.FundingPool)
	if err != nil {
		return contracts.Config{}, err
	}
	expenseLedger, err := parseContractAddress("expense ledger", cfg.ExpenseLedger)
	if err != nil {
		return contracts.Config{}, err
	}

	return contracts.Config{
		Registry:      registry,
		FundingPool:   fundingPool,
		ExpenseLedger: expenseLedger,
		LogsFromBlock: cfg.LogsFromBlock,
	}, nil
}

func parseContractAddress(name, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%s address is not a valid address: %q", name, value)
	}
	return common.HexToAddress(value), nil
}

// newAggregator wires the chain client, gateway, and aggregator. The caller
// closes the returned client.
func newAggregator(ctx context.Context, cfg config.Config, logger *zap.Logger) (*aggregate.Aggregator, *chain.Client, error) {
	contractCfg, err := contractConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect rpc: %w", err)
	}

	gateway, err := contracts.NewGateway(chainClient, contractCfg)
	if err != nil {
		chainClient.Close()
		return nil, nil, err
	}

	aggregator := aggregate.New(gateway, aggregate.Options{
		FiatRate:    cfg.FiatRate,
		IPFSGateway: cfg.IPFSGateway,
		Workers:     cfg.Workers,
	}, logger)

	return aggregator, chainClient, nil
}

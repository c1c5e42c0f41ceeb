package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"clubfund/internal/convert"
)

// Defaults point at the Base Sepolia deployment of the contract suite.
const (
	DefaultRPCURL        = "https://base-sepolia-rpc.publicnode.com"
	DefaultRegistry      = "0xfbc86d1B462C76328D812C50cC2b727dF708D978"
	DefaultFundingPool   = "0xea91cB28e783518E7C55c67467Aa16e54D33548E"
	DefaultExpenseLedger = "0x8668b408E3bA5c8Ccd42Bd810a456104D963603A"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL        string
	Registry      string
	FundingPool   string
	ExpenseLedger string
	LogsFromBlock uint64
	FiatRate      int64
	IPFSGateway   string
	Workers       int
	Start         uint64
	Limit         uint64
	Out           string
	LogLevel      string
}

// SnapshotConfig extends Config with the Postgres export target.
type SnapshotConfig struct {
	Config
	PGDSN string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return Config{}, err
	}
	return fromViper(v), nil
}

// LoadSnapshot merges config file, environment variables, and flags into
// SnapshotConfig.
func LoadSnapshot(cfgFile string, flags *pflag.FlagSet) (SnapshotConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return SnapshotConfig{}, err
	}
	return SnapshotConfig{
		Config: fromViper(v),
		PGDSN:  v.GetString("pg-dsn"),
	}, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("CLUBFUND")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("rpc", DefaultRPCURL)
	v.SetDefault("registry", DefaultRegistry)
	v.SetDefault("funding-pool", DefaultFundingPool)
	v.SetDefault("expense-ledger", DefaultExpenseLedger)
	v.SetDefault("rate", convert.DefaultEthUsdRate)
	v.SetDefault("ipfs-gateway", convert.DefaultIPFSGateway)
	v.SetDefault("workers", 4)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func fromViper(v *viper.Viper) Config {
	return Config{
		RPCURL:        v.GetString("rpc"),
		Registry:      v.GetString("registry"),
		FundingPool:   v.GetString("funding-pool"),
		ExpenseLedger: v.GetString("expense-ledger"),
		LogsFromBlock: v.GetUint64("logs-from-block"),
		FiatRate:      v.GetInt64("rate"),
		IPFSGateway:   v.GetString("ipfs-gateway"),
		Workers:       v.GetInt("workers"),
		Start:         v.GetUint64("start"),
		Limit:         v.GetUint64("limit"),
		Out:           v.GetString("out"),
		LogLevel:      v.GetString("log-level"),
	}
}

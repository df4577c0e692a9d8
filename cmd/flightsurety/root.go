package main

import (
	"fmt"

	"github.com/flightsurety/surety-contract/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	ConfigPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "flightsurety",
		Short: "FlightSurety flight delay insurance tools",
		Long: `Tools for the FlightSurety flight delay insurance contracts on the Neo
blockchain: contract deployment, oracle node and flight queries.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to YAML configuration file")

	cmd.AddCommand(newDeployCommand(opts))
	cmd.AddCommand(newOracleCommand(opts))
	cmd.AddCommand(newFlightCommand(opts))
	cmd.AddCommand(newDumpCommand(opts))

	return cmd
}

func (o *rootOptions) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	return cfg, log, nil
}

func newLogger(c config.LoggingConfig) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = lvl
	zc.Encoding = "console"

	return zc.Build()
}

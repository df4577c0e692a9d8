package main

import (
	"fmt"

	"github.com/flightsurety/surety-contract/contracts"
	"github.com/flightsurety/surety-contract/deploy"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/spf13/cobra"
)

type deployOptions struct {
	*rootOptions
	Account      string
	FirstAirline string
	ContractsDir string
}

func newDeployCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &deployOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy FlightSurety contracts",
		Long: `Deploy the data and application contracts signed by the wallet account.

The account becomes the owner of the data contract. Already deployed
contracts are kept, so the command can be safely repeated.

Example:
  flightsurety deploy -c config.yml --first-airline NbnjKGMBJzJ6j5PHeYhjJDaQ5Vy5UYu4Fv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeploy(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Account, "account", "", "signer address (wallet default if empty)")
	cmd.Flags().StringVar(&opts.FirstAirline, "first-airline", "", "first airline address (overrides config)")
	cmd.Flags().StringVar(&opts.ContractsDir, "contracts", "", "directory with compiled contracts (overrides config)")

	return cmd
}

func runDeploy(cmd *cobra.Command, opts *deployOptions) error {
	cfg, log, err := opts.load()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if opts.FirstAirline != "" {
		cfg.Contracts.FirstAirline = opts.FirstAirline
	}
	if opts.ContractsDir != "" {
		cfg.Contracts.Dir = opts.ContractsDir
	}

	firstAirline, err := cfg.Contracts.FirstAirlineAccount()
	if err != nil {
		return fmt.Errorf("first airline: %w", err)
	}

	cs, err := contracts.ReadDir(cfg.Contracts.Dir)
	if err != nil {
		return err
	}

	acc, err := openAccount(cfg.Wallet, opts.Account)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	b, err := dialBlockchain(ctx, cfg.RPC)
	if err != nil {
		return err
	}
	defer b.close()

	res, err := deploy.Deploy(ctx, deploy.Prm{
		Logger:       log,
		Blockchain:   b.rpc,
		LocalAccount: acc,
		Contracts:    cs,
		FirstAirline: firstAirline,
	})
	if err != nil {
		return fmt.Errorf("deploy: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "data contract: %s (%s)\n", res.DataContract.StringLE(), address.Uint160ToString(res.DataContract))
	fmt.Fprintf(cmd.OutOrStdout(), "app contract:  %s (%s)\n", res.AppContract.StringLE(), address.Uint160ToString(res.AppContract))

	return nil
}

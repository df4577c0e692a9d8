package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flightsurety/surety-contract/contracts/suretydata/flightstatus"
	"github.com/flightsurety/surety-contract/internal/config"
	"github.com/flightsurety/surety-contract/internal/oracle"
	rpcapp "github.com/flightsurety/surety-contract/rpc/suretyapp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

type oracleOptions struct {
	*rootOptions
	Accounts []string
	Status   string
}

func newOracleCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &oracleOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "oracle",
		Short: "Run oracle node answering flight status requests",
		Long: `Run oracle node answering flight status requests.

Every given wallet account (all accounts by default) is registered as an
oracle if needed, then the node listens to OracleRequest events of the
application contract and answers with the configured status.

Example:
  flightsurety oracle -c config.yml --status LateAirline`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOracle(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Accounts, "accounts", nil, "oracle account addresses (all wallet accounts if empty)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "reported status: random or a final status name (overrides config)")

	return cmd
}

func statusSource(c config.OracleConfig) (oracle.StatusSource, error) {
	s, err := c.FinalStatus()
	if err != nil {
		return nil, err
	}

	if s == flightstatus.Unknown {
		return oracle.RandomStatus(time.Now().UnixNano()), nil
	}

	return oracle.FixedStatus(s), nil
}

func runOracle(cmd *cobra.Command, opts *oracleOptions) error {
	cfg, log, err := opts.load()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if opts.Status != "" {
		cfg.Oracle.Status = opts.Status
	}

	src, err := statusSource(cfg.Oracle)
	if err != nil {
		return err
	}

	app, err := cfg.Contracts.AppContract()
	if err != nil {
		return fmt.Errorf("application contract: %w", err)
	}

	accs, err := openAccounts(cfg.Wallet, opts.Accounts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := dialBlockchain(ctx, cfg.RPC)
	if err != nil {
		return err
	}
	defer b.close()

	oracles := make([]oracle.Account, 0, len(accs))

	for _, acc := range accs {
		act, err := b.actor(acc)
		if err != nil {
			return err
		}

		c := rpcapp.New(act, app)

		indexes, err := oracle.Register(ctx, log, c, waitFunc(act), acc.ScriptHash())
		if err != nil {
			return fmt.Errorf("oracle %s: %w", acc.Address, err)
		}

		oracles = append(oracles, oracle.Account{
			Address:   acc.ScriptHash(),
			Indexes:   indexes,
			Submitter: c,
		})
	}

	// node.Run may return before ctx is done, stop event forwarding then.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := b.subscribeOracleRequests(ctx, log, app)
	if err != nil {
		return err
	}

	node := oracle.New(oracle.Prm{
		Logger:   log,
		Accounts: oracles,
		Source:   src,
		Limiter:  rate.NewLimiter(rate.Limit(cfg.Oracle.SubmitRate), cfg.Oracle.SubmitBurst),
	})

	err = node.Run(ctx, events)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

package main

import (
	"fmt"
	"strconv"

	"github.com/flightsurety/surety-contract/internal/oracle"
	rpcapp "github.com/flightsurety/surety-contract/rpc/suretyapp"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/spf13/cobra"
)

func newFlightCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flight",
		Short: "Flight queries and status requests",
	}

	cmd.AddCommand(newFlightKeyCommand())
	cmd.AddCommand(newFlightStatusCommand(rootOpts))
	cmd.AddCommand(newFlightRequestCommand(rootOpts))

	return cmd
}

func newFlightKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "key <airline> <code> <timestamp>",
		Short: "Print flight key",
		Long: `Print key of the flight identified by airline address, flight code and
departure timestamp in milliseconds. Computed locally.

Example:
  flightsurety flight key NbnjKGMBJzJ6j5PHeYhjJDaQ5Vy5UYu4Fv ND1309 1700000000000`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			airline, err := address.StringToUint160(args[0])
			if err != nil {
				return fmt.Errorf("invalid airline address: %w", err)
			}

			ts, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), oracle.FlightKeyString(rpcapp.FlightKey(airline, args[1], ts)))

			return nil
		},
	}
}

func newFlightStatusCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <flight-key>",
		Short: "Print registered flight and its status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := oracle.ParseFlightKey(args[0])
			if err != nil {
				return fmt.Errorf("invalid flight key: %w", err)
			}

			cfg, log, err := rootOpts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			app, err := cfg.Contracts.AppContract()
			if err != nil {
				return fmt.Errorf("application contract: %w", err)
			}

			b, err := dialBlockchain(cmd.Context(), cfg.RPC)
			if err != nil {
				return err
			}
			defer b.close()

			f, err := rpcapp.NewReader(invoker.New(b.rpc, nil), app).GetFlight(key)
			if err != nil {
				return fmt.Errorf("get flight: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "airline:   %s\n", address.Uint160ToString(f.Airline))
			fmt.Fprintf(out, "flight:    %s\n", f.Code)
			fmt.Fprintf(out, "timestamp: %d\n", f.Timestamp)
			fmt.Fprintf(out, "status:    %s\n", f.Status)

			return nil
		},
	}
}

func newFlightRequestCommand(rootOpts *rootOptions) *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "request <flight-key>",
		Short: "Ask oracles for the flight status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := oracle.ParseFlightKey(args[0])
			if err != nil {
				return fmt.Errorf("invalid flight key: %w", err)
			}

			cfg, log, err := rootOpts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			app, err := cfg.Contracts.AppContract()
			if err != nil {
				return fmt.Errorf("application contract: %w", err)
			}

			acc, err := openAccount(cfg.Wallet, account)
			if err != nil {
				return err
			}

			b, err := dialBlockchain(cmd.Context(), cfg.RPC)
			if err != nil {
				return err
			}
			defer b.close()

			act, err := b.actor(acc)
			if err != nil {
				return err
			}

			txHash, vub, err := rpcapp.New(act, app).RequestFlightStatus(key)
			if err != nil {
				return fmt.Errorf("send request: %w", err)
			}

			if err = waitFunc(act)(cmd.Context(), txHash, vub); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "flight status requested in %s\n", txHash.StringLE())

			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "signer address (wallet default if empty)")

	return cmd
}

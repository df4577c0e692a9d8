package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/flightsurety/surety-contract/internal/config"
	rpcapp "github.com/flightsurety/surety-contract/rpc/suretyapp"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/spf13/cobra"
)

// storageItem is a binary contract storage entry, base64 in JSON.
type storageItem struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

type contractDump struct {
	Name    string         `json:"name"`
	State   state.Contract `json:"state"`
	Storage []storageItem  `json:"storage"`
}

// storageDump is a snapshot of FlightSurety contracts at some block.
type storageDump struct {
	Block     uint32         `json:"block"`
	Contracts []contractDump `json:"contracts"`
}

func (x *storageDump) write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")

	if err := enc.Encode(x); err != nil {
		return fmt.Errorf("encode dump to JSON: %w", err)
	}

	return nil
}

func newDumpCommand(rootOpts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump states and storages of FlightSurety contracts",
		Long: `Dump states and storages of the application and data contracts into a
JSON file. The node must keep state roots (StateRootInHeader or stateservice).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := rootOpts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			d, err := pullDump(cmd, cfg)
			if err != nil {
				return err
			}

			f, err := os.OpenFile(output, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
			if err != nil {
				return fmt.Errorf("create dump file: %w", err)
			}
			defer f.Close()

			if err = d.write(f); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "FlightSurety contracts are dumped to '%s' at block #%d\n", output, d.Block)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "flightsurety-dump.json", "output file (must not exist)")

	return cmd
}

func pullDump(cmd *cobra.Command, cfg *config.Config) (*storageDump, error) {
	app, err := cfg.Contracts.AppContract()
	if err != nil {
		return nil, fmt.Errorf("application contract: %w", err)
	}

	b, err := dialBlockchain(cmd.Context(), cfg.RPC)
	if err != nil {
		return nil, err
	}
	defer b.close()

	data, err := rpcapp.NewReader(invoker.New(b.rpc, nil), app).DataContract()
	if err != nil {
		return nil, fmt.Errorf("get data contract address: %w", err)
	}

	nLatestBlock, err := b.rpc.GetBlockCount()
	if err != nil {
		return nil, fmt.Errorf("get number of the latest block: %w", err)
	}

	// state root of the latest block may be not ready yet
	res := &storageDump{Block: nLatestBlock - 1}

	for _, c := range []struct {
		name string
		hash util.Uint160
	}{
		{"app", app},
		{"data", data},
	} {
		cd, err := b.dumpContract(c.name, c.hash, res.Block)
		if err != nil {
			return nil, err
		}

		res.Contracts = append(res.Contracts, cd)
	}

	return res, nil
}

func (x *remoteBlockchain) dumpContract(name string, h util.Uint160, height uint32) (contractDump, error) {
	res := contractDump{Name: name}

	st, err := x.rpc.GetContractStateByHash(h)
	if err != nil {
		return res, fmt.Errorf("get state of the %s contract '%s': %w", name, h.StringLE(), err)
	}

	res.State = *st

	err = x.iterateContractStorage(h, height, func(key, value []byte) error {
		res.Storage = append(res.Storage, storageItem{Key: key, Value: value})
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("iterate '%s' contract storage: %w", name, err)
	}

	return res, nil
}

// iterateContractStorage iterates over all storage items of the contract at
// the given height and passes them into f. It breaks on any f's error and
// returns it.
func (x *remoteBlockchain) iterateContractStorage(contract util.Uint160, height uint32, f func(key, value []byte) error) error {
	stateRoot, err := x.rpc.GetStateRootByHeight(height)
	if err != nil {
		return fmt.Errorf("get state root at block #%d: %w", height, err)
	}

	var start []byte

	for {
		res, err := x.rpc.FindStates(stateRoot.Root, contract, nil, start, nil)
		if err != nil {
			return fmt.Errorf("get historical storage items at state root '%s': %w", stateRoot.Root, err)
		}

		for i := range res.Results {
			err = f(res.Results[i].Key, res.Results[i].Value)
			if err != nil {
				return err
			}
		}

		if !res.Truncated {
			return nil
		}

		start = res.Results[len(res.Results)-1].Key
	}
}

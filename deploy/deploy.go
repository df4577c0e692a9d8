package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flightsurety/surety-contract/contracts"
	rpcdata "github.com/flightsurety/surety-contract/rpc/suretydata"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for FlightSurety deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Prm groups all parameters of the FlightSurety deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy contracts to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// The account becomes the owner of the data contract.
	LocalAccount *wallet.Account

	// Compiled data and application contracts.
	Contracts contracts.Surety

	// Airline registered by the application contract on deployment.
	FirstAirline util.Uint160
}

// Result groups on-chain addresses of the deployed contracts.
type Result struct {
	DataContract util.Uint160
	AppContract  util.Uint160
}

// Deploy deploys FlightSurety contracts to the Neo network represented by
// given Prm.Blockchain and links them together.
//
// Deploy is idempotent: contracts that are already on the chain are left
// untouched, the data contract is re-authorized only if its caller differs
// from the application contract address. Summary of stages:
//  1. data contract deployment
//  2. authorization of the application contract address in the data contract
//  3. application contract deployment (registers the first airline)
func Deploy(ctx context.Context, prm Prm) (Result, error) {
	var res Result

	if prm.FirstAirline.Equals(util.Uint160{}) {
		return res, errors.New("first airline is not set")
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return res, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	sender := prm.LocalAccount.ScriptHash()
	res.DataContract = ContractAddress(sender, prm.Contracts.Data)
	res.AppContract = ContractAddress(sender, prm.Contracts.App)

	d := deployer{
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		actor:      act,
	}

	prm.Logger.Info("synchronizing data contract with the chain...", zap.Stringer("address", res.DataContract))

	err = d.deployIfMissing(ctx, res.DataContract, prm.Contracts.Data, []any{sender})
	if err != nil {
		return res, fmt.Errorf("sync data contract with the chain: %w", err)
	}

	prm.Logger.Info("authorizing application contract in the data contract...", zap.Stringer("address", res.AppContract))

	err = d.authorizeCaller(ctx, res.DataContract, res.AppContract, sender)
	if err != nil {
		return res, fmt.Errorf("authorize application contract: %w", err)
	}

	prm.Logger.Info("synchronizing application contract with the chain...", zap.Stringer("address", res.AppContract))

	err = d.deployIfMissing(ctx, res.AppContract, prm.Contracts.App, []any{res.DataContract, prm.FirstAirline})
	if err != nil {
		return res, fmt.Errorf("sync application contract with the chain: %w", err)
	}

	prm.Logger.Info("FlightSurety contracts successfully deployed",
		zap.Stringer("data", res.DataContract), zap.Stringer("app", res.AppContract))

	return res, nil
}

// ContractAddress returns address of the contract deployed by the sender.
func ContractAddress(sender util.Uint160, c contracts.Contract) util.Uint160 {
	return state.CreateContractHash(sender, c.NEF.Checksum, c.Manifest.Name)
}

type deployer struct {
	logger     *zap.Logger
	blockchain Blockchain
	actor      *actor.Actor
}

func (d deployer) deployIfMissing(ctx context.Context, addr util.Uint160, c contracts.Contract, args []any) error {
	deployed, err := d.isDeployed(addr)
	if err != nil {
		return err
	}

	if deployed {
		d.logger.Info("contract is already deployed, skip", zap.Stringer("address", addr))
		return nil
	}

	txHash, vub, err := management.New(d.actor).Deploy(&c.NEF, &c.Manifest, args)
	if err != nil {
		return fmt.Errorf("send deployment transaction: %w", err)
	}

	d.logger.Info("deployment transaction sent, waiting...",
		zap.String("contract", c.Manifest.Name), zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	return d.await(ctx, txHash, vub)
}

func (d deployer) isDeployed(addr util.Uint160) (bool, error) {
	_, err := d.blockchain.GetContractStateByHash(addr)
	if err == nil {
		return true, nil
	}

	if isErrContractNotFound(err) {
		return false, nil
	}

	return false, fmt.Errorf("get contract state by address %s: %w", addr.StringLE(), err)
}

func (d deployer) authorizeCaller(ctx context.Context, data, app, sender util.Uint160) error {
	c := rpcdata.New(d.actor, data)

	owner, err := c.Owner()
	if err != nil {
		return fmt.Errorf("read data contract owner: %w", err)
	}

	caller, err := c.AuthorizedCaller()
	if err != nil {
		return fmt.Errorf("read authorized caller: %w", err)
	}

	if caller.Equals(app) {
		d.logger.Info("application contract is already authorized, skip")
		return nil
	}

	if !owner.Equals(sender) {
		return fmt.Errorf("local account %s is not the data contract owner %s", sender.StringLE(), owner.StringLE())
	}

	txHash, vub, err := c.AuthorizeCaller(app)
	if err != nil {
		return fmt.Errorf("send authorization transaction: %w", err)
	}

	d.logger.Info("authorization transaction sent, waiting...", zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	return d.await(ctx, txHash, vub)
}

func (d deployer) await(ctx context.Context, txHash util.Uint256, vub uint32) error {
	res, err := d.actor.WaitAny(ctx, vub, txHash)
	if err != nil {
		return fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}

	return checkExecResult(res)
}

func checkExecResult(res *state.AppExecResult) error {
	if res.VMState != vmstate.Halt {
		return fmt.Errorf("transaction %s failed with state %s: %s", res.Container.StringLE(), res.VMState, res.FaultException)
	}

	return nil
}

func isErrContractNotFound(err error) bool {
	return strings.Contains(err.Error(), "Unknown contract")
}

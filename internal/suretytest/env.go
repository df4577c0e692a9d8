// Package suretytest deploys FlightSurety contracts to an in-memory test chain.
package suretytest

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/flightsurety/surety-contract/contracts/suretyapp/suretyconst"
	rpcapp "github.com/flightsurety/surety-contract/rpc/suretyapp"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

// Env is a deployed pair of data and application contracts. Committee owns
// the data contract.
type Env struct {
	*neotest.Executor

	DataContract *neotest.Contract
	AppContract  *neotest.Contract

	Data util.Uint160
	App  util.Uint160

	FirstAirline neotest.Signer
}

func rootPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..")
}

// ContractPath returns path to the contract sources.
func ContractPath(name string) string {
	return filepath.Join(rootPath(), "contracts", name)
}

// NewExecutor creates executor over a new single-node chain.
func NewExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// Compile compiles the data and application contracts with committee as
// the deploying account.
func Compile(t *testing.T, e *neotest.Executor) (*neotest.Contract, *neotest.Contract) {
	dataPath := ContractPath("suretydata")
	appPath := ContractPath("suretyapp")

	data := neotest.CompileFile(t, e.CommitteeHash, dataPath, filepath.Join(dataPath, "config.yml"))
	app := neotest.CompileFile(t, e.CommitteeHash, appPath, filepath.Join(appPath, "config.yml"))

	return data, app
}

// NewEnv deploys both contracts. The application contract is authorized on
// the data contract before its deployment and registers a new account as
// the first airline.
func NewEnv(t *testing.T) *Env {
	e := NewExecutor(t)
	data, app := Compile(t, e)

	require.Equal(t, app.Hash, state.CreateContractHash(e.CommitteeHash, app.NEF.Checksum, app.Manifest.Name))

	e.DeployContract(t, data, []any{e.CommitteeHash})
	e.CommitteeInvoker(data.Hash).Invoke(t, stackitem.Null{}, "authorizeCaller", app.Hash)

	first := e.NewAccount(t)
	e.DeployContract(t, app, []any{data.Hash, first.ScriptHash()})

	return &Env{
		Executor:     e,
		DataContract: data,
		AppContract:  app,
		Data:         data.Hash,
		App:          app.Hash,
		FirstAirline: first,
	}
}

// DataInvoker returns invoker of the data contract signed by the signers, or
// by the committee if none are given.
func (e *Env) DataInvoker(signers ...neotest.Signer) *neotest.ContractInvoker {
	if len(signers) == 0 {
		return e.CommitteeInvoker(e.Data)
	}
	return e.NewInvoker(e.Data, signers...)
}

// AppInvoker returns invoker of the application contract signed by the
// signers, or by the committee if none are given.
func (e *Env) AppInvoker(signers ...neotest.Signer) *neotest.ContractInvoker {
	if len(signers) == 0 {
		return e.CommitteeInvoker(e.App)
	}
	return e.NewInvoker(e.App, signers...)
}

// GASInvoker returns invoker of the GAS contract signed by the signer.
func (e *Env) GASInvoker(t *testing.T, signer neotest.Signer) *neotest.ContractInvoker {
	return e.NewInvoker(e.NativeHash(t, nativenames.Gas), signer)
}

// Pay transfers amount of GAS from the payer to the application contract
// and checks that the payment is accepted.
func (e *Env) Pay(t *testing.T, payer neotest.Signer, amount int64, kind string, args ...any) util.Uint256 {
	return e.GASInvoker(t, payer).Invoke(t, true, "transfer",
		payer.ScriptHash(), e.App, amount, rpcapp.PaymentData(kind, args...))
}

// PayFail checks that the payment to the application contract fails with
// the message.
func (e *Env) PayFail(t *testing.T, payer neotest.Signer, message string, amount int64, kind string, args ...any) {
	e.GASInvoker(t, payer).InvokeFail(t, message, "transfer",
		payer.ScriptHash(), e.App, amount, rpcapp.PaymentData(kind, args...))
}

// Fund pays the stake of the registered airline.
func (e *Env) Fund(t *testing.T, airline neotest.Signer) {
	e.Pay(t, airline, suretyconst.AirlineStake, suretyconst.PaymentStake)
}

// NewFundedAirline registers a new airline sponsored by the funded sponsor
// and funds it. It works only while registration doesn't need consensus.
func (e *Env) NewFundedAirline(t *testing.T, sponsor neotest.Signer) neotest.Signer {
	airline := e.NewAccount(t)
	e.AppInvoker(sponsor).Invoke(t, true, "registerAirline", sponsor.ScriptHash(), airline.ScriptHash())
	e.Fund(t, airline)
	return airline
}

// FutureTimestamp returns a departure time far ahead of the current block.
func (e *Env) FutureTimestamp(t *testing.T) int64 {
	return int64(e.TopBlock(t).Timestamp) + 1_000_000_000
}

// RegisterFlight registers the flight of the funded airline and returns its
// key. The key returned by the contract must match the locally calculated one.
func (e *Env) RegisterFlight(t *testing.T, airline neotest.Signer, code string, timestamp int64) util.Uint256 {
	key := rpcapp.FlightKey(airline.ScriptHash(), code, timestamp)
	e.AppInvoker(airline).Invoke(t, stackitem.NewByteArray(key.BytesBE()),
		"registerFlight", airline.ScriptHash(), code, timestamp)
	return key
}

// RegisterOracle registers a new oracle and returns it with assigned indexes.
func (e *Env) RegisterOracle(t *testing.T) (neotest.Signer, []int) {
	oracle := e.NewAccount(t)
	e.Pay(t, oracle, suretyconst.OracleRegistrationFee, suretyconst.PaymentOracleFee)

	s, err := e.AppInvoker().TestInvoke(t, "getMyIndexes", oracle.ScriptHash())
	require.NoError(t, err)
	return oracle, ItemToInts(t, s.Pop().Item())
}

// InvokeCalledByEntry invokes the method in a transaction signed with
// CalledByEntry scope, the default scope of RPC actors, and returns the
// transaction hash. The caller checks the execution result.
func (e *Env) InvokeCalledByEntry(t *testing.T, signer neotest.Signer, contract util.Uint160, method string, args ...any) util.Uint256 {
	tx := e.NewUnsignedTx(t, contract, method, args...)
	tx.Signers = []transaction.Signer{{
		Account: signer.ScriptHash(),
		Scopes:  transaction.CalledByEntry,
	}}
	neotest.AddNetworkFee(t, e.Chain, tx, signer)
	neotest.AddSystemFee(e.Chain, tx, -1)
	require.NoError(t, signer.SignTx(e.Chain.GetConfig().Magic, tx))

	e.AddNewBlock(t, tx)
	return tx.Hash()
}

// CheckHash returns a checker of the single hash on the result stack. It
// compares bytes whatever the item type is.
func CheckHash(expected util.Uint160) func(testing.TB, []stackitem.Item) {
	return func(t testing.TB, stack []stackitem.Item) {
		require.Len(t, stack, 1)
		b, err := stack[0].TryBytes()
		require.NoError(t, err)
		require.Equal(t, expected.BytesBE(), b)
	}
}

// ItemToInts converts an array of integers.
func ItemToInts(t *testing.T, item stackitem.Item) []int {
	arr, ok := item.Value().([]stackitem.Item)
	require.True(t, ok, "not an array: %s", item.Type())

	res := make([]int, len(arr))
	for i := range arr {
		bi, err := arr[i].TryInteger()
		require.NoError(t, err)
		res[i] = int(bi.Int64())
	}
	return res
}

// Events returns notifications with the given name emitted by the contract.
func Events(res *state.AppExecResult, contract util.Uint160, name string) []state.NotificationEvent {
	var evs []state.NotificationEvent
	for _, ev := range res.Events {
		if ev.ScriptHash.Equals(contract) && ev.Name == name {
			evs = append(evs, ev)
		}
	}
	return evs
}

// ApplicationLog converts execution result of a single transaction into the
// form RPC bindings parse events from.
func ApplicationLog(res *state.AppExecResult) *result.ApplicationLog {
	return &result.ApplicationLog{
		Container:     res.Container,
		IsTransaction: true,
		Executions:    []state.Execution{res.Execution},
	}
}

// HasCommonIndex checks whether oracle indexes match any request index.
func HasCommonIndex(oracle, request []int) bool {
	for i := range oracle {
		for j := range request {
			if oracle[i] == request[j] {
				return true
			}
		}
	}
	return false
}

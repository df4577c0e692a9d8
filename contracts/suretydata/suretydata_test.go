package suretydata_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/flightsurety/surety-contract/common"
	"github.com/flightsurety/surety-contract/contracts/suretyapp/suretyconst"
	"github.com/flightsurety/surety-contract/contracts/suretydata/airlinestate"
	"github.com/flightsurety/surety-contract/internal/suretytest"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func newDataInvoker(t *testing.T) *neotest.ContractInvoker {
	e := suretytest.NewExecutor(t)
	path := suretytest.ContractPath("suretydata")
	c := neotest.CompileFile(t, e.CommitteeHash, path, filepath.Join(path, "config.yml"))
	e.DeployContract(t, c, []any{e.CommitteeHash})
	return e.CommitteeInvoker(c.Hash)
}

func TestDeploy(t *testing.T) {
	e := suretytest.NewExecutor(t)
	path := suretytest.ContractPath("suretydata")
	c := neotest.CompileFile(t, e.CommitteeHash, path, filepath.Join(path, "config.yml"))

	e.DeployContractCheckFAULT(t, c, []any{[]byte{1, 2, 3}}, "incorrect length of owner address")

	e.DeployContract(t, c, []any{e.CommitteeHash})
	inv := e.CommitteeInvoker(c.Hash)
	inv.InvokeAndCheck(t, suretytest.CheckHash(e.CommitteeHash), "owner")
	inv.Invoke(t, stackitem.Null{}, "authorizedCaller")
	inv.Invoke(t, true, "isOperational")
	inv.Invoke(t, 0, "airlineCount")
	inv.Invoke(t, common.Version, "version")
}

func TestAuthorizeCaller(t *testing.T) {
	inv := newDataInvoker(t)
	caller := util.Uint160{1, 2, 3}

	stranger := inv.WithSigners(inv.NewAccount(t))
	stranger.InvokeFail(t, common.ErrOwnerWitnessFailed, "authorizeCaller", caller)
	stranger.InvokeFail(t, common.ErrOwnerWitnessFailed, "deauthorizeCaller")

	inv.InvokeFail(t, common.ErrNotFound, "deauthorizeCaller")
	inv.InvokeFail(t, "incorrect length", "authorizeCaller", []byte{1})

	h := inv.Invoke(t, stackitem.Null{}, "authorizeCaller", caller)
	res := inv.GetTxExecResult(t, h)
	require.Len(t, res.Events, 1)
	require.Equal(t, "CallerAuthorized", res.Events[0].Name)
	inv.InvokeAndCheck(t, suretytest.CheckHash(caller), "authorizedCaller")

	inv.Invoke(t, stackitem.Null{}, "deauthorizeCaller")
	inv.Invoke(t, stackitem.Null{}, "authorizedCaller")
}

func TestSetOperatingStatus(t *testing.T) {
	inv := newDataInvoker(t)

	inv.WithSigners(inv.NewAccount(t)).InvokeFail(t, common.ErrOwnerWitnessFailed, "setOperatingStatus", false)
	inv.InvokeFail(t, common.ErrInvalidState, "setOperatingStatus", true)

	inv.Invoke(t, stackitem.Null{}, "setOperatingStatus", false)
	inv.Invoke(t, false, "isOperational")
	inv.InvokeFail(t, common.ErrInvalidState, "setOperatingStatus", false)

	inv.Invoke(t, stackitem.Null{}, "setOperatingStatus", true)
	inv.Invoke(t, true, "isOperational")
}

func TestDirectCallsAreRejected(t *testing.T) {
	inv := newDataInvoker(t)
	acc := util.Uint160{4, 5, 6}
	key := util.Uint256{7, 8, 9}

	// no authorized caller
	inv.InvokeFail(t, common.ErrCallerFailed, "registerAirline", acc)

	// committee is not a contract, so witness is not enough
	inv.Invoke(t, stackitem.Null{}, "authorizeCaller", util.Uint160{1, 2, 3})
	inv.InvokeFail(t, common.ErrCallerFailed, "registerAirline", acc)
	inv.InvokeFail(t, common.ErrCallerFailed, "applyAirline", acc)
	inv.InvokeFail(t, common.ErrCallerFailed, "voteAirline", acc, acc)
	inv.InvokeFail(t, common.ErrCallerFailed, "fundAirline", acc, 1)
	inv.InvokeFail(t, common.ErrCallerFailed, "registerFlight", key, acc, "ND1309", 1)
	inv.InvokeFail(t, common.ErrCallerFailed, "setFlightStatus", key, 20)
	inv.InvokeFail(t, common.ErrCallerFailed, "buyInsurance", key, acc, 1)
	inv.InvokeFail(t, common.ErrCallerFailed, "creditPayout", key, 3, 2)
	inv.InvokeFail(t, common.ErrCallerFailed, "withdrawCredit", acc)
	inv.InvokeFail(t, common.ErrCallerFailed, "registerOracle", acc, []any{1, 2, 3})
	inv.InvokeFail(t, common.ErrCallerFailed, "createRequest", key, acc, []any{1, 2, 3})
	inv.InvokeFail(t, common.ErrCallerFailed, "recordResponse", 1, acc, 20)
	inv.InvokeFail(t, common.ErrCallerFailed, "closeRequest", 1, 20)
}

func TestReadUnknown(t *testing.T) {
	inv := newDataInvoker(t)
	acc := util.Uint160{4, 5, 6}
	key := util.Uint256{7, 8, 9}

	inv.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(int(airlinestate.Unregistered)),
		stackitem.Make(0),
		stackitem.NewArray([]stackitem.Item{}),
	}), "getAirline", acc)

	inv.InvokeFail(t, common.ErrFlightNotFound, "getFlight", key)
	inv.InvokeFail(t, common.ErrStaleRequest, "getRequest", 1)
	inv.Invoke(t, 0, "creditOf", acc)
	inv.Invoke(t, stackitem.NewStruct([]stackitem.Item{stackitem.Null{}}), "getOracle", acc)
	inv.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(acc.BytesBE()),
		stackitem.Make(0),
		stackitem.Make(0),
		stackitem.NewBool(false),
	}), "getPolicy", key, acc)
}

func TestOnNEP17Payment(t *testing.T) {
	env := suretytest.NewEnv(t)

	neoInv := env.CommitteeInvoker(env.NativeHash(t, nativenames.Neo))
	neoInv.InvokeFail(t, "ABORT", "transfer", env.CommitteeHash, env.Data, 1, nil)

	gasInv := env.CommitteeInvoker(env.NativeHash(t, nativenames.Gas))
	gasInv.Invoke(t, true, "transfer", env.CommitteeHash, env.Data, suretyconst.GASFactor, nil)
}

func TestUpdate(t *testing.T) {
	env := suretytest.NewEnv(t)
	c := env.DataContract

	rawNef, err := c.NEF.Bytes()
	require.NoError(t, err)
	rawManifest, err := json.Marshal(c.Manifest)
	require.NoError(t, err)

	stranger := env.DataInvoker(env.NewAccount(t))
	stranger.InvokeFail(t, common.ErrOwnerWitnessFailed, "update", rawNef, rawManifest, nil)

	env.DataInvoker().InvokeFail(t, common.ErrAlreadyUpdated, "update", rawNef, rawManifest, nil)
}

package suretyapp_test

import (
	"math/big"
	"testing"

	"github.com/flightsurety/surety-contract/common"
	"github.com/flightsurety/surety-contract/contracts/suretyapp/suretyconst"
	"github.com/flightsurety/surety-contract/contracts/suretydata/airlinestate"
	"github.com/flightsurety/surety-contract/internal/suretytest"
	rpcapp "github.com/flightsurety/surety-contract/rpc/suretyapp"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func airlineStatus(t *testing.T, env *suretytest.Env, airline util.Uint160) airlinestate.Type {
	s, err := env.AppInvoker().TestInvoke(t, "getAirline", airline)
	require.NoError(t, err)

	arr, ok := s.Pop().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	status, err := arr[0].TryInteger()
	require.NoError(t, err)
	return airlinestate.Type(status.Int64())
}

func TestDeploy(t *testing.T) {
	t.Run("unauthorized application", func(t *testing.T) {
		e := suretytest.NewExecutor(t)
		data, app := suretytest.Compile(t, e)
		e.DeployContract(t, data, []any{e.CommitteeHash})

		e.DeployContractCheckFAULT(t, app, []any{data.Hash, e.NewAccount(t).ScriptHash()}, common.ErrCallerFailed)
	})

	t.Run("seed airline", func(t *testing.T) {
		env := suretytest.NewEnv(t)
		inv := env.AppInvoker()

		inv.InvokeAndCheck(t, suretytest.CheckHash(env.Data), "dataContract")
		inv.Invoke(t, true, "isOperational")
		inv.Invoke(t, common.Version, "version")
		require.Equal(t, airlinestate.Registered, airlineStatus(t, env, env.FirstAirline.ScriptHash()))
		env.DataInvoker().Invoke(t, 1, "airlineCount")
		env.DataInvoker().Invoke(t, 0, "fundedAirlineCount")
	})
}

func TestFund(t *testing.T) {
	env := suretytest.NewEnv(t)
	a1 := env.FirstAirline

	t.Run("unknown airline", func(t *testing.T) {
		acc := env.NewAccount(t)
		env.PayFail(t, acc, common.ErrNotFound, suretyconst.AirlineStake, suretyconst.PaymentStake)
	})

	t.Run("wrong amount", func(t *testing.T) {
		env.PayFail(t, a1, common.ErrInsufficientFunds, suretyconst.AirlineStake-1, suretyconst.PaymentStake)
		env.PayFail(t, a1, common.ErrInvalidAmount, suretyconst.AirlineStake+1, suretyconst.PaymentStake)
		require.Equal(t, airlinestate.Registered, airlineStatus(t, env, a1.ScriptHash()))
		require.Zero(t, env.Chain.GetUtilityTokenBalance(env.Data).Sign())
		require.Zero(t, env.Chain.GetUtilityTokenBalance(env.App).Sign())
	})

	t.Run("invalid payment", func(t *testing.T) {
		gasInv := env.GASInvoker(t, a1)
		gasInv.InvokeFail(t, "missing payment kind", "transfer", a1.ScriptHash(), env.App, suretyconst.AirlineStake, nil)
		gasInv.InvokeFail(t, "unknown payment kind", "transfer", a1.ScriptHash(), env.App, suretyconst.AirlineStake, []any{"donate"})
		env.PayFail(t, a1, "flight key expected", 1, suretyconst.PaymentPremium)
	})

	t.Run("direct call", func(t *testing.T) {
		env.AppInvoker(a1).InvokeFail(t, "only GAS can be accepted",
			"onNEP17Payment", a1.ScriptHash(), suretyconst.AirlineStake, rpcapp.PaymentData(suretyconst.PaymentStake))
		require.Equal(t, airlinestate.Registered, airlineStatus(t, env, a1.ScriptHash()))
	})

	t.Run("exact stake", func(t *testing.T) {
		h := env.Pay(t, a1, suretyconst.AirlineStake, suretyconst.PaymentStake)
		evs := suretytest.Events(env.GetTxExecResult(t, h), env.Data, "AirlineFunded")
		require.Len(t, evs, 1)

		require.Equal(t, airlinestate.Funded, airlineStatus(t, env, a1.ScriptHash()))
		require.Equal(t, big.NewInt(suretyconst.AirlineStake), env.Chain.GetUtilityTokenBalance(env.Data))
		require.Zero(t, env.Chain.GetUtilityTokenBalance(env.App).Sign())
		env.DataInvoker().Invoke(t, 1, "fundedAirlineCount")
	})

	t.Run("already funded", func(t *testing.T) {
		env.PayFail(t, a1, common.ErrInvalidState, suretyconst.AirlineStake, suretyconst.PaymentStake)
	})

	t.Run("applied airline", func(t *testing.T) {
		acc := env.NewAccount(t)
		env.AppInvoker(acc).Invoke(t, stackitem.Null{}, "applyAirline", acc.ScriptHash())
		env.PayFail(t, acc, common.ErrInvalidState, suretyconst.AirlineStake, suretyconst.PaymentStake)
	})

	t.Run("called by entry", func(t *testing.T) {
		acc := env.NewAccount(t)
		env.AppInvoker(a1).Invoke(t, true, "registerAirline", a1.ScriptHash(), acc.ScriptHash())

		h := env.InvokeCalledByEntry(t, acc, env.NativeHash(t, nativenames.Gas), "transfer",
			acc.ScriptHash(), env.App, suretyconst.AirlineStake, rpcapp.PaymentData(suretyconst.PaymentStake))
		env.CheckHalt(t, h, stackitem.NewBool(true))
		require.Equal(t, airlinestate.Funded, airlineStatus(t, env, acc.ScriptHash()))
	})
}

func TestApplyAirline(t *testing.T) {
	env := suretytest.NewEnv(t)
	a1 := env.FirstAirline
	env.Fund(t, a1)

	acc := env.NewAccount(t)
	env.AppInvoker().InvokeFail(t, common.ErrWitnessFailed, "applyAirline", acc.ScriptHash())

	inv := env.AppInvoker(acc)
	h := inv.Invoke(t, stackitem.Null{}, "applyAirline", acc.ScriptHash())
	require.Len(t, suretytest.Events(env.GetTxExecResult(t, h), env.Data, "AirlineApplied"), 1)
	require.Equal(t, airlinestate.Applied, airlineStatus(t, env, acc.ScriptHash()))

	inv.InvokeFail(t, common.ErrAlreadyExists, "applyAirline", acc.ScriptHash())
	env.AppInvoker(a1).InvokeFail(t, common.ErrAlreadyExists, "applyAirline", a1.ScriptHash())

	// Applied airline is registered directly while there are few airlines.
	env.AppInvoker(a1).Invoke(t, true, "registerAirline", a1.ScriptHash(), acc.ScriptHash())
	require.Equal(t, airlinestate.Registered, airlineStatus(t, env, acc.ScriptHash()))
	env.DataInvoker().Invoke(t, 2, "airlineCount")
}

func TestRegisterAirline(t *testing.T) {
	env := suretytest.NewEnv(t)
	a1 := env.FirstAirline

	acc := env.NewAccount(t)
	env.AppInvoker(a1).InvokeFail(t, "airline is not funded", "registerAirline", a1.ScriptHash(), acc.ScriptHash())
	env.Fund(t, a1)

	env.AppInvoker().InvokeFail(t, common.ErrWitnessFailed, "registerAirline", a1.ScriptHash(), acc.ScriptHash())
	env.AppInvoker(a1).InvokeFail(t, common.ErrAlreadyExists, "registerAirline", a1.ScriptHash(), a1.ScriptHash())
	env.AppInvoker(a1).InvokeFail(t, "incorrect length", "registerAirline", a1.ScriptHash(), []byte{1, 2, 3})

	h := env.AppInvoker(a1).Invoke(t, true, "registerAirline", a1.ScriptHash(), acc.ScriptHash())
	require.Len(t, suretytest.Events(env.GetTxExecResult(t, h), env.Data, "AirlineRegistered"), 1)
	require.Empty(t, suretytest.Events(env.GetTxExecResult(t, h), env.Data, "AirlineVoted"))

	// registered but not funded airline can't sponsor
	other := env.NewAccount(t)
	env.AppInvoker(acc).InvokeFail(t, "airline is not funded", "registerAirline", acc.ScriptHash(), other.ScriptHash())
}

func TestAirlineConsensus(t *testing.T) {
	env := suretytest.NewEnv(t)
	a1 := env.FirstAirline
	env.Fund(t, a1)

	airlines := []neotest.Signer{a1}
	for i := 0; i < 4; i++ {
		airlines = append(airlines, env.NewFundedAirline(t, a1))
	}
	env.DataInvoker().Invoke(t, 5, "airlineCount")
	env.DataInvoker().Invoke(t, 5, "fundedAirlineCount")

	a6 := env.NewAccount(t)

	vote := func(voter neotest.Signer, expected bool) util.Uint256 {
		return env.AppInvoker(voter).Invoke(t, expected, "voteAirline", voter.ScriptHash(), a6.ScriptHash())
	}

	env.AppInvoker(a1).InvokeFail(t, common.ErrNotFound, "voteAirline", a1.ScriptHash(), a6.ScriptHash())

	// sponsoring applies the candidate and casts the first vote
	h := env.AppInvoker(a1).Invoke(t, false, "registerAirline", a1.ScriptHash(), a6.ScriptHash())
	res := env.GetTxExecResult(t, h)
	require.Len(t, suretytest.Events(res, env.Data, "AirlineApplied"), 1)
	require.Len(t, suretytest.Events(res, env.Data, "AirlineVoted"), 1)
	require.Equal(t, airlinestate.Applied, airlineStatus(t, env, a6.ScriptHash()))

	// repeated votes are not counted
	h = env.AppInvoker(a1).Invoke(t, false, "registerAirline", a1.ScriptHash(), a6.ScriptHash())
	require.Empty(t, suretytest.Events(env.GetTxExecResult(t, h), env.Data, "AirlineVoted"))
	h = vote(a1, false)
	require.Empty(t, suretytest.Events(env.GetTxExecResult(t, h), env.Data, "AirlineVoted"))

	env.AppInvoker(a6).InvokeFail(t, "airline is not funded", "voteAirline", a6.ScriptHash(), a6.ScriptHash())
	env.AppInvoker().InvokeFail(t, common.ErrWitnessFailed, "voteAirline", airlines[1].ScriptHash(), a6.ScriptHash())

	vote(airlines[1], false)
	require.Equal(t, airlinestate.Applied, airlineStatus(t, env, a6.ScriptHash()))

	h = vote(airlines[2], true)
	require.Len(t, suretytest.Events(env.GetTxExecResult(t, h), env.Data, "AirlineRegistered"), 1)
	require.Equal(t, airlinestate.Registered, airlineStatus(t, env, a6.ScriptHash()))

	s, err := env.AppInvoker().TestInvoke(t, "getAirline", a6.ScriptHash())
	require.NoError(t, err)
	voters := s.Pop().Array()[2].Value().([]stackitem.Item)
	require.Len(t, voters, 3)

	env.AppInvoker(airlines[3]).InvokeFail(t, common.ErrInvalidState, "voteAirline", airlines[3].ScriptHash(), a6.ScriptHash())
	env.AppInvoker(a1).InvokeFail(t, common.ErrAlreadyExists, "registerAirline", a1.ScriptHash(), a6.ScriptHash())
	env.DataInvoker().Invoke(t, 6, "airlineCount")
}

func TestAirlineConsensusEvenFunded(t *testing.T) {
	env := suretytest.NewEnv(t)
	a1 := env.FirstAirline
	env.Fund(t, a1)

	// four airlines are registered directly, only three of them are funded
	airlines := []neotest.Signer{a1}
	for i := 0; i < 4; i++ {
		acc := env.NewAccount(t)
		env.AppInvoker(a1).Invoke(t, true, "registerAirline", a1.ScriptHash(), acc.ScriptHash())
		airlines = append(airlines, acc)
	}
	for _, a := range airlines[1:4] {
		env.Fund(t, a)
	}
	env.DataInvoker().Invoke(t, 4, "fundedAirlineCount")

	candidate := env.NewAccount(t)
	env.AppInvoker(a1).Invoke(t, false, "registerAirline", a1.ScriptHash(), candidate.ScriptHash())
	// two of four is enough
	env.AppInvoker(airlines[2]).Invoke(t, true, "registerAirline", airlines[2].ScriptHash(), candidate.ScriptHash())
	require.Equal(t, airlinestate.Registered, airlineStatus(t, env, candidate.ScriptHash()))
}

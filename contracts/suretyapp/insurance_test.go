package suretyapp_test

import (
	"testing"

	"github.com/flightsurety/surety-contract/common"
	"github.com/flightsurety/surety-contract/contracts/suretyapp/suretyconst"
	"github.com/flightsurety/surety-contract/contracts/suretydata/flightstatus"
	"github.com/flightsurety/surety-contract/internal/suretytest"
	rpcapp "github.com/flightsurety/surety-contract/rpc/suretyapp"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestRegisterFlight(t *testing.T) {
	env := suretytest.NewEnv(t)
	a1 := env.FirstAirline
	inv := env.AppInvoker(a1)
	ts := env.FutureTimestamp(t)

	inv.InvokeFail(t, "airline is not funded", "registerFlight", a1.ScriptHash(), "ND1309", ts)
	env.Fund(t, a1)

	env.AppInvoker().InvokeFail(t, common.ErrWitnessFailed, "registerFlight", a1.ScriptHash(), "ND1309", ts)
	inv.InvokeFail(t, common.ErrInvalidState, "registerFlight", a1.ScriptHash(), "", ts)
	inv.InvokeFail(t, common.ErrInvalidState, "registerFlight", a1.ScriptHash(), "ND1309", 0)

	key := env.RegisterFlight(t, a1, "ND1309", ts)
	inv.InvokeFail(t, common.ErrAlreadyExists, "registerFlight", a1.ScriptHash(), "ND1309", ts)

	inv.Invoke(t, stackitem.NewByteArray(key.BytesBE()), "getFlightKey", a1.ScriptHash(), "ND1309", ts)
	inv.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(key.BytesBE()),
		stackitem.NewByteArray(a1.ScriptHash().BytesBE()),
		stackitem.NewByteArray([]byte("ND1309")),
		stackitem.Make(ts),
		stackitem.Make(int(flightstatus.Unknown)),
	}), "getFlight", key)
	inv.Invoke(t, int(flightstatus.Unknown), "getFlightStatus", key)
	inv.InvokeFail(t, common.ErrFlightNotFound, "getFlight", util.Uint256{1, 2, 3})

	// same code at another time is another flight
	other := env.RegisterFlight(t, a1, "ND1309", ts+1)
	require.NotEqual(t, key, other)

	s, err := env.DataInvoker().TestInvoke(t, "flights")
	require.NoError(t, err)
	iter := s.Pop().Interop().Value()
	require.NotNil(t, iter)
}

func TestBuyInsurance(t *testing.T) {
	env := suretytest.NewEnv(t)
	a1 := env.FirstAirline
	env.Fund(t, a1)

	key := env.RegisterFlight(t, a1, "ND1309", env.FutureTimestamp(t))
	departed := env.RegisterFlight(t, a1, "ND1310", 1)

	passenger := env.NewAccount(t)
	inv := env.AppInvoker(passenger)
	p := passenger.ScriptHash()
	buy := func(key util.Uint256, premium int64) util.Uint256 {
		return env.Pay(t, passenger, premium, suretyconst.PaymentPremium, key)
	}
	buyFail := func(message string, key util.Uint256, premium int64) {
		env.PayFail(t, passenger, message, premium, suretyconst.PaymentPremium, key)
	}

	t.Run("errors", func(t *testing.T) {
		buyFail(common.ErrInvalidAmount, key, 0)
		buyFail(common.ErrFlightNotFound, util.Uint256{1, 2, 3}, 1)
		buyFail(common.ErrFlightDeparted, departed, 1)
		buyFail(common.ErrPremiumTooHigh, key, suretyconst.PremiumCap+1)
	})

	t.Run("top up to the cap", func(t *testing.T) {
		before := env.Chain.GetUtilityTokenBalance(env.Data).Int64()

		h := buy(key, suretyconst.PremiumCap/2)
		require.Len(t, suretytest.Events(env.GetTxExecResult(t, h), env.Data, "InsurancePurchased"), 1)
		buy(key, suretyconst.PremiumCap/2)
		buyFail(common.ErrPremiumTooHigh, key, 1)

		require.Equal(t, before+suretyconst.PremiumCap, env.Chain.GetUtilityTokenBalance(env.Data).Int64())

		inv.Invoke(t, stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray(p.BytesBE()),
			stackitem.Make(suretyconst.PremiumCap),
			stackitem.Make(0),
			stackitem.NewBool(false),
		}), "getPolicy", key, p)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		poor := env.NewAccount(t, suretyconst.PremiumCap/2)
		env.GASInvoker(t, poor).Invoke(t, false, "transfer", poor.ScriptHash(), env.App,
			suretyconst.PremiumCap, rpcapp.PaymentData(suretyconst.PaymentPremium, key))
		env.AppInvoker().Invoke(t, 0, "creditOf", poor.ScriptHash())
	})

	t.Run("called by entry", func(t *testing.T) {
		other := env.NewAccount(t)
		h := env.InvokeCalledByEntry(t, other, env.NativeHash(t, nativenames.Gas), "transfer",
			other.ScriptHash(), env.App, int64(suretyconst.PremiumCap), rpcapp.PaymentData(suretyconst.PaymentPremium, key))
		env.CheckHalt(t, h, stackitem.NewBool(true))
		require.Len(t, suretytest.Events(env.GetTxExecResult(t, h), env.Data, "InsurancePurchased"), 1)
	})

	t.Run("no credit", func(t *testing.T) {
		inv.Invoke(t, 0, "creditOf", p)
		inv.InvokeFail(t, common.ErrNoCredit, "withdrawCredit", p)
		env.AppInvoker().InvokeFail(t, common.ErrWitnessFailed, "withdrawCredit", p)
	})
}

func TestFlightKeyMatchesContract(t *testing.T) {
	env := suretytest.NewEnv(t)
	airline := util.Uint160{0xde, 0xad, 0xbe, 0xef}

	for _, code := range []string{"A", "ND1309", "1/2"} {
		for _, ts := range []int64{1, 1700000000000} {
			key := rpcapp.FlightKey(airline, code, ts)
			env.AppInvoker().Invoke(t, stackitem.NewByteArray(key.BytesBE()), "getFlightKey", airline, code, ts)
		}
	}
}

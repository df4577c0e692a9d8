package suretyapp

import (
	"errors"
	"math/big"
	"testing"

	"github.com/flightsurety/surety-contract/contracts/suretyapp/suretyconst"
	"github.com/flightsurety/surety-contract/contracts/suretydata/flightstatus"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type testAct struct {
	err    error
	res    *result.Invoke
	method string
	params []any
	script []byte
}

func (t *testAct) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}
func (t *testAct) MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error) {
	t.method, t.params = method, params
	return nil, t.err
}
func (t *testAct) MakeRun(script []byte) (*transaction.Transaction, error) {
	t.script = script
	return nil, t.err
}
func (t *testAct) MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error) {
	t.method, t.params = method, params
	return nil, t.err
}
func (t *testAct) MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error) {
	return nil, t.err
}
func (t *testAct) SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error) {
	t.method, t.params = method, params
	return util.Uint256{1}, 100, t.err
}
func (t *testAct) SendRun(script []byte) (util.Uint256, uint32, error) {
	t.script = script
	return util.Uint256{2}, 200, t.err
}

func TestReader(t *testing.T) {
	ta := new(testAct)
	r := NewReader(ta, util.Uint160{1, 2, 3})
	key := util.Uint256{4, 5, 6}

	ta.err = errors.New("bad")
	_, err := r.GetMyIndexes(util.Uint160{})
	require.Error(t, err)

	ta.err = nil
	ta.res = &result.Invoke{State: "HALT", Stack: []stackitem.Item{
		stackitem.Make([]stackitem.Item{stackitem.Make(2), stackitem.Make(0), stackitem.Make(8)}),
	}}
	indexes, err := r.GetMyIndexes(util.Uint160{})
	require.NoError(t, err)
	require.Equal(t, []int{2, 0, 8}, indexes)

	ta.res = &result.Invoke{State: "HALT", Stack: []stackitem.Item{stackitem.Make(int(flightstatus.OnTime))}}
	status, err := r.GetFlightStatus(key)
	require.NoError(t, err)
	require.Equal(t, flightstatus.OnTime, status)

	ta.res = &result.Invoke{State: "HALT", Stack: []stackitem.Item{stackitem.NewByteArray(key.BytesBE())}}
	k, err := r.GetFlightKey(util.Uint160{}, "ND1309", 1)
	require.NoError(t, err)
	require.Equal(t, key, k)
}

func TestContract(t *testing.T) {
	ta := new(testAct)
	c := New(ta, util.Uint160{1, 2, 3})
	oracle := util.Uint160{7}
	key := util.Uint256{8}

	h, vub, err := c.SubmitOracleResponse(oracle, 3, key, flightstatus.LateAirline)
	require.NoError(t, err)
	require.Equal(t, util.Uint256{1}, h)
	require.Equal(t, uint32(100), vub)
	require.Equal(t, "submitOracleResponse", ta.method)
	require.Equal(t, []any{oracle, int64(3), key, int64(20)}, ta.params)

}

func TestPayments(t *testing.T) {
	ta := new(testAct)
	app := util.Uint160{1, 2, 3}
	c := New(ta, app)
	payer := util.Uint160{7}
	key := util.Uint256{8}

	transferScript := func(amount int64, data []any) []byte {
		b := smartcontract.NewBuilder()
		b.InvokeWithAssert(gas.Hash, "transfer", payer, app, big.NewInt(amount), data)
		script, err := b.Script()
		require.NoError(t, err)
		return script
	}

	h, vub, err := c.RegisterOracle(payer)
	require.NoError(t, err)
	require.Equal(t, util.Uint256{2}, h)
	require.Equal(t, uint32(200), vub)
	require.Equal(t, transferScript(suretyconst.OracleRegistrationFee, []any{"registerOracle"}), ta.script)

	_, _, err = c.Fund(payer, big.NewInt(suretyconst.AirlineStake))
	require.NoError(t, err)
	require.Equal(t, transferScript(suretyconst.AirlineStake, []any{"fund"}), ta.script)

	_, err = c.BuyInsuranceTransaction(payer, key, big.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, transferScript(5, []any{"buyInsurance", key}), ta.script)

	ta.err = errors.New("bad")
	_, _, err = c.BuyInsurance(payer, key, big.NewInt(5))
	require.Error(t, err)
}

func TestEventsFromApplicationLog(t *testing.T) {
	airline := util.Uint160{4, 5, 6}
	oracle := util.Uint160{7, 8, 9}
	key := util.Uint256{1, 1, 1}

	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Events: []state.NotificationEvent{
				{
					Name: "OracleRequest",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(1),
						stackitem.Make([]stackitem.Item{stackitem.Make(3), stackitem.Make(1), stackitem.Make(4)}),
						stackitem.NewByteArray(key.BytesBE()),
						stackitem.NewByteArray(airline.BytesBE()),
						stackitem.Make("ND1309"),
						stackitem.Make(1_700_000_000_000),
					}),
				},
				{
					Name: "OracleReport",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(1),
						stackitem.NewByteArray(oracle.BytesBE()),
						stackitem.NewByteArray(key.BytesBE()),
						stackitem.Make(int(flightstatus.LateAirline)),
					}),
				},
				{
					Name: "FlightStatusInfo",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(1),
						stackitem.NewByteArray(key.BytesBE()),
						stackitem.Make(int(flightstatus.LateAirline)),
					}),
				},
			},
		}},
	}

	reqs, err := OracleRequestEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*OracleRequestEvent{{
		RequestID: 1,
		Indexes:   []int{3, 1, 4},
		FlightKey: key,
		Airline:   airline,
		Flight:    "ND1309",
		Timestamp: 1_700_000_000_000,
	}}, reqs)

	reports, err := OracleReportEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, oracle, reports[0].Oracle)
	require.Equal(t, flightstatus.LateAirline, reports[0].Status)

	infos, err := FlightStatusInfoEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, key, infos[0].FlightKey)

	log.Executions[0].Events[2].Item = stackitem.NewArray([]stackitem.Item{stackitem.Make(1)})
	_, err = FlightStatusInfoEventsFromApplicationLog(log)
	require.Error(t, err)

	_, err = OracleReportEventsFromApplicationLog(nil)
	require.Error(t, err)
}

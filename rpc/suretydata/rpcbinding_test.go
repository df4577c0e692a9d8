package suretydata

import (
	"errors"
	"math/big"
	"testing"

	"github.com/flightsurety/surety-contract/contracts/suretydata/airlinestate"
	"github.com/flightsurety/surety-contract/contracts/suretydata/flightstatus"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}

func (t *testInv) CallAndExpandIterator(contract util.Uint160, operation string, i int, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}
func (t *testInv) TraverseIterator(uuid.UUID, *result.Iterator, int) ([]stackitem.Item, error) {
	return nil, nil
}
func (t *testInv) TerminateSession(uuid.UUID) error {
	return nil
}

func halt(items ...stackitem.Item) *result.Invoke {
	return &result.Invoke{State: "HALT", Stack: items}
}

func TestReaderErrors(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.GetAirline(util.Uint160{})
	require.Error(t, err)

	ti.err = nil
	ti.res = halt(stackitem.Make([]stackitem.Item{}))
	_, err = r.GetAirline(util.Uint160{})
	require.Error(t, err)

	ti.res = halt(stackitem.Make(42))
	_, err = r.GetFlight(util.Uint256{})
	require.Error(t, err)

	ti.res = &result.Invoke{State: "FAULT", FaultException: "flight not found"}
	_, err = r.GetFlight(util.Uint256{})
	require.ErrorContains(t, err, "flight not found")
}

func TestReader(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	airline := util.Uint160{4, 5, 6}
	voter := util.Uint160{7, 8, 9}
	key := util.Uint256{1, 1, 1}

	t.Run("authorized caller", func(t *testing.T) {
		ti.res = halt(stackitem.Null{})
		h, err := r.AuthorizedCaller()
		require.NoError(t, err)
		require.True(t, h.Equals(util.Uint160{}))

		ti.res = halt(stackitem.NewByteArray(airline.BytesBE()))
		h, err = r.AuthorizedCaller()
		require.NoError(t, err)
		require.Equal(t, airline, h)
	})

	t.Run("airline", func(t *testing.T) {
		ti.res = halt(stackitem.NewStruct([]stackitem.Item{
			stackitem.Make(int(airlinestate.Applied)),
			stackitem.Make(0),
			stackitem.Make([]stackitem.Item{stackitem.NewByteArray(voter.BytesBE())}),
		}))
		a, err := r.GetAirline(airline)
		require.NoError(t, err)
		require.Equal(t, airlinestate.Applied, a.Status)
		require.Equal(t, []util.Uint160{voter}, a.Voters)

		ti.res = halt(stackitem.NewStruct([]stackitem.Item{
			stackitem.Make(int(airlinestate.Funded)),
			stackitem.Make(10_0000_0000),
			stackitem.Null{},
		}))
		a, err = r.GetAirline(airline)
		require.NoError(t, err)
		require.Equal(t, airlinestate.Funded, a.Status)
		require.Equal(t, big.NewInt(10_0000_0000), a.Stake)
		require.Empty(t, a.Voters)
	})

	t.Run("flight", func(t *testing.T) {
		ti.res = halt(stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray(key.BytesBE()),
			stackitem.NewByteArray(airline.BytesBE()),
			stackitem.Make("ND1309"),
			stackitem.Make(1_700_000_000_000),
			stackitem.Make(int(flightstatus.LateAirline)),
		}))
		f, err := r.GetFlight(key)
		require.NoError(t, err)
		require.Equal(t, &Flight{
			Key:       key,
			Airline:   airline,
			Code:      "ND1309",
			Timestamp: 1_700_000_000_000,
			Status:    flightstatus.LateAirline,
		}, f)

		ti.res = halt(stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray(key.BytesBE()),
			stackitem.NewByteArray(airline.BytesBE()),
			stackitem.NewByteArray([]byte{0xff, 0xfe}),
			stackitem.Make(1),
			stackitem.Make(0),
		}))
		_, err = r.GetFlight(key)
		require.ErrorContains(t, err, "field Code")
	})

	t.Run("flights expanded", func(t *testing.T) {
		flight := stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray(key.BytesBE()),
			stackitem.NewByteArray(airline.BytesBE()),
			stackitem.Make("ND1309"),
			stackitem.Make(1),
			stackitem.Make(0),
		})
		ti.res = halt(stackitem.Make([]stackitem.Item{flight, flight}))
		fs, err := r.FlightsExpanded(10)
		require.NoError(t, err)
		require.Len(t, fs, 2)
		require.Equal(t, "ND1309", fs[1].Code)
	})

	t.Run("policy", func(t *testing.T) {
		ti.res = halt(stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray(voter.BytesBE()),
			stackitem.Make(1_0000_0000),
			stackitem.Make(1_5000_0000),
			stackitem.NewBool(true),
		}))
		p, err := r.GetPolicy(key, voter)
		require.NoError(t, err)
		require.Equal(t, voter, p.Passenger)
		require.Equal(t, big.NewInt(1_5000_0000), p.Payout)
		require.True(t, p.Credited)
	})

	t.Run("oracle", func(t *testing.T) {
		ti.res = halt(stackitem.NewStruct([]stackitem.Item{stackitem.Null{}}))
		o, err := r.GetOracle(voter)
		require.NoError(t, err)
		require.Nil(t, o.Indexes)

		ti.res = halt(stackitem.NewStruct([]stackitem.Item{
			stackitem.Make([]stackitem.Item{stackitem.Make(1), stackitem.Make(7), stackitem.Make(3)}),
		}))
		o, err = r.GetOracle(voter)
		require.NoError(t, err)
		require.Equal(t, []int{1, 7, 3}, o.Indexes)
	})

	t.Run("request", func(t *testing.T) {
		ti.res = halt(stackitem.NewStruct([]stackitem.Item{
			stackitem.Make(5),
			stackitem.NewByteArray(voter.BytesBE()),
			stackitem.NewByteArray(key.BytesBE()),
			stackitem.Make([]stackitem.Item{stackitem.Make(0), stackitem.Make(4), stackitem.Make(9)}),
			stackitem.NewBool(false),
			stackitem.Make([]stackitem.Item{
				stackitem.Make(0), stackitem.Make(0), stackitem.Make(3),
				stackitem.Make(1), stackitem.Make(0), stackitem.Make(0),
			}),
			stackitem.Make(int(flightstatus.LateAirline)),
		}))
		req, err := r.GetRequest(5)
		require.NoError(t, err)
		require.Equal(t, &Request{
			ID:        5,
			Requester: voter,
			FlightKey: key,
			Indexes:   []int{0, 4, 9},
			Open:      false,
			Counts:    []int64{0, 0, 3, 1, 0, 0},
			Status:    flightstatus.LateAirline,
		}, req)
	})
}

func TestEventsFromApplicationLog(t *testing.T) {
	airline := util.Uint160{4, 5, 6}
	passenger := util.Uint160{7, 8, 9}
	key := util.Uint256{1, 1, 1}

	_, err := InsureeCreditedEventsFromApplicationLog(nil)
	require.Error(t, err)

	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Trigger: trigger.Application,
			VMState: vmstate.Halt,
			Events: []state.NotificationEvent{
				{
					Name: "AirlineFunded",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.NewByteArray(airline.BytesBE()),
						stackitem.Make(10_0000_0000),
					}),
				},
				{
					Name: "InsureeCredited",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.NewByteArray(key.BytesBE()),
						stackitem.NewByteArray(passenger.BytesBE()),
						stackitem.Make(1_5000_0000),
					}),
				},
				{
					Name: "InsureeCredited",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.NewByteArray(key.BytesBE()),
						stackitem.NewByteArray(airline.BytesBE()),
						stackitem.Make(0),
					}),
				},
			},
		}},
	}

	credited, err := InsureeCreditedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, credited, 2)
	require.Equal(t, passenger, credited[0].Passenger)
	require.Equal(t, big.NewInt(1_5000_0000), credited[0].Amount)
	require.Equal(t, int64(0), credited[1].Amount.Int64())

	funded, err := AirlineFundedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, funded, 1)
	require.Equal(t, airline, funded[0].Airline)

	withdrawn, err := CreditWithdrawnEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Empty(t, withdrawn)

	log.Executions[0].Events[0].Name = "CreditWithdrawn"
	log.Executions[0].Events[0].Item = stackitem.NewArray([]stackitem.Item{stackitem.Make(1)})
	_, err = CreditWithdrawnEventsFromApplicationLog(log)
	require.ErrorContains(t, err, "wrong number of structure elements")
}

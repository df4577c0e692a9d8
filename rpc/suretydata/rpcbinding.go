// Package suretydata contains RPC wrappers for FlightSurety data contract.
package suretydata

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/flightsurety/surety-contract/contracts/suretydata/airlinestate"
	"github.com/flightsurety/surety-contract/contracts/suretydata/flightstatus"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Airline is a contract-specific suretydata.Airline type used by its methods.
type Airline struct {
	Status airlinestate.Type
	Stake  *big.Int
	Voters []util.Uint160
}

// Flight is a contract-specific suretydata.Flight type used by its methods.
type Flight struct {
	Key       util.Uint256
	Airline   util.Uint160
	Code      string
	Timestamp int64
	Status    flightstatus.Type
}

// Policy is a contract-specific suretydata.Policy type used by its methods.
type Policy struct {
	Passenger util.Uint160
	Premium   *big.Int
	Payout    *big.Int
	Credited  bool
}

// Oracle is a contract-specific suretydata.Oracle type used by its methods.
type Oracle struct {
	Indexes []int
}

// Request is a contract-specific suretydata.Request type used by its methods.
type Request struct {
	ID        int64
	Requester util.Uint160
	FlightKey util.Uint256
	Indexes   []int
	Open      bool
	Counts    []int64
	Status    flightstatus.Type
}

// AirlineRegisteredEvent represents "AirlineRegistered" event emitted by the contract.
type AirlineRegisteredEvent struct {
	Airline util.Uint160
}

// AirlineFundedEvent represents "AirlineFunded" event emitted by the contract.
type AirlineFundedEvent struct {
	Airline util.Uint160
	Amount  *big.Int
}

// FlightRegisteredEvent represents "FlightRegistered" event emitted by the contract.
type FlightRegisteredEvent struct {
	FlightKey util.Uint256
	Airline   util.Uint160
	Flight    string
	Timestamp int64
}

// FlightStatusUpdatedEvent represents "FlightStatusUpdated" event emitted by the contract.
type FlightStatusUpdatedEvent struct {
	FlightKey util.Uint256
	Status    flightstatus.Type
}

// InsureeCreditedEvent represents "InsureeCredited" event emitted by the contract.
type InsureeCreditedEvent struct {
	FlightKey util.Uint256
	Passenger util.Uint160
	Amount    *big.Int
}

// CreditWithdrawnEvent represents "CreditWithdrawn" event emitted by the contract.
type CreditWithdrawnEvent struct {
	Passenger util.Uint160
	Amount    *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods available to the owner.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// AuthorizedCaller invokes `authorizedCaller` method of contract. Zero hash
// is returned if there is no authorized caller.
func (c *ContractReader) AuthorizedCaller() (util.Uint160, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "authorizedCaller"))
	if err != nil {
		return util.Uint160{}, err
	}
	if _, ok := item.(stackitem.Null); ok {
		return util.Uint160{}, nil
	}
	return ItemToUint160(item)
}

// IsOperational invokes `isOperational` method of contract.
func (c *ContractReader) IsOperational() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isOperational"))
}

// GetAirline invokes `getAirline` method of contract.
func (c *ContractReader) GetAirline(airline util.Uint160) (*Airline, error) {
	return ItemToAirline(unwrap.Item(c.invoker.Call(c.hash, "getAirline", airline)))
}

// AirlineCount invokes `airlineCount` method of contract.
func (c *ContractReader) AirlineCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "airlineCount"))
}

// FundedAirlineCount invokes `fundedAirlineCount` method of contract.
func (c *ContractReader) FundedAirlineCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "fundedAirlineCount"))
}

// GetFlight invokes `getFlight` method of contract.
func (c *ContractReader) GetFlight(flightKey util.Uint256) (*Flight, error) {
	return ItemToFlight(unwrap.Item(c.invoker.Call(c.hash, "getFlight", flightKey)))
}

// Flights invokes `flights` method of contract.
func (c *ContractReader) Flights() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "flights"))
}

// FlightsExpanded is similar to Flights (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) FlightsExpanded(_numOfIteratorItems int) ([]*Flight, error) {
	items, err := unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "flights", _numOfIteratorItems))
	if err != nil {
		return nil, err
	}

	res := make([]*Flight, len(items))
	for i := range items {
		res[i], err = ItemToFlight(items[i], nil)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return res, nil
}

// GetPolicy invokes `getPolicy` method of contract.
func (c *ContractReader) GetPolicy(flightKey util.Uint256, passenger util.Uint160) (*Policy, error) {
	return ItemToPolicy(unwrap.Item(c.invoker.Call(c.hash, "getPolicy", flightKey, passenger)))
}

// CreditOf invokes `creditOf` method of contract.
func (c *ContractReader) CreditOf(passenger util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "creditOf", passenger))
}

// GetOracle invokes `getOracle` method of contract.
func (c *ContractReader) GetOracle(oracle util.Uint160) (*Oracle, error) {
	return ItemToOracle(unwrap.Item(c.invoker.Call(c.hash, "getOracle", oracle)))
}

// GetRequest invokes `getRequest` method of contract.
func (c *ContractReader) GetRequest(id int64) (*Request, error) {
	return ItemToRequest(unwrap.Item(c.invoker.Call(c.hash, "getRequest", id)))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// AuthorizeCaller creates a transaction invoking `authorizeCaller` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AuthorizeCaller(caller util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "authorizeCaller", caller)
}

// AuthorizeCallerTransaction creates a transaction invoking `authorizeCaller` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AuthorizeCallerTransaction(caller util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "authorizeCaller", caller)
}

// AuthorizeCallerUnsigned creates a transaction invoking `authorizeCaller` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AuthorizeCallerUnsigned(caller util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "authorizeCaller", nil, caller)
}

// DeauthorizeCaller creates a transaction invoking `deauthorizeCaller` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) DeauthorizeCaller() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "deauthorizeCaller")
}

// DeauthorizeCallerTransaction creates a transaction invoking `deauthorizeCaller` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DeauthorizeCallerTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "deauthorizeCaller")
}

// DeauthorizeCallerUnsigned creates a transaction invoking `deauthorizeCaller` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DeauthorizeCallerUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "deauthorizeCaller", nil)
}

// SetOperatingStatus creates a transaction invoking `setOperatingStatus` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetOperatingStatus(operational bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setOperatingStatus", operational)
}

// SetOperatingStatusTransaction creates a transaction invoking `setOperatingStatus` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetOperatingStatusTransaction(operational bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setOperatingStatus", operational)
}

// SetOperatingStatusUnsigned creates a transaction invoking `setOperatingStatus` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetOperatingStatusUnsigned(operational bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setOperatingStatus", nil, operational)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// ItemToAirline converts stack item into *Airline.
func ItemToAirline(item stackitem.Item, err error) (*Airline, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Airline)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Airline from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Airline) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 3)
	if err != nil {
		return err
	}

	status, err := arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}
	res.Status = airlinestate.Type(status.Int64())

	res.Stake, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Stake: %w", err)
	}

	res.Voters, err = ItemToUint160s(arr[2])
	if err != nil {
		return fmt.Errorf("field Voters: %w", err)
	}

	return nil
}

// ItemToFlight converts stack item into *Flight.
func ItemToFlight(item stackitem.Item, err error) (*Flight, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Flight)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Flight from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Flight) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 5)
	if err != nil {
		return err
	}

	res.Key, err = ItemToUint256(arr[0])
	if err != nil {
		return fmt.Errorf("field Key: %w", err)
	}

	res.Airline, err = ItemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Airline: %w", err)
	}

	res.Code, err = ItemToString(arr[2])
	if err != nil {
		return fmt.Errorf("field Code: %w", err)
	}

	res.Timestamp, err = ItemToInt64(arr[3])
	if err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}

	status, err := ItemToInt64(arr[4])
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}
	res.Status = flightstatus.Type(status)

	return nil
}

// ItemToPolicy converts stack item into *Policy.
func ItemToPolicy(item stackitem.Item, err error) (*Policy, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Policy)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Policy from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Policy) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 4)
	if err != nil {
		return err
	}

	res.Passenger, err = ItemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Passenger: %w", err)
	}

	res.Premium, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Premium: %w", err)
	}

	res.Payout, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Payout: %w", err)
	}

	res.Credited, err = arr[3].TryBool()
	if err != nil {
		return fmt.Errorf("field Credited: %w", err)
	}

	return nil
}

// ItemToOracle converts stack item into *Oracle.
func ItemToOracle(item stackitem.Item, err error) (*Oracle, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Oracle)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Oracle from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
// Indexes of unregistered oracle are nil.
func (res *Oracle) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 1)
	if err != nil {
		return err
	}

	if _, ok := arr[0].(stackitem.Null); ok {
		res.Indexes = nil
		return nil
	}

	res.Indexes, err = ItemToInts(arr[0])
	if err != nil {
		return fmt.Errorf("field Indexes: %w", err)
	}

	return nil
}

// ItemToRequest converts stack item into *Request.
func ItemToRequest(item stackitem.Item, err error) (*Request, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Request)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Request from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Request) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 7)
	if err != nil {
		return err
	}

	res.ID, err = ItemToInt64(arr[0])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	res.Requester, err = ItemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Requester: %w", err)
	}

	res.FlightKey, err = ItemToUint256(arr[2])
	if err != nil {
		return fmt.Errorf("field FlightKey: %w", err)
	}

	res.Indexes, err = ItemToInts(arr[3])
	if err != nil {
		return fmt.Errorf("field Indexes: %w", err)
	}

	res.Open, err = arr[4].TryBool()
	if err != nil {
		return fmt.Errorf("field Open: %w", err)
	}

	counts, err := ItemToInts(arr[5])
	if err != nil {
		return fmt.Errorf("field Counts: %w", err)
	}
	res.Counts = make([]int64, len(counts))
	for i := range counts {
		res.Counts[i] = int64(counts[i])
	}

	status, err := ItemToInt64(arr[6])
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}
	res.Status = flightstatus.Type(status)

	return nil
}

// AirlineRegisteredEventsFromApplicationLog retrieves a set of all emitted events
// with "AirlineRegistered" name from the provided [result.ApplicationLog].
func AirlineRegisteredEventsFromApplicationLog(log *result.ApplicationLog) ([]*AirlineRegisteredEvent, error) {
	var res []*AirlineRegisteredEvent
	err := eventsFromApplicationLog(log, "AirlineRegistered", func(item *stackitem.Array) error {
		e := new(AirlineRegisteredEvent)
		if err := e.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, e)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to AirlineRegisteredEvent or
// returns an error if it's not possible to do to so.
func (e *AirlineRegisteredEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 1)
	if err != nil {
		return err
	}

	e.Airline, err = ItemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Airline: %w", err)
	}

	return nil
}

// AirlineFundedEventsFromApplicationLog retrieves a set of all emitted events
// with "AirlineFunded" name from the provided [result.ApplicationLog].
func AirlineFundedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AirlineFundedEvent, error) {
	var res []*AirlineFundedEvent
	err := eventsFromApplicationLog(log, "AirlineFunded", func(item *stackitem.Array) error {
		e := new(AirlineFundedEvent)
		if err := e.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, e)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to AirlineFundedEvent or
// returns an error if it's not possible to do to so.
func (e *AirlineFundedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.Airline, err = ItemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Airline: %w", err)
	}

	e.Amount, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// FlightRegisteredEventsFromApplicationLog retrieves a set of all emitted events
// with "FlightRegistered" name from the provided [result.ApplicationLog].
func FlightRegisteredEventsFromApplicationLog(log *result.ApplicationLog) ([]*FlightRegisteredEvent, error) {
	var res []*FlightRegisteredEvent
	err := eventsFromApplicationLog(log, "FlightRegistered", func(item *stackitem.Array) error {
		e := new(FlightRegisteredEvent)
		if err := e.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, e)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to FlightRegisteredEvent or
// returns an error if it's not possible to do to so.
func (e *FlightRegisteredEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 4)
	if err != nil {
		return err
	}

	e.FlightKey, err = ItemToUint256(arr[0])
	if err != nil {
		return fmt.Errorf("field FlightKey: %w", err)
	}

	e.Airline, err = ItemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Airline: %w", err)
	}

	e.Flight, err = ItemToString(arr[2])
	if err != nil {
		return fmt.Errorf("field Flight: %w", err)
	}

	e.Timestamp, err = ItemToInt64(arr[3])
	if err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}

	return nil
}

// FlightStatusUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "FlightStatusUpdated" name from the provided [result.ApplicationLog].
func FlightStatusUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*FlightStatusUpdatedEvent, error) {
	var res []*FlightStatusUpdatedEvent
	err := eventsFromApplicationLog(log, "FlightStatusUpdated", func(item *stackitem.Array) error {
		e := new(FlightStatusUpdatedEvent)
		if err := e.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, e)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to FlightStatusUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *FlightStatusUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.FlightKey, err = ItemToUint256(arr[0])
	if err != nil {
		return fmt.Errorf("field FlightKey: %w", err)
	}

	status, err := ItemToInt64(arr[1])
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}
	e.Status = flightstatus.Type(status)

	return nil
}

// InsureeCreditedEventsFromApplicationLog retrieves a set of all emitted events
// with "InsureeCredited" name from the provided [result.ApplicationLog].
func InsureeCreditedEventsFromApplicationLog(log *result.ApplicationLog) ([]*InsureeCreditedEvent, error) {
	var res []*InsureeCreditedEvent
	err := eventsFromApplicationLog(log, "InsureeCredited", func(item *stackitem.Array) error {
		e := new(InsureeCreditedEvent)
		if err := e.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, e)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to InsureeCreditedEvent or
// returns an error if it's not possible to do to so.
func (e *InsureeCreditedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 3)
	if err != nil {
		return err
	}

	e.FlightKey, err = ItemToUint256(arr[0])
	if err != nil {
		return fmt.Errorf("field FlightKey: %w", err)
	}

	e.Passenger, err = ItemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Passenger: %w", err)
	}

	e.Amount, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// CreditWithdrawnEventsFromApplicationLog retrieves a set of all emitted events
// with "CreditWithdrawn" name from the provided [result.ApplicationLog].
func CreditWithdrawnEventsFromApplicationLog(log *result.ApplicationLog) ([]*CreditWithdrawnEvent, error) {
	var res []*CreditWithdrawnEvent
	err := eventsFromApplicationLog(log, "CreditWithdrawn", func(item *stackitem.Array) error {
		e := new(CreditWithdrawnEvent)
		if err := e.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, e)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to CreditWithdrawnEvent or
// returns an error if it's not possible to do to so.
func (e *CreditWithdrawnEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.Passenger, err = ItemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Passenger: %w", err)
	}

	e.Amount, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

func eventsFromApplicationLog(log *result.ApplicationLog, name string, f func(*stackitem.Array) error) error {
	if log == nil {
		return errors.New("nil application log")
	}

	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != name {
				continue
			}
			if err := f(e.Item); err != nil {
				return fmt.Errorf("failed to deserialize %sEvent from stackitem (execution #%d, event #%d): %w", name, i, j, err)
			}
		}
	}

	return nil
}

func eventFields(item *stackitem.Array, n int) ([]stackitem.Item, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}
	return structFields(item, n)
}

func structFields(item stackitem.Item, n int) ([]stackitem.Item, error) {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	if len(arr) != n {
		return nil, errors.New("wrong number of structure elements")
	}
	return arr, nil
}

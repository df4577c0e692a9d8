// Package suretyapp contains RPC wrappers for FlightSurety application contract.
package suretyapp

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/flightsurety/surety-contract/contracts/suretydata/flightstatus"
	"github.com/flightsurety/surety-contract/rpc/suretydata"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

type (
	// Airline is a contract-specific suretyapp.Airline type used by its methods.
	Airline = suretydata.Airline
	// Flight is a contract-specific suretyapp.Flight type used by its methods.
	Flight = suretydata.Flight
	// Policy is a contract-specific suretyapp.Policy type used by its methods.
	Policy = suretydata.Policy
	// Request is a contract-specific suretyapp.Request type used by its methods.
	Request = suretydata.Request
)

// OracleRequestEvent represents "OracleRequest" event emitted by the contract.
type OracleRequestEvent struct {
	RequestID int64
	Indexes   []int
	FlightKey util.Uint256
	Airline   util.Uint160
	Flight    string
	Timestamp int64
}

// OracleReportEvent represents "OracleReport" event emitted by the contract.
type OracleReportEvent struct {
	RequestID int64
	Oracle    util.Uint160
	FlightKey util.Uint256
	Status    flightstatus.Type
}

// FlightStatusInfoEvent represents "FlightStatusInfo" event emitted by the contract.
type FlightStatusInfoEvent struct {
	RequestID int64
	FlightKey util.Uint256
	Status    flightstatus.Type
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
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

// Contract implements all contract methods.
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

// DataContract invokes `dataContract` method of contract.
func (c *ContractReader) DataContract() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "dataContract"))
}

// IsOperational invokes `isOperational` method of contract.
func (c *ContractReader) IsOperational() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isOperational"))
}

// GetAirline invokes `getAirline` method of contract.
func (c *ContractReader) GetAirline(airline util.Uint160) (*Airline, error) {
	return suretydata.ItemToAirline(unwrap.Item(c.invoker.Call(c.hash, "getAirline", airline)))
}

// GetFlightKey invokes `getFlightKey` method of contract. See also FlightKey.
func (c *ContractReader) GetFlightKey(airline util.Uint160, code string, timestamp int64) (util.Uint256, error) {
	return unwrap.Uint256(c.invoker.Call(c.hash, "getFlightKey", airline, code, timestamp))
}

// GetFlight invokes `getFlight` method of contract.
func (c *ContractReader) GetFlight(flightKey util.Uint256) (*Flight, error) {
	return suretydata.ItemToFlight(unwrap.Item(c.invoker.Call(c.hash, "getFlight", flightKey)))
}

// GetFlightStatus invokes `getFlightStatus` method of contract.
func (c *ContractReader) GetFlightStatus(flightKey util.Uint256) (flightstatus.Type, error) {
	v, err := unwrap.Int64(c.invoker.Call(c.hash, "getFlightStatus", flightKey))
	return flightstatus.Type(v), err
}

// GetPolicy invokes `getPolicy` method of contract.
func (c *ContractReader) GetPolicy(flightKey util.Uint256, passenger util.Uint160) (*Policy, error) {
	return suretydata.ItemToPolicy(unwrap.Item(c.invoker.Call(c.hash, "getPolicy", flightKey, passenger)))
}

// CreditOf invokes `creditOf` method of contract.
func (c *ContractReader) CreditOf(passenger util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "creditOf", passenger))
}

// IsOracleRegistered invokes `isOracleRegistered` method of contract.
func (c *ContractReader) IsOracleRegistered(oracle util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isOracleRegistered", oracle))
}

// GetMyIndexes invokes `getMyIndexes` method of contract.
func (c *ContractReader) GetMyIndexes(oracle util.Uint160) ([]int, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "getMyIndexes", oracle))
	if err != nil {
		return nil, err
	}
	return suretydata.ItemToInts(item)
}

// GetRequest invokes `getRequest` method of contract.
func (c *ContractReader) GetRequest(id int64) (*Request, error) {
	return suretydata.ItemToRequest(unwrap.Item(c.invoker.Call(c.hash, "getRequest", id)))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// ApplyAirline creates a transaction invoking `applyAirline` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ApplyAirline(airline util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "applyAirline", airline)
}

// ApplyAirlineTransaction creates a transaction invoking `applyAirline` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ApplyAirlineTransaction(airline util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "applyAirline", airline)
}

// ApplyAirlineUnsigned creates a transaction invoking `applyAirline` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ApplyAirlineUnsigned(airline util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "applyAirline", nil, airline)
}

// RegisterAirline creates a transaction invoking `registerAirline` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RegisterAirline(sponsor util.Uint160, airline util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "registerAirline", sponsor, airline)
}

// RegisterAirlineTransaction creates a transaction invoking `registerAirline` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RegisterAirlineTransaction(sponsor util.Uint160, airline util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "registerAirline", sponsor, airline)
}

// RegisterAirlineUnsigned creates a transaction invoking `registerAirline` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RegisterAirlineUnsigned(sponsor util.Uint160, airline util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "registerAirline", nil, sponsor, airline)
}

// VoteAirline creates a transaction invoking `voteAirline` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) VoteAirline(voter util.Uint160, airline util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "voteAirline", voter, airline)
}

// VoteAirlineTransaction creates a transaction invoking `voteAirline` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) VoteAirlineTransaction(voter util.Uint160, airline util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "voteAirline", voter, airline)
}

// VoteAirlineUnsigned creates a transaction invoking `voteAirline` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) VoteAirlineUnsigned(voter util.Uint160, airline util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "voteAirline", nil, voter, airline)
}

// RegisterFlight creates a transaction invoking `registerFlight` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RegisterFlight(airline util.Uint160, code string, timestamp int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "registerFlight", airline, code, timestamp)
}

// RegisterFlightTransaction creates a transaction invoking `registerFlight` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RegisterFlightTransaction(airline util.Uint160, code string, timestamp int64) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "registerFlight", airline, code, timestamp)
}

// RegisterFlightUnsigned creates a transaction invoking `registerFlight` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RegisterFlightUnsigned(airline util.Uint160, code string, timestamp int64) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "registerFlight", nil, airline, code, timestamp)
}

// WithdrawCredit creates a transaction invoking `withdrawCredit` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) WithdrawCredit(passenger util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdrawCredit", passenger)
}

// WithdrawCreditTransaction creates a transaction invoking `withdrawCredit` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawCreditTransaction(passenger util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdrawCredit", passenger)
}

// WithdrawCreditUnsigned creates a transaction invoking `withdrawCredit` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawCreditUnsigned(passenger util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdrawCredit", nil, passenger)
}

// RequestFlightStatus creates a transaction invoking `requestFlightStatus` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RequestFlightStatus(flightKey util.Uint256) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "requestFlightStatus", flightKey)
}

// RequestFlightStatusTransaction creates a transaction invoking `requestFlightStatus` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RequestFlightStatusTransaction(flightKey util.Uint256) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "requestFlightStatus", flightKey)
}

// RequestFlightStatusUnsigned creates a transaction invoking `requestFlightStatus` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RequestFlightStatusUnsigned(flightKey util.Uint256) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "requestFlightStatus", nil, flightKey)
}

// SubmitOracleResponse creates a transaction invoking `submitOracleResponse` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SubmitOracleResponse(oracle util.Uint160, requestID int64, flightKey util.Uint256, status flightstatus.Type) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "submitOracleResponse", oracle, requestID, flightKey, int64(status))
}

// SubmitOracleResponseTransaction creates a transaction invoking `submitOracleResponse` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SubmitOracleResponseTransaction(oracle util.Uint160, requestID int64, flightKey util.Uint256, status flightstatus.Type) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "submitOracleResponse", oracle, requestID, flightKey, int64(status))
}

// SubmitOracleResponseUnsigned creates a transaction invoking `submitOracleResponse` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SubmitOracleResponseUnsigned(oracle util.Uint160, requestID int64, flightKey util.Uint256, status flightstatus.Type) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "submitOracleResponse", nil, oracle, requestID, flightKey, int64(status))
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

// OracleRequestEventsFromApplicationLog retrieves a set of all emitted events
// with "OracleRequest" name from the provided [result.ApplicationLog].
func OracleRequestEventsFromApplicationLog(log *result.ApplicationLog) ([]*OracleRequestEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*OracleRequestEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "OracleRequest" {
				continue
			}
			event := new(OracleRequestEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize OracleRequestEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to OracleRequestEvent or
// returns an error if it's not possible to do to so.
func (e *OracleRequestEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 6)
	if err != nil {
		return err
	}

	e.RequestID, err = suretydata.ItemToInt64(arr[0])
	if err != nil {
		return fmt.Errorf("field RequestID: %w", err)
	}

	e.Indexes, err = suretydata.ItemToInts(arr[1])
	if err != nil {
		return fmt.Errorf("field Indexes: %w", err)
	}

	e.FlightKey, err = suretydata.ItemToUint256(arr[2])
	if err != nil {
		return fmt.Errorf("field FlightKey: %w", err)
	}

	e.Airline, err = suretydata.ItemToUint160(arr[3])
	if err != nil {
		return fmt.Errorf("field Airline: %w", err)
	}

	e.Flight, err = suretydata.ItemToString(arr[4])
	if err != nil {
		return fmt.Errorf("field Flight: %w", err)
	}

	e.Timestamp, err = suretydata.ItemToInt64(arr[5])
	if err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}

	return nil
}

// OracleReportEventsFromApplicationLog retrieves a set of all emitted events
// with "OracleReport" name from the provided [result.ApplicationLog].
func OracleReportEventsFromApplicationLog(log *result.ApplicationLog) ([]*OracleReportEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*OracleReportEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "OracleReport" {
				continue
			}
			event := new(OracleReportEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize OracleReportEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to OracleReportEvent or
// returns an error if it's not possible to do to so.
func (e *OracleReportEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 4)
	if err != nil {
		return err
	}

	e.RequestID, err = suretydata.ItemToInt64(arr[0])
	if err != nil {
		return fmt.Errorf("field RequestID: %w", err)
	}

	e.Oracle, err = suretydata.ItemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Oracle: %w", err)
	}

	e.FlightKey, err = suretydata.ItemToUint256(arr[2])
	if err != nil {
		return fmt.Errorf("field FlightKey: %w", err)
	}

	status, err := suretydata.ItemToInt64(arr[3])
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}
	e.Status = flightstatus.Type(status)

	return nil
}

// FlightStatusInfoEventsFromApplicationLog retrieves a set of all emitted events
// with "FlightStatusInfo" name from the provided [result.ApplicationLog].
func FlightStatusInfoEventsFromApplicationLog(log *result.ApplicationLog) ([]*FlightStatusInfoEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*FlightStatusInfoEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "FlightStatusInfo" {
				continue
			}
			event := new(FlightStatusInfoEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize FlightStatusInfoEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to FlightStatusInfoEvent or
// returns an error if it's not possible to do to so.
func (e *FlightStatusInfoEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 3)
	if err != nil {
		return err
	}

	e.RequestID, err = suretydata.ItemToInt64(arr[0])
	if err != nil {
		return fmt.Errorf("field RequestID: %w", err)
	}

	e.FlightKey, err = suretydata.ItemToUint256(arr[1])
	if err != nil {
		return fmt.Errorf("field FlightKey: %w", err)
	}

	status, err := suretydata.ItemToInt64(arr[2])
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}
	e.Status = flightstatus.Type(status)

	return nil
}

func eventFields(item *stackitem.Array, n int) ([]stackitem.Item, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	if len(arr) != n {
		return nil, errors.New("wrong number of structure elements")
	}
	return arr, nil
}

package suretyapp

import (
	"github.com/flightsurety/surety-contract/common"
	"github.com/flightsurety/surety-contract/contracts/suretyapp/suretyconst"
	"github.com/flightsurety/surety-contract/contracts/suretydata/airlinestate"
	"github.com/flightsurety/surety-contract/contracts/suretydata/flightstatus"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Airline is an airline record of the data contract.
	Airline struct {
		Status int
		Stake  int
		Voters []interop.Hash160
	}

	// Flight is a flight record of the data contract.
	Flight struct {
		Key       interop.Hash256
		Airline   interop.Hash160
		Code      string
		Timestamp int
		Status    int
	}

	// Policy is a policy record of the data contract.
	Policy struct {
		Passenger interop.Hash160
		Premium   int
		Payout    int
		Credited  bool
	}
)

const (
	dataContractKey = "data"
	nonceKey        = "nonce"
)

func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		dataContract interop.Hash160
		firstAirline interop.Hash160
	})

	if len(args.dataContract) != interop.Hash160Len {
		panic("incorrect length of data contract address")
	}
	checkAddress(args.firstAirline)

	storage.Put(ctx, dataContractKey, args.dataContract)

	// seed airline, the data contract must authorize this contract beforehand
	contract.Call(args.dataContract, "registerAirline", contract.All, args.firstAirline)

	runtime.Log("flightsurety application contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the owner of the data contract.
func Update(script []byte, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	owner := contract.Call(getDataContract(ctx), "owner", contract.ReadOnly).(interop.Hash160)
	common.UpdateContract(owner, script, manifest, data)
}

// DataContract returns hash of the data contract.
func DataContract() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getDataContract(ctx)
}

// IsOperational returns false if state-changing operations are paused.
func IsOperational() bool {
	ctx := storage.GetReadOnlyContext()
	return contract.Call(getDataContract(ctx), "isOperational", contract.ReadOnly).(bool)
}

// ApplyAirline submits a candidate airline for the consensus of funded
// airlines. The candidate must sign the transaction.
func ApplyAirline(airline interop.Hash160) {
	data := operationalDataContract()
	checkAddress(airline)
	common.CheckWitness(airline)

	contract.Call(data, "applyAirline", contract.All, airline)
}

// RegisterAirline registers an airline sponsored by a funded airline and
// returns true if the airline is Registered after the call.
//
// Up to suretyconst.DirectRegistrationLimit registered airlines the sponsor
// registers a candidate directly. Afterwards the call applies the candidate
// if needed and counts as the sponsor's vote, see VoteAirline.
func RegisterAirline(sponsor interop.Hash160, airline interop.Hash160) bool {
	data := operationalDataContract()
	checkAddress(airline)
	common.CheckWitness(sponsor)
	requireFunded(data, sponsor)

	status := airlineStatus(data, airline)
	if status == int(airlinestate.Registered) || status == int(airlinestate.Funded) {
		panic(common.ErrAlreadyExists + ": airline")
	}

	count := contract.Call(data, "airlineCount", contract.ReadOnly).(int)
	if count <= suretyconst.DirectRegistrationLimit {
		contract.Call(data, "registerAirline", contract.All, airline)
		return true
	}

	if status == int(airlinestate.Unregistered) {
		contract.Call(data, "applyAirline", contract.All, airline)
	}

	return vote(data, sponsor, airline)
}

// VoteAirline casts a vote of the funded airline for the Applied candidate
// and returns true if the candidate is Registered after the call. Candidate
// becomes Registered once at least half of funded airlines voted for it.
// Repeated votes are no-op.
func VoteAirline(voter interop.Hash160, airline interop.Hash160) bool {
	data := operationalDataContract()
	common.CheckWitness(voter)
	requireFunded(data, voter)

	return vote(data, voter, airline)
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// It accepts stakes, premiums and oracle fees, data is an array with the
// payment kind first (see suretyconst). Received GAS is forwarded to the
// data contract.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		panic("onNEP17Payment: only GAS can be accepted")
	}
	if len(from) != interop.Hash160Len {
		panic("onNEP17Payment: invalid sender")
	}
	if data == nil {
		panic("onNEP17Payment: missing payment kind")
	}

	args := data.([]any)
	if len(args) == 0 {
		panic("onNEP17Payment: missing payment kind")
	}

	switch args[0].(string) {
	case suretyconst.PaymentStake:
		fund(from, amount)
	case suretyconst.PaymentPremium:
		if len(args) != 2 {
			panic("onNEP17Payment: flight key expected")
		}
		buyInsurance(from, args[1].(interop.Hash256), amount)
	case suretyconst.PaymentOracleFee:
		registerOracle(from, amount)
	default:
		panic("onNEP17Payment: unknown payment kind")
	}
}

// fund pays the stake of the Registered airline. Amount must be exactly
// suretyconst.AirlineStake.
func fund(airline interop.Hash160, amount int) {
	data := operationalDataContract()

	status := airlineStatus(data, airline)
	if status == int(airlinestate.Unregistered) {
		panic(common.ErrNotFound + ": airline")
	}
	if status != int(airlinestate.Registered) {
		panic(common.ErrInvalidState + ": airline is not registered")
	}

	if amount < suretyconst.AirlineStake {
		panic(common.ErrInsufficientFunds + ": stake is " + std.Itoa(suretyconst.AirlineStake, 10))
	}
	if amount > suretyconst.AirlineStake {
		panic(common.ErrInvalidAmount + ": stake is " + std.Itoa(suretyconst.AirlineStake, 10))
	}

	forward(data, amount)
	contract.Call(data, "fundAirline", contract.All, airline, amount)
}

// GetAirline returns the airline record.
func GetAirline(airline interop.Hash160) Airline {
	ctx := storage.GetReadOnlyContext()
	return contract.Call(getDataContract(ctx), "getAirline", contract.ReadOnly, airline).(Airline)
}

// RegisterFlight registers a flight of the funded airline and returns its key.
// Timestamp is the scheduled departure time in milliseconds.
func RegisterFlight(airline interop.Hash160, code string, timestamp int) interop.Hash256 {
	data := operationalDataContract()
	common.CheckWitness(airline)
	requireFunded(data, airline)

	if len(code) == 0 {
		panic(common.ErrInvalidState + ": empty flight code")
	}
	if timestamp <= 0 {
		panic(common.ErrInvalidState + ": invalid flight timestamp")
	}

	key := flightKey(airline, code, timestamp)
	contract.Call(data, "registerFlight", contract.All, key, airline, code, timestamp)

	return key
}

// GetFlightKey returns the key of the flight.
func GetFlightKey(airline interop.Hash160, code string, timestamp int) interop.Hash256 {
	return flightKey(airline, code, timestamp)
}

// GetFlight returns the flight record. It fails if the flight is not registered.
func GetFlight(key interop.Hash256) Flight {
	ctx := storage.GetReadOnlyContext()
	return getFlight(getDataContract(ctx), key)
}

// GetFlightStatus returns the status code of the flight.
func GetFlightStatus(key interop.Hash256) int {
	ctx := storage.GetReadOnlyContext()
	f := getFlight(getDataContract(ctx), key)
	return f.Status
}

// buyInsurance buys or tops up the passenger's policy for the flight that
// has not departed yet. Total premium of the policy can't exceed
// suretyconst.PremiumCap.
func buyInsurance(passenger interop.Hash160, key interop.Hash256, premium int) {
	data := operationalDataContract()

	if premium <= 0 {
		panic(common.ErrInvalidAmount + ": premium must be positive")
	}

	f := getFlight(data, key)
	if f.Timestamp <= runtime.GetTime() {
		panic(common.ErrFlightDeparted)
	}
	if f.Status != int(flightstatus.Unknown) {
		panic(common.ErrInvalidState + ": flight status is already set")
	}

	p := contract.Call(data, "getPolicy", contract.ReadOnly, key, passenger).(Policy)
	if p.Premium+premium > suretyconst.PremiumCap {
		panic(common.ErrPremiumTooHigh + ": cap is " + std.Itoa(suretyconst.PremiumCap, 10))
	}

	forward(data, premium)
	contract.Call(data, "buyInsurance", contract.All, key, passenger, premium)
}

// GetPolicy returns the passenger's policy for the flight.
func GetPolicy(key interop.Hash256, passenger interop.Hash160) Policy {
	ctx := storage.GetReadOnlyContext()
	return contract.Call(getDataContract(ctx), "getPolicy", contract.ReadOnly, key, passenger).(Policy)
}

// CreditOf returns the amount of GAS the passenger can withdraw.
func CreditOf(passenger interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return contract.Call(getDataContract(ctx), "creditOf", contract.ReadOnly, passenger).(int)
}

// WithdrawCredit transfers all credited payouts to the passenger and returns
// the transferred amount.
func WithdrawCredit(passenger interop.Hash160) int {
	data := operationalDataContract()
	common.CheckWitness(passenger)

	return contract.Call(data, "withdrawCredit", contract.All, passenger).(int)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getDataContract(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, dataContractKey).(interop.Hash160)
}

// operationalDataContract returns data contract hash. It panics if the data
// contract is paused.
func operationalDataContract() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	data := getDataContract(ctx)
	if !contract.Call(data, "isOperational", contract.ReadOnly).(bool) {
		panic(common.ErrNotOperational)
	}
	return data
}

// forward moves received GAS to the data contract.
func forward(data interop.Hash160, amount int) {
	common.TransferGAS(runtime.GetExecutingScriptHash(), data, amount,
		common.ErrInsufficientFunds+": transfer to data contract failed")
}

func checkAddress(account interop.Hash160) {
	if len(account) != interop.Hash160Len {
		panic("incorrect length of airline address")
	}
}

func airlineStatus(data interop.Hash160, airline interop.Hash160) int {
	a := contract.Call(data, "getAirline", contract.ReadOnly, airline).(Airline)
	return a.Status
}

func requireFunded(data interop.Hash160, airline interop.Hash160) {
	if airlineStatus(data, airline) != int(airlinestate.Funded) {
		panic(common.ErrInvalidState + ": airline is not funded")
	}
}

func vote(data interop.Hash160, voter interop.Hash160, airline interop.Hash160) bool {
	votes := contract.Call(data, "voteAirline", contract.All, airline, voter).(int)
	funded := contract.Call(data, "fundedAirlineCount", contract.ReadOnly).(int)

	if votes*2 < funded {
		return false
	}

	contract.Call(data, "registerAirline", contract.All, airline)
	return true
}

func getFlight(data interop.Hash160, key interop.Hash256) Flight {
	return contract.Call(data, "getFlight", contract.ReadOnly, key).(Flight)
}

// flightKey returns SHA256(airline || decimal timestamp || "/" || code).
func flightKey(airline interop.Hash160, code string, timestamp int) interop.Hash256 {
	seed := append([]byte{}, airline...)
	seed = append(seed, []byte(std.Itoa(timestamp, 10)+"/"+code)...)
	return crypto.Sha256(seed)
}

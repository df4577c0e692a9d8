package suretydata

import (
	"github.com/flightsurety/surety-contract/common"
	"github.com/flightsurety/surety-contract/contracts/suretydata/airlinestate"
	"github.com/flightsurety/surety-contract/contracts/suretydata/flightstatus"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Airline is a participant of the insurance pool.
	Airline struct {
		Status int
		Stake  int
		Voters []interop.Hash160
	}

	// Flight is a scheduled flight of a funded airline.
	Flight struct {
		Key       interop.Hash256
		Airline   interop.Hash160
		Code      string
		Timestamp int
		Status    int
	}

	// Policy is an insurance policy of a single passenger for a single flight.
	Policy struct {
		Passenger interop.Hash160
		Premium   int
		Payout    int
		Credited  bool
	}

	// Oracle is a registered oracle with its assigned indexes.
	Oracle struct {
		Indexes []int
	}

	// Request is a flight status request answered by oracles.
	Request struct {
		ID        int
		Requester interop.Hash160
		FlightKey interop.Hash256
		Indexes   []int
		Open      bool
		Counts    []int
		Status    int
	}
)

const (
	ownerKey          = "owner"
	callerKey         = "caller"
	pausedKey         = "paused"
	airlineCountKey   = "registeredAirlines"
	fundedCountKey    = "fundedAirlines"
	requestCounterKey = "lastRequest"

	airlinePrefix  = 'A'
	ballotPrefix   = 'V'
	flightPrefix   = 'F'
	policyPrefix   = 'P'
	creditPrefix   = 'W'
	oraclePrefix   = 'O'
	requestPrefix  = 'R'
	responsePrefix = 'S'
)

func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of owner address")
	}

	storage.Put(ctx, ownerKey, args.owner)

	runtime.Log("flightsurety data contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.UpdateContract(getOwner(ctx), script, manifest, data)
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// All stakes, premiums and oracle fees are held by this contract.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		common.AbortWithMessage("flightsurety data contract accepts GAS only")
	}
}

// Owner returns the account allowed to manage the authorized caller and the
// operational status.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getOwner(ctx)
}

// AuthorizeCaller sets the only contract allowed to change the state. It
// replaces the previously authorized caller if any.
func AuthorizeCaller(caller interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	if len(caller) != interop.Hash160Len {
		panic("incorrect length of caller address")
	}

	storage.Put(ctx, callerKey, caller)
	runtime.Notify("CallerAuthorized", caller)
}

// DeauthorizeCaller removes the authorized caller, so the data contract can't
// be changed until a new one is authorized.
func DeauthorizeCaller() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	caller := storage.Get(ctx, callerKey)
	if caller == nil {
		panic(common.ErrNotFound + ": authorized caller")
	}

	storage.Delete(ctx, callerKey)
	runtime.Notify("CallerDeauthorized", caller.(interop.Hash160))
}

// AuthorizedCaller returns hash of the authorized caller contract or nil.
func AuthorizedCaller() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	caller := storage.Get(ctx, callerKey)
	if caller == nil {
		return nil
	}
	return caller.(interop.Hash160)
}

// SetOperatingStatus pauses or resumes all state-changing operations.
func SetOperatingStatus(operational bool) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	if operational == isOperational(ctx) {
		panic(common.ErrInvalidState + ": operational status is already set")
	}

	if operational {
		storage.Delete(ctx, pausedKey)
	} else {
		storage.Put(ctx, pausedKey, true)
	}

	runtime.Notify("OperationalStatusChanged", operational)
}

// IsOperational returns false if state-changing operations are paused.
func IsOperational() bool {
	ctx := storage.GetReadOnlyContext()
	return isOperational(ctx)
}

// ApplyAirline creates an airline in Applied state.
func ApplyAirline(airline interop.Hash160) {
	ctx := storage.GetContext()
	checkCaller(ctx)

	key := airlineKey(airline)
	if storage.Get(ctx, key) != nil {
		panic(common.ErrAlreadyExists + ": airline")
	}

	common.SetSerialized(ctx, key, Airline{Status: int(airlinestate.Applied)})
	runtime.Notify("AirlineApplied", airline)
}

// RegisterAirline makes the airline Registered. It either creates a new
// airline or promotes an Applied one.
func RegisterAirline(airline interop.Hash160) {
	ctx := storage.GetContext()
	checkCaller(ctx)

	key := airlineKey(airline)
	data := storage.Get(ctx, key)
	if data != nil {
		a := std.Deserialize(data.([]byte)).(Airline)
		if a.Status != int(airlinestate.Applied) {
			panic(common.ErrAlreadyExists + ": airline")
		}
	}

	common.SetSerialized(ctx, key, Airline{Status: int(airlinestate.Registered)})
	common.IncInt(ctx, airlineCountKey)

	runtime.Notify("AirlineRegistered", airline)
}

// VoteAirline records a vote of voter for the Applied airline and returns
// the number of distinct voters. Repeated votes are not counted.
func VoteAirline(airline interop.Hash160, voter interop.Hash160) int {
	ctx := storage.GetContext()
	checkCaller(ctx)

	a := getAirline(ctx, airline)
	if a.Status == int(airlinestate.Unregistered) {
		panic(common.ErrNotFound + ": airline")
	}
	if a.Status != int(airlinestate.Applied) {
		panic(common.ErrInvalidState + ": airline is not applied")
	}

	prefix := []byte{ballotPrefix}
	before := len(common.Voters(ctx, prefix, airline))
	votes := common.Vote(ctx, prefix, airline, voter)
	if votes != before {
		runtime.Notify("AirlineVoted", airline, voter, votes)
	}

	return votes
}

// FundAirline moves the Registered airline to Funded state and records its
// stake. The stake itself must be transferred to this contract in the same
// transaction.
func FundAirline(airline interop.Hash160, amount int) {
	ctx := storage.GetContext()
	checkCaller(ctx)

	a := getAirline(ctx, airline)
	if a.Status == int(airlinestate.Unregistered) {
		panic(common.ErrNotFound + ": airline")
	}
	if a.Status != int(airlinestate.Registered) {
		panic(common.ErrInvalidState + ": airline is not registered")
	}

	common.SetSerialized(ctx, airlineKey(airline), Airline{
		Status: int(airlinestate.Funded),
		Stake:  amount,
	})
	common.IncInt(ctx, fundedCountKey)

	runtime.Notify("AirlineFunded", airline, amount)
}

// GetAirline returns the airline record. Status of unknown airline is
// Unregistered.
func GetAirline(airline interop.Hash160) Airline {
	ctx := storage.GetReadOnlyContext()
	a := getAirline(ctx, airline)
	a.Voters = common.Voters(ctx, []byte{ballotPrefix}, airline)
	return a
}

// AirlineCount returns the number of Registered and Funded airlines.
func AirlineCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, airlineCountKey)
}

// FundedAirlineCount returns the number of Funded airlines.
func FundedAirlineCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, fundedCountKey)
}

// RegisterFlight creates a flight with Unknown status.
func RegisterFlight(flightKey interop.Hash256, airline interop.Hash160, code string, timestamp int) {
	ctx := storage.GetContext()
	checkCaller(ctx)

	key := flightStorageKey(flightKey)
	if storage.Get(ctx, key) != nil {
		panic(common.ErrAlreadyExists + ": flight")
	}

	common.SetSerialized(ctx, key, Flight{
		Key:       flightKey,
		Airline:   airline,
		Code:      code,
		Timestamp: timestamp,
		Status:    int(flightstatus.Unknown),
	})

	runtime.Notify("FlightRegistered", flightKey, airline, code, timestamp)
}

// SetFlightStatus sets the final status of the flight. It can be done only
// once per flight.
func SetFlightStatus(flightKey interop.Hash256, status int) {
	ctx := storage.GetContext()
	checkCaller(ctx)

	f := getFlight(ctx, flightKey)
	if f.Status != int(flightstatus.Unknown) {
		panic(common.ErrInvalidState + ": flight status is already set")
	}
	if !flightstatus.IsFinal(flightstatus.Type(status)) {
		panic(common.ErrInvalidState + ": invalid flight status")
	}

	f.Status = status
	common.SetSerialized(ctx, flightStorageKey(flightKey), f)

	runtime.Notify("FlightStatusUpdated", flightKey, status)
}

// GetFlight returns the flight record. It fails if the flight is not
// registered.
func GetFlight(flightKey interop.Hash256) Flight {
	ctx := storage.GetReadOnlyContext()
	return getFlight(ctx, flightKey)
}

// Flights returns iterator over all registered flights.
func Flights() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{flightPrefix}, storage.ValuesOnly|storage.DeserializeValues)
}

// BuyInsurance creates or tops up the passenger's policy for the flight. The
// premium itself must be transferred to this contract in the same transaction.
func BuyInsurance(flightKey interop.Hash256, passenger interop.Hash160, premium int) {
	ctx := storage.GetContext()
	checkCaller(ctx)

	getFlight(ctx, flightKey)

	p := getPolicy(ctx, flightKey, passenger)
	if p.Credited {
		panic(common.ErrInvalidState + ": policy is already settled")
	}

	p.Premium += premium
	common.SetSerialized(ctx, policyKey(flightKey, passenger), p)

	runtime.Notify("InsurancePurchased", flightKey, passenger, premium)
}

// GetPolicy returns the passenger's policy for the flight. Premium of
// non-existent policy is zero.
func GetPolicy(flightKey interop.Hash256, passenger interop.Hash160) Policy {
	ctx := storage.GetReadOnlyContext()
	return getPolicy(ctx, flightKey, passenger)
}

// CreditPayout credits premium*numerator/denominator to every policy of the
// finalized flight. Each policy is credited at most once, the result is
// truncated toward zero.
func CreditPayout(flightKey interop.Hash256, numerator int, denominator int) {
	ctx := storage.GetContext()
	checkCaller(ctx)

	f := getFlight(ctx, flightKey)
	if f.Status == int(flightstatus.Unknown) {
		panic(common.ErrInvalidState + ": flight status is not set")
	}
	if numerator < 0 || denominator <= 0 {
		panic(common.ErrInvalidAmount + ": invalid payout ratio")
	}

	policies := []Policy{}
	it := storage.Find(ctx, append([]byte{policyPrefix}, flightKey...),
		storage.ValuesOnly|storage.DeserializeValues)
	for iterator.Next(it) {
		p := iterator.Value(it).(Policy)
		if !p.Credited {
			policies = append(policies, p)
		}
	}

	for i := range policies {
		p := policies[i]
		p.Payout = p.Premium * numerator / denominator
		p.Credited = true
		common.SetSerialized(ctx, policyKey(flightKey, p.Passenger), p)

		if p.Payout > 0 {
			key := creditKey(p.Passenger)
			storage.Put(ctx, key, common.GetInt(ctx, key)+p.Payout)
		}

		runtime.Notify("InsureeCredited", flightKey, p.Passenger, p.Payout)
	}
}

// CreditOf returns the amount of GAS the passenger can withdraw.
func CreditOf(passenger interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, creditKey(passenger))
}

// WithdrawCredit transfers the whole credit of the passenger to the passenger
// and returns the transferred amount. Credit is cleared before the transfer.
func WithdrawCredit(passenger interop.Hash160) int {
	ctx := storage.GetContext()
	checkCaller(ctx)

	key := creditKey(passenger)
	amount := common.GetInt(ctx, key)
	if amount <= 0 {
		panic(common.ErrNoCredit)
	}

	storage.Delete(ctx, key)

	common.TransferGAS(runtime.GetExecutingScriptHash(), passenger, amount,
		common.ErrInsufficientFunds+": credit transfer failed")

	runtime.Notify("CreditWithdrawn", passenger, amount)

	return amount
}

// RegisterOracle saves the oracle with its assigned indexes.
func RegisterOracle(oracle interop.Hash160, indexes []int) {
	ctx := storage.GetContext()
	checkCaller(ctx)

	key := append([]byte{oraclePrefix}, oracle...)
	if storage.Get(ctx, key) != nil {
		panic(common.ErrAlreadyExists + ": oracle")
	}

	common.SetSerialized(ctx, key, Oracle{Indexes: indexes})
	runtime.Notify("OracleRegistered", oracle, indexes)
}

// GetOracle returns the oracle record. Indexes of unknown oracle are nil.
func GetOracle(oracle interop.Hash160) Oracle {
	ctx := storage.GetReadOnlyContext()
	data := storage.Get(ctx, append([]byte{oraclePrefix}, oracle...))
	if data == nil {
		return Oracle{}
	}
	return std.Deserialize(data.([]byte)).(Oracle)
}

// CreateRequest opens a flight status request and returns its ID.
func CreateRequest(flightKey interop.Hash256, requester interop.Hash160, indexes []int) int {
	ctx := storage.GetContext()
	checkCaller(ctx)

	f := getFlight(ctx, flightKey)
	if f.Status != int(flightstatus.Unknown) {
		panic(common.ErrInvalidState + ": flight status is already set")
	}

	id := common.IncInt(ctx, requestCounterKey)
	counts := []int{}
	for i := 0; i < flightstatus.Count; i++ {
		counts = append(counts, 0)
	}

	common.SetSerialized(ctx, requestKey(id), Request{
		ID:        id,
		Requester: requester,
		FlightKey: flightKey,
		Indexes:   indexes,
		Open:      true,
		Counts:    counts,
		Status:    int(flightstatus.Unknown),
	})

	runtime.Notify("RequestCreated", id, flightKey, indexes)

	return id
}

// GetRequest returns the request with the given ID. It fails if there is no
// such request.
func GetRequest(id int) Request {
	ctx := storage.GetReadOnlyContext()
	return getRequest(ctx, id)
}

// RecordResponse saves the oracle's response to the open request and returns
// the number of responses with the same status. A repeated response of the
// same oracle is not counted again.
func RecordResponse(id int, oracle interop.Hash160, status int) int {
	ctx := storage.GetContext()
	checkCaller(ctx)

	req := getRequest(ctx, id)
	if !req.Open {
		panic(common.ErrInvalidState + ": request is closed")
	}
	if !flightstatus.IsFinal(flightstatus.Type(status)) {
		panic(common.ErrInvalidState + ": invalid flight status")
	}

	key := responseKey(id, oracle)
	if prev := storage.Get(ctx, key); prev != nil {
		return req.Counts[prev.(int)/flightstatus.Step]
	}

	i := status / flightstatus.Step
	storage.Put(ctx, key, status)
	req.Counts[i] = req.Counts[i] + 1
	common.SetSerialized(ctx, requestKey(id), req)

	runtime.Notify("ResponseRecorded", id, oracle, status)

	return req.Counts[i]
}

// CloseRequest closes the request with the given status.
func CloseRequest(id int, status int) {
	ctx := storage.GetContext()
	checkCaller(ctx)

	req := getRequest(ctx, id)
	if !req.Open {
		panic(common.ErrInvalidState + ": request is closed")
	}

	req.Open = false
	req.Status = status
	common.SetSerialized(ctx, requestKey(id), req)

	runtime.Notify("RequestClosed", id, status)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

func isOperational(ctx storage.Context) bool {
	return storage.Get(ctx, pausedKey) == nil
}

// checkCaller panics if the method is not called by the authorized contract
// or the contract is paused.
func checkCaller(ctx storage.Context) {
	caller := storage.Get(ctx, callerKey)
	if caller == nil {
		panic(common.ErrCallerFailed)
	}
	common.CheckCaller(caller.(interop.Hash160))

	if !isOperational(ctx) {
		panic(common.ErrNotOperational)
	}
}

func airlineKey(airline interop.Hash160) []byte {
	return append([]byte{airlinePrefix}, airline...)
}

func getAirline(ctx storage.Context, airline interop.Hash160) Airline {
	data := storage.Get(ctx, airlineKey(airline))
	if data == nil {
		return Airline{Status: int(airlinestate.Unregistered)}
	}
	return std.Deserialize(data.([]byte)).(Airline)
}

func flightStorageKey(flightKey interop.Hash256) []byte {
	return append([]byte{flightPrefix}, flightKey...)
}

func getFlight(ctx storage.Context, flightKey interop.Hash256) Flight {
	data := storage.Get(ctx, flightStorageKey(flightKey))
	if data == nil {
		panic(common.ErrFlightNotFound)
	}
	return std.Deserialize(data.([]byte)).(Flight)
}

func policyKey(flightKey interop.Hash256, passenger interop.Hash160) []byte {
	key := append([]byte{policyPrefix}, flightKey...)
	return append(key, passenger...)
}

func getPolicy(ctx storage.Context, flightKey interop.Hash256, passenger interop.Hash160) Policy {
	data := storage.Get(ctx, policyKey(flightKey, passenger))
	if data == nil {
		return Policy{Passenger: passenger}
	}
	return std.Deserialize(data.([]byte)).(Policy)
}

func creditKey(passenger interop.Hash160) []byte {
	return append([]byte{creditPrefix}, passenger...)
}

func requestKey(id int) []byte {
	return append([]byte{requestPrefix}, []byte(std.Itoa(id, 10)+"/")...)
}

func responseKey(id int, oracle interop.Hash160) []byte {
	key := append([]byte{responsePrefix}, []byte(std.Itoa(id, 10)+"/")...)
	return append(key, oracle...)
}

func getRequest(ctx storage.Context, id int) Request {
	data := storage.Get(ctx, requestKey(id))
	if data == nil {
		panic(common.ErrStaleRequest + ": unknown request " + std.Itoa(id, 10))
	}
	return std.Deserialize(data.([]byte)).(Request)
}

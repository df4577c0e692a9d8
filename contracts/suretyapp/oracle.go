package suretyapp

import (
	"github.com/flightsurety/surety-contract/common"
	"github.com/flightsurety/surety-contract/contracts/suretyapp/suretyconst"
	"github.com/flightsurety/surety-contract/contracts/suretydata/flightstatus"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/ledger"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Oracle is an oracle record of the data contract.
	Oracle struct {
		Indexes []int
	}

	// Request is an oracle request record of the data contract.
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

// registerOracle registers the oracle and assigns it
// suretyconst.OracleIndexCount distinct indexes. Fee must be exactly
// suretyconst.OracleRegistrationFee.
func registerOracle(oracle interop.Hash160, fee int) {
	data := operationalDataContract()

	if getOracle(data, oracle).Indexes != nil {
		panic(common.ErrAlreadyExists + ": oracle")
	}

	if fee < suretyconst.OracleRegistrationFee {
		panic(common.ErrInsufficientFunds + ": fee is " + std.Itoa(suretyconst.OracleRegistrationFee, 10))
	}
	if fee > suretyconst.OracleRegistrationFee {
		panic(common.ErrInvalidAmount + ": fee is " + std.Itoa(suretyconst.OracleRegistrationFee, 10))
	}

	forward(data, fee)

	ctx := storage.GetContext()
	contract.Call(data, "registerOracle", contract.All, oracle, generateIndexes(ctx, oracle))
}

// IsOracleRegistered checks whether the oracle is registered.
func IsOracleRegistered(oracle interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return getOracle(getDataContract(ctx), oracle).Indexes != nil
}

// GetMyIndexes returns indexes assigned to the registered oracle.
func GetMyIndexes(oracle interop.Hash160) []int {
	ctx := storage.GetReadOnlyContext()
	o := getOracle(getDataContract(ctx), oracle)
	if o.Indexes == nil {
		panic(common.ErrNotFound + ": oracle")
	}
	return o.Indexes
}

// RequestFlightStatus opens an oracle request for the flight with Unknown
// status and returns the request ID. Indexes of the request are derived from
// the transaction sender, the current block and a nonce, they are broadcast
// in OracleRequest notification.
func RequestFlightStatus(key interop.Hash256) int {
	data := operationalDataContract()

	f := getFlight(data, key)
	if f.Status != int(flightstatus.Unknown) {
		panic(common.ErrInvalidState + ": flight status is already set")
	}

	ctx := storage.GetContext()
	requester := runtime.GetScriptContainer().Sender
	indexes := generateIndexes(ctx, requester)

	id := contract.Call(data, "createRequest", contract.All, key, requester, indexes).(int)
	runtime.Notify("OracleRequest", id, indexes, key, f.Airline, f.Code, f.Timestamp)

	return id
}

// GetRequest returns the oracle request.
func GetRequest(id int) Request {
	ctx := storage.GetReadOnlyContext()
	return getRequest(getDataContract(ctx), id)
}

// SubmitOracleResponse submits the flight status reported by the oracle for
// the request. The oracle must hold at least one index of the request.
//
// Responses to closed requests are accepted and ignored. Repeated responses
// of the same oracle are counted once. As soon as suretyconst.OracleQuorum
// oracles report the same status, the request is closed, flight status is
// set and insurance payouts are credited.
func SubmitOracleResponse(oracle interop.Hash160, id int, key interop.Hash256, status int) {
	data := operationalDataContract()
	common.CheckWitness(oracle)

	o := getOracle(data, oracle)
	if o.Indexes == nil {
		panic(common.ErrUnauthorized + ": oracle is not registered")
	}

	req := getRequest(data, id)
	if !req.FlightKey.Equals(key) {
		panic(common.ErrInvalidState + ": flight does not match request")
	}
	if !hasCommonIndex(o.Indexes, req.Indexes) {
		panic(common.ErrUnauthorized + ": oracle index mismatch")
	}
	if !flightstatus.IsFinal(flightstatus.Type(status)) {
		panic(common.ErrInvalidState + ": invalid flight status")
	}

	if !req.Open {
		runtime.Log("response to closed request " + std.Itoa(id, 10) + " is ignored")
		return
	}

	count := contract.Call(data, "recordResponse", contract.All, id, oracle, status).(int)
	runtime.Notify("OracleReport", id, oracle, key, status)

	if count >= suretyconst.OracleQuorum {
		finalize(data, id, key, status)
	}
}

// finalize closes the request and settles the flight if it has not been
// settled by another request.
//
// A request closed after the flight is settled takes the flight status.
func finalize(data interop.Hash160, id int, key interop.Hash256, status int) {
	f := getFlight(data, key)
	if f.Status != int(flightstatus.Unknown) {
		runtime.Log("flight status is already set")
		contract.Call(data, "closeRequest", contract.All, id, f.Status)
		runtime.Notify("FlightStatusInfo", id, key, f.Status)
		return
	}

	contract.Call(data, "closeRequest", contract.All, id, status)
	contract.Call(data, "setFlightStatus", contract.All, key, status)

	numerator := 0
	if status == int(flightstatus.LateAirline) {
		numerator = suretyconst.PayoutNumerator
	}
	contract.Call(data, "creditPayout", contract.All, key, numerator, suretyconst.PayoutDenominator)

	runtime.Notify("FlightStatusInfo", id, key, status)
}

func getOracle(data interop.Hash160, oracle interop.Hash160) Oracle {
	return contract.Call(data, "getOracle", contract.ReadOnly, oracle).(Oracle)
}

func getRequest(data interop.Hash160, id int) Request {
	return contract.Call(data, "getRequest", contract.ReadOnly, id).(Request)
}

// generateIndexes returns suretyconst.OracleIndexCount distinct indexes.
func generateIndexes(ctx storage.Context, account interop.Hash160) []int {
	indexes := []int{}
	for len(indexes) < suretyconst.OracleIndexCount {
		idx := nextIndex(ctx, account)
		if !containsIndex(indexes, idx) {
			indexes = append(indexes, idx)
		}
	}
	return indexes
}

// nextIndex returns SHA256(account || decimal height || "/" || decimal nonce)[0]
// modulo suretyconst.OracleIndexRange. Nonce is incremented on every call.
func nextIndex(ctx storage.Context, account interop.Hash160) int {
	nonce := common.IncInt(ctx, nonceKey)

	seed := append([]byte{}, account...)
	seed = append(seed, []byte(std.Itoa(ledger.CurrentIndex(), 10)+"/"+std.Itoa(nonce, 10))...)
	h := crypto.Sha256(seed)

	return int(h[0]) % suretyconst.OracleIndexRange
}

func containsIndex(indexes []int, idx int) bool {
	for i := range indexes {
		if indexes[i] == idx {
			return true
		}
	}
	return false
}

func hasCommonIndex(a, b []int) bool {
	for i := range a {
		if containsIndex(b, a[i]) {
			return true
		}
	}
	return false
}

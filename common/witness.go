package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

const (
	// ErrOwnerWitnessFailed appears when the method must be called
	// by the contract owner but was not.
	ErrOwnerWitnessFailed = ErrUnauthorized + ": owner witness check failed"
	// ErrWitnessFailed appears when the method must be called
	// by a certain account but was not.
	ErrWitnessFailed = ErrUnauthorized + ": witness check failed"
	// ErrCallerFailed appears when the method must be called from the
	// authorized contract but was not.
	ErrCallerFailed = ErrUnauthorized + ": invalid calling contract"
)

// CheckOwnerWitness checks witness of the contract owner.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(owner interop.Hash160) {
	checkWitnessWithPanic(owner, ErrOwnerWitnessFailed)
}

// CheckWitness checks witness of the passed account.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(account interop.Hash160) {
	checkWitnessWithPanic(account, ErrWitnessFailed)
}

// CheckCaller checks that the current method is invoked by the contract
// with the given hash. It panics with ErrCallerFailed message on fail.
func CheckCaller(expected interop.Hash160) {
	if expected == nil || !runtime.GetCallingScriptHash().Equals(expected) {
		panic(ErrCallerFailed)
	}
}

func checkWitnessWithPanic(account interop.Hash160, panicMsg string) {
	if !runtime.CheckWitness(account) {
		panic(panicMsg)
	}
}

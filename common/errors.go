package common

// Error kinds used as panic messages by the FlightSurety contracts. Every
// failed call aborts the whole transaction, callers match these values as
// message prefixes.
const (
	// ErrUnauthorized appears when the caller is not allowed to perform
	// the operation.
	ErrUnauthorized = "unauthorized"
	// ErrNotFound appears when the referenced entity does not exist.
	ErrNotFound = "not found"
	// ErrAlreadyExists appears when the entity being created exists.
	ErrAlreadyExists = "already exists"
	// ErrInvalidState appears when the operation is attempted outside of
	// the required lifecycle stage.
	ErrInvalidState = "invalid state"
	// ErrInsufficientFunds appears when the attached value is below the
	// required amount or the payer can't cover it.
	ErrInsufficientFunds = "insufficient funds"
	// ErrInvalidAmount appears when the value is non-positive or exceeds
	// the exact amount required.
	ErrInvalidAmount = "invalid amount"
	// ErrPremiumTooHigh appears when the policy premium would exceed the cap.
	ErrPremiumTooHigh = "premium too high"
	// ErrNoCredit appears on withdrawal with zero credit.
	ErrNoCredit = "no credit"
	// ErrStaleRequest appears on response to an unknown request.
	ErrStaleRequest = "stale request"
	// ErrFlightNotFound appears when the flight key is not registered.
	ErrFlightNotFound = "flight not found"
	// ErrFlightDeparted appears when the flight departure time has passed.
	ErrFlightDeparted = "flight departed"
	// ErrNotOperational appears when state-changing calls are paused.
	ErrNotOperational = "contract is not operational"
)

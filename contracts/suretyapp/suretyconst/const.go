package suretyconst

// GASFactor is the number of base units in a single GAS.
const GASFactor = 1_0000_0000

const (
	// AirlineStake is the exact amount an airline pays to become Funded.
	AirlineStake = 10 * GASFactor

	// PremiumCap is the maximum total premium of a single policy.
	PremiumCap = 1 * GASFactor

	// OracleRegistrationFee is paid by an oracle on registration.
	OracleRegistrationFee = 1 * GASFactor
)

// Kinds of GAS payments to the application contract. A payment kind is the
// first element of the data array passed to the GAS transfer.
const (
	// PaymentStake pays the stake of the sending airline: [PaymentStake].
	PaymentStake = "fund"

	// PaymentPremium buys insurance for the sending passenger:
	// [PaymentPremium, flightKey].
	PaymentPremium = "buyInsurance"

	// PaymentOracleFee registers the sending oracle: [PaymentOracleFee].
	PaymentOracleFee = "registerOracle"
)

// Payout multiplier applied to the premium of policies of flights delayed
// by the airline.
const (
	PayoutNumerator   = 3
	PayoutDenominator = 2
)

// DirectRegistrationLimit is the number of registered airlines up to which a
// funded airline registers a new one without consensus.
const DirectRegistrationLimit = 4

const (
	// OracleQuorum is the number of matching responses finalizing a request.
	OracleQuorum = 3

	// OracleIndexRange is the number of distinct oracle indexes.
	OracleIndexRange = 10

	// OracleIndexCount is the number of indexes assigned to every oracle and
	// every request.
	OracleIndexCount = 3
)

package suretyapp

import (
	"math/big"

	"github.com/flightsurety/surety-contract/contracts/suretyapp/suretyconst"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Stakes, premiums and oracle fees are GAS transfers to the contract with
// the payment kind in transfer data. The payer is the sender of the
// transfer, so the default CalledByEntry signer scope is enough.

// Fund pays the stake of the registered airline. Amount must be exactly
// suretyconst.AirlineStake.
// The values returned are transaction hash, its ValidUntilBlock value and
// error if any.
func (c *Contract) Fund(airline util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return gas.New(c.actor).Transfer(airline, c.hash, amount, PaymentData(suretyconst.PaymentStake))
}

// FundTransaction is similar to Fund, but returns signed transaction
// without sending it.
func (c *Contract) FundTransaction(airline util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return gas.New(c.actor).TransferTransaction(airline, c.hash, amount, PaymentData(suretyconst.PaymentStake))
}

// BuyInsurance buys or tops up the passenger's policy for the flight.
func (c *Contract) BuyInsurance(passenger util.Uint160, flightKey util.Uint256, premium *big.Int) (util.Uint256, uint32, error) {
	return gas.New(c.actor).Transfer(passenger, c.hash, premium, PaymentData(suretyconst.PaymentPremium, flightKey))
}

// BuyInsuranceTransaction is similar to BuyInsurance, but returns signed
// transaction without sending it.
func (c *Contract) BuyInsuranceTransaction(passenger util.Uint160, flightKey util.Uint256, premium *big.Int) (*transaction.Transaction, error) {
	return gas.New(c.actor).TransferTransaction(passenger, c.hash, premium, PaymentData(suretyconst.PaymentPremium, flightKey))
}

// RegisterOracle registers the oracle paying suretyconst.OracleRegistrationFee.
func (c *Contract) RegisterOracle(oracle util.Uint160) (util.Uint256, uint32, error) {
	return gas.New(c.actor).Transfer(oracle, c.hash, big.NewInt(suretyconst.OracleRegistrationFee),
		PaymentData(suretyconst.PaymentOracleFee))
}

// RegisterOracleTransaction is similar to RegisterOracle, but returns signed
// transaction without sending it.
func (c *Contract) RegisterOracleTransaction(oracle util.Uint160) (*transaction.Transaction, error) {
	return gas.New(c.actor).TransferTransaction(oracle, c.hash, big.NewInt(suretyconst.OracleRegistrationFee),
		PaymentData(suretyconst.PaymentOracleFee))
}

// PaymentData returns data of the GAS transfer to the contract.
func PaymentData(kind string, args ...any) []any {
	return append([]any{kind}, args...)
}

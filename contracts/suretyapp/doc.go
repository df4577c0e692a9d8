/*
Package suretyapp implements FlightSurety application contract.

Application contract holds business rules of the flight delay insurance:
airline registration with consensus of funded airlines, airline stakes,
insurance purchase with a premium cap, payout settlement and oracle
consensus on flight statuses. All state is kept by the data contract, which
must authorize this contract as its caller before this contract is deployed:
deployment registers the first airline through the data contract.

# Airlines

The first airline is registered on deployment. A funded airline registers
new airlines directly while there are at most four registered airlines.
Further candidates need votes of at least half of funded airlines. A
registered airline becomes funded after paying exactly 10 GAS stake.

# Insurance

Passengers buy insurance for future flights, the total premium of a policy
can't exceed 1 GAS. When the flight is finalized as delayed by the airline,
every policy is credited with 1.5 of its premium, truncated toward zero.
Passengers withdraw their credit to their own account.

# Oracles

Oracles pay 1 GAS registration fee and get three indexes in the [0, 10)
range. Flight status request gets three indexes too, only oracles holding
any of them may respond. Three matching responses close the request and
finalize the flight status.

# Payments

Stakes, premiums and oracle fees are paid by GAS transfers to this contract.
Transfer data is an array with the payment kind first, see suretyconst:

	gas.transfer(airline, app, 10 GAS, ["fund"])
	gas.transfer(passenger, app, premium, ["buyInsurance", flightKey])
	gas.transfer(oracle, app, 1 GAS, ["registerOracle"])

The contract forwards received GAS to the data contract. A rejected payment
fails the transfer.

# Contract notifications

OracleRequest notification. Oracles holding any of the indexes are expected
to answer with SubmitOracleResponse.

	OracleRequest:
	  - name: requestID
	    type: Integer
	  - name: indexes
	    type: Array
	  - name: flightKey
	    type: Hash256
	  - name: airline
	    type: Hash160
	  - name: flight
	    type: String
	  - name: timestamp
	    type: Integer

OracleReport notification. It is produced for every counted oracle response.

	OracleReport:
	  - name: requestID
	    type: Integer
	  - name: oracle
	    type: Hash160
	  - name: flightKey
	    type: Hash256
	  - name: status
	    type: Integer

FlightStatusInfo notification. It is produced once per request when the
request is closed.

	FlightStatusInfo:
	  - name: requestID
	    type: Integer
	  - name: flightKey
	    type: Hash256
	  - name: status
	    type: Integer
*/
package suretyapp

/*
Contract storage model.

# Summary
Key-value storage format:
  - 'data' -> interop.Hash160
    data contract address
  - 'nonce' -> int
    nonce of the oracle index derivation

All other state is stored by the data contract.
*/

/*
Package suretydata implements FlightSurety data contract.

Data contract owns every piece of FlightSurety state: airlines and their
consensus ballots, flights, insurance policies, passenger credits, oracles and
oracle requests. It also holds all GAS paid into the system: airline stakes,
insurance premiums and oracle registration fees.

State can be changed only by a single authorized caller contract, the
FlightSurety application contract. Data contract checks structural
preconditions only (existence, lifecycle stage, not-already-set), business
rules are enforced by the caller. The owner set at deployment authorizes the
caller and can pause all state-changing methods.

# Contract notifications

Every state change produces a notification.

	CallerAuthorized:
	  - name: caller
	    type: Hash160
	CallerDeauthorized:
	  - name: caller
	    type: Hash160
	OperationalStatusChanged:
	  - name: operational
	    type: Boolean
	AirlineApplied:
	  - name: airline
	    type: Hash160
	AirlineRegistered:
	  - name: airline
	    type: Hash160
	AirlineVoted:
	  - name: airline
	    type: Hash160
	  - name: voter
	    type: Hash160
	  - name: votes
	    type: Integer
	AirlineFunded:
	  - name: airline
	    type: Hash160
	  - name: amount
	    type: Integer
	FlightRegistered:
	  - name: flightKey
	    type: Hash256
	  - name: airline
	    type: Hash160
	  - name: flight
	    type: String
	  - name: timestamp
	    type: Integer
	FlightStatusUpdated:
	  - name: flightKey
	    type: Hash256
	  - name: status
	    type: Integer
	InsurancePurchased:
	  - name: flightKey
	    type: Hash256
	  - name: passenger
	    type: Hash160
	  - name: premium
	    type: Integer
	InsureeCredited:
	  - name: flightKey
	    type: Hash256
	  - name: passenger
	    type: Hash160
	  - name: amount
	    type: Integer
	CreditWithdrawn:
	  - name: passenger
	    type: Hash160
	  - name: amount
	    type: Integer
	OracleRegistered:
	  - name: oracle
	    type: Hash160
	  - name: indexes
	    type: Array
	RequestCreated:
	  - name: requestID
	    type: Integer
	  - name: flightKey
	    type: Hash256
	  - name: indexes
	    type: Array
	ResponseRecorded:
	  - name: requestID
	    type: Integer
	  - name: oracle
	    type: Hash160
	  - name: status
	    type: Integer
	RequestClosed:
	  - name: requestID
	    type: Integer
	  - name: status
	    type: Integer
*/
package suretydata

/*
Contract storage model.

# Summary
Key-value storage format:
  - 'owner' -> interop.Hash160
    contract owner
  - 'caller' -> interop.Hash160
    authorized caller contract
  - 'paused' -> bool
    set while state-changing methods are paused
  - 'registeredAirlines' -> int
    number of Registered and Funded airlines
  - 'fundedAirlines' -> int
    number of Funded airlines
  - 'lastRequest' -> int
    ID of the last oracle request
  - 'A' + interop.Hash160 -> std.Serialize(Airline)
    airline records
  - 'V' + interop.Hash160 -> std.Serialize(common.Ballot)
    consensus ballot of an Applied airline
  - 'F' + interop.Hash256 -> std.Serialize(Flight)
    flights by flight key
  - 'P' + interop.Hash256 + interop.Hash160 -> std.Serialize(Policy)
    policies by flight key and passenger
  - 'W' + interop.Hash160 -> int
    withdrawable passenger credit
  - 'O' + interop.Hash160 -> std.Serialize(Oracle)
    registered oracles
  - 'R' + decimal ID + '/' -> std.Serialize(Request)
    oracle requests
  - 'S' + decimal ID + '/' + interop.Hash160 -> int
    status reported by the oracle for the request

# Settlement
Policy payout is credited at most once, Credited flag of the policy is set on
the first CreditPayout for its flight. Credit is removed from storage before
GAS is transferred to the passenger.
*/

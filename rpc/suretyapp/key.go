package suretyapp

import (
	"crypto/sha256"
	"strconv"

	"github.com/flightsurety/surety-contract/contracts/suretyapp/suretyconst"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// FlightKey returns the key of the flight the same way the contract's
// getFlightKey does, so it can be calculated without RPC calls.
func FlightKey(airline util.Uint160, code string, timestamp int64) util.Uint256 {
	seed := append(airline.BytesBE(), strconv.FormatInt(timestamp, 10)+"/"+code...)
	h := sha256.Sum256(seed)

	// Never fails, the length is correct.
	key, _ := util.Uint256DecodeBytesBE(h[:])
	return key
}

// OracleIndexes returns indexes the contract assigns to the account in the
// block following height when its persistent nonce equals nonce. The second
// value is the nonce after assignment.
func OracleIndexes(account util.Uint160, height uint32, nonce int64) ([]int, int64) {
	res := make([]int, 0, suretyconst.OracleIndexCount)
	for len(res) < suretyconst.OracleIndexCount {
		nonce++
		idx := OracleIndex(account, height, nonce)

		var dup bool
		for i := range res {
			if res[i] == idx {
				dup = true
				break
			}
		}
		if !dup {
			res = append(res, idx)
		}
	}
	return res, nonce
}

// OracleIndex returns a single index derived from the account, the current
// block index seen by the contract and the nonce value.
func OracleIndex(account util.Uint160, height uint32, nonce int64) int {
	seed := append(account.BytesBE(),
		strconv.FormatUint(uint64(height), 10)+"/"+strconv.FormatInt(nonce, 10)...)
	h := sha256.Sum256(seed)
	return int(h[0]) % suretyconst.OracleIndexRange
}

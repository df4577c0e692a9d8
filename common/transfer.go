package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

// TransferGAS transfers amount of GAS between accounts. It panics with
// the given message if the transfer is rejected by the GAS contract.
func TransferGAS(from, to interop.Hash160, amount int, msg string) {
	if !gas.Transfer(from, to, amount, nil) {
		panic(msg)
	}
}

// AbortWithMessage calls `runtime.Log` with passed message
// and calls `ABORT` opcode.
func AbortWithMessage(msg string) {
	runtime.Log(msg)
	util.Abort()
}

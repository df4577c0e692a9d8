package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// UpdateContract checks owner witness and updates the executing contract.
// Current Version is appended to data, see AppendVersion.
func UpdateContract(owner interop.Hash160, script []byte, manifest []byte, data any) {
	CheckOwnerWitness(owner)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, AppendVersion(data))
	runtime.Log("contract updated")
}

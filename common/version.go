package common

import "github.com/nspcc-dev/neo-go/pkg/interop/native/std"

const (
	major = 0
	minor = 1
	patch = 0

	// Oldest version the FlightSurety contracts can be updated from.
	prevMajor = 0
	prevMinor = 1
	prevPatch = 0

	// Version is the version of both FlightSurety contracts.
	Version = major*1_000_000 + minor*1_000 + patch

	PrevVersion = prevMajor*1_000_000 + prevMinor*1_000 + prevPatch

	// ErrVersionMismatch is thrown by CheckVersion if the deployed contract is
	// too old to be updated.
	ErrVersionMismatch = "previous version mismatch"

	// ErrAlreadyUpdated is thrown by CheckVersion on update to the same version.
	ErrAlreadyUpdated = "contract is already of the latest version"
)

// CheckVersion is called from _deploy on update with the version of the
// replaced contract.
func CheckVersion(from int) {
	if from < PrevVersion {
		panic(ErrVersionMismatch + ": expected >=" + std.Itoa(PrevVersion, 10))
	}
	if from == Version {
		panic(ErrAlreadyUpdated + ": " + std.Itoa(Version, 10))
	}
}

// AppendVersion adds Version to update data, see CheckVersion.
func AppendVersion(data any) []any {
	if data == nil {
		return []any{Version}
	}
	return append(data.([]any), Version)
}

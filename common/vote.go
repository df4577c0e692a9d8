package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/ledger"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Ballot is a set of distinct voters for a single decision.
type Ballot struct {
	// ID of the voting decision.
	ID []byte

	// Accounts that have already voted.
	Voters []interop.Hash160

	// Height of block with the last vote.
	Height int
}

// Vote adds a vote of 'from' to the decision with specific 'id' stored
// under prefix and returns amount of unique voters for that decision.
// Repeated votes of the same account are not counted.
func Vote(ctx storage.Context, prefix, id []byte, from interop.Hash160) int {
	key := append(prefix, id...)
	b := getBallot(ctx, key, id)

	for i := range b.Voters {
		if b.Voters[i].Equals(from) {
			return len(b.Voters)
		}
	}

	b.Voters = append(b.Voters, from)
	b.Height = ledger.CurrentIndex()
	SetSerialized(ctx, key, b)

	return len(b.Voters)
}

// Voters returns accounts voted for the decision with specific 'id'.
func Voters(ctx storage.Context, prefix, id []byte) []interop.Hash160 {
	return getBallot(ctx, append(prefix, id...), id).Voters
}

func getBallot(ctx storage.Context, key, id []byte) Ballot {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).(Ballot)
	}

	return Ballot{ID: id, Voters: []interop.Hash160{}}
}

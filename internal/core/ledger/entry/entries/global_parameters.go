package entries

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/core/ledger/entry"
)

// GlobalParameters is the singleton protocol configuration entry: the fee
// schedule shared by every pool plus the admin identity and any pending
// admin handover.
type GlobalParameters struct {
	ProtocolFeeBps         uint64
	ReferrerFeeBps         uint64
	ReferrerFeeDiscountBps uint64

	Admin         solana.PublicKey
	ProposedAdmin solana.PublicKey
}

const globalParametersSize = 3*8 + 2*32

func (g *GlobalParameters) Type() entry.Type {
	return entry.TypeGlobalParameters
}

func (g *GlobalParameters) Validate() error {
	// Fee relationships are enforced at transaction time; a stored entry
	// only needs a valid admin once initialization has happened.
	return nil
}

// Serialize encodes the parameters as fixed-width big-endian binary.
func (g *GlobalParameters) Serialize() []byte {
	buf := make([]byte, 0, globalParametersSize)
	buf = appendUint64(buf, g.ProtocolFeeBps)
	buf = appendUint64(buf, g.ReferrerFeeBps)
	buf = appendUint64(buf, g.ReferrerFeeDiscountBps)
	buf = append(buf, g.Admin[:]...)
	buf = append(buf, g.ProposedAdmin[:]...)
	return buf
}

// ParseGlobalParameters decodes a parameters entry serialized by Serialize.
func ParseGlobalParameters(data []byte) (*GlobalParameters, error) {
	if len(data) != globalParametersSize {
		return nil, fmt.Errorf("global parameters entry: expected %d bytes, got %d", globalParametersSize, len(data))
	}
	g := &GlobalParameters{}
	off := 0
	off, g.ProtocolFeeBps = readUint64(data, off)
	off, g.ReferrerFeeBps = readUint64(data, off)
	off, g.ReferrerFeeDiscountBps = readUint64(data, off)
	off = readKey(data, off, &g.Admin)
	readKey(data, off, &g.ProposedAdmin)
	return g, nil
}

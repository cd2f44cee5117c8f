package entries

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/core/ledger/entry"
)

// Pool represents one constant-product market between a base and a quote
// token. Reserves track the pool-owned token account balances; TotalShares
// is the outstanding supply of the pool's share token.
type Pool struct {
	BaseMint  solana.PublicKey
	QuoteMint solana.PublicKey
	ShareMint solana.PublicKey
	Creator   solana.PublicKey

	// Pool-owned token accounts
	BaseReserveAccount  solana.PublicKey
	QuoteReserveAccount solana.PublicKey

	// Token account that collects protocol fees, owned by the admin
	FeeReceiverAccount solana.PublicKey

	BaseReserve  uint64
	QuoteReserve uint64
	TotalShares  uint64
}

// poolSize is the fixed serialized size: seven 32-byte identifiers plus
// three uint64 counters.
const poolSize = 7*32 + 3*8

func (p *Pool) Type() entry.Type {
	return entry.TypePool
}

func (p *Pool) Validate() error {
	if p.BaseMint.IsZero() || p.QuoteMint.IsZero() {
		return errors.New("pool mints are required")
	}
	if p.BaseMint == p.QuoteMint {
		return errors.New("base and quote mint must differ")
	}
	if p.Creator.IsZero() {
		return errors.New("pool creator is required")
	}
	if p.ShareMint.IsZero() {
		return errors.New("share mint is required")
	}
	return nil
}

// Serialize encodes the pool as fixed-width big-endian binary.
func (p *Pool) Serialize() []byte {
	buf := make([]byte, 0, poolSize)
	buf = append(buf, p.BaseMint[:]...)
	buf = append(buf, p.QuoteMint[:]...)
	buf = append(buf, p.ShareMint[:]...)
	buf = append(buf, p.Creator[:]...)
	buf = append(buf, p.BaseReserveAccount[:]...)
	buf = append(buf, p.QuoteReserveAccount[:]...)
	buf = append(buf, p.FeeReceiverAccount[:]...)
	buf = appendUint64(buf, p.BaseReserve)
	buf = appendUint64(buf, p.QuoteReserve)
	buf = appendUint64(buf, p.TotalShares)
	return buf
}

// ParsePool decodes a pool entry serialized by Serialize.
func ParsePool(data []byte) (*Pool, error) {
	if len(data) != poolSize {
		return nil, fmt.Errorf("pool entry: expected %d bytes, got %d", poolSize, len(data))
	}
	p := &Pool{}
	off := 0
	off = readKey(data, off, &p.BaseMint)
	off = readKey(data, off, &p.QuoteMint)
	off = readKey(data, off, &p.ShareMint)
	off = readKey(data, off, &p.Creator)
	off = readKey(data, off, &p.BaseReserveAccount)
	off = readKey(data, off, &p.QuoteReserveAccount)
	off = readKey(data, off, &p.FeeReceiverAccount)
	off, p.BaseReserve = readUint64(data, off)
	off, p.QuoteReserve = readUint64(data, off)
	_, p.TotalShares = readUint64(data, off)
	return p, nil
}

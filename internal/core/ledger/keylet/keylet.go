// Package keylet computes deterministic ledger keys for state entries.
//
// Every entry in the state store is addressed by a 256-bit key derived
// from a two-byte space prefix followed by the identifiers that scope the
// entry. The same identifiers always produce the same key, so handlers can
// locate an entry without any directory lookup.
package keylet

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/core/ledger/entry"
)

// Keylet identifies a ledger entry: its expected type plus its 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// Key spaces. Each entry family hashes under its own prefix so keys from
// different families can never collide.
const (
	spacePool        uint16 = 'p'
	spaceParameters  uint16 = 'g'
	spacePoolAccount uint16 = 'a'
)

// sha512Half returns the first 256 bits of SHA-512 over the input.
func sha512Half(data []byte) [32]byte {
	h := sha512.Sum512(data)
	var out [32]byte
	copy(out[:], h[:32])
	return out
}

func indexHash(space uint16, ids ...[]byte) [32]byte {
	buf := make([]byte, 2, 2+len(ids)*32)
	binary.BigEndian.PutUint16(buf, space)
	for _, id := range ids {
		buf = append(buf, id...)
	}
	return sha512Half(buf)
}

// Pool returns the keylet of the pool created by creator for the given
// base/quote mint pair. One pool exists per (creator, baseMint, quoteMint).
func Pool(creator, baseMint, quoteMint solana.PublicKey) Keylet {
	return Keylet{
		Type: entry.TypePool,
		Key:  indexHash(spacePool, creator[:], baseMint[:], quoteMint[:]),
	}
}

// GlobalParameters returns the keylet of the singleton parameters entry.
func GlobalParameters() Keylet {
	return Keylet{
		Type: entry.TypeGlobalParameters,
		Key:  indexHash(spaceParameters),
	}
}

// PoolAccountID derives the pseudo-account that acts as the authority over
// a pool's reserve token accounts. It is a pure function of the pool keylet,
// so no private key exists for it: only handlers operating on the pool entry
// can move reserve funds.
func PoolAccountID(k Keylet) solana.PublicKey {
	return solana.PublicKey(indexHash(spacePoolAccount, k.Key[:]))
}

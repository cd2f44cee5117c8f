// Package tokenledger tracks token accounts, balances and mint supplies.
//
// The transaction engine never moves balances directly: handlers express
// token movement as Transfer/Mint/Burn legs against a staged view obtained
// from Begin, and the engine commits the stage only when the whole
// transaction succeeds. A failed leg therefore never leaves a partial
// transfer behind.
package tokenledger

import (
	"crypto/sha512"
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrNoAccount is returned when a referenced token account does not exist.
	ErrNoAccount = errors.New("token account does not exist")

	// ErrDuplicateAccount is returned when creating an account that already exists.
	ErrDuplicateAccount = errors.New("token account already exists")

	// ErrInsufficientFunds is returned when a leg exceeds the source balance.
	ErrInsufficientFunds = errors.New("insufficient token balance")

	// ErrWrongMint is returned when an account holds a different mint than
	// the leg requires.
	ErrWrongMint = errors.New("token account holds a different mint")

	// ErrWrongAuthority is returned when the signer does not control the
	// source account.
	ErrWrongAuthority = errors.New("authority does not control token account")

	// ErrSupplyOverflow is returned when minting would overflow a balance
	// or the mint supply.
	ErrSupplyOverflow = errors.New("token supply overflow")
)

// Account describes a token account: which mint it holds and who may spend
// from it.
type Account struct {
	Mint      solana.PublicKey
	Authority solana.PublicKey
	Balance   uint64
}

// Ledger is the read/write surface handlers operate on.
type Ledger interface {
	// CreateAccount registers an empty token account for the given mint
	// under the given authority.
	CreateAccount(id, mint, authority solana.PublicKey) error

	// Account returns the account with the given id.
	Account(id solana.PublicKey) (Account, error)

	// Transfer moves amount of mint from source to destination. The
	// authority must control the source account and both accounts must
	// hold the given mint.
	Transfer(source, destination, authority solana.PublicKey, amount uint64, mint solana.PublicKey) error

	// Mint creates amount new units of mint in the destination account.
	Mint(mint, destination solana.PublicKey, amount uint64) error

	// Burn destroys amount units of mint held by source. The authority
	// must control the source account.
	Burn(mint, source, authority solana.PublicKey, amount uint64) error

	// Supply returns the outstanding supply of the given mint.
	Supply(mint solana.PublicKey) uint64
}

// Stage is a Ledger whose mutations are buffered until Commit.
type Stage interface {
	Ledger

	// Commit publishes all staged mutations to the underlying ledger.
	Commit()

	// Discard drops all staged mutations.
	Discard()
}

// TransactionalLedger is a Ledger that can open staged views.
type TransactionalLedger interface {
	Ledger

	// Begin opens a stage over the current state. Stages are not
	// concurrent-safe with each other; the engine serializes them.
	Begin() Stage
}

// AssociatedAccount derives the canonical token account id for an owner and
// mint pair. The derivation is deterministic, so handlers can locate a
// signer's account for any mint without it being named in the transaction.
func AssociatedAccount(owner, mint solana.PublicKey) solana.PublicKey {
	buf := make([]byte, 0, 3+64)
	buf = append(buf, "ata"...)
	buf = append(buf, owner[:]...)
	buf = append(buf, mint[:]...)
	h := sha512.Sum512(buf)
	var id solana.PublicKey
	copy(id[:], h[:32])
	return id
}

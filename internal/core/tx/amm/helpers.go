package amm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/core/ledger/entry/entries"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/tokenledger"
)

var zeroKey solana.PublicKey

// readParameters loads the singleton parameters entry, or nil if the
// protocol has not been initialized yet.
func readParameters(view tx.LedgerView) (*entries.GlobalParameters, error) {
	data, err := view.Read(keylet.GlobalParameters())
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return entries.ParseGlobalParameters(data)
}

func writeParameters(view tx.LedgerView, params *entries.GlobalParameters, insert bool) error {
	k := keylet.GlobalParameters()
	if insert {
		return view.Insert(k, params.Serialize())
	}
	return view.Update(k, params.Serialize())
}

// readPool loads the pool for (creator, baseMint, quoteMint), or nil if it
// does not exist.
func readPool(view tx.LedgerView, creator, baseMint, quoteMint solana.PublicKey) (*entries.Pool, keylet.Keylet, error) {
	k := keylet.Pool(creator, baseMint, quoteMint)
	data, err := view.Read(k)
	if err != nil {
		return nil, k, err
	}
	if data == nil {
		return nil, k, nil
	}
	pool, err := entries.ParsePool(data)
	return pool, k, err
}

func writePool(view tx.LedgerView, k keylet.Keylet, pool *entries.Pool) error {
	return view.Update(k, pool.Serialize())
}

// userAccount returns the signer's token account for the given mint.
func userAccount(owner, mint solana.PublicKey) solana.PublicKey {
	return tokenledger.AssociatedAccount(owner, mint)
}

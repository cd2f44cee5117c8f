// Package amm implements the transaction handlers for the constant-product
// pool protocol: protocol administration, pool lifecycle, liquidity
// provision and swaps.
package amm

import (
	"github.com/LeJamon/goAMMd/internal/core/ledger/entry/entries"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/events"
)

func init() {
	tx.Register(tx.TypeInitialize, func() tx.Transaction {
		return &Initialize{BaseTx: *tx.NewBaseTx(tx.TypeInitialize, zeroKey)}
	})
}

// Initialize claims the protocol admin role. The first signer to submit it
// becomes admin; every later attempt fails.
type Initialize struct {
	tx.BaseTx
}

// Validate validates the Initialize transaction
func (i *Initialize) Validate() error {
	return i.BaseTx.Validate()
}

// Apply applies the Initialize transaction to ledger state.
func (i *Initialize) Apply(ctx *tx.ApplyContext) tx.Result {
	params, err := readParameters(ctx.View)
	if err != nil {
		return tx.TefINTERNAL
	}
	if params != nil {
		if !params.Admin.IsZero() {
			return tx.TefALREADY_INITIALIZED
		}
		params.Admin = ctx.Signer
		if err := writeParameters(ctx.View, params, false); err != nil {
			return tx.TefINTERNAL
		}
	} else {
		params = &entries.GlobalParameters{Admin: ctx.Signer}
		if err := writeParameters(ctx.View, params, true); err != nil {
			return tx.TefINTERNAL
		}
	}

	ctx.Events.Publish(events.InitializeEvent{
		Admin:     ctx.Signer,
		Timestamp: ctx.Timestamp(),
	})
	return tx.TesSUCCESS
}

package amm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/events"
)

func init() {
	tx.Register(tx.TypeRemoveLiquidity, func() tx.Transaction {
		return &RemoveLiquidity{BaseTx: *tx.NewBaseTx(tx.TypeRemoveLiquidity, zeroKey)}
	})
}

// RemoveLiquidity burns shares and pays out the proportional slice of both
// reserves, floored. Both payouts must clear their respective slippage
// minimums or nothing happens.
type RemoveLiquidity struct {
	tx.BaseTx

	// Creator identifies the pool together with the mint pair
	Creator solana.PublicKey `json:"Creator"`

	// BaseMint is the pool's base token mint
	BaseMint solana.PublicKey `json:"BaseMint"`

	// QuoteMint is the pool's quote token mint
	QuoteMint solana.PublicKey `json:"QuoteMint"`

	// Shares is the number of shares to redeem
	Shares uint64 `json:"Shares"`

	// QuoteMinAmount is the slippage floor on the quote payout
	QuoteMinAmount uint64 `json:"QuoteMinAmount"`

	// BaseMinAmount is the slippage floor on the base payout
	BaseMinAmount uint64 `json:"BaseMinAmount"`
}

// Validate validates the RemoveLiquidity transaction
func (r *RemoveLiquidity) Validate() error {
	if err := r.BaseTx.Validate(); err != nil {
		return err
	}
	if r.Creator.IsZero() {
		return tx.ErrResult(tx.TemMALFORMED, "Creator is required")
	}
	if r.BaseMint.IsZero() || r.QuoteMint.IsZero() {
		return tx.ErrResult(tx.TemBAD_POOL_TOKENS, "BaseMint and QuoteMint are required")
	}
	if r.Shares == 0 {
		return tx.ErrResult(tx.TemBAD_AMOUNT, "Shares must be positive")
	}
	return nil
}

// Apply applies the RemoveLiquidity transaction to ledger state.
func (r *RemoveLiquidity) Apply(ctx *tx.ApplyContext) tx.Result {
	pool, k, err := readPool(ctx.View, r.Creator, r.BaseMint, r.QuoteMint)
	if err != nil {
		return tx.TefINTERNAL
	}
	if pool == nil {
		return tx.TecNO_ENTRY
	}

	if r.Shares > pool.TotalShares {
		return tx.TecINSUFFICIENT_SHARES
	}

	baseAmount, err := mulDiv(r.Shares, pool.BaseReserve, pool.TotalShares)
	if err != nil {
		return tx.TecMATH_OVERFLOW
	}
	quoteAmount, err := mulDiv(r.Shares, pool.QuoteReserve, pool.TotalShares)
	if err != nil {
		return tx.TecMATH_OVERFLOW
	}

	if quoteAmount < r.QuoteMinAmount {
		return tx.TecQUOTE_AMOUNT_TOO_LOW
	}
	if baseAmount < r.BaseMinAmount {
		return tx.TecBASE_AMOUNT_TOO_LOW
	}

	// Floored proportional payouts never exceed the reserves when
	// Shares <= TotalShares, so these cannot underflow.
	if pool.BaseReserve, err = checkedSub(pool.BaseReserve, baseAmount); err != nil {
		return tx.TecMATH_OVERFLOW
	}
	if pool.QuoteReserve, err = checkedSub(pool.QuoteReserve, quoteAmount); err != nil {
		return tx.TecMATH_OVERFLOW
	}
	if pool.TotalShares, err = checkedSub(pool.TotalShares, r.Shares); err != nil {
		return tx.TecMATH_OVERFLOW
	}

	if err := ctx.Tokens.Burn(pool.ShareMint, userAccount(ctx.Signer, pool.ShareMint), ctx.Signer, r.Shares); err != nil {
		return tx.TecTOKEN_TRANSFER_FAILED
	}

	poolAccount := keylet.PoolAccountID(k)
	if err := ctx.Tokens.Transfer(pool.BaseReserveAccount, userAccount(ctx.Signer, pool.BaseMint), poolAccount, baseAmount, pool.BaseMint); err != nil {
		return tx.TecTOKEN_TRANSFER_FAILED
	}
	if err := ctx.Tokens.Transfer(pool.QuoteReserveAccount, userAccount(ctx.Signer, pool.QuoteMint), poolAccount, quoteAmount, pool.QuoteMint); err != nil {
		return tx.TecTOKEN_TRANSFER_FAILED
	}

	if err := writePool(ctx.View, k, pool); err != nil {
		return tx.TefINTERNAL
	}

	ctx.Events.Publish(events.RemoveLiquidityEvent{
		BaseAmount:  baseAmount,
		QuoteAmount: quoteAmount,
		Shares:      r.Shares,
		Timestamp:   ctx.Timestamp(),
		User:        ctx.Signer,
	})
	return tx.TesSUCCESS
}

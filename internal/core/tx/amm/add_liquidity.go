package amm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/events"
)

func init() {
	tx.Register(tx.TypeAddLiquidity, func() tx.Transaction {
		return &AddLiquidity{BaseTx: *tx.NewBaseTx(tx.TypeAddLiquidity, zeroKey)}
	})
}

// AddLiquidity deposits base and quote tokens into a pool in exchange for
// newly minted shares. For a funded pool the shares are the minimum of the
// two proportional quotes, so a skewed deposit is accepted but penalized.
// The first deposit prices the pool and pays floor(sqrt(base*quote)) shares,
// of which MinimumLiquidity is immediately burned.
type AddLiquidity struct {
	tx.BaseTx

	// Creator identifies the pool together with the mint pair
	Creator solana.PublicKey `json:"Creator"`

	// BaseMint is the pool's base token mint
	BaseMint solana.PublicKey `json:"BaseMint"`

	// QuoteMint is the pool's quote token mint
	QuoteMint solana.PublicKey `json:"QuoteMint"`

	// BaseAmount is the base tokens to deposit
	BaseAmount uint64 `json:"BaseAmount"`

	// QuoteAmount is the quote tokens to deposit
	QuoteAmount uint64 `json:"QuoteAmount"`

	// MinShares is the slippage floor on minted shares
	MinShares uint64 `json:"MinShares"`
}

// Validate validates the AddLiquidity transaction
func (a *AddLiquidity) Validate() error {
	if err := a.BaseTx.Validate(); err != nil {
		return err
	}
	if a.Creator.IsZero() {
		return tx.ErrResult(tx.TemMALFORMED, "Creator is required")
	}
	if a.BaseMint.IsZero() || a.QuoteMint.IsZero() {
		return tx.ErrResult(tx.TemBAD_POOL_TOKENS, "BaseMint and QuoteMint are required")
	}
	if a.BaseAmount == 0 || a.QuoteAmount == 0 {
		return tx.ErrResult(tx.TemBAD_AMOUNT, "deposit amounts must be positive")
	}
	return nil
}

// Apply applies the AddLiquidity transaction to ledger state.
func (a *AddLiquidity) Apply(ctx *tx.ApplyContext) tx.Result {
	pool, k, err := readPool(ctx.View, a.Creator, a.BaseMint, a.QuoteMint)
	if err != nil {
		return tx.TefINTERNAL
	}
	if pool == nil {
		return tx.TecNO_ENTRY
	}

	firstDeposit := pool.TotalShares == 0

	var shares uint64
	if firstDeposit {
		shares = initialShares(a.BaseAmount, a.QuoteAmount)
	} else {
		baseShare, err := mulDiv(a.BaseAmount, pool.TotalShares, pool.BaseReserve)
		if err != nil {
			return tx.TecMATH_OVERFLOW
		}
		quoteShare, err := mulDiv(a.QuoteAmount, pool.TotalShares, pool.QuoteReserve)
		if err != nil {
			return tx.TecMATH_OVERFLOW
		}
		shares = min(baseShare, quoteShare)
	}

	if shares < a.MinShares {
		return tx.TecINSUFFICIENT_LIQUIDITY
	}
	if firstDeposit && shares < MinimumLiquidity {
		return tx.TecINSUFFICIENT_LIQUIDITY
	}

	if pool.BaseReserve, err = checkedAdd(pool.BaseReserve, a.BaseAmount); err != nil {
		return tx.TecMATH_OVERFLOW
	}
	if pool.QuoteReserve, err = checkedAdd(pool.QuoteReserve, a.QuoteAmount); err != nil {
		return tx.TecMATH_OVERFLOW
	}
	if pool.TotalShares, err = checkedAdd(pool.TotalShares, shares); err != nil {
		return tx.TecMATH_OVERFLOW
	}

	userShares := userAccount(ctx.Signer, pool.ShareMint)
	if err := ctx.Tokens.Mint(pool.ShareMint, userShares, shares); err != nil {
		return tx.TecTOKEN_TRANSFER_FAILED
	}
	if firstDeposit {
		// The burn reduces the share token supply but not TotalShares:
		// redemption math keeps pricing against the full share count, so
		// the burned portion of the reserves is locked forever.
		if err := ctx.Tokens.Burn(pool.ShareMint, userShares, ctx.Signer, MinimumLiquidity); err != nil {
			return tx.TecTOKEN_TRANSFER_FAILED
		}
	}

	if err := ctx.Tokens.Transfer(userAccount(ctx.Signer, pool.BaseMint), pool.BaseReserveAccount, ctx.Signer, a.BaseAmount, pool.BaseMint); err != nil {
		return tx.TecTOKEN_TRANSFER_FAILED
	}
	if err := ctx.Tokens.Transfer(userAccount(ctx.Signer, pool.QuoteMint), pool.QuoteReserveAccount, ctx.Signer, a.QuoteAmount, pool.QuoteMint); err != nil {
		return tx.TecTOKEN_TRANSFER_FAILED
	}

	if err := writePool(ctx.View, k, pool); err != nil {
		return tx.TefINTERNAL
	}

	ctx.Events.Publish(events.AddLiquidityEvent{
		BaseAmount:  a.BaseAmount,
		QuoteAmount: a.QuoteAmount,
		Shares:      shares,
		Timestamp:   ctx.Timestamp(),
		User:        ctx.Signer,
	})
	return tx.TesSUCCESS
}

package amm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/events"
)

func init() {
	tx.Register(tx.TypeBuy, func() tx.Transaction {
		return &Buy{BaseTx: *tx.NewBaseTx(tx.TypeBuy, zeroKey)}
	})
}

// Buy swaps quote tokens for an exact base amount. The quote cost is the
// constant-product quote, truncated; protocol and referrer fees are charged
// on top of it, so the full cost never comes out of the reserves. The
// MaxQuoteAmount cap protects against slippage on the gross quote cost, not
// on cost plus fees.
type Buy struct {
	tx.BaseTx

	// Creator identifies the pool together with the mint pair
	Creator solana.PublicKey `json:"Creator"`

	// BaseMint is the pool's base token mint
	BaseMint solana.PublicKey `json:"BaseMint"`

	// QuoteMint is the pool's quote token mint
	QuoteMint solana.PublicKey `json:"QuoteMint"`

	// BaseAmount is the exact base output wanted
	BaseAmount uint64 `json:"BaseAmount"`

	// MaxQuoteAmount is the slippage cap on the quote cost
	MaxQuoteAmount uint64 `json:"MaxQuoteAmount"`

	// Referrer, when present, is a quote token account that receives the
	// referrer fee and discounts the protocol fee
	Referrer *solana.PublicKey `json:"Referrer,omitempty"`
}

// Validate validates the Buy transaction
func (b *Buy) Validate() error {
	if err := b.BaseTx.Validate(); err != nil {
		return err
	}
	if b.Creator.IsZero() {
		return tx.ErrResult(tx.TemMALFORMED, "Creator is required")
	}
	if b.BaseMint.IsZero() || b.QuoteMint.IsZero() {
		return tx.ErrResult(tx.TemBAD_POOL_TOKENS, "BaseMint and QuoteMint are required")
	}
	if b.BaseAmount == 0 {
		return tx.ErrResult(tx.TemBAD_AMOUNT, "BaseAmount must be positive")
	}
	if b.Referrer != nil && b.Referrer.IsZero() {
		return tx.ErrResult(tx.TemMALFORMED, "Referrer must not be the zero account")
	}
	return nil
}

// Apply applies the Buy transaction to ledger state.
func (b *Buy) Apply(ctx *tx.ApplyContext) tx.Result {
	pool, k, err := readPool(ctx.View, b.Creator, b.BaseMint, b.QuoteMint)
	if err != nil {
		return tx.TefINTERNAL
	}
	if pool == nil {
		return tx.TecNO_ENTRY
	}
	params, err := readParameters(ctx.View)
	if err != nil {
		return tx.TefINTERNAL
	}
	if params == nil {
		return tx.TecNO_ENTRY
	}

	// Draining the reserve entirely would divide by zero; asking for more
	// can never be served.
	if b.BaseAmount >= pool.BaseReserve {
		return tx.TecINSUFFICIENT_RESERVE
	}

	quoteAmount, err := mulDiv(b.BaseAmount, pool.QuoteReserve, pool.BaseReserve-b.BaseAmount)
	if err != nil {
		return tx.TecMATH_OVERFLOW
	}
	if quoteAmount > b.MaxQuoteAmount {
		return tx.TecINSUFFICIENT_QUOTE
	}

	if pool.BaseReserve, err = checkedSub(pool.BaseReserve, b.BaseAmount); err != nil {
		return tx.TecMATH_OVERFLOW
	}
	if pool.QuoteReserve, err = checkedAdd(pool.QuoteReserve, quoteAmount); err != nil {
		return tx.TecMATH_OVERFLOW
	}

	userQuote := userAccount(ctx.Signer, pool.QuoteMint)

	protocolFeeBps := params.ProtocolFeeBps
	var referrerFee *uint64
	if b.Referrer != nil {
		if protocolFeeBps, err = checkedSub(protocolFeeBps, params.ReferrerFeeDiscountBps); err != nil {
			return tx.TecMATH_OVERFLOW
		}
		fee, err := mulDiv(quoteAmount, params.ReferrerFeeBps, BpsDenominator)
		if err != nil {
			return tx.TecMATH_OVERFLOW
		}
		if err := ctx.Tokens.Transfer(userQuote, *b.Referrer, ctx.Signer, fee, pool.QuoteMint); err != nil {
			return tx.TecTOKEN_TRANSFER_FAILED
		}
		referrerFee = &fee
	}

	protocolFee, err := mulDiv(quoteAmount, protocolFeeBps, BpsDenominator)
	if err != nil {
		return tx.TecMATH_OVERFLOW
	}
	if err := ctx.Tokens.Transfer(userQuote, pool.FeeReceiverAccount, ctx.Signer, protocolFee, pool.QuoteMint); err != nil {
		return tx.TecTOKEN_TRANSFER_FAILED
	}

	if err := ctx.Tokens.Transfer(userQuote, pool.QuoteReserveAccount, ctx.Signer, quoteAmount, pool.QuoteMint); err != nil {
		return tx.TecTOKEN_TRANSFER_FAILED
	}
	poolAccount := keylet.PoolAccountID(k)
	if err := ctx.Tokens.Transfer(pool.BaseReserveAccount, userAccount(ctx.Signer, pool.BaseMint), poolAccount, b.BaseAmount, pool.BaseMint); err != nil {
		return tx.TecTOKEN_TRANSFER_FAILED
	}

	if err := writePool(ctx.View, k, pool); err != nil {
		return tx.TefINTERNAL
	}

	ctx.Events.Publish(events.BuyEvent{
		BaseAmount:        b.BaseAmount,
		QuoteAmount:       quoteAmount,
		Timestamp:         ctx.Timestamp(),
		User:              ctx.Signer,
		ProtocolFeeAmount: protocolFee,
		Referrer:          b.Referrer,
		ReferrerFeeAmount: referrerFee,
	})
	return tx.TesSUCCESS
}

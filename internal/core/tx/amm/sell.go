package amm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/events"
)

func init() {
	tx.Register(tx.TypeSell, func() tx.Transaction {
		return &Sell{BaseTx: *tx.NewBaseTx(tx.TypeSell, zeroKey)}
	})
}

// Sell swaps an exact base amount for quote tokens. The gross proceeds are
// the constant-product quote, truncated; the MinQuoteAmount floor is
// checked against those gross proceeds, and the protocol and referrer fees
// are then paid out of the seller's quote account as separate legs.
type Sell struct {
	tx.BaseTx

	// Creator identifies the pool together with the mint pair
	Creator solana.PublicKey `json:"Creator"`

	// BaseMint is the pool's base token mint
	BaseMint solana.PublicKey `json:"BaseMint"`

	// QuoteMint is the pool's quote token mint
	QuoteMint solana.PublicKey `json:"QuoteMint"`

	// BaseAmount is the exact base input sold
	BaseAmount uint64 `json:"BaseAmount"`

	// MinQuoteAmount is the slippage floor on the gross quote proceeds
	MinQuoteAmount uint64 `json:"MinQuoteAmount"`

	// Referrer, when present, is a quote token account that receives the
	// referrer fee and discounts the protocol fee
	Referrer *solana.PublicKey `json:"Referrer,omitempty"`
}

// Validate validates the Sell transaction
func (s *Sell) Validate() error {
	if err := s.BaseTx.Validate(); err != nil {
		return err
	}
	if s.Creator.IsZero() {
		return tx.ErrResult(tx.TemMALFORMED, "Creator is required")
	}
	if s.BaseMint.IsZero() || s.QuoteMint.IsZero() {
		return tx.ErrResult(tx.TemBAD_POOL_TOKENS, "BaseMint and QuoteMint are required")
	}
	if s.BaseAmount == 0 {
		return tx.ErrResult(tx.TemBAD_AMOUNT, "BaseAmount must be positive")
	}
	if s.Referrer != nil && s.Referrer.IsZero() {
		return tx.ErrResult(tx.TemMALFORMED, "Referrer must not be the zero account")
	}
	return nil
}

// Apply applies the Sell transaction to ledger state.
func (s *Sell) Apply(ctx *tx.ApplyContext) tx.Result {
	pool, k, err := readPool(ctx.View, s.Creator, s.BaseMint, s.QuoteMint)
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

	newBaseReserve, err := checkedAdd(pool.BaseReserve, s.BaseAmount)
	if err != nil {
		return tx.TecMATH_OVERFLOW
	}
	quoteAmount, err := mulDiv(s.BaseAmount, pool.QuoteReserve, newBaseReserve)
	if err != nil {
		return tx.TecMATH_OVERFLOW
	}
	if quoteAmount < s.MinQuoteAmount {
		return tx.TecQUOTE_AMOUNT_TOO_LOW
	}

	pool.BaseReserve = newBaseReserve
	if pool.QuoteReserve, err = checkedSub(pool.QuoteReserve, quoteAmount); err != nil {
		return tx.TecMATH_OVERFLOW
	}

	// Settle the reserve legs first so the seller's quote proceeds are
	// available to fund the fee legs.
	poolAccount := keylet.PoolAccountID(k)
	userQuote := userAccount(ctx.Signer, pool.QuoteMint)
	if err := ctx.Tokens.Transfer(userAccount(ctx.Signer, pool.BaseMint), pool.BaseReserveAccount, ctx.Signer, s.BaseAmount, pool.BaseMint); err != nil {
		return tx.TecTOKEN_TRANSFER_FAILED
	}
	if err := ctx.Tokens.Transfer(pool.QuoteReserveAccount, userQuote, poolAccount, quoteAmount, pool.QuoteMint); err != nil {
		return tx.TecTOKEN_TRANSFER_FAILED
	}

	protocolFeeBps := params.ProtocolFeeBps
	var referrerFee *uint64
	if s.Referrer != nil {
		if protocolFeeBps, err = checkedSub(protocolFeeBps, params.ReferrerFeeDiscountBps); err != nil {
			return tx.TecMATH_OVERFLOW
		}
		fee, err := mulDiv(quoteAmount, params.ReferrerFeeBps, BpsDenominator)
		if err != nil {
			return tx.TecMATH_OVERFLOW
		}
		if err := ctx.Tokens.Transfer(userQuote, *s.Referrer, ctx.Signer, fee, pool.QuoteMint); err != nil {
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

	if err := writePool(ctx.View, k, pool); err != nil {
		return tx.TefINTERNAL
	}

	ctx.Events.Publish(events.SellEvent{
		BaseAmount:        s.BaseAmount,
		QuoteAmount:       quoteAmount,
		Timestamp:         ctx.Timestamp(),
		User:              ctx.Signer,
		ProtocolFeeAmount: protocolFee,
		Referrer:          s.Referrer,
		ReferrerFeeAmount: referrerFee,
	})
	return tx.TesSUCCESS
}

package amm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/core/ledger/entry/entries"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/events"
	"github.com/LeJamon/goAMMd/internal/tokenledger"
)

func init() {
	tx.Register(tx.TypePoolCreate, func() tx.Transaction {
		return &PoolCreate{BaseTx: *tx.NewBaseTx(tx.TypePoolCreate, zeroKey)}
	})
}

// PoolCreate registers an empty pool for a base/quote mint pair. The pool
// is keyed by (creator, base mint, quote mint), so one creator can open at
// most one pool per pair. Reserve token accounts are created under the
// pool's own authority; the fee receiver account must already exist and be
// controlled by the protocol admin.
type PoolCreate struct {
	tx.BaseTx

	// BaseMint is the mint of the pool's base token
	BaseMint solana.PublicKey `json:"BaseMint"`

	// QuoteMint is the mint of the pool's quote token
	QuoteMint solana.PublicKey `json:"QuoteMint"`

	// ShareMint is the mint used for this pool's liquidity shares
	ShareMint solana.PublicKey `json:"ShareMint"`

	// FeeReceiverAccount is the quote token account that collects
	// protocol fees
	FeeReceiverAccount solana.PublicKey `json:"FeeReceiverAccount"`
}

// Validate validates the PoolCreate transaction
func (p *PoolCreate) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.BaseMint.IsZero() || p.QuoteMint.IsZero() {
		return tx.ErrResult(tx.TemBAD_POOL_TOKENS, "BaseMint and QuoteMint are required")
	}
	if p.BaseMint == p.QuoteMint {
		return tx.ErrResult(tx.TemBAD_POOL_TOKENS, "BaseMint and QuoteMint must differ")
	}
	if p.ShareMint.IsZero() {
		return tx.ErrResult(tx.TemMALFORMED, "ShareMint is required")
	}
	if p.ShareMint == p.BaseMint || p.ShareMint == p.QuoteMint {
		return tx.ErrResult(tx.TemBAD_POOL_TOKENS, "ShareMint must differ from pool mints")
	}
	if p.FeeReceiverAccount.IsZero() {
		return tx.ErrResult(tx.TemMALFORMED, "FeeReceiverAccount is required")
	}
	return nil
}

// Apply applies the PoolCreate transaction to ledger state.
func (p *PoolCreate) Apply(ctx *tx.ApplyContext) tx.Result {
	params, err := readParameters(ctx.View)
	if err != nil {
		return tx.TefINTERNAL
	}
	if params == nil || params.Admin.IsZero() {
		return tx.TecNO_ENTRY
	}

	k := keylet.Pool(ctx.Signer, p.BaseMint, p.QuoteMint)
	exists, err := ctx.View.Exists(k)
	if err != nil {
		return tx.TefINTERNAL
	}
	if exists {
		return tx.TecDUPLICATE
	}

	// The fee receiver must be an existing quote token account controlled
	// by the admin.
	feeAcct, err := ctx.Tokens.Account(p.FeeReceiverAccount)
	if err != nil {
		return tx.TecNO_ENTRY
	}
	if feeAcct.Authority != params.Admin {
		return tx.TecNO_PERMISSION
	}
	if feeAcct.Mint != p.QuoteMint {
		return tx.TecBAD_FEE_RECEIVER
	}

	poolAccount := keylet.PoolAccountID(k)
	baseReserve := tokenledger.AssociatedAccount(poolAccount, p.BaseMint)
	quoteReserve := tokenledger.AssociatedAccount(poolAccount, p.QuoteMint)
	if err := ctx.Tokens.CreateAccount(baseReserve, p.BaseMint, poolAccount); err != nil {
		return tx.TecDUPLICATE
	}
	if err := ctx.Tokens.CreateAccount(quoteReserve, p.QuoteMint, poolAccount); err != nil {
		return tx.TecDUPLICATE
	}

	pool := &entries.Pool{
		BaseMint:            p.BaseMint,
		QuoteMint:           p.QuoteMint,
		ShareMint:           p.ShareMint,
		Creator:             ctx.Signer,
		BaseReserveAccount:  baseReserve,
		QuoteReserveAccount: quoteReserve,
		FeeReceiverAccount:  p.FeeReceiverAccount,
	}
	if err := ctx.View.Insert(k, pool.Serialize()); err != nil {
		return tx.TefINTERNAL
	}

	ctx.Events.Publish(events.CreateEvent{
		BaseMint:  p.BaseMint,
		QuoteMint: p.QuoteMint,
		ShareMint: p.ShareMint,
		Creator:   ctx.Signer,
		Timestamp: ctx.Timestamp(),
	})
	return tx.TesSUCCESS
}

package amm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/events"
	"github.com/LeJamon/goAMMd/internal/tokenledger"
)

func TestPoolCreate(t *testing.T) {
	e := newEnv(t)
	e.initialize()
	e.createPool()

	p := e.pool()
	assert.Equal(t, e.baseMint, p.BaseMint)
	assert.Equal(t, e.quoteMint, p.QuoteMint)
	assert.Equal(t, e.shareMint, p.ShareMint)
	assert.Equal(t, e.creator, p.Creator)
	assert.Equal(t, e.feeReceiver, p.FeeReceiverAccount)
	assert.Zero(t, p.BaseReserve)
	assert.Zero(t, p.QuoteReserve)
	assert.Zero(t, p.TotalShares)

	// Reserve accounts exist and belong to the pool, not the creator.
	baseAcct, err := e.tokens.Account(p.BaseReserveAccount)
	require.NoError(t, err)
	assert.Equal(t, e.baseMint, baseAcct.Mint)
	assert.NotEqual(t, e.creator, baseAcct.Authority)

	quoteAcct, err := e.tokens.Account(p.QuoteReserveAccount)
	require.NoError(t, err)
	assert.Equal(t, e.quoteMint, quoteAcct.Mint)

	var found bool
	for _, ev := range e.pub.published {
		if ce, ok := ev.(events.CreateEvent); ok {
			found = true
			assert.Equal(t, e.creator, ce.Creator)
		}
	}
	assert.True(t, found, "expected a create event")
}

func TestPoolCreateDuplicate(t *testing.T) {
	e := newEnv(t)
	e.initialize()
	e.createPool()

	e.apply(&PoolCreate{
		BaseTx:             *tx.NewBaseTx(tx.TypePoolCreate, e.creator),
		BaseMint:           e.baseMint,
		QuoteMint:          e.quoteMint,
		ShareMint:          e.shareMint,
		FeeReceiverAccount: e.feeReceiver,
	}, tx.TecDUPLICATE)
}

func TestPoolCreateDistinctByCreatorAndPair(t *testing.T) {
	e := newEnv(t)
	e.initialize()
	e.createPool()

	// Same pair, different creator: allowed.
	other := pk(0xC1)
	e.apply(&PoolCreate{
		BaseTx:             *tx.NewBaseTx(tx.TypePoolCreate, other),
		BaseMint:           e.baseMint,
		QuoteMint:          e.quoteMint,
		ShareMint:          pk(4),
		FeeReceiverAccount: e.feeReceiver,
	}, tx.TesSUCCESS)

	// Reversed pair counts as a different pool, but its fee receiver must
	// hold the reversed quote mint.
	reversedFeeReceiver := tokenledger.AssociatedAccount(e.admin, e.baseMint)
	require.NoError(t, e.tokens.CreateAccount(reversedFeeReceiver, e.baseMint, e.admin))
	e.apply(&PoolCreate{
		BaseTx:             *tx.NewBaseTx(tx.TypePoolCreate, e.creator),
		BaseMint:           e.quoteMint,
		QuoteMint:          e.baseMint,
		ShareMint:          pk(5),
		FeeReceiverAccount: reversedFeeReceiver,
	}, tx.TesSUCCESS)
}

func TestPoolCreateBeforeInitialize(t *testing.T) {
	e := newEnv(t)

	e.apply(&PoolCreate{
		BaseTx:             *tx.NewBaseTx(tx.TypePoolCreate, e.creator),
		BaseMint:           e.baseMint,
		QuoteMint:          e.quoteMint,
		ShareMint:          e.shareMint,
		FeeReceiverAccount: pk(9),
	}, tx.TecNO_ENTRY)
}

func TestPoolCreateFeeReceiverChecks(t *testing.T) {
	e := newEnv(t)
	e.initialize()

	t.Run("missing account", func(t *testing.T) {
		e.apply(&PoolCreate{
			BaseTx:             *tx.NewBaseTx(tx.TypePoolCreate, e.creator),
			BaseMint:           e.baseMint,
			QuoteMint:          e.quoteMint,
			ShareMint:          e.shareMint,
			FeeReceiverAccount: pk(9),
		}, tx.TecNO_ENTRY)
	})

	t.Run("not admin controlled", func(t *testing.T) {
		rogue := tokenledger.AssociatedAccount(e.user, e.quoteMint)
		require.NoError(t, e.tokens.CreateAccount(rogue, e.quoteMint, e.user))
		e.apply(&PoolCreate{
			BaseTx:             *tx.NewBaseTx(tx.TypePoolCreate, e.creator),
			BaseMint:           e.baseMint,
			QuoteMint:          e.quoteMint,
			ShareMint:          e.shareMint,
			FeeReceiverAccount: rogue,
		}, tx.TecNO_PERMISSION)
	})

	t.Run("wrong mint", func(t *testing.T) {
		wrongMint := tokenledger.AssociatedAccount(e.admin, e.baseMint)
		require.NoError(t, e.tokens.CreateAccount(wrongMint, e.baseMint, e.admin))
		e.apply(&PoolCreate{
			BaseTx:             *tx.NewBaseTx(tx.TypePoolCreate, e.creator),
			BaseMint:           e.baseMint,
			QuoteMint:          e.quoteMint,
			ShareMint:          e.shareMint,
			FeeReceiverAccount: wrongMint,
		}, tx.TecBAD_FEE_RECEIVER)
	})
}

func TestPoolCreateValidate(t *testing.T) {
	e := newEnv(t)
	e.initialize()

	tests := []struct {
		name string
		mut  func(*PoolCreate)
		want tx.Result
	}{
		{"same mints", func(p *PoolCreate) { p.QuoteMint = p.BaseMint }, tx.TemBAD_POOL_TOKENS},
		{"zero base mint", func(p *PoolCreate) { p.BaseMint = zeroKey }, tx.TemBAD_POOL_TOKENS},
		{"zero share mint", func(p *PoolCreate) { p.ShareMint = zeroKey }, tx.TemMALFORMED},
		{"share mint equals base", func(p *PoolCreate) { p.ShareMint = p.BaseMint }, tx.TemBAD_POOL_TOKENS},
		{"zero fee receiver", func(p *PoolCreate) { p.FeeReceiverAccount = zeroKey }, tx.TemMALFORMED},
		{"zero signer", func(p *PoolCreate) { p.Account = zeroKey }, tx.TemBAD_SRC_ACCOUNT},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PoolCreate{
				BaseTx:             *tx.NewBaseTx(tx.TypePoolCreate, e.creator),
				BaseMint:           e.baseMint,
				QuoteMint:          e.quoteMint,
				ShareMint:          e.shareMint,
				FeeReceiverAccount: e.feeReceiver,
			}
			tt.mut(p)
			e.apply(p, tt.want)
		})
	}
}

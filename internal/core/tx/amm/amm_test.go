package amm

import (
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAMMd/internal/core/ledger/entry/entries"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/events"
	"github.com/LeJamon/goAMMd/internal/tokenledger"
)

// mockView implements tx.LedgerView over a map
type mockView struct {
	data map[[32]byte][]byte
}

func newMockView() *mockView {
	return &mockView{data: make(map[[32]byte][]byte)}
}

func (m *mockView) Read(k keylet.Keylet) ([]byte, error) {
	return m.data[k.Key], nil
}

func (m *mockView) Exists(k keylet.Keylet) (bool, error) {
	_, ok := m.data[k.Key]
	return ok, nil
}

func (m *mockView) Insert(k keylet.Keylet, data []byte) error {
	m.data[k.Key] = data
	return nil
}

func (m *mockView) Update(k keylet.Keylet, data []byte) error {
	m.data[k.Key] = data
	return nil
}

func (m *mockView) Erase(k keylet.Keylet) error {
	delete(m.data, k.Key)
	return nil
}

func (m *mockView) ForEach(fn func(key [32]byte, data []byte) bool) error {
	for k, v := range m.data {
		if !fn(k, v) {
			break
		}
	}
	return nil
}

// capturePublisher records published events for assertions
type capturePublisher struct {
	published []events.Event
}

func (c *capturePublisher) Publish(e events.Event) {
	c.published = append(c.published, e)
}

// env wires a fresh engine over mock state for one test
type env struct {
	t      *testing.T
	view   *mockView
	tokens *tokenledger.MemoryLedger
	pub    *capturePublisher
	engine *tx.Engine

	admin    solana.PublicKey
	creator  solana.PublicKey
	user     solana.PublicKey
	baseMint solana.PublicKey
	quoteMint solana.PublicKey
	shareMint solana.PublicKey

	feeReceiver solana.PublicKey
}

func pk(b byte) solana.PublicKey {
	var k solana.PublicKey
	for i := range k {
		k[i] = b
	}
	return k
}

func newEnv(t *testing.T) *env {
	e := &env{
		t:         t,
		view:      newMockView(),
		tokens:    tokenledger.NewMemoryLedger(),
		pub:       &capturePublisher{},
		admin:     pk(0xA0),
		creator:   pk(0xC0),
		user:      pk(0xD0),
		baseMint:  pk(1),
		quoteMint: pk(2),
		shareMint: pk(3),
	}
	e.engine = tx.NewEngine(e.view, e.tokens, e.pub, tx.EngineConfig{
		Now: func() time.Time { return time.Unix(1_700_000_000, 0) },
	})
	return e
}

// apply submits a transaction and asserts the expected result code
func (e *env) apply(t tx.Transaction, want tx.Result) tx.ApplyResult {
	e.t.Helper()
	res := e.engine.Apply(t)
	require.Equal(e.t, want, res.Result, "message: %s", res.Message)
	return res
}

// initialize claims the admin role and creates the fee receiver account
func (e *env) initialize() {
	e.t.Helper()
	e.apply(&Initialize{BaseTx: *tx.NewBaseTx(tx.TypeInitialize, e.admin)}, tx.TesSUCCESS)
	e.feeReceiver = tokenledger.AssociatedAccount(e.admin, e.quoteMint)
	require.NoError(e.t, e.tokens.CreateAccount(e.feeReceiver, e.quoteMint, e.admin))
}

// createPool creates the standard test pool
func (e *env) createPool() {
	e.t.Helper()
	e.apply(&PoolCreate{
		BaseTx:             *tx.NewBaseTx(tx.TypePoolCreate, e.creator),
		BaseMint:           e.baseMint,
		QuoteMint:          e.quoteMint,
		ShareMint:          e.shareMint,
		FeeReceiverAccount: e.feeReceiver,
	}, tx.TesSUCCESS)
}

// fund mints tokens into an owner's account, creating it if needed
func (e *env) fund(owner, mint solana.PublicKey, amount uint64) {
	e.t.Helper()
	id := tokenledger.AssociatedAccount(owner, mint)
	if _, err := e.tokens.Account(id); err != nil {
		require.NoError(e.t, e.tokens.CreateAccount(id, mint, owner))
	}
	if amount > 0 {
		require.NoError(e.t, e.tokens.Mint(mint, id, amount))
	}
}

// balance returns an owner's balance for a mint
func (e *env) balance(owner, mint solana.PublicKey) uint64 {
	e.t.Helper()
	acct, err := e.tokens.Account(tokenledger.AssociatedAccount(owner, mint))
	if err != nil {
		return 0
	}
	return acct.Balance
}

// pool reads back the standard test pool entry
func (e *env) pool() *entries.Pool {
	e.t.Helper()
	data, err := e.view.Read(keylet.Pool(e.creator, e.baseMint, e.quoteMint))
	require.NoError(e.t, err)
	require.NotNil(e.t, data)
	p, err := entries.ParsePool(data)
	require.NoError(e.t, err)
	return p
}

// params reads back the global parameters entry
func (e *env) params() *entries.GlobalParameters {
	e.t.Helper()
	data, err := e.view.Read(keylet.GlobalParameters())
	require.NoError(e.t, err)
	require.NotNil(e.t, data)
	g, err := entries.ParseGlobalParameters(data)
	require.NoError(e.t, err)
	return g
}

// seedPool writes a pool entry directly and backs it with token state, so
// tests can start from an arbitrary mid-life pool.
func (e *env) seedPool(baseReserve, quoteReserve, totalShares, userShares uint64) {
	e.t.Helper()
	e.initialize()
	e.createPool()

	p := e.pool()
	k := keylet.Pool(e.creator, e.baseMint, e.quoteMint)
	p.BaseReserve = baseReserve
	p.QuoteReserve = quoteReserve
	p.TotalShares = totalShares
	require.NoError(e.t, e.view.Update(k, p.Serialize()))

	require.NoError(e.t, e.tokens.Mint(e.baseMint, p.BaseReserveAccount, baseReserve))
	require.NoError(e.t, e.tokens.Mint(e.quoteMint, p.QuoteReserveAccount, quoteReserve))
	if userShares > 0 {
		e.fund(e.user, e.shareMint, 0)
		require.NoError(e.t, e.tokens.Mint(e.shareMint, tokenledger.AssociatedAccount(e.user, e.shareMint), userShares))
	}
}

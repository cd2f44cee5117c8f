package tx

import (
	"encoding/json"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/events"
	"github.com/LeJamon/goAMMd/internal/tokenledger"
)

const testTxType = Type(0x7001)

// noteTx is a minimal appliable transaction that writes one entry and
// emits one event.
type noteTx struct {
	BaseTx

	Data string `json:"Data"`

	// fail forces the handler to return a tec after staging changes
	fail bool
}

type noteEvent struct{ data string }

func (e noteEvent) EventType() string { return "note" }

func (e noteEvent) Fields() logrus.Fields {
	return logrus.Fields{"data": e.data}
}

func (n *noteTx) Validate() error {
	if err := n.BaseTx.Validate(); err != nil {
		return err
	}
	if n.Data == "" {
		return ErrResult(TemMALFORMED, "Data is required")
	}
	return nil
}

func (n *noteTx) Apply(ctx *ApplyContext) Result {
	k := keylet.Keylet{}
	k.Key[0] = 0x42
	if err := ctx.View.Insert(k, []byte(n.Data)); err != nil {
		return TefINTERNAL
	}
	ctx.Events.Publish(noteEvent{data: n.Data})
	if n.fail {
		return TecNO_PERMISSION
	}
	return TesSUCCESS
}

func init() {
	Register(testTxType, func() Transaction {
		return &noteTx{BaseTx: *NewBaseTx(testTxType, solana.PublicKey{})}
	})
}

type capturePublisher struct {
	published []events.Event
}

func (c *capturePublisher) Publish(e events.Event) {
	c.published = append(c.published, e)
}

func testAccount() solana.PublicKey {
	var k solana.PublicKey
	k[0] = 1
	return k
}

func newTestEngine() (*Engine, *mockLedgerView, *capturePublisher) {
	view := newMockLedgerView()
	pub := &capturePublisher{}
	engine := NewEngine(view, tokenledger.NewMemoryLedger(), pub, EngineConfig{})
	return engine, view, pub
}

func TestEngineAppliesOnSuccess(t *testing.T) {
	engine, view, pub := newTestEngine()

	res := engine.Apply(&noteTx{
		BaseTx: *NewBaseTx(testTxType, testAccount()),
		Data:   "hello",
	})

	require.Equal(t, TesSUCCESS, res.Result)
	assert.True(t, res.Applied)

	var k keylet.Keylet
	k.Key[0] = 0x42
	data, _ := view.Read(k)
	assert.Equal(t, []byte("hello"), data)

	require.Len(t, pub.published, 1)
}

func TestEngineRollsBackOnFailure(t *testing.T) {
	engine, view, pub := newTestEngine()

	res := engine.Apply(&noteTx{
		BaseTx: *NewBaseTx(testTxType, testAccount()),
		Data:   "hello",
		fail:   true,
	})

	require.Equal(t, TecNO_PERMISSION, res.Result)
	assert.False(t, res.Applied)

	// Neither the entry nor the event escaped.
	var k keylet.Keylet
	k.Key[0] = 0x42
	exists, _ := view.Exists(k)
	assert.False(t, exists)
	assert.Empty(t, pub.published)
}

func TestEnginePreflight(t *testing.T) {
	engine, _, _ := newTestEngine()

	t.Run("zero account", func(t *testing.T) {
		res := engine.Apply(&noteTx{
			BaseTx: *NewBaseTx(testTxType, solana.PublicKey{}),
			Data:   "hello",
		})
		assert.Equal(t, TemBAD_SRC_ACCOUNT, res.Result)
		assert.False(t, res.Applied)
	})

	t.Run("malformed fields", func(t *testing.T) {
		res := engine.Apply(&noteTx{
			BaseTx: *NewBaseTx(testTxType, testAccount()),
		})
		assert.Equal(t, TemMALFORMED, res.Result)
	})
}

func TestFromJSON(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		_, err := FromJSON([]byte(`{"TransactionType":"Bogus"}`))
		assert.ErrorIs(t, err, ErrUnknownTransactionType)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := FromJSON([]byte(`{`))
		assert.Error(t, err)
	})
}

func TestResultHelpers(t *testing.T) {
	assert.True(t, TesSUCCESS.IsSuccess())
	assert.True(t, TecDUPLICATE.IsTec())
	assert.True(t, TefALREADY_INITIALIZED.IsTef())
	assert.True(t, TemBAD_AMOUNT.IsTem())
	assert.False(t, TecDUPLICATE.IsSuccess())

	assert.Equal(t, "tesSUCCESS", TesSUCCESS.String())
	assert.Equal(t, "tecMATH_OVERFLOW", TecMATH_OVERFLOW.String())
	assert.NotEmpty(t, TecMATH_OVERFLOW.Message())
}

func TestResultErrorRoundTrip(t *testing.T) {
	err := ErrResult(TemBAD_AMOUNT, "BaseAmount must be positive")
	assert.Equal(t, TemBAD_AMOUNT, ResultFromError(err))
	assert.Equal(t, "temBAD_AMOUNT: BaseAmount must be positive", err.Error())

	assert.Equal(t, TemMALFORMED, ResultFromError(json.Unmarshal([]byte("{"), &struct{}{})))
}

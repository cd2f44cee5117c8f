package tx

import (
	"sync"
	"time"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/events"
	"github.com/LeJamon/goAMMd/internal/tokenledger"
)

// Engine processes transactions against a ledger
type Engine struct {
	mu     sync.Mutex
	view   LedgerView
	tokens tokenledger.TransactionalLedger
	events events.Publisher
	config EngineConfig
}

// EngineConfig holds configuration for the transaction engine
type EngineConfig struct {
	// Now supplies the timestamp stamped on emitted events. Nil means
	// time.Now.
	Now func() time.Time
}

// LedgerView provides read/write access to ledger state
type LedgerView interface {
	// Read reads a ledger entry. A missing entry returns nil data and a
	// nil error.
	Read(k keylet.Keylet) ([]byte, error)

	// Exists checks if an entry exists
	Exists(k keylet.Keylet) (bool, error)

	// Insert adds a new entry
	Insert(k keylet.Keylet, data []byte) error

	// Update modifies an existing entry
	Update(k keylet.Keylet, data []byte) error

	// Erase removes an entry
	Erase(k keylet.Keylet) error

	// ForEach iterates over all state entries
	// If fn returns false, iteration stops early
	ForEach(fn func(key [32]byte, data []byte) bool) error
}

// ApplyResult contains the result of applying a transaction
type ApplyResult struct {
	// Result is the transaction result code
	Result Result

	// Applied indicates if the transaction changed the ledger
	Applied bool

	// Message is a human-readable result message
	Message string
}

// NewEngine creates a transaction engine over the given state view and
// token ledger.
func NewEngine(view LedgerView, tokens tokenledger.TransactionalLedger, pub events.Publisher, config EngineConfig) *Engine {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Engine{
		view:   view,
		tokens: tokens,
		events: pub,
		config: config,
	}
}

// Apply validates and applies a single transaction. Transactions are
// serialized: each one sees the state left by the previous one, and a
// failed transaction leaves no trace in either the entry store or the
// token ledger.
func (e *Engine) Apply(t Transaction) ApplyResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Preflight: pure checks that need no ledger state
	if err := t.Validate(); err != nil {
		code := ResultFromError(err)
		return ApplyResult{Result: code, Message: err.Error()}
	}

	appliable, ok := t.(Appliable)
	if !ok {
		return ApplyResult{Result: TemINVALID, Message: "transaction type cannot be applied"}
	}

	table := NewApplyStateTable(e.view)
	stage := e.tokens.Begin()
	buffer := &events.Buffer{}

	ctx := &ApplyContext{
		View:   table,
		Tokens: stage,
		Events: buffer,
		Signer: t.GetCommon().Account,
		Config: e.config,
	}

	result := appliable.Apply(ctx)
	if !result.IsSuccess() {
		stage.Discard()
		return ApplyResult{Result: result, Message: result.Message()}
	}

	if err := table.Apply(); err != nil {
		stage.Discard()
		return ApplyResult{Result: TefINTERNAL, Message: err.Error()}
	}
	stage.Commit()
	buffer.FlushTo(e.events)

	return ApplyResult{Result: result, Applied: true, Message: result.Message()}
}

// View returns the engine's base ledger view for read-only queries.
func (e *Engine) View() LedgerView {
	return e.view
}

// Tokens returns the engine's token ledger for read-only queries.
func (e *Engine) Tokens() tokenledger.TransactionalLedger {
	return e.tokens
}

package tx

import (
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/events"
	"github.com/LeJamon/goAMMd/internal/tokenledger"
)

// ApplyContext provides all the state and helpers needed to apply a
// transaction. It is passed to Appliable.Apply() instead of individual
// parameters.
type ApplyContext struct {
	// View provides read/write access to ledger state (the ApplyStateTable)
	View LedgerView

	// Tokens is the staged token ledger for this transaction. Legs settle
	// against the stage and only reach the real ledger on success.
	Tokens tokenledger.Ledger

	// Events collects notifications emitted by the handler. The engine
	// delivers them only when the transaction succeeds.
	Events events.Publisher

	// Signer is the account that submitted the transaction
	Signer solana.PublicKey

	// Config holds engine configuration
	Config EngineConfig
}

// Timestamp returns the wall-clock time stamped on emitted events.
func (ctx *ApplyContext) Timestamp() int64 {
	if ctx.Config.Now != nil {
		return ctx.Config.Now().Unix()
	}
	return time.Now().Unix()
}

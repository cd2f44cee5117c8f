package amm

import (
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/events"
)

func init() {
	tx.Register(tx.TypeAcceptAdmin, func() tx.Transaction {
		return &AcceptAdmin{BaseTx: *tx.NewBaseTx(tx.TypeAcceptAdmin, zeroKey)}
	})
}

// AcceptAdmin completes an admin handover. Only the proposed admin can
// submit it; on success the proposal is cleared.
type AcceptAdmin struct {
	tx.BaseTx
}

// Validate validates the AcceptAdmin transaction
func (a *AcceptAdmin) Validate() error {
	return a.BaseTx.Validate()
}

// Apply applies the AcceptAdmin transaction to ledger state.
func (a *AcceptAdmin) Apply(ctx *tx.ApplyContext) tx.Result {
	params, err := readParameters(ctx.View)
	if err != nil {
		return tx.TefINTERNAL
	}
	if params == nil || params.Admin.IsZero() {
		return tx.TecNO_ENTRY
	}
	// A zero ProposedAdmin can never match: the signer is never zero here.
	if ctx.Signer != params.ProposedAdmin {
		return tx.TecNO_PERMISSION
	}

	params.Admin = ctx.Signer
	params.ProposedAdmin = zeroKey
	if err := writeParameters(ctx.View, params, false); err != nil {
		return tx.TefINTERNAL
	}

	ctx.Events.Publish(events.AcceptAdminEvent{
		Admin:     ctx.Signer,
		Timestamp: ctx.Timestamp(),
	})
	return tx.TesSUCCESS
}

package amm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/events"
)

func init() {
	tx.Register(tx.TypeProposeAdmin, func() tx.Transaction {
		return &ProposeAdmin{BaseTx: *tx.NewBaseTx(tx.TypeProposeAdmin, zeroKey)}
	})
}

// ProposeAdmin starts a two-phase admin handover. The current admin names a
// successor; nothing changes until the successor accepts. Proposing again
// overwrites any pending proposal.
type ProposeAdmin struct {
	tx.BaseTx

	// ProposedAdmin is the account that may claim the admin role
	ProposedAdmin solana.PublicKey `json:"ProposedAdmin"`
}

// Validate validates the ProposeAdmin transaction
func (p *ProposeAdmin) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.ProposedAdmin.IsZero() {
		return tx.ErrResult(tx.TemMALFORMED, "ProposedAdmin is required")
	}
	return nil
}

// Apply applies the ProposeAdmin transaction to ledger state.
func (p *ProposeAdmin) Apply(ctx *tx.ApplyContext) tx.Result {
	params, err := readParameters(ctx.View)
	if err != nil {
		return tx.TefINTERNAL
	}
	if params == nil || params.Admin.IsZero() {
		return tx.TecNO_ENTRY
	}
	if ctx.Signer != params.Admin {
		return tx.TecNO_PERMISSION
	}

	params.ProposedAdmin = p.ProposedAdmin
	if err := writeParameters(ctx.View, params, false); err != nil {
		return tx.TefINTERNAL
	}

	ctx.Events.Publish(events.ProposeAdminEvent{
		ProposedAdmin: p.ProposedAdmin,
		Timestamp:     ctx.Timestamp(),
	})
	return tx.TesSUCCESS
}

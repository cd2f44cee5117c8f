package amm

import (
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/events"
)

func init() {
	tx.Register(tx.TypeSetParameters, func() tx.Transaction {
		return &SetParameters{BaseTx: *tx.NewBaseTx(tx.TypeSetParameters, zeroKey)}
	})
}

// SetParameters updates the protocol fee schedule. Admin only.
type SetParameters struct {
	tx.BaseTx

	// ProtocolFeeBps is the protocol fee in basis points
	ProtocolFeeBps uint64 `json:"ProtocolFeeBps"`

	// ReferrerFeeBps is the referrer fee in basis points
	ReferrerFeeBps uint64 `json:"ReferrerFeeBps"`

	// ReferrerFeeDiscountBps is subtracted from the protocol fee when a
	// referrer participates in a swap
	ReferrerFeeDiscountBps uint64 `json:"ReferrerFeeDiscountBps"`
}

// Validate validates the SetParameters transaction.
//
// The discount must strictly exceed the referrer fee, and the protocol fee
// must strictly exceed their sum. The all-zero schedule is therefore not
// expressible through this transaction; zero fees exist only as the
// pre-initialization default.
func (s *SetParameters) Validate() error {
	if err := s.BaseTx.Validate(); err != nil {
		return err
	}

	if s.ReferrerFeeDiscountBps <= s.ReferrerFeeBps {
		return tx.ErrResult(tx.TemREFERRER_DISCOUNT_EXCEEDS_FEE,
			"ReferrerFeeDiscountBps must exceed ReferrerFeeBps")
	}

	sum, err := checkedAdd(s.ReferrerFeeDiscountBps, s.ReferrerFeeBps)
	if err != nil || s.ProtocolFeeBps <= sum {
		return tx.ErrResult(tx.TemINVALID_FEE_CONFIGURATION,
			"ProtocolFeeBps must exceed ReferrerFeeDiscountBps plus ReferrerFeeBps")
	}

	return nil
}

// Apply applies the SetParameters transaction to ledger state.
func (s *SetParameters) Apply(ctx *tx.ApplyContext) tx.Result {
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

	params.ProtocolFeeBps = s.ProtocolFeeBps
	params.ReferrerFeeBps = s.ReferrerFeeBps
	params.ReferrerFeeDiscountBps = s.ReferrerFeeDiscountBps
	if err := writeParameters(ctx.View, params, false); err != nil {
		return tx.TefINTERNAL
	}

	ctx.Events.Publish(events.SetParametersEvent{
		ProtocolFeeBps:         s.ProtocolFeeBps,
		ReferrerFeeBps:         s.ReferrerFeeBps,
		ReferrerFeeDiscountBps: s.ReferrerFeeDiscountBps,
		Timestamp:              ctx.Timestamp(),
	})
	return tx.TesSUCCESS
}

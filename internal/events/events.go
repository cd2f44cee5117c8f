// Package events defines the notifications emitted by successful
// transactions and the publishers that deliver them.
package events

import (
	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
)

// Event is a structured notification describing a state change.
type Event interface {
	EventType() string
	Fields() logrus.Fields
}

// InitializeEvent is emitted when the global parameters entry is claimed.
type InitializeEvent struct {
	Admin     solana.PublicKey
	Timestamp int64
}

func (e InitializeEvent) EventType() string { return "initialize" }

func (e InitializeEvent) Fields() logrus.Fields {
	return logrus.Fields{
		"admin":     e.Admin.String(),
		"timestamp": e.Timestamp,
	}
}

// SetParametersEvent is emitted when the fee schedule changes.
type SetParametersEvent struct {
	ProtocolFeeBps         uint64
	ReferrerFeeBps         uint64
	ReferrerFeeDiscountBps uint64
	Timestamp              int64
}

func (e SetParametersEvent) EventType() string { return "set_parameters" }

func (e SetParametersEvent) Fields() logrus.Fields {
	return logrus.Fields{
		"protocol_fee_bps":          e.ProtocolFeeBps,
		"referrer_fee_bps":          e.ReferrerFeeBps,
		"referrer_fee_discount_bps": e.ReferrerFeeDiscountBps,
		"timestamp":                 e.Timestamp,
	}
}

// ProposeAdminEvent is emitted when an admin handover is proposed.
type ProposeAdminEvent struct {
	ProposedAdmin solana.PublicKey
	Timestamp     int64
}

func (e ProposeAdminEvent) EventType() string { return "propose_admin" }

func (e ProposeAdminEvent) Fields() logrus.Fields {
	return logrus.Fields{
		"proposed_admin": e.ProposedAdmin.String(),
		"timestamp":      e.Timestamp,
	}
}

// AcceptAdminEvent is emitted when a proposed admin claims the role.
type AcceptAdminEvent struct {
	Admin     solana.PublicKey
	Timestamp int64
}

func (e AcceptAdminEvent) EventType() string { return "accept_admin" }

func (e AcceptAdminEvent) Fields() logrus.Fields {
	return logrus.Fields{
		"admin":     e.Admin.String(),
		"timestamp": e.Timestamp,
	}
}

// CreateEvent is emitted when a pool is created.
type CreateEvent struct {
	BaseMint  solana.PublicKey
	QuoteMint solana.PublicKey
	ShareMint solana.PublicKey
	Creator   solana.PublicKey
	Timestamp int64
}

func (e CreateEvent) EventType() string { return "create" }

func (e CreateEvent) Fields() logrus.Fields {
	return logrus.Fields{
		"base_mint":  e.BaseMint.String(),
		"quote_mint": e.QuoteMint.String(),
		"share_mint": e.ShareMint.String(),
		"creator":    e.Creator.String(),
		"timestamp":  e.Timestamp,
	}
}

// AddLiquidityEvent is emitted after a successful deposit.
type AddLiquidityEvent struct {
	BaseAmount  uint64
	QuoteAmount uint64
	Shares      uint64
	Timestamp   int64
	User        solana.PublicKey
}

func (e AddLiquidityEvent) EventType() string { return "add_liquidity" }

func (e AddLiquidityEvent) Fields() logrus.Fields {
	return logrus.Fields{
		"base_amount":  e.BaseAmount,
		"quote_amount": e.QuoteAmount,
		"shares":       e.Shares,
		"timestamp":    e.Timestamp,
		"user":         e.User.String(),
	}
}

// RemoveLiquidityEvent is emitted after a successful withdrawal.
type RemoveLiquidityEvent struct {
	BaseAmount  uint64
	QuoteAmount uint64
	Shares      uint64
	Timestamp   int64
	User        solana.PublicKey
}

func (e RemoveLiquidityEvent) EventType() string { return "remove_liquidity" }

func (e RemoveLiquidityEvent) Fields() logrus.Fields {
	return logrus.Fields{
		"base_amount":  e.BaseAmount,
		"quote_amount": e.QuoteAmount,
		"shares":       e.Shares,
		"timestamp":    e.Timestamp,
		"user":         e.User.String(),
	}
}

// BuyEvent is emitted after a successful buy swap. Referrer fields are set
// only when a referrer participated.
type BuyEvent struct {
	BaseAmount        uint64
	QuoteAmount       uint64
	Timestamp         int64
	User              solana.PublicKey
	ProtocolFeeAmount uint64
	Referrer          *solana.PublicKey
	ReferrerFeeAmount *uint64
}

func (e BuyEvent) EventType() string { return "buy" }

func (e BuyEvent) Fields() logrus.Fields {
	return swapFields(e.BaseAmount, e.QuoteAmount, e.Timestamp, e.User, e.ProtocolFeeAmount, e.Referrer, e.ReferrerFeeAmount)
}

// SellEvent is emitted after a successful sell swap.
type SellEvent struct {
	BaseAmount        uint64
	QuoteAmount       uint64
	Timestamp         int64
	User              solana.PublicKey
	ProtocolFeeAmount uint64
	Referrer          *solana.PublicKey
	ReferrerFeeAmount *uint64
}

func (e SellEvent) EventType() string { return "sell" }

func (e SellEvent) Fields() logrus.Fields {
	return swapFields(e.BaseAmount, e.QuoteAmount, e.Timestamp, e.User, e.ProtocolFeeAmount, e.Referrer, e.ReferrerFeeAmount)
}

func swapFields(base, quote uint64, ts int64, user solana.PublicKey, protocolFee uint64, referrer *solana.PublicKey, referrerFee *uint64) logrus.Fields {
	f := logrus.Fields{
		"base_amount":         base,
		"quote_amount":        quote,
		"timestamp":           ts,
		"user":                user.String(),
		"protocol_fee_amount": protocolFee,
	}
	if referrer != nil {
		f["referrer"] = referrer.String()
	}
	if referrerFee != nil {
		f["referrer_fee_amount"] = *referrerFee
	}
	return f
}

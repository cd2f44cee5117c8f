package tx

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

// Common errors
var (
	ErrMissingRequiredField   = errors.New("missing required field")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)

// Transaction is the interface that all transaction types must implement
type Transaction interface {
	// TxType returns the transaction type
	TxType() Type

	// GetCommon returns the common transaction fields
	GetCommon() *Common

	// Validate checks the transaction's own fields, independent of ledger
	// state. State-dependent checks belong in Apply.
	Validate() error
}

// Appliable is implemented by transaction types that apply themselves to
// ledger state. The engine calls Apply inside a sandbox and commits only
// on tesSUCCESS.
type Appliable interface {
	Apply(ctx *ApplyContext) Result
}

// Common holds the fields shared by every transaction
type Common struct {
	// Account is the signer submitting the transaction
	Account solana.PublicKey `json:"Account"`

	// TransactionType is the name of the transaction type
	TransactionType string `json:"TransactionType"`
}

// Validate validates the common fields
func (c *Common) Validate() error {
	if c.Account.IsZero() {
		return ErrResult(TemBAD_SRC_ACCOUNT, "Account is required")
	}
	if c.TransactionType == "" {
		return ErrResult(TemMALFORMED, "TransactionType is required")
	}
	return nil
}

// BaseTx provides the base implementation shared by all transaction types
type BaseTx struct {
	Common
	txType Type
}

// TxType returns the transaction type
func (b *BaseTx) TxType() Type {
	return b.txType
}

// GetCommon returns the common transaction fields
func (b *BaseTx) GetCommon() *Common {
	return &b.Common
}

// Validate validates the base transaction
func (b *BaseTx) Validate() error {
	return b.Common.Validate()
}

// NewBaseTx creates a base transaction of the given type
func NewBaseTx(txType Type, account solana.PublicKey) *BaseTx {
	return &BaseTx{
		Common: Common{
			Account:         account,
			TransactionType: txType.String(),
		},
		txType: txType,
	}
}

package entry

import (
	"fmt"
)

// Type represents a ledger entry type
type Type uint16

// All known ledger entry types
const (
	// Pool state for one base/quote market
	TypePool Type = 0x0070

	// Protocol-wide fee and admin configuration (singleton)
	TypeGlobalParameters Type = 0x0067
)

// String returns the string name of the entry type
func (t Type) String() string {
	switch t {
	case TypePool:
		return "Pool"
	case TypeGlobalParameters:
		return "GlobalParameters"
	default:
		return fmt.Sprintf("Unknown(%#x)", uint16(t))
	}
}

// Entry defines the interface for all ledger entries
type Entry interface {
	Type() Type
	Validate() error
	Serialize() []byte
}

package tx

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownTransactionType is returned when a transaction type is unknown
var ErrUnknownTransactionType = errors.New("unknown transaction type")

var (
	factoriesMu sync.RWMutex
	factories   = make(map[Type]func() Transaction)
)

// Register adds a factory for a transaction type. Transaction packages call
// this from init(); registering the same type twice panics.
func Register(txType Type, factory func() Transaction) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, dup := factories[txType]; dup {
		panic(fmt.Sprintf("tx: duplicate registration for %s", txType))
	}
	factories[txType] = factory
}

// NewFromType creates a new transaction of the given type
func NewFromType(txType Type) (Transaction, error) {
	factoriesMu.RLock()
	factory, ok := factories[txType]
	factoriesMu.RUnlock()
	if !ok {
		return nil, ErrUnknownTransactionType
	}
	return factory(), nil
}

// FromJSON creates a Transaction from a JSON object
func FromJSON(data []byte) (Transaction, error) {
	var raw struct {
		TransactionType string `json:"TransactionType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	txType, ok := TypeFromName(raw.TransactionType)
	if !ok {
		return nil, ErrUnknownTransactionType
	}

	t, err := NewFromType(txType)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}

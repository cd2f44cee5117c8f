package tx

import (
	"bytes"
	"fmt"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
)

// Action represents the type of modification to a ledger entry
type Action int

const (
	// ActionCache means the entry was read but not modified
	ActionCache Action = iota
	// ActionInsert means a new entry was created
	ActionInsert
	// ActionModify means an existing entry was modified
	ActionModify
	// ActionErase means an entry was deleted
	ActionErase
)

// TrackedEntry represents a ledger entry being tracked for changes
type TrackedEntry struct {
	Action   Action
	Original []byte // Original state (nil for inserts)
	Current  []byte // Current state
}

// ApplyStateTable wraps a LedgerView and buffers all modifications until
// Apply. A transaction runs entirely against the table, so a failing
// handler leaves the base view untouched.
type ApplyStateTable struct {
	base  LedgerView
	items map[[32]byte]*TrackedEntry
}

// NewApplyStateTable creates a new ApplyStateTable wrapping the given base view
func NewApplyStateTable(base LedgerView) *ApplyStateTable {
	return &ApplyStateTable{
		base:  base,
		items: make(map[[32]byte]*TrackedEntry),
	}
}

// Read reads a ledger entry, tracking it as cached
func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	if e, exists := t.items[k.Key]; exists {
		if e.Action == ActionErase {
			return nil, nil
		}
		return e.Current, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}

	// Only track entries that exist in the base
	if data != nil {
		t.items[k.Key] = &TrackedEntry{
			Action:   ActionCache,
			Original: data,
			Current:  data,
		}
	}
	return data, nil
}

// Exists checks if an entry exists
func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	if e, exists := t.items[k.Key]; exists {
		return e.Action != ActionErase, nil
	}
	return t.base.Exists(k)
}

// Insert adds a new entry
func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	if e, exists := t.items[k.Key]; exists {
		if e.Action != ActionErase {
			return fmt.Errorf("entry already exists")
		}
		// Re-inserting a deleted entry becomes a modify
		e.Action = ActionModify
		e.Current = data
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("entry already exists")
	}

	t.items[k.Key] = &TrackedEntry{
		Action:  ActionInsert,
		Current: data,
	}
	return nil
}

// Update modifies an existing entry
func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	if e, exists := t.items[k.Key]; exists {
		if e.Action == ActionErase {
			return fmt.Errorf("entry not found (deleted)")
		}
		if e.Action == ActionCache {
			e.Action = ActionModify
		}
		// For insert, keep it as insert with new data
		e.Current = data
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return fmt.Errorf("entry not found")
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionModify,
		Original: original,
		Current:  data,
	}
	return nil
}

// Erase removes an entry
func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	if e, exists := t.items[k.Key]; exists {
		if e.Action == ActionErase {
			return fmt.Errorf("entry already deleted")
		}
		if e.Action == ActionInsert {
			// Inserting then deleting = no change
			delete(t.items, k.Key)
			return nil
		}
		e.Action = ActionErase
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return fmt.Errorf("entry not found")
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionErase,
		Original: original,
		Current:  original,
	}
	return nil
}

// ForEach iterates over all state entries of the base view. Buffered
// changes are not reflected; callers that need them go through Read.
func (t *ApplyStateTable) ForEach(fn func(key [32]byte, data []byte) bool) error {
	return t.base.ForEach(fn)
}

// Apply commits all buffered changes to the base view.
func (t *ApplyStateTable) Apply() error {
	for key, e := range t.items {
		k := keylet.Keylet{Key: key}
		switch e.Action {
		case ActionCache:
			continue
		case ActionInsert:
			if err := t.base.Insert(k, e.Current); err != nil {
				return err
			}
		case ActionModify:
			if bytes.Equal(e.Original, e.Current) {
				continue
			}
			if err := t.base.Update(k, e.Current); err != nil {
				return err
			}
		case ActionErase:
			if err := t.base.Erase(k); err != nil {
				return err
			}
		}
	}
	return nil
}

package tx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
)

// mockLedgerView implements LedgerView for testing
type mockLedgerView struct {
	data map[[32]byte][]byte
}

func newMockLedgerView() *mockLedgerView {
	return &mockLedgerView{data: make(map[[32]byte][]byte)}
}

func (m *mockLedgerView) Read(k keylet.Keylet) ([]byte, error) {
	return m.data[k.Key], nil
}

func (m *mockLedgerView) Exists(k keylet.Keylet) (bool, error) {
	_, ok := m.data[k.Key]
	return ok, nil
}

func (m *mockLedgerView) Insert(k keylet.Keylet, data []byte) error {
	m.data[k.Key] = data
	return nil
}

func (m *mockLedgerView) Update(k keylet.Keylet, data []byte) error {
	m.data[k.Key] = data
	return nil
}

func (m *mockLedgerView) Erase(k keylet.Keylet) error {
	delete(m.data, k.Key)
	return nil
}

func (m *mockLedgerView) ForEach(fn func(key [32]byte, data []byte) bool) error {
	for k, v := range m.data {
		if !fn(k, v) {
			break
		}
	}
	return nil
}

func key(b byte) keylet.Keylet {
	var k keylet.Keylet
	k.Key[0] = b
	return k
}

func TestStateTableBuffersUntilApply(t *testing.T) {
	base := newMockLedgerView()
	table := NewApplyStateTable(base)

	require.NoError(t, table.Insert(key(1), []byte("a")))

	// Visible through the table, not yet in the base.
	data, err := table.Read(key(1))
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)

	exists, _ := base.Exists(key(1))
	assert.False(t, exists)

	require.NoError(t, table.Apply())
	got, _ := base.Read(key(1))
	assert.Equal(t, []byte("a"), got)
}

func TestStateTableDiscardedChangesNeverLand(t *testing.T) {
	base := newMockLedgerView()
	require.NoError(t, base.Insert(key(1), []byte("old")))

	table := NewApplyStateTable(base)
	require.NoError(t, table.Update(key(1), []byte("new")))
	require.NoError(t, table.Insert(key(2), []byte("b")))

	// Dropping the table without Apply leaves the base untouched.
	got, _ := base.Read(key(1))
	assert.Equal(t, []byte("old"), got)
	exists, _ := base.Exists(key(2))
	assert.False(t, exists)
}

func TestStateTableInsertDuplicate(t *testing.T) {
	base := newMockLedgerView()
	require.NoError(t, base.Insert(key(1), []byte("a")))

	table := NewApplyStateTable(base)
	assert.Error(t, table.Insert(key(1), []byte("b")))

	require.NoError(t, table.Insert(key(2), []byte("c")))
	assert.Error(t, table.Insert(key(2), []byte("d")))
}

func TestStateTableUpdateMissing(t *testing.T) {
	table := NewApplyStateTable(newMockLedgerView())
	assert.Error(t, table.Update(key(1), []byte("a")))
}

func TestStateTableEraseThenRead(t *testing.T) {
	base := newMockLedgerView()
	require.NoError(t, base.Insert(key(1), []byte("a")))

	table := NewApplyStateTable(base)
	require.NoError(t, table.Erase(key(1)))

	data, err := table.Read(key(1))
	require.NoError(t, err)
	assert.Nil(t, data)

	exists, _ := table.Exists(key(1))
	assert.False(t, exists)

	require.NoError(t, table.Apply())
	exists, _ = base.Exists(key(1))
	assert.False(t, exists)
}

func TestStateTableInsertThenErase(t *testing.T) {
	base := newMockLedgerView()
	table := NewApplyStateTable(base)

	require.NoError(t, table.Insert(key(1), []byte("a")))
	require.NoError(t, table.Erase(key(1)))
	require.NoError(t, table.Apply())

	exists, _ := base.Exists(key(1))
	assert.False(t, exists)
}

func TestStateTableReinsertAfterErase(t *testing.T) {
	base := newMockLedgerView()
	require.NoError(t, base.Insert(key(1), []byte("old")))

	table := NewApplyStateTable(base)
	require.NoError(t, table.Erase(key(1)))
	require.NoError(t, table.Insert(key(1), []byte("new")))
	require.NoError(t, table.Apply())

	got, _ := base.Read(key(1))
	assert.Equal(t, []byte("new"), got)
}

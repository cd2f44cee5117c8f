package tokenledger

import (
	"math"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// MemoryLedger is an in-process TransactionalLedger backed by maps. It is
// the collaborator used in standalone mode and in tests.
type MemoryLedger struct {
	mu       sync.RWMutex
	accounts map[solana.PublicKey]Account
	supplies map[solana.PublicKey]uint64
}

// NewMemoryLedger returns an empty in-memory token ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		accounts: make(map[solana.PublicKey]Account),
		supplies: make(map[solana.PublicKey]uint64),
	}
}

func (m *MemoryLedger) CreateAccount(id, mint, authority solana.PublicKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return createAccount(m.accounts, id, mint, authority)
}

func (m *MemoryLedger) Account(id solana.PublicKey) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acct, ok := m.accounts[id]
	if !ok {
		return Account{}, ErrNoAccount
	}
	return acct, nil
}

func (m *MemoryLedger) Transfer(source, destination, authority solana.PublicKey, amount uint64, mint solana.PublicKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return transfer(m.accounts, source, destination, authority, amount, mint)
}

func (m *MemoryLedger) Mint(mint, destination solana.PublicKey, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return mintTo(m.accounts, m.supplies, mint, destination, amount)
}

func (m *MemoryLedger) Burn(mint, source, authority solana.PublicKey, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return burnFrom(m.accounts, m.supplies, mint, source, authority, amount)
}

func (m *MemoryLedger) Supply(mint solana.PublicKey) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.supplies[mint]
}

// Begin snapshots the current state into a stage. Commit swaps the staged
// maps back in under the ledger lock.
func (m *MemoryLedger) Begin() Stage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &memoryStage{
		base:     m,
		accounts: cloneAccounts(m.accounts),
		supplies: cloneSupplies(m.supplies),
	}
}

type memoryStage struct {
	base     *MemoryLedger
	accounts map[solana.PublicKey]Account
	supplies map[solana.PublicKey]uint64
	done     bool
}

func (s *memoryStage) CreateAccount(id, mint, authority solana.PublicKey) error {
	return createAccount(s.accounts, id, mint, authority)
}

func (s *memoryStage) Account(id solana.PublicKey) (Account, error) {
	acct, ok := s.accounts[id]
	if !ok {
		return Account{}, ErrNoAccount
	}
	return acct, nil
}

func (s *memoryStage) Transfer(source, destination, authority solana.PublicKey, amount uint64, mint solana.PublicKey) error {
	return transfer(s.accounts, source, destination, authority, amount, mint)
}

func (s *memoryStage) Mint(mint, destination solana.PublicKey, amount uint64) error {
	return mintTo(s.accounts, s.supplies, mint, destination, amount)
}

func (s *memoryStage) Burn(mint, source, authority solana.PublicKey, amount uint64) error {
	return burnFrom(s.accounts, s.supplies, mint, source, authority, amount)
}

func (s *memoryStage) Supply(mint solana.PublicKey) uint64 {
	return s.supplies[mint]
}

func (s *memoryStage) Commit() {
	if s.done {
		return
	}
	s.done = true
	s.base.mu.Lock()
	s.base.accounts = s.accounts
	s.base.supplies = s.supplies
	s.base.mu.Unlock()
}

func (s *memoryStage) Discard() {
	s.done = true
}

func createAccount(accounts map[solana.PublicKey]Account, id, mint, authority solana.PublicKey) error {
	if _, ok := accounts[id]; ok {
		return ErrDuplicateAccount
	}
	accounts[id] = Account{Mint: mint, Authority: authority}
	return nil
}

func transfer(accounts map[solana.PublicKey]Account, source, destination, authority solana.PublicKey, amount uint64, mint solana.PublicKey) error {
	src, ok := accounts[source]
	if !ok {
		return ErrNoAccount
	}
	dst, ok := accounts[destination]
	if !ok {
		return ErrNoAccount
	}
	if src.Mint != mint || dst.Mint != mint {
		return ErrWrongMint
	}
	if src.Authority != authority {
		return ErrWrongAuthority
	}
	if src.Balance < amount {
		return ErrInsufficientFunds
	}
	// Transfer to self moves nothing once the checks pass. Writing both
	// copies back would credit the account twice.
	if source == destination {
		return nil
	}
	if dst.Balance > math.MaxUint64-amount {
		return ErrSupplyOverflow
	}
	src.Balance -= amount
	dst.Balance += amount
	accounts[source] = src
	accounts[destination] = dst
	return nil
}

func mintTo(accounts map[solana.PublicKey]Account, supplies map[solana.PublicKey]uint64, mint, destination solana.PublicKey, amount uint64) error {
	dst, ok := accounts[destination]
	if !ok {
		return ErrNoAccount
	}
	if dst.Mint != mint {
		return ErrWrongMint
	}
	if dst.Balance > math.MaxUint64-amount || supplies[mint] > math.MaxUint64-amount {
		return ErrSupplyOverflow
	}
	dst.Balance += amount
	accounts[destination] = dst
	supplies[mint] += amount
	return nil
}

func burnFrom(accounts map[solana.PublicKey]Account, supplies map[solana.PublicKey]uint64, mint, source, authority solana.PublicKey, amount uint64) error {
	src, ok := accounts[source]
	if !ok {
		return ErrNoAccount
	}
	if src.Mint != mint {
		return ErrWrongMint
	}
	if src.Authority != authority {
		return ErrWrongAuthority
	}
	if src.Balance < amount {
		return ErrInsufficientFunds
	}
	src.Balance -= amount
	accounts[source] = src
	supplies[mint] -= amount
	return nil
}

func cloneAccounts(in map[solana.PublicKey]Account) map[solana.PublicKey]Account {
	out := make(map[solana.PublicKey]Account, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneSupplies(in map[solana.PublicKey]uint64) map[solana.PublicKey]uint64 {
	out := make(map[solana.PublicKey]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

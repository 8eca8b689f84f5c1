package accounts

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go"
)

type ViewSnapshot struct {
	Accounts  []*BankAccount
	Slot      uint64
	UpdatedAt time.Time
}

// ViewState holds the last successfully refreshed set of bank accounts. It is
// only ever replaced as a whole; readers never observe a partial refresh.
type ViewState struct {
	snapshot atomic.Pointer[ViewSnapshot]
}

func NewViewState() *ViewState {
	viewState := &ViewState{}
	viewState.snapshot.Store(&ViewSnapshot{})
	return viewState
}

func (p *ViewState) Replace(accounts []*BankAccount, slot uint64) *ViewSnapshot {
	snapshot := &ViewSnapshot{
		Accounts:  slices.Clone(accounts),
		Slot:      slot,
		UpdatedAt: time.Now(),
	}
	p.snapshot.Store(snapshot)
	return snapshot
}

func (p *ViewState) Snapshot() *ViewSnapshot {
	return p.snapshot.Load()
}

// Accounts returns the current accounts in registry order. The slice is a copy.
func (p *ViewState) Accounts() []*BankAccount {
	return slices.Clone(p.snapshot.Load().Accounts)
}

func (p *ViewState) Slot() uint64 {
	return p.snapshot.Load().Slot
}

func (p *ViewState) Get(address solana.PublicKey) *BankAccount {
	for _, account := range p.snapshot.Load().Accounts {
		if account.Address.Equals(address) {
			return account
		}
	}
	return nil
}

func (p *ViewState) OwnedBy(owner solana.PublicKey) []*BankAccount {
	var owned []*BankAccount
	for _, account := range p.snapshot.Load().Accounts {
		if account.Owner.Equals(owner) {
			owned = append(owned, account)
		}
	}
	return owned
}

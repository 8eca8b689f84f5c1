package accounts

import (
	"context"

	"bankgo/lib/bank"

	"github.com/gagliardetto/solana-go"
)

// BankAccount is a read-only snapshot of one on-chain bank account.
type BankAccount struct {
	Address solana.PublicKey
	Name    string
	// Balance in lamports.
	Balance uint64
	Owner   solana.PublicKey
}

func NewBankAccount(address solana.PublicKey, data *bank.Bank) *BankAccount {
	return &BankAccount{
		Address: address,
		Name:    data.Name,
		Balance: data.Balance,
		Owner:   data.Owner,
	}
}

type DataAndSlot[T any] struct {
	Data   T
	Slot   uint64
	Pubkey solana.PublicKey
}

type IBankAccountRegistry interface {
	Refresh(ctx context.Context) ([]*BankAccount, error)
	FetchBankAccount(ctx context.Context, address solana.PublicKey) (*BankAccount, error)
	FindBankAccountsByName(ctx context.Context, name string) ([]*BankAccount, error)
	GetBankAccounts() []*BankAccount
	GetBankAccount(address solana.PublicKey) *BankAccount
	GetViewState() *ViewState
}

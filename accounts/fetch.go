package accounts

import (
	"context"
	"fmt"

	"bankgo/anchor/namespace"
	"bankgo/anchor/types"
	"bankgo/lib/bank"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

func BankAccountClient(program types.IProgram) types.IAccountClient {
	return program.GetAccounts(bank.Bank{}, bank.AccountName_Bank)
}

// FetchBankAccountAndSlot reads and decodes one bank account. A missing account
// is an error wrapping namespace.ErrAccountNotFound.
func FetchBankAccountAndSlot(
	ctx context.Context,
	program types.IProgram,
	address solana.PublicKey,
	commitment rpc.CommitmentType,
) (*DataAndSlot[*BankAccount], error) {
	data, rpcContext, err := BankAccountClient(program).FetchNullableAndContext(ctx, address, commitment)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", namespace.ErrAccountNotFound, address)
	}
	account, ok := data.(*bank.Bank)
	if !ok {
		return nil, fmt.Errorf("unexpected account type %T at %s", data, address)
	}
	var slot uint64
	if rpcContext != nil {
		slot = rpcContext.Slot
	}
	return &DataAndSlot[*BankAccount]{
		Data:   NewBankAccount(address, account),
		Slot:   slot,
		Pubkey: address,
	}, nil
}

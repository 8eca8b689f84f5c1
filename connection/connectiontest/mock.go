// Package connectiontest provides a testify mock of connection.IRpcConnection.
package connectiontest

import (
	"context"
	"encoding/binary"

	"bankgo/connection"
	libsolana "bankgo/lib/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/mock"
)

type MockRpcConnection struct {
	mock.Mock
}

var _ connection.IRpcConnection = (*MockRpcConnection)(nil)

func (m *MockRpcConnection) GetProgramAccountsWithOpts(
	ctx context.Context,
	publicKey solana.PublicKey,
	opts *rpc.GetProgramAccountsOpts,
) (rpc.GetProgramAccountsResult, error) {
	args := m.Called(ctx, publicKey, opts)
	result, _ := args.Get(0).(rpc.GetProgramAccountsResult)
	return result, args.Error(1)
}

func (m *MockRpcConnection) GetAccountInfoWithOpts(
	ctx context.Context,
	account solana.PublicKey,
	opts *rpc.GetAccountInfoOpts,
) (*rpc.GetAccountInfoResult, error) {
	args := m.Called(ctx, account, opts)
	result, _ := args.Get(0).(*rpc.GetAccountInfoResult)
	return result, args.Error(1)
}

func (m *MockRpcConnection) GetLatestBlockhash(
	ctx context.Context,
	commitment rpc.CommitmentType,
) (*rpc.GetLatestBlockhashResult, error) {
	args := m.Called(ctx, commitment)
	result, _ := args.Get(0).(*rpc.GetLatestBlockhashResult)
	return result, args.Error(1)
}

func (m *MockRpcConnection) GetBlockHeight(
	ctx context.Context,
	commitment rpc.CommitmentType,
) (uint64, error) {
	args := m.Called(ctx, commitment)
	height, _ := args.Get(0).(uint64)
	return height, args.Error(1)
}

func (m *MockRpcConnection) SendTransactionWithOpts(
	ctx context.Context,
	transaction *solana.Transaction,
	opts rpc.TransactionOpts,
) (solana.Signature, error) {
	args := m.Called(ctx, transaction, opts)
	signature, _ := args.Get(0).(solana.Signature)
	return signature, args.Error(1)
}

func (m *MockRpcConnection) SimulateTransactionWithOpts(
	ctx context.Context,
	transaction *solana.Transaction,
	opts *rpc.SimulateTransactionOpts,
) (*rpc.SimulateTransactionResponse, error) {
	args := m.Called(ctx, transaction, opts)
	result, _ := args.Get(0).(*rpc.SimulateTransactionResponse)
	return result, args.Error(1)
}

func (m *MockRpcConnection) GetSignatureStatuses(
	ctx context.Context,
	searchTransactionHistory bool,
	transactionSignatures ...solana.Signature,
) (*rpc.GetSignatureStatusesResult, error) {
	args := m.Called(ctx, searchTransactionHistory, transactionSignatures)
	result, _ := args.Get(0).(*rpc.GetSignatureStatusesResult)
	return result, args.Error(1)
}

func (m *MockRpcConnection) RPCCallForInto(
	ctx context.Context,
	out interface{},
	method string,
	params []interface{},
) error {
	args := m.Called(ctx, out, method, params)
	return args.Error(0)
}

// OnGetProgramAccounts answers the next getProgramAccounts call with accounts at slot.
func (m *MockRpcConnection) OnGetProgramAccounts(slot uint64, accounts []*rpc.KeyedAccount) *mock.Call {
	return m.On("RPCCallForInto", mock.Anything, mock.Anything, "getProgramAccounts", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(1).(*libsolana.GetProgramAccountsContextResult)
			out.Context.Slot = slot
			out.Value = accounts
		}).
		Return(nil)
}

// OnGetAccountInfo answers lookups of address with data owned by owner.
func (m *MockRpcConnection) OnGetAccountInfo(address solana.PublicKey, owner solana.PublicKey, slot uint64, data []byte) *mock.Call {
	return m.On("GetAccountInfoWithOpts", mock.Anything, address, mock.Anything).
		Return(&rpc.GetAccountInfoResult{
			RPCContext: rpc.RPCContext{Context: rpc.Context{Slot: slot}},
			Value: &rpc.Account{
				Owner: owner,
				Data:  rpc.DataBytesOrJSONFromBytes(data),
			},
		}, nil)
}

// OnLatestBlockhash answers blockhash lookups with a deterministic hash.
func (m *MockRpcConnection) OnLatestBlockhash(lastValidBlockHeight uint64) *mock.Call {
	var hash solana.Hash
	binary.LittleEndian.PutUint64(hash[:], lastValidBlockHeight)
	hash[31] = 1
	return m.On("GetLatestBlockhash", mock.Anything, mock.Anything).
		Return(&rpc.GetLatestBlockhashResult{
			Value: &rpc.LatestBlockhashResult{
				Blockhash:            hash,
				LastValidBlockHeight: lastValidBlockHeight,
			},
		}, nil)
}

// OnSignatureStatus answers status lookups for signature with the given status.
func (m *MockRpcConnection) OnSignatureStatus(signature solana.Signature, status *rpc.SignatureStatusesResult) *mock.Call {
	return m.On("GetSignatureStatuses", mock.Anything, false, []solana.Signature{signature}).
		Return(&rpc.GetSignatureStatusesResult{
			Value: []*rpc.SignatureStatusesResult{status},
		}, nil)
}

func KeyedAccount(address solana.PublicKey, owner solana.PublicKey, data []byte) *rpc.KeyedAccount {
	return &rpc.KeyedAccount{
		Pubkey: address,
		Account: &rpc.Account{
			Owner: owner,
			Data:  rpc.DataBytesOrJSONFromBytes(data),
		},
	}
}

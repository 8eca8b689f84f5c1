package connection

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

// IRpcConnection is the part of *rpc.Client the SDK talks to.
type IRpcConnection interface {
	GetProgramAccountsWithOpts(
		ctx context.Context,
		publicKey solana.PublicKey,
		opts *rpc.GetProgramAccountsOpts,
	) (rpc.GetProgramAccountsResult, error)
	GetAccountInfoWithOpts(
		ctx context.Context,
		account solana.PublicKey,
		opts *rpc.GetAccountInfoOpts,
	) (*rpc.GetAccountInfoResult, error)
	GetLatestBlockhash(
		ctx context.Context,
		commitment rpc.CommitmentType,
	) (*rpc.GetLatestBlockhashResult, error)
	GetBlockHeight(
		ctx context.Context,
		commitment rpc.CommitmentType,
	) (uint64, error)
	SendTransactionWithOpts(
		ctx context.Context,
		transaction *solana.Transaction,
		opts rpc.TransactionOpts,
	) (solana.Signature, error)
	SimulateTransactionWithOpts(
		ctx context.Context,
		transaction *solana.Transaction,
		opts *rpc.SimulateTransactionOpts,
	) (*rpc.SimulateTransactionResponse, error)
	GetSignatureStatuses(
		ctx context.Context,
		searchTransactionHistory bool,
		transactionSignatures ...solana.Signature,
	) (*rpc.GetSignatureStatusesResult, error)
	RPCCallForInto(
		ctx context.Context,
		out interface{},
		method string,
		params []interface{},
	) error
}

var _ IRpcConnection = (*rpc.Client)(nil)

type IConnectionManager interface {
	GetRpc(...string) IRpcConnection
	GetWs(context.Context, ...string) (*ws.Client, error)
	AddConfig(Config, ...string)
}

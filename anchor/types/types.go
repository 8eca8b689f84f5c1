package types

import (
	"context"

	go_bank "bankgo"
	"bankgo/connection"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

type IProvider interface {
	GetConnection(...string) connection.IRpcConnection
	GetWsConnection(context.Context, ...string) (*ws.Client, error)
	GetProgram() IProgram
	SetProgram(IProgram)
	GetOpts() *go_bank.ConfirmOptions
	GetWallet() go_bank.IWallet
}

type IProgram interface {
	GetProgramId() solana.PublicKey
	GetProvider() IProvider
	GetAccounts(t any, accountName string) IAccountClient
}

type IAccountNamespace interface {
	Client(any, string) IAccountClient
}

type IAccountClient interface {
	Decode([]byte) (interface{}, error)
	FetchNullableAndContext(context.Context, solana.PublicKey, rpc.CommitmentType) (interface{}, *rpc.Context, error)
	Fetch(context.Context, solana.PublicKey, rpc.CommitmentType) (interface{}, error)
	All(ctx context.Context, filters []rpc.RPCFilter) ([]KeyedAccount, error)
}

// KeyedAccount is a decoded program account with the address it was read from.
type KeyedAccount struct {
	Pubkey  solana.PublicKey
	Account interface{}
}

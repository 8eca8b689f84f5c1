package anchor

import (
	"context"

	go_bank "bankgo"
	"bankgo/anchor/types"
	"bankgo/connection"

	"github.com/gagliardetto/solana-go/rpc/ws"
)

type AnchorProvider struct {
	types.IProvider
	Wallet            go_bank.IWallet
	Opts              go_bank.ConfirmOptions
	ConnectionManager connection.IConnectionManager
	Program           types.IProgram
}

func CreateAnchorProvider(
	wallet go_bank.IWallet,
	opts go_bank.ConfirmOptions,
	connectionManager connection.IConnectionManager,
) *AnchorProvider {
	return &AnchorProvider{
		Wallet:            wallet,
		Opts:              opts,
		ConnectionManager: connectionManager,
	}
}

func (p *AnchorProvider) GetWallet() go_bank.IWallet {
	return p.Wallet
}

func (p *AnchorProvider) GetConnection(id ...string) connection.IRpcConnection {
	return p.ConnectionManager.GetRpc(id...)
}

func (p *AnchorProvider) GetWsConnection(ctx context.Context, id ...string) (*ws.Client, error) {
	return p.ConnectionManager.GetWs(ctx, id...)
}

func (p *AnchorProvider) GetOpts() *go_bank.ConfirmOptions {
	return &p.Opts
}

func (p *AnchorProvider) GetProgram() types.IProgram {
	return p.Program
}

func (p *AnchorProvider) SetProgram(program types.IProgram) {
	p.Program = program
}

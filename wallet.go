package go_bank

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrUserRejected       = errors.New("user rejected the request")
)

// IWallet is the signing capability handed to the SDK. A zero public key means
// the wallet is not connected. Implementations signal a declined signature by
// returning an error wrapping ErrUserRejected.
type IWallet interface {
	GetPublicKey() solana.PublicKey
	SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error)
}

func IsConnected(wallet IWallet) bool {
	return wallet != nil && !wallet.GetPublicKey().IsZero()
}

type Wallet struct {
	IWallet
	PrivateKey solana.PrivateKey
}

func NewWallet(privateKey solana.PrivateKey) *Wallet {
	return &Wallet{PrivateKey: privateKey}
}

func NewWalletFromKeygenFile(path string) (*Wallet, error) {
	privateKey, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("load keypair %s: %w", path, err)
	}
	return NewWallet(privateKey), nil
}

func (p *Wallet) GetPublicKey() solana.PublicKey {
	if len(p.PrivateKey) == 0 {
		return solana.PublicKey{}
	}
	return p.PrivateKey.PublicKey()
}

func (p *Wallet) GetPrivateKey() solana.PrivateKey {
	return p.PrivateKey
}

func (p *Wallet) SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	if len(p.PrivateKey) == 0 {
		return nil, ErrWalletNotConnected
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, err := tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
		if p.PrivateKey.PublicKey().Equals(key) {
			return &p.PrivateKey
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (p *Wallet) SignAllTransactions(ctx context.Context, txs []*solana.Transaction) ([]*solana.Transaction, error) {
	for _, tx := range txs {
		if _, err := p.SignTransaction(ctx, tx); err != nil {
			return nil, err
		}
	}
	return txs, nil
}

package tx

import (
	"context"

	go_bank "bankgo"

	"github.com/gagliardetto/solana-go"
	addresslookuptable "github.com/gagliardetto/solana-go/programs/address-lookup-table"
	"github.com/gagliardetto/solana-go/rpc"
)

type ExtraConfirmationOptions struct {
	OnSignedCb func()
	// LastValidBlockHeight bounds how long a confirmer keeps waiting. Zero disables the check.
	LastValidBlockHeight uint64
}

type TxSigAndSlot struct {
	TxSig solana.Signature
	Slot  uint64
}

type ITxSender interface {
	Send(
		ctx context.Context,
		tx *solana.Transaction,
		opts *go_bank.ConfirmOptions,
		preSigned bool,
		extraConfirmationOptions *ExtraConfirmationOptions,
	) (*TxSigAndSlot, error)

	BuildTransaction(
		ctx context.Context,
		ixs []solana.Instruction,
		txParams *go_bank.TxParams,
		lookupTables []addresslookuptable.KeyedAddressLookupTable,
	) (*solana.Transaction, uint64, error)

	SimulateTransaction(
		ctx context.Context,
		tx *solana.Transaction,
	) (*rpc.SimulateTransactionResult, error)

	GetTimeoutCount() uint64
}

// IConfirmer waits until a submitted signature reaches commitment and returns its slot.
type IConfirmer interface {
	Confirm(
		ctx context.Context,
		txSig solana.Signature,
		commitment rpc.CommitmentType,
		lastValidBlockHeight uint64,
	) (uint64, error)
}

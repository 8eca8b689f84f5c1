package tx

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	go_bank "bankgo"
	"bankgo/connection"
	"bankgo/utils"

	"github.com/gagliardetto/solana-go"
	addresslookuptable "github.com/gagliardetto/solana-go/programs/address-lookup-table"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

const DEFAULT_COMPUTE_UNITS = 200_000

type BaseTxSender struct {
	ITxSender
	connection   connection.IRpcConnection
	wallet       go_bank.IWallet
	opts         go_bank.ConfirmOptions
	txParams     go_bank.BaseTxParams
	confirmer    IConfirmer
	logger       *zap.Logger
	timeoutCount atomic.Uint64
}

type BaseTxSenderOption func(*BaseTxSender)

func WithConfirmer(confirmer IConfirmer) BaseTxSenderOption {
	return func(p *BaseTxSender) {
		p.confirmer = confirmer
	}
}

func WithLogger(logger *zap.Logger) BaseTxSenderOption {
	return func(p *BaseTxSender) {
		p.logger = logger
	}
}

// WithTxParams sets the compute budget used when BuildTransaction is given no params.
func WithTxParams(txParams go_bank.BaseTxParams) BaseTxSenderOption {
	return func(p *BaseTxSender) {
		p.txParams = txParams
	}
}

func CreateBaseTxSender(
	connection connection.IRpcConnection,
	wallet go_bank.IWallet,
	opts *go_bank.ConfirmOptions,
	options ...BaseTxSenderOption,
) *BaseTxSender {
	txSender := &BaseTxSender{
		connection: connection,
		wallet:     wallet,
		opts:       utils.TTM[go_bank.ConfirmOptions](opts == nil, go_bank.DefaultConfirmOptions(), func() go_bank.ConfirmOptions { return *opts }),
		txParams: go_bank.BaseTxParams{
			ComputeUnits: DEFAULT_COMPUTE_UNITS,
		},
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(txSender)
	}
	if txSender.confirmer == nil {
		txSender.confirmer = CreatePollingConfirmer(connection, DEFAULT_POLL_INTERVAL)
	}
	return txSender
}

func (p *BaseTxSender) GetOpts() go_bank.ConfirmOptions {
	return p.opts
}

// BuildTransaction prepends the compute budget instructions, stamps the latest
// blockhash and sets the wallet as fee payer. It returns the transaction together
// with the last block height at which it can still land.
func (p *BaseTxSender) BuildTransaction(
	ctx context.Context,
	ixs []solana.Instruction,
	txParams *go_bank.TxParams,
	lookupTables []addresslookuptable.KeyedAddressLookupTable,
) (*solana.Transaction, uint64, error) {
	if !go_bank.IsConnected(p.wallet) {
		return nil, 0, go_bank.NewBankError(go_bank.ErrorKindNotConnected, "build", go_bank.ErrWalletNotConnected)
	}
	baseTxParams := p.txParams
	if txParams != nil {
		baseTxParams = txParams.BaseTxParams
		if txParams.UseSimulatedComputeUnits != nil && *txParams.UseSimulatedComputeUnits {
			processedTxParams, err := ProcessTxParams(
				ctx,
				&TransactionProps{
					Instructions: ixs,
					TxParams:     baseTxParams,
					LookupTables: lookupTables,
				},
				func(ctx context.Context, props *TransactionProps) (*solana.Transaction, error) {
					tx, _, err := p.buildTransaction(ctx, props.Instructions, props.TxParams, props.LookupTables)
					return tx, err
				},
				&txParams.ProcessingTxParams,
				p.connection,
			)
			if err != nil {
				return nil, 0, err
			}
			baseTxParams = processedTxParams
		}
	}
	return p.buildTransaction(ctx, ixs, baseTxParams, lookupTables)
}

func (p *BaseTxSender) buildTransaction(
	ctx context.Context,
	ixs []solana.Instruction,
	txParams go_bank.BaseTxParams,
	lookupTables []addresslookuptable.KeyedAddressLookupTable,
) (*solana.Transaction, uint64, error) {
	allIx := GetComputeBudgetInstructions(txParams)
	allIx = append(allIx, ixs...)

	latestBlockHash, err := p.connection.GetLatestBlockhash(ctx, utils.TT(p.opts.Commitment == "", rpc.CommitmentConfirmed, p.opts.Commitment))
	if err != nil {
		return nil, 0, go_bank.NewBankError(go_bank.ErrorKindSubmission, "build", err, "latest blockhash")
	}
	if latestBlockHash == nil || latestBlockHash.Value == nil {
		return nil, 0, go_bank.Errorf(go_bank.ErrorKindSubmission, "build", "latest blockhash: empty response")
	}

	addressTables := make(map[solana.PublicKey]solana.PublicKeySlice)
	for _, lookupTable := range lookupTables {
		addressTables[lookupTable.Key] = lookupTable.State.Addresses
	}
	transactionBuilder := solana.NewTransactionBuilder().
		SetFeePayer(p.wallet.GetPublicKey()).
		SetRecentBlockHash(latestBlockHash.Value.Blockhash)
	if len(addressTables) > 0 {
		transactionBuilder = transactionBuilder.WithOpt(solana.TransactionAddressTables(addressTables))
	}
	for _, instruction := range allIx {
		transactionBuilder.AddInstruction(instruction)
	}
	transaction, err := transactionBuilder.Build()
	if err != nil {
		return nil, 0, go_bank.NewBankError(go_bank.ErrorKindBuild, "build", err)
	}
	return transaction, latestBlockHash.Value.LastValidBlockHeight, nil
}

func GetComputeBudgetInstructions(txParams go_bank.BaseTxParams) []solana.Instruction {
	var ixs []solana.Instruction
	if txParams.ComputeUnits != 0 && txParams.ComputeUnits != DEFAULT_COMPUTE_UNITS {
		ixs = append(ixs, computebudget.NewSetComputeUnitLimitInstructionBuilder().SetUnits(uint32(txParams.ComputeUnits)).Build())
	}
	if txParams.ComputeUnitsPrice != 0 {
		ixs = append(ixs, computebudget.NewSetComputeUnitPriceInstructionBuilder().SetMicroLamports(txParams.ComputeUnitsPrice).Build())
	}
	return ixs
}

// Send asks the wallet for a signature unless preSigned, submits the transaction
// and blocks until the confirmer reports the requested commitment. Nothing is retried.
// The signature is returned alongside a confirmation error when submission succeeded.
func (p *BaseTxSender) Send(
	ctx context.Context,
	tx *solana.Transaction,
	opts *go_bank.ConfirmOptions,
	preSigned bool,
	extraConfirmationOptions *ExtraConfirmationOptions,
) (*TxSigAndSlot, error) {
	if opts == nil {
		opts = &p.opts
	}
	signedTx := tx
	if !preSigned {
		if !go_bank.IsConnected(p.wallet) {
			return nil, go_bank.NewBankError(go_bank.ErrorKindNotConnected, "sign", go_bank.ErrWalletNotConnected)
		}
		signed, err := p.wallet.SignTransaction(ctx, tx)
		if err != nil {
			return nil, classifySignError("sign", err)
		}
		signedTx = signed
	}
	if extraConfirmationOptions != nil && extraConfirmationOptions.OnSignedCb != nil {
		extraConfirmationOptions.OnSignedCb()
	}

	txSig, err := p.connection.SendTransactionWithOpts(ctx, signedTx, opts.TransactionOpts)
	if err != nil {
		return nil, classifySendError("submit", err)
	}
	p.logger.Debug("transaction submitted", zap.Stringer("signature", txSig))

	var lastValidBlockHeight uint64
	if extraConfirmationOptions != nil {
		lastValidBlockHeight = extraConfirmationOptions.LastValidBlockHeight
	}
	slot, err := p.confirmer.Confirm(ctx, txSig, opts.Commitment, lastValidBlockHeight)
	if err != nil {
		if errors.Is(err, ErrBlockHeightExceeded) || errors.Is(err, context.DeadlineExceeded) {
			p.timeoutCount.Add(1)
		}
		return &TxSigAndSlot{TxSig: txSig, Slot: slot}, err
	}
	p.logger.Debug("transaction confirmed",
		zap.Stringer("signature", txSig),
		zap.Uint64("slot", slot),
		zap.String("commitment", string(opts.Commitment)),
	)
	return &TxSigAndSlot{
		TxSig: txSig,
		Slot:  slot,
	}, nil
}

// SimulateTransaction runs tx against the node with a fresh blockhash and no
// signature check. A runtime error in the result is reported as a remote rejection.
func (p *BaseTxSender) SimulateTransaction(
	ctx context.Context,
	tx *solana.Transaction,
) (*rpc.SimulateTransactionResult, error) {
	if len(tx.Signatures) == 0 {
		tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)
	}
	out, err := p.connection.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		ReplaceRecentBlockhash: true,
		Commitment:             p.opts.PreflightCommitment,
	})
	if err != nil {
		return nil, go_bank.NewBankError(go_bank.ErrorKindSubmission, "simulate", err)
	}
	if out == nil || out.Value == nil {
		return nil, go_bank.Errorf(go_bank.ErrorKindSubmission, "simulate", "empty simulation result")
	}
	if out.Value.Err != nil {
		return out.Value, go_bank.NewBankError(
			go_bank.ErrorKindRemoteRejection,
			"simulate",
			fmt.Errorf("%v", out.Value.Err),
			utils.TT(len(out.Value.Logs) > 0, fmt.Sprint(out.Value.Logs), ""),
		)
	}
	return out.Value, nil
}

func (p *BaseTxSender) GetTimeoutCount() uint64 {
	return p.timeoutCount.Load()
}

// FetchLookupTable loads an address lookup table account for use in BuildTransaction.
func FetchLookupTable(
	ctx context.Context,
	connection connection.IRpcConnection,
	address solana.PublicKey,
) (*addresslookuptable.KeyedAddressLookupTable, error) {
	account, err := connection.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding: solana.EncodingBase64,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch lookup table %s: %w", address, err)
	}
	state, err := addresslookuptable.DecodeAddressLookupTableState(account.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("decode lookup table %s: %w", address, err)
	}
	lookupTableAccount := addresslookuptable.NewKeyedAddressLookupTable(address)
	lookupTableAccount.State = *state
	return lookupTableAccount, nil
}

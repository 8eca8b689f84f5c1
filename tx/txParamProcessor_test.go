package tx

import (
	"context"
	"testing"

	go_bank "bankgo"
	"bankgo/utils"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProcessTxParamsWithoutConfig(t *testing.T) {
	txParams := go_bank.BaseTxParams{ComputeUnits: 250_000, ComputeUnitsPrice: 5}
	processed, err := ProcessTxParams(
		context.Background(),
		&TransactionProps{TxParams: txParams},
		func(context.Context, *TransactionProps) (*solana.Transaction, error) {
			t.Fatal("builder must not run without a processing config")
			return nil, nil
		},
		nil,
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, txParams, processed)
}

func TestBuildTransactionSimulatesComputeUnits(t *testing.T) {
	wallet := go_bank.NewWallet(solana.NewWallet().PrivateKey)
	sender, connection := newSender(t, wallet)
	connection.OnLatestBlockhash(1_000)
	connection.On("SimulateTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything).
		Return(&rpc.SimulateTransactionResponse{
			Value: &rpc.SimulateTransactionResult{
				UnitsConsumed: utils.NewPtr(uint64(10_000)),
			},
		}, nil)

	var priceFrom uint64
	tx, _, err := sender.BuildTransaction(
		context.Background(),
		[]solana.Instruction{depositIx(wallet.GetPublicKey())},
		&go_bank.TxParams{
			ProcessingTxParams: go_bank.ProcessingTxParams{
				UseSimulatedComputeUnits:                     utils.NewPtr(true),
				UseSimulateComputeUnitsForCUPriceCalculation: utils.NewPtr(true),
				GetCUPriceFromComputeUnits: func(units uint64) uint64 {
					priceFrom = units
					return 3
				},
			},
		},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(12_000), priceFrom)
	assert.Len(t, tx.Message.Instructions, 3)
}

func TestBuildTransactionSimulationRejected(t *testing.T) {
	wallet := go_bank.NewWallet(solana.NewWallet().PrivateKey)
	sender, connection := newSender(t, wallet)
	connection.OnLatestBlockhash(1_000)
	connection.On("SimulateTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything).
		Return(&rpc.SimulateTransactionResponse{
			Value: &rpc.SimulateTransactionResult{
				Err:  "AccountNotFound",
				Logs: []string{"Program log: bank does not exist"},
			},
		}, nil)

	_, _, err := sender.BuildTransaction(
		context.Background(),
		[]solana.Instruction{depositIx(wallet.GetPublicKey())},
		&go_bank.TxParams{
			ProcessingTxParams: go_bank.ProcessingTxParams{
				UseSimulatedComputeUnits: utils.NewPtr(true),
			},
		},
		nil,
	)
	require.Error(t, err)
	assert.True(t, go_bank.IsKind(err, go_bank.ErrorKindRemoteRejection))
}
